package handler

import (
	"errors"

	"github.com/fadilmartias/harvard-cv/internal/dto"
	"github.com/fadilmartias/harvard-cv/internal/ratelimit"
	"github.com/fadilmartias/harvard-cv/internal/response"
	"github.com/fadilmartias/harvard-cv/internal/usecase"
	"github.com/fadilmartias/harvard-cv/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HistoryHandler struct {
	uc *usecase.HistoryUsecase
}

func NewHistoryHandler(uc *usecase.HistoryUsecase) *HistoryHandler {
	return &HistoryHandler{uc: uc}
}

func (h *HistoryHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/extractions", h.List)
	app.Get("/api/extractions/:id", h.Result)
}

func (h *HistoryHandler) Result(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid extraction id",
		}, nil)
	}

	extraction, err := h.uc.GetResult(c.UserContext(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "extraction not found",
		}, nil)
	}
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to get extraction",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get extraction",
		Data:    dto.NewExtractionDTO(extraction),
	})
}

// List shows the caller's own runs, identified the same way the upload
// limiter identifies clients. Items carry no CV; fetch one by id for that.
func (h *HistoryHandler) List(c *fiber.Ctx) error {
	clientID := ratelimit.ClientID(func(name string) string { return c.Get(name) })
	items, total, page, pageSize, err := h.uc.List(c.UserContext(), clientID, c.QueryInt("page", 1), c.QueryInt("page_size", 10))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list extractions",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success list extractions",
		Data:       dto.NewExtractionListDTOs(items),
		Pagination: response.NewPagination(page, pageSize, total, len(items)),
	})
}
