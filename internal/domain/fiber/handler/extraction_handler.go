package handler

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"strconv"
	"time"

	"github.com/fadilmartias/harvard-cv/internal/dto"
	"github.com/fadilmartias/harvard-cv/internal/middleware"
	"github.com/fadilmartias/harvard-cv/internal/ratelimit"
	"github.com/fadilmartias/harvard-cv/internal/usecase"
	"github.com/fadilmartias/harvard-cv/internal/util"
	"github.com/gofiber/fiber/v2"
)

const (
	pdfFormField   = "pdf"
	pdfContentType = "application/pdf"
)

type ExtractionHandler struct {
	uc *usecase.ExtractionUsecase
}

func NewExtractionHandler(uc *usecase.ExtractionUsecase) *ExtractionHandler {
	return &ExtractionHandler{uc: uc}
}

func (h *ExtractionHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/api/upload", h.Upload)
}

func (h *ExtractionHandler) Upload(c *fiber.Ctx) error {
	requestID := middleware.GetRequestID(c)

	data, err := readPDF(c, pdfFormField)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "No PDF file provided",
		}, err)
	}

	res, err := h.uc.Process(c.UserContext(), usecase.Upload{
		RequestID: requestID,
		ClientID:  ratelimit.ClientID(func(name string) string { return c.Get(name) }),
		PDF:       data,
	})
	if err != nil {
		return h.processError(c, err)
	}

	setRateLimitHeaders(c, res.Decision)
	return c.Status(fiber.StatusOK).JSON(dto.UploadResponseDTO{
		Success: true,
		Data:    res.CV,
		RawText: res.RawText,
	})
}

func (h *ExtractionHandler) processError(c *fiber.Ctx, err error) error {
	var limited *usecase.RateLimitedError
	switch {
	case errors.As(err, &limited):
		setRateLimitHeaders(c, limited.Decision)
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(limited.Decision.RetryAfter.Seconds())))
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusTooManyRequests,
			Message: "Too many requests",
		}, err)
	case errors.Is(err, usecase.ErrNotLinkedIn):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Not a LinkedIn resume",
		}, err)
	default:
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusInternalServerError,
			Message: "Failed to process PDF",
		}, err)
	}
}

// readPDF returns the bytes of a multipart field declared as application/pdf.
func readPDF(c *fiber.Ctx, field string) ([]byte, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("%s file is required: %w", field, err)
	}

	contentType := file.Header.Get(fiber.HeaderContentType)
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != pdfContentType {
		return nil, fmt.Errorf("unsupported %s content type %q", field, contentType)
	}

	f, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s file: %w", field, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s file: %w", field, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s file is empty", field)
	}
	return data, nil
}

func setRateLimitHeaders(c *fiber.Ctx, d ratelimit.Decision) {
	c.Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
	c.Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
	if !d.ResetAt.IsZero() {
		c.Set("X-RateLimit-Reset", d.ResetAt.UTC().Format(time.RFC3339))
	}
}
