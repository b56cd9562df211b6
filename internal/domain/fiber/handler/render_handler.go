package handler

import (
	"bytes"

	"github.com/fadilmartias/harvard-cv/internal/cvparse"
	"github.com/fadilmartias/harvard-cv/internal/render"
	"github.com/fadilmartias/harvard-cv/internal/util"
	"github.com/gofiber/fiber/v2"
)

type RenderHandler struct{}

func NewRenderHandler() *RenderHandler {
	return &RenderHandler{}
}

func (h *RenderHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/api/render/html", h.HTML)
}

// HTML validates a CV body the same way model output is validated and
// returns the Harvard layout.
func (h *RenderHandler) HTML(c *fiber.Ctx) error {
	cv, err := cvparse.ParseAndValidate(string(c.Body()))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid CV data",
		}, err)
	}

	var buf bytes.Buffer
	if err := render.HarvardHTML(&buf, cv); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "Failed to render CV",
		}, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(fiber.StatusOK).Send(buf.Bytes())
}
