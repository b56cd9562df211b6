package handler

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/fadilmartias/harvard-cv/internal/progress"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

const defaultKeepAlive = 15 * time.Second

// ProgressHandler streams pipeline events as server-sent events.
type ProgressHandler struct {
	hub       *progress.Hub
	keepAlive time.Duration
}

func NewProgressHandler(hub *progress.Hub, keepAlive time.Duration) *ProgressHandler {
	if keepAlive <= 0 {
		keepAlive = defaultKeepAlive
	}
	return &ProgressHandler{hub: hub, keepAlive: keepAlive}
}

func (h *ProgressHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/events", h.Stream)
}

// Stream subscribes before returning so no event published after the
// response headers is missed. ?request=<id> narrows the stream to one upload.
func (h *ProgressHandler) Stream(c *fiber.Ctx) error {
	events, release := h.hub.Subscribe(c.Query("request"))

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	keepAlive := h.keepAlive
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer release()
		if err := writeComment(w, "connected"); err != nil {
			return
		}

		ticker := time.NewTicker(keepAlive)
		defer ticker.Stop()
		for {
			select {
			case e, ok := <-events:
				if !ok {
					return
				}
				if err := writeEvent(w, e); err != nil {
					log.Printf("SSE client gone: %v", err)
					return
				}
			case <-ticker.C:
				if err := writeComment(w, "ping"); err != nil {
					return
				}
			}
		}
	}))
	return nil
}

func writeEvent(w *bufio.Writer, e progress.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
		return err
	}
	return w.Flush()
}

func writeComment(w *bufio.Writer, text string) error {
	if _, err := fmt.Fprintf(w, ": %s\n\n", text); err != nil {
		return err
	}
	return w.Flush()
}
