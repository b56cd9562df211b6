package dto

import (
	"encoding/json"
	"time"

	"github.com/fadilmartias/harvard-cv/internal/model"
	"github.com/google/uuid"
)

// UploadResponseDTO is the body of a successful POST /api/upload.
type UploadResponseDTO struct {
	Success bool      `json:"success"`
	Data    *model.CV `json:"data"`
	RawText string    `json:"rawText"`
}

type ExtractionDTO struct {
	ID        uuid.UUID       `json:"id"`
	Status    string          `json:"status"`
	Stage     string          `json:"stage"`
	Locale    string          `json:"locale"`
	CV        json.RawMessage `json:"cv,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func NewExtractionDTO(e *model.Extraction) ExtractionDTO {
	d := ExtractionDTO{
		ID:        e.ID,
		Status:    e.Status,
		Stage:     e.Stage,
		Locale:    e.Locale,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
	if e.CV != "" && e.CV != "{}" {
		d.CV = json.RawMessage(e.CV)
	}
	return d
}

// ExtractionListItemDTO is a run without its CV.
type ExtractionListItemDTO struct {
	ID        uuid.UUID `json:"id"`
	Status    string    `json:"status"`
	Stage     string    `json:"stage"`
	Locale    string    `json:"locale"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewExtractionListDTOs(list []model.Extraction) []ExtractionListItemDTO {
	out := make([]ExtractionListItemDTO, 0, len(list))
	for _, e := range list {
		out = append(out, ExtractionListItemDTO{
			ID:        e.ID,
			Status:    e.Status,
			Stage:     e.Stage,
			Locale:    e.Locale,
			CreatedAt: e.CreatedAt,
			UpdatedAt: e.UpdatedAt,
		})
	}
	return out
}
