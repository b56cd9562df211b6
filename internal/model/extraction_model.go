package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ExtractionStatusProcessing = "processing"
	ExtractionStatusCompleted  = "completed"
	ExtractionStatusFailed     = "failed"
)

// Extraction is the stored trace of one upload run.
type Extraction struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID  string    `gorm:"type:varchar(64);index" json:"client_id"`
	Status    string    `gorm:"type:varchar(50)" json:"status"` // e.g. "processing", "completed", "failed"
	Stage     string    `gorm:"type:varchar(50)" json:"stage"`
	Locale    string    `gorm:"type:varchar(20)" json:"locale"`
	RawText   string    `gorm:"type:text" json:"raw_text"`
	CV        string    `gorm:"type:jsonb" json:"cv"`
	Error     string    `gorm:"type:text" json:"error"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *Extraction) TableName() string {
	return "extractions"
}
