package dto

import (
	"time"

	"github.com/google/uuid"
)

type AttachmentResponse struct {
	Id           uuid.UUID `json:"id"`
	ProjectId    uuid.UUID `json:"project_id"`
	OriginalName string    `json:"original_name"`
	ContentType  string    `json:"content_type"`
	SizeBytes    int64     `json:"size_bytes"`
	CreatedAt    time.Time `json:"created_at"`
}
