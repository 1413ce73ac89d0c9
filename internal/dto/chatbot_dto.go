package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendChatRequest struct {
	ProjectId uuid.UUID `json:"project_id" validate:"required"`
	Chat      string    `json:"chat" validate:"required"`
}

type SendChatResponseChat struct {
	Id        uuid.UUID `json:"id"`
	Chat      string    `json:"chat"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type SendChatResponse struct {
	ProjectId uuid.UUID             `json:"project_id"`
	Sent      *SendChatResponseChat `json:"sent"`
	Reply     *SendChatResponseChat `json:"reply"`
}

type GetChatHistoryResponse struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Chat      string    `json:"chat"`
	CreatedAt time.Time `json:"created_at"`
}

type ClearHistoryResponse struct {
	ProjectId uuid.UUID `json:"project_id"`
	Deleted   int64     `json:"deleted"`
}

// --- Limit Exceeded Error Types ---

// LimitExceededError is a custom error that carries usage details
type LimitExceededError struct {
	Limit      int       `json:"limit"`
	Used       int       `json:"used"`
	ResetAfter time.Time `json:"reset_after"`
}

func (e *LimitExceededError) Error() string {
	return "daily chat limit exceeded"
}
