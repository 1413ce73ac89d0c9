package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one turn in a project's conversation. Turns are immutable
// once created and only the chat pipeline writes them.
type ChatMessage struct {
	Id        uuid.UUID
	Chat      string
	Role      string
	ProjectId uuid.UUID
	CreatedAt time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
