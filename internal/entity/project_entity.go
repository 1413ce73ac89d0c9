package entity

import (
	"time"

	"github.com/google/uuid"
)

// Project is a chatbot agent configuration. Its SystemInstruction is applied
// to every turn sent to the model for this project.
type Project struct {
	Id                uuid.UUID
	UserId            uuid.UUID
	Name              string
	Description       string
	SystemInstruction string
	CreatedAt         time.Time
	UpdatedAt         *time.Time
	DeletedAt         *time.Time
	IsDeleted         bool
}
