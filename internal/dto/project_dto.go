package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateProjectRequest struct {
	Name              string `json:"name" validate:"required,min=1,max=120"`
	Description       string `json:"description" validate:"max=500"`
	SystemInstruction string `json:"system_instruction" validate:"max=4000"`
}

type UpdateProjectRequest struct {
	Name              string `json:"name" validate:"required,min=1,max=120"`
	Description       string `json:"description" validate:"max=500"`
	SystemInstruction string `json:"system_instruction" validate:"max=4000"`
}

type ProjectResponse struct {
	Id                uuid.UUID  `json:"id"`
	Name              string     `json:"name"`
	Description       string     `json:"description"`
	SystemInstruction string     `json:"system_instruction"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         *time.Time `json:"updated_at"`
}
