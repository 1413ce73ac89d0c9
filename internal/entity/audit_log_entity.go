package entity

import (
	"time"

	"github.com/google/uuid"
)

type AuditLog struct {
	Id        uuid.UUID
	Actor     *uuid.UUID
	Action    string
	Details   map[string]interface{}
	CreatedAt time.Time
}
