package entity

import (
	"time"

	"github.com/google/uuid"
)

// Attachment is a file uploaded into a project. Attachments are never fed
// into the model context.
type Attachment struct {
	Id           uuid.UUID
	ProjectId    uuid.UUID
	OriginalName string
	StoredName   string
	ContentType  string
	SizeBytes    int64
	CreatedAt    time.Time
	DeletedAt    *time.Time
	IsDeleted    bool
}
