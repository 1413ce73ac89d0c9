package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Attachment struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProjectId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	OriginalName string         `gorm:"type:varchar(512);not null"`
	StoredName   string         `gorm:"type:varchar(512);not null;uniqueIndex"`
	ContentType  string         `gorm:"type:varchar(255)"`
	SizeBytes    int64          `gorm:"not null;default:0"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Attachment) TableName() string {
	return "attachments"
}
