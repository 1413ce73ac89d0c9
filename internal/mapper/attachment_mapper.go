package mapper

import (
	"time"

	"ai-agenthub-be/internal/entity"
	"ai-agenthub-be/internal/model"

	"gorm.io/gorm"
)

type AttachmentMapper struct{}

func NewAttachmentMapper() *AttachmentMapper {
	return &AttachmentMapper{}
}

func (m *AttachmentMapper) ToEntity(a *model.Attachment) *entity.Attachment {
	if a == nil {
		return nil
	}

	var deletedAt *time.Time
	if a.DeletedAt.Valid {
		t := a.DeletedAt.Time
		deletedAt = &t
	}

	return &entity.Attachment{
		Id:           a.Id,
		ProjectId:    a.ProjectId,
		OriginalName: a.OriginalName,
		StoredName:   a.StoredName,
		ContentType:  a.ContentType,
		SizeBytes:    a.SizeBytes,
		CreatedAt:    a.CreatedAt,
		DeletedAt:    deletedAt,
		IsDeleted:    a.DeletedAt.Valid,
	}
}

func (m *AttachmentMapper) ToModel(a *entity.Attachment) *model.Attachment {
	if a == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if a.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *a.DeletedAt, Valid: true}
	} else if a.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	return &model.Attachment{
		Id:           a.Id,
		ProjectId:    a.ProjectId,
		OriginalName: a.OriginalName,
		StoredName:   a.StoredName,
		ContentType:  a.ContentType,
		SizeBytes:    a.SizeBytes,
		CreatedAt:    a.CreatedAt,
		DeletedAt:    deletedAt,
	}
}
