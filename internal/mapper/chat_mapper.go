package mapper

import (
	"time"

	"ai-agenthub-be/internal/entity"
	"ai-agenthub-be/internal/model"

	"gorm.io/gorm"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) ChatMessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}

	var deletedAt *time.Time
	if msg.DeletedAt.Valid {
		t := msg.DeletedAt.Time
		deletedAt = &t
	}

	return &entity.ChatMessage{
		Id:        msg.Id,
		Chat:      msg.Chat,
		Role:      msg.Role,
		ProjectId: msg.ProjectId,
		CreatedAt: msg.CreatedAt,
		DeletedAt: deletedAt,
		IsDeleted: msg.DeletedAt.Valid,
	}
}

func (m *ChatMapper) ChatMessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if msg.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *msg.DeletedAt, Valid: true}
	} else if msg.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	return &model.ChatMessage{
		Id:        msg.Id,
		Chat:      msg.Chat,
		Role:      msg.Role,
		ProjectId: msg.ProjectId,
		CreatedAt: msg.CreatedAt,
		DeletedAt: deletedAt,
	}
}
