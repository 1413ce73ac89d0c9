package contract

import (
	"context"

	"ai-agenthub-be/internal/entity"
	"ai-agenthub-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	// DeleteByProjectId removes every turn for a project and returns how many
	// rows were affected. Deleting an empty project removes zero.
	DeleteByProjectId(ctx context.Context, projectId uuid.UUID) (int64, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatMessage, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
