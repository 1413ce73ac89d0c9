package unitofwork

import (
	"context"

	"ai-agenthub-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ProjectRepository() contract.ProjectRepository
	ChatMessageRepository() contract.ChatMessageRepository
	AttachmentRepository() contract.AttachmentRepository
	AuditLogRepository() contract.AuditLogRepository
}
