package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"ai-agenthub-be/internal/apperror"
	"ai-agenthub-be/internal/dto"
	"ai-agenthub-be/internal/entity"
	"ai-agenthub-be/internal/repository/specification"
	"ai-agenthub-be/internal/repository/unitofwork"
	"ai-agenthub-be/pkg/events"

	"github.com/google/uuid"
)

const maxAttachmentSize = 10 << 20 // 10 MB

type IAttachmentService interface {
	Upload(ctx context.Context, userId, projectId uuid.UUID, file *multipart.FileHeader) (*dto.AttachmentResponse, error)
	GetAll(ctx context.Context, userId, projectId uuid.UUID) ([]*dto.AttachmentResponse, error)
	Delete(ctx context.Context, userId, projectId, attachmentId uuid.UUID) error
	ResolvePath(ctx context.Context, userId, projectId, attachmentId uuid.UUID) (string, *dto.AttachmentResponse, error)
}

type attachmentService struct {
	uowFactory unitofwork.RepositoryFactory
	uploadDir  string
	publisher  IPublisherService
}

func NewAttachmentService(uowFactory unitofwork.RepositoryFactory, uploadDir string, publisher IPublisherService) IAttachmentService {
	return &attachmentService{
		uowFactory: uowFactory,
		uploadDir:  uploadDir,
		publisher:  publisher,
	}
}

func toAttachmentResponse(a *entity.Attachment) *dto.AttachmentResponse {
	return &dto.AttachmentResponse{
		Id:           a.Id,
		ProjectId:    a.ProjectId,
		OriginalName: a.OriginalName,
		ContentType:  a.ContentType,
		SizeBytes:    a.SizeBytes,
		CreatedAt:    a.CreatedAt,
	}
}

func (s *attachmentService) authorizeProject(ctx context.Context, uow unitofwork.UnitOfWork, userId, projectId uuid.UUID) error {
	project, err := uow.ProjectRepository().FindOne(ctx,
		specification.ByID{ID: projectId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return apperror.Storage(err)
	}
	if project == nil {
		return apperror.NotFound("project")
	}
	return nil
}

func (s *attachmentService) Upload(ctx context.Context, userId, projectId uuid.UUID, file *multipart.FileHeader) (*dto.AttachmentResponse, error) {
	if file == nil {
		return nil, apperror.InvalidInput("file is required")
	}
	if file.Size > maxAttachmentSize {
		return nil, apperror.InvalidInput("file exceeds the 10MB limit")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := s.authorizeProject(ctx, uow, userId, projectId); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, apperror.Storage(err)
	}

	attachmentId := uuid.New()
	storedName := fmt.Sprintf("%s%s", attachmentId, filepath.Ext(file.Filename))
	dstPath := filepath.Join(s.uploadDir, storedName)

	src, err := file.Open()
	if err != nil {
		return nil, apperror.Storage(err)
	}
	defer src.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dstPath)
		return nil, apperror.Storage(err)
	}

	attachment := &entity.Attachment{
		Id:           attachmentId,
		ProjectId:    projectId,
		OriginalName: file.Filename,
		StoredName:   storedName,
		ContentType:  file.Header.Get("Content-Type"),
		SizeBytes:    file.Size,
		CreatedAt:    time.Now(),
	}

	if err := uow.AttachmentRepository().Create(ctx, attachment); err != nil {
		os.Remove(dstPath)
		return nil, apperror.Storage(err)
	}

	if s.publisher != nil {
		s.publisher.PublishEvent(ctx, events.TypeAttachmentUploaded, map[string]interface{}{
			"user_id":       userId.String(),
			"project_id":    projectId.String(),
			"attachment_id": attachment.Id.String(),
			"size_bytes":    attachment.SizeBytes,
		})
	}

	return toAttachmentResponse(attachment), nil
}

func (s *attachmentService) GetAll(ctx context.Context, userId, projectId uuid.UUID) ([]*dto.AttachmentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := s.authorizeProject(ctx, uow, userId, projectId); err != nil {
		return nil, err
	}

	attachments, err := uow.AttachmentRepository().FindAll(ctx,
		specification.ByProjectID{ProjectID: projectId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, apperror.Storage(err)
	}

	res := make([]*dto.AttachmentResponse, 0, len(attachments))
	for _, a := range attachments {
		res = append(res, toAttachmentResponse(a))
	}
	return res, nil
}

func (s *attachmentService) Delete(ctx context.Context, userId, projectId, attachmentId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := s.authorizeProject(ctx, uow, userId, projectId); err != nil {
		return err
	}

	attachment, err := uow.AttachmentRepository().FindOne(ctx,
		specification.ByID{ID: attachmentId},
		specification.ByProjectID{ProjectID: projectId},
	)
	if err != nil {
		return apperror.Storage(err)
	}
	if attachment == nil {
		return apperror.NotFound("attachment")
	}

	if err := uow.AttachmentRepository().Delete(ctx, attachmentId); err != nil {
		return apperror.Storage(err)
	}

	// Best effort, the row is gone either way.
	os.Remove(filepath.Join(s.uploadDir, attachment.StoredName))

	return nil
}

func (s *attachmentService) ResolvePath(ctx context.Context, userId, projectId, attachmentId uuid.UUID) (string, *dto.AttachmentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := s.authorizeProject(ctx, uow, userId, projectId); err != nil {
		return "", nil, err
	}

	attachment, err := uow.AttachmentRepository().FindOne(ctx,
		specification.ByID{ID: attachmentId},
		specification.ByProjectID{ProjectID: projectId},
	)
	if err != nil {
		return "", nil, apperror.Storage(err)
	}
	if attachment == nil {
		return "", nil, apperror.NotFound("attachment")
	}

	return filepath.Join(s.uploadDir, attachment.StoredName), toAttachmentResponse(attachment), nil
}
