package service

import (
	"context"
	"strings"
	"time"

	"ai-agenthub-be/internal/apperror"
	"ai-agenthub-be/internal/constant"
	"ai-agenthub-be/internal/dto"
	"ai-agenthub-be/internal/entity"
	"ai-agenthub-be/internal/repository/memory"
	"ai-agenthub-be/internal/repository/specification"
	"ai-agenthub-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IProjectService interface {
	CreateProject(ctx context.Context, userId uuid.UUID, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error)
	GetProject(ctx context.Context, userId, projectId uuid.UUID) (*dto.ProjectResponse, error)
	GetAllProjects(ctx context.Context, userId uuid.UUID) ([]*dto.ProjectResponse, error)
	UpdateProject(ctx context.Context, userId, projectId uuid.UUID, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error)
	DeleteProject(ctx context.Context, userId, projectId uuid.UUID) error
}

type projectService struct {
	uowFactory       unitofwork.RepositoryFactory
	instructionCache *memory.InstructionCache
}

func NewProjectService(uowFactory unitofwork.RepositoryFactory, instructionCache *memory.InstructionCache) IProjectService {
	return &projectService{
		uowFactory:       uowFactory,
		instructionCache: instructionCache,
	}
}

func toProjectResponse(p *entity.Project) *dto.ProjectResponse {
	return &dto.ProjectResponse{
		Id:                p.Id,
		Name:              p.Name,
		Description:       p.Description,
		SystemInstruction: p.SystemInstruction,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func (s *projectService) CreateProject(ctx context.Context, userId uuid.UUID, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.InvalidInput("project name is required")
	}

	instruction := strings.TrimSpace(req.SystemInstruction)
	if instruction == "" {
		instruction = constant.DefaultSystemInstruction
	}

	project := &entity.Project{
		Id:                uuid.New(),
		UserId:            userId,
		Name:              name,
		Description:       req.Description,
		SystemInstruction: instruction,
		CreatedAt:         time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ProjectRepository().Create(ctx, project); err != nil {
		return nil, apperror.Storage(err)
	}

	s.instructionCache.Save(project.Id.String(), project.SystemInstruction)

	return toProjectResponse(project), nil
}

func (s *projectService) GetProject(ctx context.Context, userId, projectId uuid.UUID) (*dto.ProjectResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	project, err := uow.ProjectRepository().FindOne(ctx,
		specification.ByID{ID: projectId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	if project == nil {
		return nil, apperror.NotFound("project")
	}

	return toProjectResponse(project), nil
}

func (s *projectService) GetAllProjects(ctx context.Context, userId uuid.UUID) ([]*dto.ProjectResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	projects, err := uow.ProjectRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, apperror.Storage(err)
	}

	res := make([]*dto.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		res = append(res, toProjectResponse(p))
	}
	return res, nil
}

func (s *projectService) UpdateProject(ctx context.Context, userId, projectId uuid.UUID, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.InvalidInput("project name is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	project, err := uow.ProjectRepository().FindOne(ctx,
		specification.ByID{ID: projectId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	if project == nil {
		return nil, apperror.NotFound("project")
	}

	instruction := strings.TrimSpace(req.SystemInstruction)
	if instruction == "" {
		instruction = constant.DefaultSystemInstruction
	}

	now := time.Now()
	project.Name = name
	project.Description = req.Description
	project.SystemInstruction = instruction
	project.UpdatedAt = &now

	if err := uow.ProjectRepository().Update(ctx, project); err != nil {
		return nil, apperror.Storage(err)
	}

	// Stale instructions must not leak into subsequent turns.
	s.instructionCache.Save(project.Id.String(), project.SystemInstruction)

	return toProjectResponse(project), nil
}

func (s *projectService) DeleteProject(ctx context.Context, userId, projectId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
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

	// Project, its history and its attachments go together.
	if err := uow.Begin(ctx); err != nil {
		return apperror.Storage(err)
	}
	defer uow.Rollback()

	if _, err := uow.ChatMessageRepository().DeleteByProjectId(ctx, projectId); err != nil {
		return apperror.Storage(err)
	}

	if err := uow.AttachmentRepository().DeleteByProjectId(ctx, projectId); err != nil {
		return apperror.Storage(err)
	}

	if err := uow.ProjectRepository().Delete(ctx, projectId); err != nil {
		return apperror.Storage(err)
	}

	if err := uow.Commit(); err != nil {
		return apperror.Storage(err)
	}

	s.instructionCache.Delete(projectId.String())

	return nil
}
