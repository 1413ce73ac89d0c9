package service

import (
	"context"
	"log"
	"strings"
	"time"

	"ai-agenthub-be/internal/apperror"
	"ai-agenthub-be/internal/constant"
	"ai-agenthub-be/internal/dto"
	"ai-agenthub-be/internal/entity"
	"ai-agenthub-be/internal/pkg/limiter"
	"ai-agenthub-be/internal/repository/memory"
	"ai-agenthub-be/internal/repository/specification"
	"ai-agenthub-be/internal/repository/unitofwork"
	"ai-agenthub-be/pkg/chat/history"
	"ai-agenthub-be/pkg/chat/prompt"
	"ai-agenthub-be/pkg/events"
	"ai-agenthub-be/pkg/llm"

	"github.com/google/uuid"
)

type IChatbotService interface {
	SendChat(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
	GetChatHistory(ctx context.Context, userId, projectId uuid.UUID) ([]*dto.GetChatHistoryResponse, error)
	ClearHistory(ctx context.Context, userId, projectId uuid.UUID) (*dto.ClearHistoryResponse, error)
}

type chatbotService struct {
	uowFactory       unitofwork.RepositoryFactory
	llmProvider      llm.LLMProvider
	instructionCache *memory.InstructionCache
	dailyLimiter     limiter.IDailyLimiter
	chatDailyLimit   int
	publisher        IPublisherService
	logger           *log.Logger
}

func NewChatbotService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	instructionCache *memory.InstructionCache,
	dailyLimiter limiter.IDailyLimiter,
	chatDailyLimit int,
	publisher IPublisherService,
	logger *log.Logger,
) IChatbotService {
	return &chatbotService{
		uowFactory:       uowFactory,
		llmProvider:      llmProvider,
		instructionCache: instructionCache,
		dailyLimiter:     dailyLimiter,
		chatDailyLimit:   chatDailyLimit,
		publisher:        publisher,
		logger:           logger,
	}
}

// SendChat runs one full turn: the user message is validated, authorized
// against project ownership and committed before the model is called, so a
// model failure never loses what the user said. The reply is committed in a
// second transaction.
func (s *chatbotService) SendChat(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	chatText := strings.TrimSpace(req.Chat)
	if chatText == "" {
		return nil, apperror.InvalidInput("chat message must not be empty")
	}
	if req.ProjectId == uuid.Nil {
		return nil, apperror.InvalidInput("project_id is required")
	}

	if s.dailyLimiter != nil {
		allowed, err := s.dailyLimiter.Allow(ctx, userId.String(), s.chatDailyLimit)
		if err != nil {
			return nil, apperror.Storage(err)
		}
		if !allowed {
			return nil, &dto.LimitExceededError{
				Limit:      s.chatDailyLimit,
				Used:       s.chatDailyLimit,
				ResetAfter: time.Now().UTC().Truncate(24 * time.Hour).Add(24 * time.Hour),
			}
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	project, err := uow.ProjectRepository().FindOne(ctx,
		specification.ByID{ID: req.ProjectId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	if project == nil {
		return nil, apperror.NotFound("project")
	}

	userTurn := &entity.ChatMessage{
		Id:        uuid.New(),
		Chat:      chatText,
		Role:      constant.ChatMessageRoleUser,
		ProjectId: project.Id,
		CreatedAt: time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Storage(err)
	}
	if err := uow.ChatMessageRepository().Create(ctx, userTurn); err != nil {
		uow.Rollback()
		return nil, apperror.Storage(err)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.Storage(err)
	}

	// Context window includes the turn just written.
	recent, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByProjectID{ProjectID: project.Id},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Limit{N: constant.ContextWindowSize},
	)
	if err != nil {
		return nil, apperror.Storage(err)
	}

	window := history.Window(derefMessages(recent), constant.ContextWindowSize)

	// The live message travels separately, everything before it is history.
	historyTurns := window
	if len(historyTurns) > 0 && historyTurns[len(historyTurns)-1].Id == userTurn.Id {
		historyTurns = historyTurns[:len(historyTurns)-1]
	}

	instruction := s.resolveInstruction(project)

	p := prompt.Build(instruction, history.ToMessages(historyTurns), chatText)

	reply, err := s.llmProvider.Chat(ctx, p.History, p.Message,
		llm.WithTemperature(constant.GenTemperature),
		llm.WithTopP(constant.GenTopP),
		llm.WithTopK(constant.GenTopK),
		llm.WithMaxOutputTokens(constant.GenMaxOutputTokens),
	)
	if err != nil {
		s.logger.Printf("[ERROR] Model call failed for project %s: %v", project.Id, err)
		return nil, apperror.ModelUnavailable(err)
	}

	assistantTurn := &entity.ChatMessage{
		Id:        uuid.New(),
		Chat:      reply,
		Role:      constant.ChatMessageRoleModel,
		ProjectId: project.Id,
		CreatedAt: time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Storage(err)
	}
	if err := uow.ChatMessageRepository().Create(ctx, assistantTurn); err != nil {
		uow.Rollback()
		return nil, apperror.Storage(err)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.Storage(err)
	}

	if s.publisher != nil {
		s.publisher.PublishEvent(ctx, events.TypeChatTurnCompleted, map[string]interface{}{
			"user_id":    userId.String(),
			"project_id": project.Id.String(),
			"turn_id":    userTurn.Id.String(),
			"reply_id":   assistantTurn.Id.String(),
		})
	}

	return &dto.SendChatResponse{
		ProjectId: project.Id,
		Sent: &dto.SendChatResponseChat{
			Id:        userTurn.Id,
			Chat:      userTurn.Chat,
			Role:      userTurn.Role,
			CreatedAt: userTurn.CreatedAt,
		},
		Reply: &dto.SendChatResponseChat{
			Id:        assistantTurn.Id,
			Chat:      assistantTurn.Chat,
			Role:      assistantTurn.Role,
			CreatedAt: assistantTurn.CreatedAt,
		},
	}, nil
}

// resolveInstruction prefers the cache and falls back to the row already in
// hand, repopulating the cache on a miss.
func (s *chatbotService) resolveInstruction(project *entity.Project) string {
	if cached, found := s.instructionCache.Get(project.Id.String()); found {
		return cached
	}
	s.instructionCache.Save(project.Id.String(), project.SystemInstruction)
	return project.SystemInstruction
}

func (s *chatbotService) GetChatHistory(ctx context.Context, userId, projectId uuid.UUID) ([]*dto.GetChatHistoryResponse, error) {
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

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByProjectID{ProjectID: projectId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Limit{N: constant.HistoryDisplayLimit},
	)
	if err != nil {
		return nil, apperror.Storage(err)
	}

	ordered := history.Window(derefMessages(messages), constant.HistoryDisplayLimit)

	res := make([]*dto.GetChatHistoryResponse, 0, len(ordered))
	for _, msg := range ordered {
		res = append(res, &dto.GetChatHistoryResponse{
			Id:        msg.Id,
			Role:      msg.Role,
			Chat:      msg.Chat,
			CreatedAt: msg.CreatedAt,
		})
	}
	return res, nil
}

func (s *chatbotService) ClearHistory(ctx context.Context, userId, projectId uuid.UUID) (*dto.ClearHistoryResponse, error) {
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

	deleted, err := uow.ChatMessageRepository().DeleteByProjectId(ctx, projectId)
	if err != nil {
		return nil, apperror.Storage(err)
	}

	if s.publisher != nil {
		s.publisher.PublishEvent(ctx, events.TypeChatHistoryCleared, map[string]interface{}{
			"user_id":    userId.String(),
			"project_id": projectId.String(),
			"deleted":    deleted,
		})
	}

	return &dto.ClearHistoryResponse{
		ProjectId: projectId,
		Deleted:   deleted,
	}, nil
}

func derefMessages(messages []*entity.ChatMessage) []entity.ChatMessage {
	out := make([]entity.ChatMessage, 0, len(messages))
	for _, m := range messages {
		if m != nil {
			out = append(out, *m)
		}
	}
	return out
}
