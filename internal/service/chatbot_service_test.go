package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-agenthub-be/internal/apperror"
	"ai-agenthub-be/internal/constant"
	"ai-agenthub-be/internal/dto"
	"ai-agenthub-be/internal/entity"
	"ai-agenthub-be/internal/repository/contract"
	"ai-agenthub-be/internal/repository/memory"
	"ai-agenthub-be/internal/repository/specification"
	"ai-agenthub-be/internal/repository/unitofwork"
	"ai-agenthub-be/pkg/llm"
)

// --- Fakes ---

type fakeProjectRepo struct {
	projects map[uuid.UUID]*entity.Project
}

func (r *fakeProjectRepo) Create(ctx context.Context, p *entity.Project) error {
	r.projects[p.Id] = p
	return nil
}

func (r *fakeProjectRepo) Update(ctx context.Context, p *entity.Project) error {
	r.projects[p.Id] = p
	return nil
}

func (r *fakeProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.projects, id)
	return nil
}

func (r *fakeProjectRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Project, error) {
	var byId *uuid.UUID
	var owner *uuid.UUID
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			id := s.ID
			byId = &id
		case specification.UserOwnedBy:
			id := s.UserID
			owner = &id
		}
	}
	for _, p := range r.projects {
		if byId != nil && p.Id != *byId {
			continue
		}
		if owner != nil && p.UserId != *owner {
			continue
		}
		return p, nil
	}
	return nil, nil
}

func (r *fakeProjectRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Project, error) {
	var out []*entity.Project
	for _, p := range r.projects {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProjectRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.projects)), nil
}

type fakeChatRepo struct {
	messages  []*entity.ChatMessage
	createErr error
}

func (r *fakeChatRepo) Create(ctx context.Context, m *entity.ChatMessage) error {
	if r.createErr != nil {
		return r.createErr
	}
	copy := *m
	r.messages = append(r.messages, &copy)
	return nil
}

func (r *fakeChatRepo) DeleteByProjectId(ctx context.Context, projectId uuid.UUID) (int64, error) {
	var kept []*entity.ChatMessage
	var deleted int64
	for _, m := range r.messages {
		if m.ProjectId == projectId {
			deleted++
			continue
		}
		kept = append(kept, m)
	}
	r.messages = kept
	return deleted, nil
}

func (r *fakeChatRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatMessage, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *fakeChatRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	var projectId *uuid.UUID
	desc := false
	limit := 0
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByProjectID:
			id := s.ProjectID
			projectId = &id
		case specification.OrderBy:
			desc = s.Desc
		case specification.Limit:
			limit = s.N
		}
	}

	var out []*entity.ChatMessage
	for _, m := range r.messages {
		if projectId != nil && m.ProjectId != *projectId {
			continue
		}
		out = append(out, m)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeChatRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakeUnitOfWork struct {
	projectRepo *fakeProjectRepo
	chatRepo    *fakeChatRepo
	auditRepo   contract.AuditLogRepository
	beginErr    error
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return u.beginErr }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository               { return nil }
func (u *fakeUnitOfWork) ProjectRepository() contract.ProjectRepository         { return u.projectRepo }
func (u *fakeUnitOfWork) ChatMessageRepository() contract.ChatMessageRepository { return u.chatRepo }
func (u *fakeUnitOfWork) AttachmentRepository() contract.AttachmentRepository   { return nil }
func (u *fakeUnitOfWork) AuditLogRepository() contract.AuditLogRepository       { return u.auditRepo }

type fakeUowFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

type fakeLLM struct {
	reply       string
	err         error
	gotHistory  []llm.Message
	gotMessage  string
	callCount   int
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, message string, opts ...llm.Option) (string, error) {
	f.callCount++
	f.gotHistory = history
	f.gotMessage = message
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

// --- Helpers ---

func newTestService(t *testing.T, provider llm.LLMProvider) (*chatbotService, *fakeUnitOfWork, *entity.Project, uuid.UUID) {
	t.Helper()

	userId := uuid.New()
	project := &entity.Project{
		Id:                uuid.New(),
		UserId:            userId,
		Name:              "Support Bot",
		SystemInstruction: "You are a pirate.",
		CreatedAt:         time.Now(),
	}

	uow := &fakeUnitOfWork{
		projectRepo: &fakeProjectRepo{projects: map[uuid.UUID]*entity.Project{project.Id: project}},
		chatRepo:    &fakeChatRepo{},
	}

	svc := NewChatbotService(
		&fakeUowFactory{uow: uow},
		provider,
		memory.NewInstructionCache(),
		nil,
		0,
		nil,
		log.New(io.Discard, "", 0),
	).(*chatbotService)

	return svc, uow, project, userId
}

func seedTurns(repo *fakeChatRepo, projectId uuid.UUID, n int) {
	base := time.Now().Add(-time.Hour)
	for i := 1; i <= n; i++ {
		role := constant.ChatMessageRoleUser
		if i%2 == 0 {
			role = constant.ChatMessageRoleModel
		}
		repo.messages = append(repo.messages, &entity.ChatMessage{
			Id:        uuid.New(),
			Chat:      fmt.Sprintf("turn %d", i),
			Role:      role,
			ProjectId: projectId,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
	}
}

// --- Tests ---

func TestSendChat_PersistsBothTurns(t *testing.T) {
	provider := &fakeLLM{reply: "Arr, hello!"}
	svc, uow, project, userId := newTestService(t, provider)

	res, err := svc.SendChat(context.Background(), userId, &dto.SendChatRequest{
		ProjectId: project.Id,
		Chat:      "hi",
	})
	require.NoError(t, err)

	assert.Equal(t, "hi", res.Sent.Chat)
	assert.Equal(t, constant.ChatMessageRoleUser, res.Sent.Role)
	assert.Equal(t, "Arr, hello!", res.Reply.Chat)
	assert.Equal(t, constant.ChatMessageRoleModel, res.Reply.Role)

	require.Len(t, uow.chatRepo.messages, 2)
	assert.Equal(t, constant.ChatMessageRoleUser, uow.chatRepo.messages[0].Role)
	assert.Equal(t, constant.ChatMessageRoleModel, uow.chatRepo.messages[1].Role)
}

func TestSendChat_FoldsInstructionIntoLiveMessage(t *testing.T) {
	provider := &fakeLLM{reply: "Arr."}
	svc, _, project, userId := newTestService(t, provider)

	_, err := svc.SendChat(context.Background(), userId, &dto.SendChatRequest{
		ProjectId: project.Id,
		Chat:      "hi",
	})
	require.NoError(t, err)

	assert.Equal(t, "[System: You are a pirate.]\n\nUser: hi", provider.gotMessage)
	assert.Empty(t, provider.gotHistory)
}

func TestSendChat_WindowCapsHistory(t *testing.T) {
	provider := &fakeLLM{reply: "ok"}
	svc, uow, project, userId := newTestService(t, provider)
	seedTurns(uow.chatRepo, project.Id, 25)

	_, err := svc.SendChat(context.Background(), userId, &dto.SendChatRequest{
		ProjectId: project.Id,
		Chat:      "latest question",
	})
	require.NoError(t, err)

	// 20 turns total including the live one, so 19 travel as history.
	require.Len(t, provider.gotHistory, constant.ContextWindowSize-1)
	assert.Equal(t, "turn 7", provider.gotHistory[0].Content)
	assert.Equal(t, "turn 25", provider.gotHistory[len(provider.gotHistory)-1].Content)
	assert.Equal(t, "user", provider.gotHistory[0].Role)
	assert.Equal(t, "assistant", provider.gotHistory[1].Role)
}

func TestSendChat_EmptyMessageRejected(t *testing.T) {
	provider := &fakeLLM{reply: "unused"}
	svc, uow, project, userId := newTestService(t, provider)

	_, err := svc.SendChat(context.Background(), userId, &dto.SendChatRequest{
		ProjectId: project.Id,
		Chat:      "   ",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
	assert.Zero(t, provider.callCount)
	assert.Empty(t, uow.chatRepo.messages)
}

func TestSendChat_UnknownProjectRejected(t *testing.T) {
	provider := &fakeLLM{reply: "unused"}
	svc, _, _, userId := newTestService(t, provider)

	_, err := svc.SendChat(context.Background(), userId, &dto.SendChatRequest{
		ProjectId: uuid.New(),
		Chat:      "hi",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
	assert.Zero(t, provider.callCount)
}

func TestSendChat_ForeignProjectRejected(t *testing.T) {
	provider := &fakeLLM{reply: "unused"}
	svc, _, project, _ := newTestService(t, provider)

	_, err := svc.SendChat(context.Background(), uuid.New(), &dto.SendChatRequest{
		ProjectId: project.Id,
		Chat:      "hi",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestSendChat_UserTurnSurvivesModelFailure(t *testing.T) {
	provider := &fakeLLM{err: errors.New("backend down")}
	svc, uow, project, userId := newTestService(t, provider)

	_, err := svc.SendChat(context.Background(), userId, &dto.SendChatRequest{
		ProjectId: project.Id,
		Chat:      "hi",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrModelUnavailable))

	require.Len(t, uow.chatRepo.messages, 1)
	assert.Equal(t, constant.ChatMessageRoleUser, uow.chatRepo.messages[0].Role)
	assert.Equal(t, "hi", uow.chatRepo.messages[0].Chat)
}

func TestGetChatHistory_ChronologicalOrder(t *testing.T) {
	provider := &fakeLLM{reply: "unused"}
	svc, uow, project, userId := newTestService(t, provider)
	seedTurns(uow.chatRepo, project.Id, 6)

	res, err := svc.GetChatHistory(context.Background(), userId, project.Id)
	require.NoError(t, err)

	require.Len(t, res, 6)
	assert.Equal(t, "turn 1", res[0].Chat)
	assert.Equal(t, "turn 6", res[5].Chat)
}

func TestGetChatHistory_UnknownProject(t *testing.T) {
	provider := &fakeLLM{}
	svc, _, _, userId := newTestService(t, provider)

	_, err := svc.GetChatHistory(context.Background(), userId, uuid.New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestClearHistory_ReportsDeletedCount(t *testing.T) {
	provider := &fakeLLM{}
	svc, uow, project, userId := newTestService(t, provider)
	seedTurns(uow.chatRepo, project.Id, 4)

	res, err := svc.ClearHistory(context.Background(), userId, project.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(4), res.Deleted)
	assert.Empty(t, uow.chatRepo.messages)

	// Clearing again is a no-op with a zero count.
	res, err = svc.ClearHistory(context.Background(), userId, project.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Deleted)
}
