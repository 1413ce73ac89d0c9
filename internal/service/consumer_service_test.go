package service

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"ai-agenthub-be/internal/entity"
	"ai-agenthub-be/internal/pkg/logger"
	"ai-agenthub-be/internal/repository/specification"
	"ai-agenthub-be/pkg/events"
)

type fakeAuditLogRepo struct {
	created   []*entity.AuditLog
	createErr error
}

func (r *fakeAuditLogRepo) Create(ctx context.Context, log *entity.AuditLog) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, log)
	return nil
}

func (r *fakeAuditLogRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AuditLog, error) {
	return r.created, nil
}

func (r *fakeAuditLogRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.created)), nil
}

func newTestConsumer(t *testing.T, auditRepo *fakeAuditLogRepo) (*consumerService, string) {
	t.Helper()

	logPath := filepath.Join(t.TempDir(), "audit.log")
	uow := &fakeUnitOfWork{auditRepo: auditRepo}

	return &consumerService{
		topicName:  AuditTopicName,
		uowFactory: &fakeUowFactory{uow: uow},
		logger:     logger.NewIsolatedLogger(logPath),
	}, logPath
}

func envelopeMessage(t *testing.T, eventType string, data map[string]interface{}) *message.Message {
	t.Helper()

	payload, err := json.Marshal(eventEnvelope{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	})
	assert.NoError(t, err)
	return message.NewMessage(watermill.NewUUID(), payload)
}

func TestProcessMessage_PersistsAuditRow(t *testing.T) {
	auditRepo := &fakeAuditLogRepo{}
	cs, logPath := newTestConsumer(t, auditRepo)

	actorId := uuid.New()
	msg := envelopeMessage(t, events.TypeChatTurnCompleted, map[string]interface{}{
		"user_id":    actorId.String(),
		"project_id": uuid.NewString(),
	})

	cs.processMessage(context.Background(), msg)

	assert.Len(t, auditRepo.created, 1)
	row := auditRepo.created[0]
	assert.Equal(t, events.TypeChatTurnCompleted, row.Action)
	assert.NotNil(t, row.Actor)
	assert.Equal(t, actorId, *row.Actor)
	assert.False(t, row.CreatedAt.IsZero())

	select {
	case <-msg.Acked():
	default:
		t.Fatal("expected message to be acked")
	}

	// The consumer writes to its own file, not the main log.
	assert.NoError(t, cs.logger.Sync())
	content, err := os.ReadFile(logPath)
	assert.NoError(t, err)
	assert.Contains(t, string(content), "Audit event persisted")
}

func TestProcessMessage_MalformedPayloadAcked(t *testing.T) {
	auditRepo := &fakeAuditLogRepo{}
	cs, _ := newTestConsumer(t, auditRepo)

	msg := message.NewMessage(watermill.NewUUID(), []byte("not json"))
	cs.processMessage(context.Background(), msg)

	assert.Empty(t, auditRepo.created)
	select {
	case <-msg.Acked():
	default:
		t.Fatal("expected malformed message to be acked")
	}
}

func TestProcessMessage_StorageErrorNacked(t *testing.T) {
	auditRepo := &fakeAuditLogRepo{createErr: errors.New("connection refused")}
	cs, _ := newTestConsumer(t, auditRepo)

	msg := envelopeMessage(t, events.TypeUserRegistered, map[string]interface{}{})
	cs.processMessage(context.Background(), msg)

	select {
	case <-msg.Nacked():
	default:
		t.Fatal("expected message to be nacked")
	}
}
