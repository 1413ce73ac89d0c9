package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"

	"ai-agenthub-be/internal/entity"
	"ai-agenthub-be/internal/pkg/logger"
	"ai-agenthub-be/internal/repository/unitofwork"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the audit topic and persists each event as an
// audit log row. It logs to an isolated file logger so event traffic
// stays out of the main application log.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	auditLogger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		logger:     auditLogger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var envelope eventEnvelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		cs.logger.Error("consumer", "Failed to unmarshal audit event", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	var actor *uuid.UUID
	if raw, ok := envelope.Data["user_id"].(string); ok {
		if id, err := uuid.Parse(raw); err == nil {
			actor = &id
		}
	}

	auditLog := &entity.AuditLog{
		Id:        uuid.New(),
		Actor:     actor,
		Action:    envelope.Type,
		Details:   envelope.Data,
		CreatedAt: envelope.OccurredAt,
	}
	if auditLog.CreatedAt.IsZero() {
		auditLog.CreatedAt = time.Now()
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.AuditLogRepository().Create(ctx, auditLog); err != nil {
		cs.logger.Error("consumer", "Failed to persist audit log", map[string]interface{}{
			"event_type": envelope.Type,
			"error":      err.Error(),
		})
		msg.Nack() // Nack for retriable errors
		return
	}

	cs.logger.Info("consumer", "Audit event persisted", map[string]interface{}{
		"event_type": envelope.Type,
	})
	msg.Ack()
}
