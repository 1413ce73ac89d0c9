package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"ai-agenthub-be/pkg/events"
	pkgNats "ai-agenthub-be/pkg/nats"
)

const AuditTopicName = "audit_events"

type IPublisherService interface {
	// PublishEvent puts the event on the in-process bus and mirrors it to
	// NATS when a NATS publisher is configured. Delivery is best effort,
	// callers never fail their own operation over a publish error.
	PublishEvent(ctx context.Context, eventType string, data map[string]interface{})
}

// eventEnvelope is the wire form shared by the in-process bus and NATS.
type eventEnvelope struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

type publisherService struct {
	pubSub        *gochannel.GoChannel
	natsPublisher *pkgNats.Publisher
}

func NewPublisherService(pubSub *gochannel.GoChannel, natsPublisher *pkgNats.Publisher) IPublisherService {
	return &publisherService{
		pubSub:        pubSub,
		natsPublisher: natsPublisher,
	}
}

func (s *publisherService) PublishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	envelope := eventEnvelope{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}

	payload, err := json.Marshal(envelope)
	if err != nil {
		log.Printf("[ERROR] Failed to marshal %s event: %v", eventType, err)
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.pubSub.Publish(AuditTopicName, msg); err != nil {
		log.Printf("[WARN] Failed to publish %s to internal bus: %v", eventType, err)
	}

	if s.natsPublisher != nil {
		event := events.BaseEvent{
			Type:       eventType,
			Data:       data,
			OccurredAt: envelope.OccurredAt,
		}
		if err := s.natsPublisher.Publish(ctx, event); err != nil {
			log.Printf("[WARN] Failed to mirror %s to NATS: %v", eventType, err)
		}
	}
}
