package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log"

	"yuktadhara-be/internal/dto"
	"yuktadhara-be/internal/entity"
	"yuktadhara-be/internal/repository/memory"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IEncoderService consumes layer encode jobs: it turns a stored image blob
// into its transport-safe base64 form and writes the preview back onto the
// session. Encodings for different layers run independently; each layer's
// own absent->present transition happens under the session lock.
type IEncoderService interface {
	Consume(ctx context.Context) error
}

type encoderService struct {
	pubSub      *gochannel.GoChannel
	topicName   string
	sessionRepo *memory.SessionRepository
	notifier    PlannerEventNotifier
}

// PlannerEventNotifier receives lifecycle events for connected clients.
// Nil-able; the encoder works without any websocket listener.
type PlannerEventNotifier interface {
	Notify(event dto.PlannerEventMessage)
}

func NewEncoderService(
	pubSub *gochannel.GoChannel,
	topicName string,
	sessionRepo *memory.SessionRepository,
	notifier PlannerEventNotifier,
) IEncoderService {
	return &encoderService{
		pubSub:      pubSub,
		topicName:   topicName,
		sessionRepo: sessionRepo,
		notifier:    notifier,
	}
}

func (es *encoderService) Consume(ctx context.Context) error {
	messages, err := es.pubSub.Subscribe(ctx, es.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			es.processMessage(msg)
		}
	}()

	return nil
}

func (es *encoderService) processMessage(msg *message.Message) {
	var payload dto.LayerEncodeJobMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal encode job: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	// Copy the blob out under the session lock, encode outside it.
	var blob []byte
	err := es.sessionRepo.View(payload.SessionId, func(s *entity.PlanningSession) error {
		l, ok := s.Layer(payload.LayerId)
		if !ok || !l.Bound() {
			return nil
		}
		blob = append([]byte(nil), l.Image...)
		return nil
	})
	if err != nil {
		log.Printf("[WARN] Encode job for expired session %s", payload.SessionId)
		msg.Ack()
		return
	}
	if blob == nil {
		// Slot cleared between upload and encode. Nothing to do.
		msg.Ack()
		return
	}
	encoded := base64.StdEncoding.EncodeToString(blob)

	err = es.sessionRepo.Update(payload.SessionId, func(s *entity.PlanningSession) error {
		l, ok := s.Layer(payload.LayerId)
		if !ok || !l.Bound() {
			return nil
		}
		l.PreviewData = encoded
		return nil
	})
	if err != nil {
		log.Printf("[ERROR] Failed to store preview for layer %s: %v", payload.LayerId, err)
		msg.Nack()
		return
	}

	if es.notifier != nil {
		es.notifier.Notify(dto.PlannerEventMessage{
			SessionId: payload.SessionId,
			Event:     "layer.encoded",
			LayerId:   payload.LayerId,
		})
	}

	msg.Ack()
}
