package queue

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/unclebandit/campaign-generator/internal/logging"
	"github.com/unclebandit/campaign-generator/internal/model"
	"github.com/unclebandit/campaign-generator/internal/repository"
)

// GenerationsTopic carries a model.GenerationEvent per generation attempt.
const GenerationsTopic = "campaign_generations"

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue delivers each published payload to every subscriber of the topic on its own
// goroutine, retrying failed handlers with linear backoff.
type InMemoryQueue struct {
	MaxRetries int
	Backoff    time.Duration

	mu       sync.Mutex
	handlers map[string][]func(payload any) error
	logger   *zap.Logger
}

func NewInMemoryQueue(logger *zap.Logger) *InMemoryQueue {
	return &InMemoryQueue{
		MaxRetries: 3,
		Backoff:    500 * time.Millisecond,
		handlers:   make(map[string][]func(payload any) error),
		logger:     logging.OrNop(logger),
	}
}

// JobPayload wraps a message payload with retry info
type JobPayload struct {
	Topic      string
	Payload    any
	RetryCount int
	MaxRetries int
}

func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := append([]func(payload any) error(nil), q.handlers[topic]...)
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	for _, handler := range handlers {
		job := JobPayload{Topic: topic, Payload: payload, MaxRetries: q.MaxRetries}
		go q.processJob(handler, job)
	}
	return nil
}

func (q *InMemoryQueue) processJob(handler func(payload any) error, job JobPayload) {
	for {
		err := handler(job.Payload)
		if err == nil {
			return
		}

		job.RetryCount++
		q.logger.Warn("job failed",
			zap.String("topic", job.Topic),
			zap.Int("attempt", job.RetryCount),
			zap.Int("max_retries", job.MaxRetries),
			zap.Error(err))

		if job.RetryCount > job.MaxRetries {
			q.logger.Error("job permanently failed", zap.String("topic", job.Topic), zap.Error(err))
			return
		}

		time.Sleep(time.Duration(job.RetryCount) * q.Backoff)
	}
}

func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// decodeGenerationEvent accepts the in-process struct or a JSON body from a broker.
func decodeGenerationEvent(payload any) (model.GenerationEvent, error) {
	switch p := payload.(type) {
	case model.GenerationEvent:
		return p, nil
	case *model.GenerationEvent:
		if p == nil {
			return model.GenerationEvent{}, fmt.Errorf("nil generation event")
		}
		return *p, nil
	case []byte:
		var e model.GenerationEvent
		if err := json.Unmarshal(p, &e); err != nil {
			return model.GenerationEvent{}, fmt.Errorf("invalid generation event: %w", err)
		}
		return e, nil
	default:
		return model.GenerationEvent{}, fmt.Errorf("unexpected payload type %T", payload)
	}
}

// StartGenerationLogSubscriber stores every generation event published on q.
func StartGenerationLogSubscriber(q Queue, repo repository.GenerationRepositoryInterface, logger *zap.Logger) error {
	logger = logging.OrNop(logger)

	return q.Subscribe(GenerationsTopic, func(payload any) error {
		event, err := decodeGenerationEvent(payload)
		if err != nil {
			// retrying will not fix a bad payload
			logger.Warn("⚠️ dropping generation event", zap.Error(err))
			return nil
		}

		g := model.GenerationFromEvent(event)
		if err := repo.Create(g); err != nil {
			logger.Warn("⚠️ failed to store generation", zap.String("request_id", event.RequestID), zap.Error(err))
			return err
		}

		logger.Debug("generation stored", zap.Int("id", g.ID), zap.String("request_id", event.RequestID))
		return nil
	})
}
