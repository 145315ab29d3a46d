// internal/service/campaign_service.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appErrors "github.com/unclebandit/campaign-generator/internal/errors"
	"github.com/unclebandit/campaign-generator/internal/logging"
	"github.com/unclebandit/campaign-generator/internal/model"
	"github.com/unclebandit/campaign-generator/internal/queue"
)

type CampaignService struct {
	Generator ContentGenerator
	Queue     queue.Queue // optional, receives a GenerationEvent per call
	Logger    *zap.Logger
}

func NewCampaignService(gen ContentGenerator, q queue.Queue, logger *zap.Logger) *CampaignService {
	return &CampaignService{
		Generator: gen,
		Queue:     q,
		Logger:    logging.OrNop(logger),
	}
}

// Generate makes exactly one model call for the given product details. Every failure is
// returned as *appErrors.GenerationError; the underlying cause is logged, not surfaced.
func (s *CampaignService) Generate(ctx context.Context, productName, productDescription, targetAudience, goal string) (*model.CampaignOutput, error) {
	logger := logging.OrNop(s.Logger)
	req := model.CampaignRequest{
		ProductName:        productName,
		ProductDescription: productDescription,
		TargetAudience:     targetAudience,
		Goal:               goal,
	}
	requestID := uuid.NewString()

	start := time.Now()
	raw, err := s.Generator.GenerateJSON(ctx, BuildPrompt(req), CampaignSchema())
	var out *model.CampaignOutput
	if err == nil {
		out, err = ParseCampaignOutput(raw)
	}
	elapsed := time.Since(start)

	s.publish(requestID, req, raw, err, elapsed)

	if err != nil {
		logger.Error("Error generating campaign from Gemini",
			zap.String("request_id", requestID),
			zap.String("model", s.Generator.Model()),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
		return nil, appErrors.NewGenerationError(err)
	}

	logger.Info("campaign generated",
		zap.String("request_id", requestID),
		zap.String("product", productName),
		zap.Duration("elapsed", elapsed))
	return out, nil
}

func (s *CampaignService) publish(requestID string, req model.CampaignRequest, raw string, genErr error, elapsed time.Duration) {
	if s.Queue == nil {
		return
	}

	event := model.GenerationEvent{
		RequestID:  requestID,
		Request:    req,
		Model:      s.Generator.Model(),
		Status:     model.GenerationSucceeded,
		RawOutput:  raw,
		DurationMs: elapsed.Milliseconds(),
		CreatedAt:  time.Now(),
	}
	if genErr != nil {
		event.Status = model.GenerationFailed
		event.LastError = genErr.Error()
	}

	if err := s.Queue.Publish(queue.GenerationsTopic, event); err != nil {
		logging.OrNop(s.Logger).Warn("⚠️ failed to publish generation event",
			zap.String("request_id", requestID), zap.Error(err))
	}
}
