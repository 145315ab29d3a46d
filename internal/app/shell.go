package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/unclebandit/campaign-generator/internal/errors"
	"github.com/unclebandit/campaign-generator/internal/logging"
	"github.com/unclebandit/campaign-generator/internal/model"
)

var (
	ErrSubmissionInFlight = errors.New("a campaign is already being generated")
	ErrIncompleteRequest  = errors.New("all campaign fields are required")
)

// Generator is the part of service.CampaignService the shell drives.
type Generator interface {
	Generate(ctx context.Context, productName, productDescription, targetAudience, goal string) (*model.CampaignOutput, error)
}

// Snapshot is a consistent copy of a shell's state and the last submitted form values.
type Snapshot struct {
	State State
	Form  model.CampaignRequest
}

// Shell owns the UI state of one page session. At most one generation runs at a time.
type Shell struct {
	generator Generator
	logger    *zap.Logger

	mu       sync.Mutex
	state    State
	form     model.CampaignRequest
	inflight chan struct{}
	lastSeen time.Time
}

func NewShell(gen Generator, logger *zap.Logger) *Shell {
	return &Shell{
		generator: gen,
		logger:    logging.OrNop(logger),
		state:     Idle(),
		lastSeen:  time.Now(),
	}
}

// SetForm records the form values without submitting them.
func (s *Shell) SetForm(req model.CampaignRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = req
	s.lastSeen = time.Now()
}

// Submit moves the shell to Loading, dropping any previous output or error, and starts the
// generation in the background. The request is not cancellable once started.
func (s *Shell) Submit(req model.CampaignRequest) error {
	s.mu.Lock()
	s.form = req
	s.lastSeen = time.Now()
	if s.state.IsLoading() {
		s.mu.Unlock()
		return ErrSubmissionInFlight
	}
	if !req.Complete() {
		s.mu.Unlock()
		return ErrIncompleteRequest
	}
	s.state = Loading()
	done := make(chan struct{})
	s.inflight = done
	s.mu.Unlock()

	go s.run(req, done)
	return nil
}

func (s *Shell) run(req model.CampaignRequest, done chan struct{}) {
	defer close(done)

	output, err := s.generator.Generate(context.Background(),
		req.ProductName, req.ProductDescription, req.TargetAudience, req.Goal)

	next := Success(output)
	if err != nil {
		s.logger.Warn("campaign generation failed", zap.Error(err))
		next = Failure(appErrors.UserMessage(err))
	} else if output == nil {
		next = Failure(appErrors.UnknownErrorMessage)
	}

	s.mu.Lock()
	s.state = next
	s.mu.Unlock()
}

func (s *Shell) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	return Snapshot{State: s.state, Form: s.form}
}

// Wait blocks until no generation is in flight.
func (s *Shell) Wait() {
	s.mu.Lock()
	done := s.inflight
	s.mu.Unlock()
	if done != nil {
		<-done
	}
}

// activity reads the session liveness without counting as a visit.
func (s *Shell) activity() (loading bool, lastSeen time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.IsLoading(), s.lastSeen
}
