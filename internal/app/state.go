package app

import "github.com/unclebandit/campaign-generator/internal/model"

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseFailure
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseFailure:
		return "failure"
	}
	return "unknown"
}

// State is exactly one of idle, loading, success (with output) or failure (with message).
// Build it with the constructors below; the zero value is Idle.
type State struct {
	phase   Phase
	output  *model.CampaignOutput
	message string
}

func Idle() State {
	return State{phase: PhaseIdle}
}

func Loading() State {
	return State{phase: PhaseLoading}
}

func Success(output *model.CampaignOutput) State {
	return State{phase: PhaseSuccess, output: output}
}

func Failure(message string) State {
	return State{phase: PhaseFailure, message: message}
}

func (s State) Phase() Phase {
	return s.phase
}

func (s State) IsLoading() bool {
	return s.phase == PhaseLoading
}

// Output is set only in the success phase.
func (s State) Output() (*model.CampaignOutput, bool) {
	return s.output, s.phase == PhaseSuccess
}

// Message is set only in the failure phase.
func (s State) Message() (string, bool) {
	return s.message, s.phase == PhaseFailure
}
