package view

import (
	"github.com/unclebandit/campaign-generator/internal/app"
	"github.com/unclebandit/campaign-generator/internal/model"
)

type ResultKind int

const (
	ResultWelcome ResultKind = iota
	ResultLoading
	ResultError
	ResultReport
)

// SectionTitles is the order the report sections are rendered in.
var SectionTitles = []string{
	"Core Messaging",
	"Target Persona",
	"Social Media Strategy",
	"Email Marketing",
	"Blog Strategy",
}

type ResultView struct {
	Kind    ResultKind
	Message string
	Output  *model.CampaignOutput
}

// Present maps a shell state to what the result area shows. Loading wins over everything,
// then an error, then the welcome panel when there is no output.
func Present(state app.State) ResultView {
	if state.IsLoading() {
		return ResultView{Kind: ResultLoading}
	}
	if msg, ok := state.Message(); ok {
		return ResultView{Kind: ResultError, Message: msg}
	}
	out, ok := state.Output()
	if !ok || out == nil {
		return ResultView{Kind: ResultWelcome}
	}
	return ResultView{Kind: ResultReport, Output: out}
}

func (r ResultView) IsWelcome() bool { return r.Kind == ResultWelcome }
func (r ResultView) IsLoading() bool { return r.Kind == ResultLoading }
func (r ResultView) IsError() bool   { return r.Kind == ResultError }
func (r ResultView) IsReport() bool  { return r.Kind == ResultReport }
