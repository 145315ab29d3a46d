package view

import "github.com/unclebandit/campaign-generator/internal/model"

type GoalOption struct {
	Value    string
	Selected bool
}

type FormView struct {
	ProductName        string
	ProductDescription string
	TargetAudience     string
	Goal               string
	Goals              []GoalOption
	Loading            bool
	SubmitDisabled     bool
}

// CanSubmit is true when every field is filled, the goal is one of model.Goals and no
// generation is running.
func CanSubmit(req model.CampaignRequest, loading bool) bool {
	return !loading && req.Complete() && model.IsKnownGoal(req.Goal)
}

func NewFormView(req model.CampaignRequest, loading bool) FormView {
	goals := make([]GoalOption, 0, len(model.Goals))
	for _, g := range model.Goals {
		goals = append(goals, GoalOption{Value: g, Selected: g == req.Goal})
	}
	return FormView{
		ProductName:        req.ProductName,
		ProductDescription: req.ProductDescription,
		TargetAudience:     req.TargetAudience,
		Goal:               req.Goal,
		Goals:              goals,
		Loading:            loading,
		SubmitDisabled:     !CanSubmit(req, loading),
	}
}
