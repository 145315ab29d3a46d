// internal/model/campaign.go
package model

// Goals offered by the campaign form, in display order.
var Goals = []string{
	"Increase brand awareness",
	"Drive sales",
	"Generate leads",
	"Launch a new product",
}

// CampaignRequest is what the user submits for one generation.
type CampaignRequest struct {
	ProductName        string `json:"productName"`
	ProductDescription string `json:"productDescription"`
	TargetAudience     string `json:"targetAudience"`
	Goal               string `json:"goal"`
}

// Complete reports whether every field is non-empty. Whitespace counts as content.
func (r CampaignRequest) Complete() bool {
	return r.ProductName != "" && r.ProductDescription != "" && r.TargetAudience != "" && r.Goal != ""
}

func IsKnownGoal(goal string) bool {
	for _, g := range Goals {
		if g == goal {
			return true
		}
	}
	return false
}
