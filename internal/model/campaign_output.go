// internal/model/campaign_output.go
package model

type CampaignOutput struct {
	CoreMessaging       CoreMessaging       `json:"coreMessaging"`
	TargetPersona       TargetPersona       `json:"targetPersona"`
	SocialMediaStrategy SocialMediaStrategy `json:"socialMediaStrategy"`
	EmailMarketing      EmailMarketing      `json:"emailMarketing"`
	BlogStrategy        BlogStrategy        `json:"blogStrategy"`
}

type CoreMessaging struct {
	Taglines          []string `json:"taglines"`
	ValuePropositions []string `json:"valuePropositions"`
}

type TargetPersona struct {
	Name         string   `json:"name"`
	Demographics string   `json:"demographics"`
	Goals        []string `json:"goals"`
	Challenges   []string `json:"challenges"`
}

type SocialMediaStrategy struct {
	Platform       string       `json:"platform"`
	ContentPillars []string     `json:"contentPillars"`
	SamplePosts    []SamplePost `json:"samplePosts"`
}

type SamplePost struct {
	Platform    string `json:"platform"`
	Text        string `json:"text"`
	ImagePrompt string `json:"imagePrompt"`
}

type EmailMarketing struct {
	SubjectLines []string    `json:"subjectLines"`
	SampleEmail  SampleEmail `json:"sampleEmail"`
}

type SampleEmail struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type BlogStrategy struct {
	PostIdeas     []string      `json:"postIdeas"`
	SampleOutline SampleOutline `json:"sampleOutline"`
}

type SampleOutline struct {
	Title   string   `json:"title"`
	Outline []string `json:"outline"`
}
