package view

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/unclebandit/campaign-generator/internal/app"
	"github.com/unclebandit/campaign-generator/internal/model"
)

var synthWave = model.CampaignRequest{
	ProductName:        "SynthWave AI",
	ProductDescription: "AI-powered synth plugin for producers",
	TargetAudience:     "Indie musicians",
	Goal:               "Drive sales",
}

func sampleOutput() *model.CampaignOutput {
	return &model.CampaignOutput{
		CoreMessaging: model.CoreMessaging{
			Taglines:          []string{"Synth smarter, not harder"},
			ValuePropositions: []string{"Patch design in seconds", `Tom & Jerry's "best" <deal>`},
		},
		TargetPersona: model.TargetPersona{
			Name:         "Bedroom Producer Ben",
			Demographics: "22-34",
			Goals:        []string{"Finish more tracks"},
			Challenges:   []string{"Limited time"},
		},
		SocialMediaStrategy: model.SocialMediaStrategy{
			Platform:       "Instagram",
			ContentPillars: []string{"Sound design tips"},
			SamplePosts: []model.SamplePost{
				{Platform: "Instagram", Text: "From idea to patch in 10s.\n#synth", ImagePrompt: "Neon synth"},
				{Platform: "TikTok", Text: "Watch this patch evolve", ImagePrompt: "Waveform"},
			},
		},
		EmailMarketing: model.EmailMarketing{
			SubjectLines: []string{"Your next hook is one click away"},
			SampleEmail:  model.SampleEmail{Subject: "Meet SynthWave AI", Body: "Hi there,\n\nCheers"},
		},
		BlogStrategy: model.BlogStrategy{
			PostIdeas:     []string{"5 ways AI speeds up sound design", "Producer diaries"},
			SampleOutline: model.SampleOutline{Title: "5 ways", Outline: []string{"Intro", "Conclusion"}},
		},
	}
}

// --- html helpers ---

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, class string) bool {
	v, _ := attr(n, "class")
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func byID(root *html.Node, id string) *html.Node {
	nodes := findAll(root, func(n *html.Node) bool { v, _ := attr(n, "id"); return v == id })
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func copyValues(root *html.Node) []string {
	var out []string
	for _, b := range findAll(root, func(n *html.Node) bool { return hasClass(n, "copy-button") }) {
		v, _ := attr(b, "data-copy")
		out = append(out, v)
	}
	return out
}

func render(t *testing.T, snap app.Snapshot) (*html.Node, string) {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.RenderPage(&buf, NewPageData(snap)))

	doc, err := html.Parse(strings.NewReader(buf.String()))
	require.NoError(t, err)
	return doc, buf.String()
}

// --- presenter ---

func TestPresent(t *testing.T) {
	out := sampleOutput()

	assert.Equal(t, ResultWelcome, Present(app.Idle()).Kind)
	assert.Equal(t, ResultLoading, Present(app.Loading()).Kind)

	errView := Present(app.Failure("boom"))
	assert.Equal(t, ResultError, errView.Kind)
	assert.Equal(t, "boom", errView.Message)

	report := Present(app.Success(out))
	assert.Equal(t, ResultReport, report.Kind)
	assert.Same(t, out, report.Output)

	assert.Equal(t, ResultWelcome, Present(app.Success(nil)).Kind)
}

// --- form ---

func TestCanSubmit(t *testing.T) {
	assert.True(t, CanSubmit(synthWave, false))
	assert.False(t, CanSubmit(synthWave, true), "disabled while loading")

	for name, blank := range map[string]func(*model.CampaignRequest){
		"product name": func(r *model.CampaignRequest) { r.ProductName = "" },
		"description":  func(r *model.CampaignRequest) { r.ProductDescription = "" },
		"audience":     func(r *model.CampaignRequest) { r.TargetAudience = "" },
		"goal":         func(r *model.CampaignRequest) { r.Goal = "" },
		"unknown goal": func(r *model.CampaignRequest) { r.Goal = "World domination" },
	} {
		req := synthWave
		blank(&req)
		assert.False(t, CanSubmit(req, false), name)
	}

	spaces := synthWave
	spaces.ProductName = " "
	spaces.TargetAudience = "   "
	assert.True(t, CanSubmit(spaces, false), "whitespace counts as a value")
}

func TestNewFormView(t *testing.T) {
	fv := NewFormView(synthWave, false)
	assert.False(t, fv.SubmitDisabled)
	require.Len(t, fv.Goals, len(model.Goals))

	var selected []string
	for _, g := range fv.Goals {
		if g.Selected {
			selected = append(selected, g.Value)
		}
	}
	assert.Equal(t, []string{"Drive sales"}, selected)

	assert.True(t, NewFormView(model.CampaignRequest{}, false).SubmitDisabled)
}

// --- rendering ---

func TestRender_Welcome(t *testing.T) {
	doc, raw := render(t, app.Snapshot{State: app.Idle()})

	assert.Contains(t, raw, "Welcome to the AI Campaign Generator")
	assert.NotContains(t, raw, `http-equiv="refresh"`)

	button := findAll(doc, func(n *html.Node) bool { v, _ := attr(n, "type"); return n.Data == "button" && v == "submit" })
	require.Len(t, button, 1)
	_, disabled := attr(button[0], "disabled")
	assert.True(t, disabled, "empty form cannot be submitted")
}

func TestRender_Loading(t *testing.T) {
	doc, raw := render(t, app.Snapshot{State: app.Loading(), Form: synthWave})

	assert.Contains(t, raw, "Generating your campaign... this may take a moment.")
	assert.NotContains(t, raw, `http-equiv="refresh"`, "the page polls instead of reloading")
	assert.Contains(t, raw, `fetch("/campaign/state"`)

	form := byID(doc, "campaign-form")
	require.NotNil(t, form)
	loading, _ := attr(form, "data-loading")
	assert.Equal(t, "true", loading)
	assert.Empty(t, findAll(doc, func(n *html.Node) bool { return hasClass(n, "result-section") }))

	button := findAll(doc, func(n *html.Node) bool { v, _ := attr(n, "type"); return n.Data == "button" && v == "submit" })
	require.Len(t, button, 1)
	_, disabled := attr(button[0], "disabled")
	assert.True(t, disabled)
	assert.Equal(t, "Generating...", text(button[0]))
}

func TestRender_ErrorKeepsFormValues(t *testing.T) {
	doc, raw := render(t, app.Snapshot{State: app.Failure("Failed to generate marketing campaign."), Form: synthWave})

	assert.Contains(t, raw, "An Error Occurred")
	assert.Contains(t, raw, "Failed to generate marketing campaign.")
	assert.Empty(t, findAll(doc, func(n *html.Node) bool { return hasClass(n, "result-section") }))

	name, _ := attr(byID(doc, "productName"), "value")
	assert.Equal(t, "SynthWave AI", name)
	assert.Equal(t, "AI-powered synth plugin for producers", text(byID(doc, "productDescription")))
	audience, _ := attr(byID(doc, "targetAudience"), "value")
	assert.Equal(t, "Indie musicians", audience)

	selected := findAll(byID(doc, "goal"), func(n *html.Node) bool { _, ok := attr(n, "selected"); return n.Data == "option" && ok })
	require.Len(t, selected, 1)
	v, _ := attr(selected[0], "value")
	assert.Equal(t, "Drive sales", v)
}

func TestRender_ReportSectionsInOrderAndExpanded(t *testing.T) {
	doc, _ := render(t, app.Snapshot{State: app.Success(sampleOutput()), Form: synthWave})

	sections := findAll(doc, func(n *html.Node) bool { return n.Data == "details" && hasClass(n, "result-section") })
	require.Len(t, sections, len(SectionTitles))

	for i, s := range sections {
		summary := findAll(s, func(n *html.Node) bool { return n.Data == "summary" })
		require.Len(t, summary, 1)
		assert.Equal(t, SectionTitles[i], text(summary[0]))

		_, open := attr(s, "open")
		assert.True(t, open, "%s starts expanded", SectionTitles[i])
	}
}

func TestRender_TaglineRowWithExactCopyValue(t *testing.T) {
	doc, _ := render(t, app.Snapshot{State: app.Success(sampleOutput())})

	core := byID(doc, "core-messaging")
	require.NotNil(t, core)
	lists := findAll(core, func(n *html.Node) bool { return n.Data == "ul" && hasClass(n, "copyable") })
	require.Len(t, lists, 2)

	rows := findAll(lists[0], func(n *html.Node) bool { return n.Data == "li" })
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"Synth smarter, not harder"}, copyValues(rows[0]))
}

func TestRender_CopyAffordances(t *testing.T) {
	out := sampleOutput()
	doc, _ := render(t, app.Snapshot{State: app.Success(out)})

	want := []string{
		"Synth smarter, not harder",
		"Patch design in seconds",
		`Tom & Jerry's "best" <deal>`,
		"From idea to patch in 10s.\n#synth",
		"Watch this patch evolve",
		"Your next hook is one click away",
		"Hi there,\n\nCheers",
		"5 ways AI speeds up sound design",
		"Producer diaries",
	}
	assert.Equal(t, want, copyValues(doc))

	assert.Empty(t, copyValues(byID(doc, "target-persona")))
}

func TestRender_CopyScriptUsesConfirmationDelay(t *testing.T) {
	_, raw := render(t, app.Snapshot{State: app.Success(sampleOutput())})
	assert.Contains(t, raw, "navigator.clipboard.writeText")
	assert.Contains(t, raw, "2000")
}

func TestRenderResult_OnlyResultArea(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.RenderResult(&buf, Present(app.Success(sampleOutput()))))
	raw := buf.String()

	assert.Contains(t, raw, `data-copy="Synth smarter, not harder"`)
	assert.NotContains(t, raw, "<form")
	assert.NotContains(t, raw, "<html")

	buf.Reset()
	require.NoError(t, r.RenderResult(&buf, Present(app.Loading())))
	assert.Contains(t, buf.String(), "Generating your campaign... this may take a moment.")
}
