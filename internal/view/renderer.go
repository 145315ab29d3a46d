package view

import (
	"bytes"
	"embed"
	"html/template"
	"io"

	"github.com/unclebandit/campaign-generator/internal/app"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	// CopyConfirmMillis is how long a copy button shows its confirmation.
	CopyConfirmMillis = 2000
	// PollMillis is how often a loading page asks for the result.
	PollMillis = 2000
)

type PageData struct {
	Form              FormView
	Result            ResultView
	CopyConfirmMillis int
	PollMillis        int
}

func NewPageData(snap app.Snapshot) PageData {
	loading := snap.State.IsLoading()
	return PageData{
		Form:              NewFormView(snap.Form, loading),
		Result:            Present(snap.State),
		CopyConfirmMillis: CopyConfirmMillis,
		PollMillis:        PollMillis,
	}
}

type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("page.html").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl}, nil
}

// RenderPage writes the full page. Nothing is written if the template fails.
func (r *Renderer) RenderPage(w io.Writer, data PageData) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "page.html", data); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

// RenderResult writes only the result area, for pages polling a running generation.
func (r *Renderer) RenderResult(w io.Writer, result ResultView) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "result", result); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}
