// internal/controller/campaign_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/unclebandit/campaign-generator/internal/app"
	appErrors "github.com/unclebandit/campaign-generator/internal/errors"
	"github.com/unclebandit/campaign-generator/internal/logging"
	"github.com/unclebandit/campaign-generator/internal/model"
	"github.com/unclebandit/campaign-generator/internal/service"
	"github.com/unclebandit/campaign-generator/internal/view"
)

const (
	SessionCookie = "campaign_session"
	// PhaseHeader carries the shell phase on result fragments.
	PhaseHeader = "X-Campaign-Phase"

	maxJSONBody = 64 << 10
	maxFormBody = 64 << 10
)

type CampaignController struct {
	Sessions *app.SessionStore
	Service  *service.CampaignService
	Renderer *view.Renderer
	Logger   *zap.Logger
}

func sessionID(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

// snapshot reads the caller's session. Unknown callers see an idle page and get no session.
func (c *CampaignController) snapshot(r *http.Request) app.Snapshot {
	if shell, ok := c.Sessions.Lookup(sessionID(r)); ok {
		return shell.Snapshot()
	}
	return app.Snapshot{State: app.Idle()}
}

// Index renders the form and the result area for the caller's session.
func (c *CampaignController) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := c.Renderer.RenderPage(w, view.NewPageData(c.snapshot(r))); err != nil {
		logging.OrNop(c.Logger).Error("failed to render page", zap.Error(err))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}

// State renders only the result area, with the phase in PhaseHeader. A loading page polls it.
func (c *CampaignController) State(w http.ResponseWriter, r *http.Request) {
	snap := c.snapshot(r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set(PhaseHeader, snap.State.Phase().String())
	if err := c.Renderer.RenderResult(w, view.Present(snap.State)); err != nil {
		logging.OrNop(c.Logger).Error("failed to render result", zap.Error(err))
		http.Error(w, "failed to render result", http.StatusInternalServerError)
	}
}

// Submit stores the posted form values and starts a generation when the form is submittable.
// It always redirects back to the page.
func (c *CampaignController) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBody)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	id, shell, err := c.Sessions.Get(sessionID(r))
	if err != nil {
		logging.OrNop(c.Logger).Warn("⚠️ session refused", zap.Error(err))
		http.Error(w, "server busy, try again later", http.StatusServiceUnavailable)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	req := model.CampaignRequest{
		ProductName:        r.PostForm.Get("productName"),
		ProductDescription: r.PostForm.Get("productDescription"),
		TargetAudience:     r.PostForm.Get("targetAudience"),
		Goal:               r.PostForm.Get("goal"),
	}

	if !view.CanSubmit(req, false) {
		shell.SetForm(req)
	} else if err := shell.Submit(req); err != nil {
		logging.OrNop(c.Logger).Debug("submission ignored", zap.Error(err))
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// GenerateCampaign is the JSON form of Submit. It waits for the model and returns the campaign.
func (c *CampaignController) GenerateCampaign(w http.ResponseWriter, r *http.Request) {
	var body model.CampaignRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody)).Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if !body.Complete() {
		http.Error(w, app.ErrIncompleteRequest.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	out, err := c.Service.Generate(r.Context(), body.ProductName, body.ProductDescription, body.TargetAudience, body.Goal)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": appErrors.UserMessage(err)})
		return
	}

	logging.OrNop(c.Logger).Info("✅ campaign served", zap.String("product", body.ProductName), zap.Duration("elapsed", time.Since(start)))
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
