// internal/handler/generation_handler.go
package handler

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	appErrors "github.com/unclebandit/campaign-generator/internal/errors"
	"github.com/unclebandit/campaign-generator/internal/logging"
	"github.com/unclebandit/campaign-generator/internal/repository"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
	TotalPages int `json:"total_pages"`
}

// GenerationHandler serves the stored generation log.
type GenerationHandler struct {
	Repo   repository.GenerationRepositoryInterface
	Logger *zap.Logger
}

func NewGenerationHandler(repo repository.GenerationRepositoryInterface, logger *zap.Logger) *GenerationHandler {
	return &GenerationHandler{
		Repo:   repo,
		Logger: logging.OrNop(logger),
	}
}

// ListGenerations returns a paginated list of generations, newest first
func (h *GenerationHandler) ListGenerations(w http.ResponseWriter, r *http.Request) {
	page := 1
	pageSize := defaultPageSize

	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}
	if ps, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil && ps > 0 {
		pageSize = ps
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	// keeps the offset from overflowing; such pages are past the end anyway
	if page > math.MaxInt32/pageSize {
		page = math.MaxInt32 / pageSize
	}
	status := r.URL.Query().Get("status")

	offset := (page - 1) * pageSize
	generations, total, err := h.Repo.List(offset, pageSize, status)
	if err != nil {
		logging.OrNop(h.Logger).Error("❌ failed to list generations", zap.Error(err))
		http.Error(w, "failed to fetch generations", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"data": generations,
		"pagination": Pagination{
			Page:       page,
			PageSize:   pageSize,
			TotalCount: total,
			TotalPages: (total + pageSize - 1) / pageSize,
		},
	})
}

// GetGeneration returns one stored generation by ID
func (h *GenerationHandler) GetGeneration(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid generation id", http.StatusBadRequest)
		return
	}

	g, err := h.Repo.GetByID(id)
	if err != nil {
		var notFound *appErrors.ErrGenerationNotFound
		if errors.As(err, &notFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		logging.OrNop(h.Logger).Error("❌ failed to fetch generation", zap.Int("id", id), zap.Error(err))
		http.Error(w, "failed to fetch generation", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(g)
}

// Healthz reports that the process is serving.
func Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
