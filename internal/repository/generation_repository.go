package repository

import (
	"database/sql"
	"strings"
	"time"

	appErrors "github.com/unclebandit/campaign-generator/internal/errors"
	"github.com/unclebandit/campaign-generator/internal/model"
)

type GenerationRepositoryInterface interface {
	Create(g *model.Generation) error
	GetByID(id int) (*model.Generation, error)
	List(offset, limit int, status string) ([]*model.Generation, int, error)
}

type GenerationRepository struct {
	DB *sql.DB
}

// Create inserts a generation and fills in its ID. Inserting the same request_id twice
// returns the existing row instead.
func (r *GenerationRepository) Create(g *model.Generation) error {
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now()
	}
	query := `
        INSERT INTO generations
        (request_id, product_name, product_description, target_audience, goal, model, status, last_error, raw_output, duration_ms, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        ON CONFLICT (request_id) DO UPDATE SET request_id = EXCLUDED.request_id
        RETURNING id
    `
	return r.DB.QueryRow(
		query,
		g.RequestID,
		pgText(g.ProductName),
		pgText(g.ProductDescription),
		pgText(g.TargetAudience),
		pgText(g.Goal),
		g.Model,
		g.Status,
		pgText(g.LastError),
		pgText(g.RawOutput),
		g.DurationMs,
		g.CreatedAt,
	).Scan(&g.ID)
}

func (r *GenerationRepository) GetByID(id int) (*model.Generation, error) {
	query := `
        SELECT id, request_id, product_name, product_description, target_audience, goal, model, status, last_error, raw_output, duration_ms, created_at
        FROM generations WHERE id=$1
    `
	var g model.Generation
	err := r.DB.QueryRow(query, id).Scan(
		&g.ID, &g.RequestID, &g.ProductName, &g.ProductDescription, &g.TargetAudience, &g.Goal,
		&g.Model, &g.Status, &g.LastError, &g.RawOutput, &g.DurationMs, &g.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewGenerationNotFound(id)
		}
		return nil, err
	}
	return &g, nil
}

// List returns one page of generations, newest first, and the total matching count.
func (r *GenerationRepository) List(offset, limit int, status string) ([]*model.Generation, int, error) {
	generations := []*model.Generation{}
	query := `SELECT id, request_id, product_name, product_description, target_audience, goal, model, status, last_error, raw_output, duration_ms, created_at
              FROM generations WHERE ($1 = '' OR status = $1)
              ORDER BY id DESC LIMIT $2 OFFSET $3`

	rows, err := r.DB.Query(query, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		g := &model.Generation{}
		if err := rows.Scan(
			&g.ID, &g.RequestID, &g.ProductName, &g.ProductDescription, &g.TargetAudience, &g.Goal,
			&g.Model, &g.Status, &g.LastError, &g.RawOutput, &g.DurationMs, &g.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		generations = append(generations, g)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM generations WHERE ($1 = '' OR status = $1)`
	if err := r.DB.QueryRow(countQuery, status).Scan(&total); err != nil {
		return nil, 0, err
	}

	return generations, total, nil
}

// pgText makes s storable in a TEXT column, which rejects NUL and invalid UTF-8.
func pgText(s string) string {
	return strings.ReplaceAll(strings.ToValidUTF8(s, "\uFFFD"), "\x00", "")
}

var _ GenerationRepositoryInterface = (*GenerationRepository)(nil)
