package repository_test

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/campaign-generator/internal/db"
	appErrors "github.com/unclebandit/campaign-generator/internal/errors"
	"github.com/unclebandit/campaign-generator/internal/model"
	"github.com/unclebandit/campaign-generator/internal/repository"
)

// Runs against a real Postgres when TEST_DATABASE_URL is set.
func TestGenerationRepository(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	conn, err := db.Open(dsn)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, db.Migrate(conn))

	repo := &repository.GenerationRepository{DB: conn}

	g := &model.Generation{
		RequestID:   uuid.NewString(),
		ProductName: "SynthWave AI",
		Goal:        "Drive sales",
		Model:       "gemini-2.5-flash",
		Status:      model.GenerationFailed,
		LastError:   "not json",
		CreatedAt:   time.Now().UTC().Truncate(time.Millisecond),
	}
	require.NoError(t, repo.Create(g))
	require.NotZero(t, g.ID)

	firstID := g.ID
	require.NoError(t, repo.Create(g))
	assert.Equal(t, firstID, g.ID, "same request id must not insert twice")

	got, err := repo.GetByID(g.ID)
	require.NoError(t, err)
	assert.Equal(t, "SynthWave AI", got.ProductName)
	assert.Equal(t, "not json", got.LastError)

	list, total, err := repo.List(0, 10, model.GenerationFailed)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, total, 1)
	assert.NotEmpty(t, list)
	for _, item := range list {
		assert.Equal(t, model.GenerationFailed, item.Status)
	}

	dirty := &model.Generation{
		RequestID:   uuid.NewString(),
		ProductName: "Synth\x00Wave \xff AI",
		Goal:        "Drive sales",
		Model:       "gemini-2.5-flash",
		Status:      model.GenerationSucceeded,
		RawOutput:   "{\"a\":\"\x00\"}",
	}
	require.NoError(t, repo.Create(dirty))
	got, err = repo.GetByID(dirty.ID)
	require.NoError(t, err)
	assert.Equal(t, "SynthWave \uFFFD AI", got.ProductName)

	_, err = repo.GetByID(-1)
	var notFound *appErrors.ErrGenerationNotFound
	assert.True(t, errors.As(err, &notFound))
}
