package persistence

import (
	"context"
	"testing"

	"github.com/bewertung/backend/internal/domain/candidate"
	"github.com/bewertung/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupCandidateTestDB creates an in-memory SQLite database for testing
func setupCandidateTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE candidates (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			self_reflection TEXT,
			ratings TEXT,
			conclusion TEXT,
			notes TEXT,
			star_notes TEXT,
			vesier_notes TEXT,
			reflection_consistency TEXT,
			consented INTEGER NOT NULL DEFAULT 0,
			consent_date TEXT
		)
	`).Error
	require.NoError(t, err)

	return db
}

func TestGormCandidateRepository_CreateAndFindByID(t *testing.T) {
	repo := NewGormCandidateRepository(setupCandidateTestDB(t))
	ctx := context.Background()

	c := candidate.NewBlank()
	require.NoError(t, repo.Create(ctx, c))

	got, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)
	assert.Equal(t, c.CreatedAt, got.CreatedAt)
	assert.False(t, got.Consented)
	assert.Nil(t, got.SelfReflection)
	assert.Nil(t, got.Ratings)
	assert.Nil(t, got.ConsentDate)
}

func TestGormCandidateRepository_Create_DuplicateID(t *testing.T) {
	repo := NewGormCandidateRepository(setupCandidateTestDB(t))
	ctx := context.Background()

	c := candidate.NewBlank()
	require.NoError(t, repo.Create(ctx, c))

	err := repo.Create(ctx, c)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "STORE", domainErr.Code)
}

func TestGormCandidateRepository_FindByID_NotFound(t *testing.T) {
	repo := NewGormCandidateRepository(setupCandidateTestDB(t))

	got, err := repo.FindByID(context.Background(), "BW-2025-00000")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormCandidateRepository_Update_RatingsRoundTrip(t *testing.T) {
	repo := NewGormCandidateRepository(setupCandidateTestDB(t))
	ctx := context.Background()

	c := candidate.NewBlank()
	require.NoError(t, repo.Create(ctx, c))

	ratings := candidate.Ratings{"Kommunikation": 4, "Teamfähigkeit": 5}
	require.NoError(t, repo.Update(ctx, c.ID, candidate.Update{Ratings: ratings}))

	got, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, ratings, got.Ratings)
}

func TestGormCandidateRepository_Update_PartialLeavesOtherFields(t *testing.T) {
	repo := NewGormCandidateRepository(setupCandidateTestDB(t))
	ctx := context.Background()

	c := candidate.NewBlank()
	require.NoError(t, repo.Create(ctx, c))

	notes := "first impression"
	require.NoError(t, repo.Update(ctx, c.ID, candidate.Update{Notes: &notes}))

	consented := true
	consentDate := "2025-03-01"
	require.NoError(t, repo.Update(ctx, c.ID, candidate.Update{
		Consented:   &consented,
		ConsentDate: &consentDate,
	}))

	got, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Notes)
	assert.Equal(t, "first impression", *got.Notes)
	assert.True(t, got.Consented)
	require.NotNil(t, got.ConsentDate)
	assert.Equal(t, "2025-03-01", *got.ConsentDate)
	assert.Nil(t, got.Conclusion)
}

func TestGormCandidateRepository_Update_Empty(t *testing.T) {
	repo := NewGormCandidateRepository(setupCandidateTestDB(t))

	err := repo.Update(context.Background(), "BW-2025-00001", candidate.Update{})
	assert.ErrorIs(t, err, shared.ErrNoValidFields)
}

func TestGormCandidateRepository_Update_UnknownID(t *testing.T) {
	repo := NewGormCandidateRepository(setupCandidateTestDB(t))

	notes := "x"
	err := repo.Update(context.Background(), "BW-2025-99999", candidate.Update{Notes: &notes})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormCandidateRepository_Delete(t *testing.T) {
	repo := NewGormCandidateRepository(setupCandidateTestDB(t))
	ctx := context.Background()

	c := candidate.NewBlank()
	require.NoError(t, repo.Create(ctx, c))

	require.NoError(t, repo.Delete(ctx, c.ID))

	_, err := repo.FindByID(ctx, c.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	// Deleting again is success with no effect.
	assert.NoError(t, repo.Delete(ctx, c.ID))
}

func TestGormCandidateRepository_List_InsertionOrder(t *testing.T) {
	repo := NewGormCandidateRepository(setupCandidateTestDB(t))
	ctx := context.Background()

	first := candidate.NewBlank()
	second := candidate.NewBlank()
	for first.ID == second.ID {
		second = candidate.NewBlank()
	}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	consented := true
	require.NoError(t, repo.Update(ctx, second.ID, candidate.Update{Consented: &consented}))

	summaries, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, first.ID, summaries[0].ID)
	assert.Equal(t, second.ID, summaries[1].ID)
	assert.False(t, summaries[0].Consented)
	assert.True(t, summaries[1].Consented)
}
