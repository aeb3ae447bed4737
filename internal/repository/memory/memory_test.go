package memory

import (
	"context"
	"testing"

	"github.com/Popolzen/quranverse/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStateRepository(t *testing.T) {
	repo := NewStateRepository()

	assert.NotNil(t, repo)
	assert.Empty(t, repo.states)
	assert.Empty(t, repo.shares)
}

func TestGet_UnknownSession(t *testing.T) {
	repo := NewStateRepository()

	state, err := repo.Get(context.Background(), "missing")

	require.NoError(t, err)
	assert.True(t, state.IsZero())
}

func TestSave_AndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewStateRepository()
	state := model.State{
		Query:    model.VerseQuery{Surah: "2", Verse: "255", Language: model.LanguageEnglish},
		ImageURL: "https://cdn.islamic.network/quran/images/2_255.png",
		Seq:      3,
	}

	require.NoError(t, repo.Save(ctx, "session-1", state))

	got, err := repo.Get(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, state, got)
}

func TestSave_Overwrite(t *testing.T) {
	ctx := context.Background()
	repo := NewStateRepository()

	repo.Save(ctx, "s", model.State{Error: "first"})
	repo.Save(ctx, "s", model.State{Error: "second"})

	got, err := repo.Get(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, "second", got.Error)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	repo := NewStateRepository()

	repo.Save(ctx, "a", model.State{})
	repo.Save(ctx, "b", model.State{})
	repo.RecordShare(ctx, "a", "https://api.alquran.cloud/v1/ayah/1:1/en.asad")
	repo.RecordShare(ctx, "a", "https://api.alquran.cloud/v1/ayah/1:1/en.asad")
	repo.RecordShare(ctx, "b", "https://api.alquran.cloud/v1/ayah/1:1/en.asad")

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Stats{Sessions: 2, Shares: 2}, stats)
}
