package redisstore

import (
	"context"
	"testing"
	"time"

	"github.com/Popolzen/quranverse/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// setupRepo поднимает Redis в Docker и возвращает репозиторий
func setupRepo(t *testing.T, ttl time.Duration) *StateRepository {
	t.Helper()
	if testing.Short() {
		t.Skip("пропускаем тест с контейнером в режиме -short")
	}
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, container.Terminate(ctx))
	})

	url, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	repo, err := Connect(ctx, url, ttl)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	return repo
}

func TestSave_AndGet(t *testing.T) {
	repo := setupRepo(t, time.Minute)
	ctx := context.Background()
	state := model.State{
		Query:    model.VerseQuery{Surah: "1", Verse: "1", Language: model.LanguageUrdu},
		Urdu:     &model.AyahResponse{Data: model.Ayah{Text: "urdu"}},
		ImageURL: "https://cdn.islamic.network/quran/images/1_1.png",
		Seq:      2,
	}

	require.NoError(t, repo.Save(ctx, "s1", state))

	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, state, got)
}

func TestGet_UnknownSession(t *testing.T) {
	repo := setupRepo(t, time.Minute)

	got, err := repo.Get(context.Background(), "missing")

	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestSave_SetsTTL(t *testing.T) {
	repo := setupRepo(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "s1", model.State{}))

	ttl, err := repo.client.TTL(ctx, sessionKey("s1")).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}

func TestStats(t *testing.T) {
	repo := setupRepo(t, time.Minute)
	ctx := context.Background()

	repo.Save(ctx, "a", model.State{})
	repo.Save(ctx, "b", model.State{})
	repo.RecordShare(ctx, "a", "https://api.alquran.cloud/v1/ayah/1:1/en.asad")
	repo.RecordShare(ctx, "a", "https://api.alquran.cloud/v1/ayah/1:1/en.asad")

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Stats{Sessions: 2, Shares: 1}, stats)
}

func TestConnect_InvalidURL(t *testing.T) {
	_, err := Connect(context.Background(), "not a url", time.Minute)
	assert.Error(t, err)
}

func TestNewStateRepository_DefaultTTL(t *testing.T) {
	repo := NewStateRepository(nil, 0)
	assert.Equal(t, DefaultTTL, repo.ttl)
}
