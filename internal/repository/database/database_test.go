package database

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/Popolzen/quranverse/internal/model"
	migration "github.com/Popolzen/quranverse/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// === Setup ===

// setupTestDB поднимает PostgreSQL в Docker, применяет миграции и возвращает подключение.
// Контейнер автоматически остановится после теста.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("пропускаем тест с контейнером в режиме -short")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			// "database system is ready" появляется дважды в логах postgres
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, pgContainer.Terminate(ctx))
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("pgx", connStr)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	require.NoError(t, migration.MigrateUp(db))

	return db
}

func sampleState() model.State {
	return model.State{
		Query: model.VerseQuery{Surah: "2", Verse: "255", Language: model.LanguageEnglish},
		English: &model.AyahResponse{Data: model.Ayah{
			Text: "God - there is no deity save Him",
			Surah: model.SurahInfo{
				Name:                   "سُورَةُ البَقَرَةِ",
				EnglishName:            "Al-Baqarah",
				EnglishNameTranslation: "The Cow",
				RevelationType:         "Medinan",
			},
		}},
		ImageURL: "https://cdn.islamic.network/quran/images/2_255.png",
		Seq:      4,
	}
}

// === Migrations ===

func TestMigrateUp_PoolStaysOpen(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.PingContext(ctx), "после миграций пул должен оставаться открытым")

	// повторный запуск ничего не меняет и тоже не закрывает пул
	require.NoError(t, migration.MigrateUp(db))
	require.NoError(t, db.PingContext(ctx))

	repo := NewStateRepository(db)
	require.NoError(t, repo.Save(ctx, "after-migrate", sampleState()))
}

// === Save / Get ===

func TestSave_AndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStateRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "session-1", sampleState()))

	got, err := repo.Get(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, sampleState(), got)
}

func TestSave_Upsert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStateRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "s", model.State{Error: "first"}))
	require.NoError(t, repo.Save(ctx, "s", model.State{Error: "second"}))

	var count int
	db.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&count)
	assert.Equal(t, 1, count)

	got, err := repo.Get(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, "second", got.Error)
}

func TestGet_UnknownSession(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStateRepository(db)

	got, err := repo.Get(context.Background(), "missing")

	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

// === RecordShare / Stats ===

func TestRecordShare_DuplicateIgnored(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStateRepository(db)
	ctx := context.Background()
	url := "https://api.alquran.cloud/v1/ayah/2:255/en.asad"

	require.NoError(t, repo.RecordShare(ctx, "s", url))
	require.NoError(t, repo.RecordShare(ctx, "s", url))
	require.NoError(t, repo.RecordShare(ctx, "other", url))

	var count int
	db.QueryRow("SELECT COUNT(*) FROM shares").Scan(&count)
	assert.Equal(t, 2, count)
}

func TestStats(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStateRepository(db)
	ctx := context.Background()

	repo.Save(ctx, "a", model.State{})
	repo.Save(ctx, "b", model.State{})
	repo.RecordShare(ctx, "a", "https://api.alquran.cloud/v1/ayah/1:1/ur.ahmedali")

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Stats{Sessions: 2, Shares: 1}, stats)
}

func TestGet_ContextCanceled(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStateRepository(db)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Get(ctx, "s")
	assert.Error(t, err)
}
