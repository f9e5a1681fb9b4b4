package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"ripple/internal/models"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func postgresDSN(dbName string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getEnvOrDefault("DB_USER", "user"),
		getEnvOrDefault("DB_PASSWORD", "password"),
		getEnvOrDefault("DB_HOST", "localhost"),
		getEnvOrDefault("DB_PORT", "5432"),
		dbName,
	)
}

// TestMigrationsAgainstPostgres runs the full AutoMigrate set against a
// real Postgres. Skipped when no server is reachable so the suite stays
// runnable on sqlite-only machines.
func TestMigrationsAgainstPostgres(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	maintDB, err := sql.Open("pgx", postgresDSN("postgres"))
	if err != nil {
		t.Skipf("postgres driver unavailable: %v", err)
	}
	defer maintDB.Close()
	if err := maintDB.PingContext(ctx); err != nil {
		t.Skipf("postgres not reachable: %v", err)
	}

	dbName := fmt.Sprintf("ripple_mig_%d", time.Now().UnixNano())
	_, err = maintDB.ExecContext(ctx, `CREATE DATABASE `+dbName)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = maintDB.Exec(`DROP DATABASE IF EXISTS ` + dbName)
	})

	db, err := gorm.Open(postgres.Open(postgresDSN(dbName)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(Collections()...))

	for _, table := range []string{"users", "posts", "stories", "comments", "likes", "followers", "follow_requests", "blocks"} {
		assert.True(t, db.Migrator().HasTable(table), "missing table %s", table)
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	_ = sqlDB.Close()
}

func TestCollectionsOrder(t *testing.T) {
	cols := Collections()
	require.Len(t, cols, 8)

	// Users must migrate before everything that references them.
	assert.IsType(t, &models.User{}, cols[0])
}
