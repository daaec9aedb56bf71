// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/healthlog/internal/dbx"
	"github.com/dmitrijs2005/healthlog/internal/server/migrations"
	"github.com/dmitrijs2005/healthlog/internal/server/repositories/logs"
	"github.com/dmitrijs2005/healthlog/internal/server/repositories/resettokens"
	"github.com/dmitrijs2005/healthlog/internal/server/repositories/resources"
	"github.com/dmitrijs2005/healthlog/internal/server/repositories/stats"
	"github.com/dmitrijs2005/healthlog/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// Users returns a users.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// ResetTokens returns a resettokens.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) ResetTokens(db dbx.DBTX) resettokens.Repository {
	return resettokens.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Symptoms(db dbx.DBTX) resources.SymptomRepository {
	return resources.NewPostgresSymptomRepository(db)
}

func (m *PostgresRepositoryManager) Habits(db dbx.DBTX) resources.HabitRepository {
	return resources.NewPostgresHabitRepository(db)
}

func (m *PostgresRepositoryManager) Medications(db dbx.DBTX) resources.MedicationRepository {
	return resources.NewPostgresMedicationRepository(db)
}

func (m *PostgresRepositoryManager) SymptomLogs(db dbx.DBTX) logs.SymptomLogRepository {
	return logs.NewPostgresSymptomLogRepository(db)
}

func (m *PostgresRepositoryManager) MoodLogs(db dbx.DBTX) logs.MoodLogRepository {
	return logs.NewPostgresMoodLogRepository(db)
}

func (m *PostgresRepositoryManager) MedicationLogs(db dbx.DBTX) logs.MedicationLogRepository {
	return logs.NewPostgresMedicationLogRepository(db)
}

func (m *PostgresRepositoryManager) HabitLogs(db dbx.DBTX) logs.HabitLogRepository {
	return logs.NewPostgresHabitLogRepository(db)
}

// Stats returns the read-only aggregate repository.
func (m *PostgresRepositoryManager) Stats(db dbx.DBTX) stats.Repository {
	return stats.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}
