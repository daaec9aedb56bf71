package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/healthlog/internal/dbx"
	"github.com/dmitrijs2005/healthlog/internal/server/repositories/logs"
	"github.com/dmitrijs2005/healthlog/internal/server/repositories/resettokens"
	"github.com/dmitrijs2005/healthlog/internal/server/repositories/resources"
	"github.com/dmitrijs2005/healthlog/internal/server/repositories/stats"
	"github.com/dmitrijs2005/healthlog/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so a service can
// use the same repositories over *sql.DB or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	ResetTokens(db dbx.DBTX) resettokens.Repository
	Symptoms(db dbx.DBTX) resources.SymptomRepository
	Habits(db dbx.DBTX) resources.HabitRepository
	Medications(db dbx.DBTX) resources.MedicationRepository
	SymptomLogs(db dbx.DBTX) logs.SymptomLogRepository
	MoodLogs(db dbx.DBTX) logs.MoodLogRepository
	MedicationLogs(db dbx.DBTX) logs.MedicationLogRepository
	HabitLogs(db dbx.DBTX) logs.HabitLogRepository
	Stats(db dbx.DBTX) stats.Repository
}
