package logs

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/healthlog/internal/common"
	"github.com/dmitrijs2005/healthlog/internal/server/models"
	"github.com/dmitrijs2005/healthlog/internal/server/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

var symptomLogCols = []string{"id", "user_id", "symptom_id", "name", "severity", "notes", "logged_at", "created_at"}

func TestSymptomLogList_FiltersAndOrder(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresSymptomLogRepository(db)

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC)
	f := models.LogFilter{From: &from, To: &to, ResourceID: "s1", Params: pagination.Params{Page: 2, Limit: 2}}

	mock.ExpectQuery(`(?s)^SELECT\s+COUNT\(\*\)\s+FROM\s+symptom_logs\s+l\s+WHERE\s+l\.user_id\s*=\s*\$1\s+AND\s+l\.logged_at\s*>=\s*\$2\s+AND\s+l\.logged_at\s*<=\s*\$3\s+AND\s+l\.symptom_id\s*=\s*\$4$`).
		WithArgs("me", from, to, "s1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	mock.ExpectQuery(`(?s)FROM\s+symptom_logs\s+l\s+JOIN\s+symptoms\s+r\s+ON\s+r\.id\s*=\s*l\.symptom_id\s+WHERE.*ORDER\s+BY\s+l\.logged_at\s+DESC,\s*l\.id\s+DESC\s+LIMIT\s+\$5\s+OFFSET\s+\$6$`).
		WithArgs("me", from, to, "s1", 2, 2).
		WillReturnRows(sqlmock.NewRows(symptomLogCols).
			AddRow("l3", "me", "s1", "Headache", 4, nil, from.Add(48*time.Hour), from).
			AddRow("l2", "me", "s1", "Headache", 7, "bad one", from.Add(24*time.Hour), from))

	items, total, err := repo.List(context.Background(), "me", f)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, items, 2)
	assert.Equal(t, "Headache", items[0].SymptomName)
	assert.Nil(t, items[0].Notes)
	require.NotNil(t, items[1].Notes)
	assert.Equal(t, "bad one", *items[1].Notes)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMoodLogList_IgnoresResourceFilter(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresMoodLogRepository(db)

	mock.ExpectQuery(`(?s)^SELECT\s+COUNT\(\*\)\s+FROM\s+mood_logs\s+l\s+WHERE\s+l\.user_id\s*=\s*\$1$`).
		WithArgs("me").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`FROM\s+mood_logs\s+l\s+WHERE`).
		WithArgs("me", 20, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "mood_score", "energy_level", "stress_level", "notes", "logged_at", "created_at"}))

	items, total, err := repo.List(context.Background(), "me", models.LogFilter{ResourceID: "ignored", Params: pagination.Params{Page: 1, Limit: 20}})
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.Empty(t, items)
}

func TestMedicationLogList_UsesCreatedAt(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresMedicationLogRepository(db)
	from := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`COUNT\(\*\)\s+FROM\s+medication_logs\s+l\s+WHERE\s+l\.user_id\s*=\s*\$1\s+AND\s+l\.created_at\s*>=\s*\$2$`).
		WithArgs("me", from).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`(?s)JOIN\s+medications\s+r.*ORDER\s+BY\s+l\.created_at\s+DESC,\s*l\.id\s+DESC`).
		WithArgs("me", from, 20, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "medication_id", "name", "taken", "taken_at", "notes", "created_at"}).
			AddRow("ml1", "me", "m1", "Ibuprofen", true, nil, nil, from))

	items, _, err := repo.List(context.Background(), "me", models.LogFilter{From: &from, Params: pagination.Params{Page: 1, Limit: 20}})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].Taken)
	assert.Nil(t, items[0].TakenAt)
}

func TestSymptomLogGet_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresSymptomLogRepository(db)

	mock.ExpectQuery(`WHERE\s+l\.id\s*=\s*\$1$`).WithArgs("nope").WillReturnError(sql.ErrNoRows)

	got, err := repo.Get(context.Background(), "nope")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.Equal(t, "Symptom log not found", err.Error())
}

func TestHabitLogCreate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresHabitLogRepository(db)
	at := time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+habit_logs\s*\(id,\s*user_id,\s*habit_id,\s*value,\s*notes,\s*logged_at\)`).
		WithArgs(sqlmock.AnyArg(), "me", "h1", 2.5, nil, at).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(at))

	l, err := repo.Create(context.Background(), &models.HabitLog{UserID: "me", HabitID: "h1", Value: 2.5, LoggedAt: at})
	require.NoError(t, err)
	assert.NotEmpty(t, l.ID)
	assert.Equal(t, at, l.CreatedAt)
}

func TestMoodLogUpdate_CTE(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresMoodLogRepository(db)
	score := 8
	now := time.Now()

	mock.ExpectQuery(`(?s)^WITH\s+l\s+AS\s+\(\s*UPDATE\s+mood_logs\s+SET\s+mood_score\s*=\s*COALESCE\(\$2,\s*mood_score\).*WHERE\s+id\s*=\s*\$1\s+RETURNING\s+\*\s*\)\s*SELECT\s+l\.id.*FROM\s+l\s*$`).
		WithArgs("ml", score, nil, nil, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "mood_score", "energy_level", "stress_level", "notes", "logged_at", "created_at"}).
			AddRow("ml", "me", 8, nil, 3, nil, now, now))

	l, err := repo.Update(context.Background(), "ml", models.MoodLogUpdate{MoodScore: &score})
	require.NoError(t, err)
	assert.Equal(t, 8, l.MoodScore)
	assert.Nil(t, l.EnergyLevel)
	require.NotNil(t, l.StressLevel)
	assert.Equal(t, 3, *l.StressLevel)
}

func TestSymptomLogUpdate_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresSymptomLogRepository(db)
	sev := 2

	mock.ExpectQuery(`UPDATE\s+symptom_logs`).WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), "x", models.SymptomLogUpdate{Severity: &sev})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMedicationLogDelete(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresMedicationLogRepository(db)

	mock.ExpectExec(`DELETE\s+FROM\s+medication_logs\s+WHERE\s+id\s*=\s*\$1`).WithArgs("a").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE\s+FROM\s+medication_logs`).WithArgs("b").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), "a"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "b"), common.ErrorNotFound)
}

func TestList_CountError(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresHabitLogRepository(db)

	mock.ExpectQuery(`COUNT`).WillReturnError(errors.New("down"))

	_, _, err := repo.List(context.Background(), "me", models.LogFilter{Params: pagination.Params{Page: 1, Limit: 20}})
	assert.ErrorContains(t, err, "db error: down")
}
