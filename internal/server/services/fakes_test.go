package services

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/healthlog/internal/common"
	"github.com/dmitrijs2005/healthlog/internal/dbx"
	"github.com/dmitrijs2005/healthlog/internal/server/models"
	"github.com/dmitrijs2005/healthlog/internal/server/repositories/logs"
	"github.com/dmitrijs2005/healthlog/internal/server/repositories/resettokens"
	"github.com/dmitrijs2005/healthlog/internal/server/repositories/resources"
	statsrepo "github.com/dmitrijs2005/healthlog/internal/server/repositories/stats"
	"github.com/dmitrijs2005/healthlog/internal/server/repositories/users"
	"github.com/dmitrijs2005/healthlog/internal/timex"
	"github.com/google/uuid"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// memStore is an in-memory stand-in for the whole schema. Every fake
// repository shares it, so services see the effects of each other.
type memStore struct {
	mu sync.Mutex

	users       map[string]*models.User
	resetTokens map[string]*models.PasswordResetToken

	symptoms    map[string]*models.Symptom
	habits      map[string]*models.Habit
	medications map[string]*models.Medication

	symptomLogs    map[string]*models.SymptomLog
	moodLogs       map[string]*models.MoodLog
	medicationLogs map[string]*models.MedicationLog
	habitLogs      map[string]*models.HabitLog

	// failWith makes the guarded repository calls return this error.
	failWith error
	// failTokenCreate fails reset token creation only.
	failTokenCreate bool
	// failStats fails the mood aggregation of the stats repository.
	failStats error
	// deleteTokenOnFind removes a reset token right after it is looked up,
	// as a concurrent consumer would.
	deleteTokenOnFind bool
}

func newMemStore() *memStore {
	return &memStore{
		users:          map[string]*models.User{},
		resetTokens:    map[string]*models.PasswordResetToken{},
		symptoms:       map[string]*models.Symptom{},
		habits:         map[string]*models.Habit{},
		medications:    map[string]*models.Medication{},
		symptomLogs:    map[string]*models.SymptomLog{},
		moodLogs:       map[string]*models.MoodLog{},
		medicationLogs: map[string]*models.MedicationLog{},
		habitLogs:      map[string]*models.HabitLog{},
	}
}

func newID() string { return uuid.NewString() }

func (s *memStore) addUser(email, tz string) *models.User {
	u := &models.User{ID: newID(), Email: email, Timezone: tz, CreatedAt: time.Now()}
	s.users[u.ID] = u
	return u
}

// fakeRepoManager implements repomanager.RepositoryManager over memStore.
type fakeRepoManager struct {
	s *memStore
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository              { return &fakeUsers{m.s} }
func (m *fakeRepoManager) ResetTokens(dbx.DBTX) resettokens.Repository  { return &fakeResetTokens{m.s} }
func (m *fakeRepoManager) Symptoms(dbx.DBTX) resources.SymptomRepository {
	return &fakeSymptoms{m.s}
}
func (m *fakeRepoManager) Habits(dbx.DBTX) resources.HabitRepository { return &fakeHabits{m.s} }
func (m *fakeRepoManager) Medications(dbx.DBTX) resources.MedicationRepository {
	return &fakeMedications{m.s}
}
func (m *fakeRepoManager) SymptomLogs(dbx.DBTX) logs.SymptomLogRepository {
	return &fakeSymptomLogs{m.s}
}
func (m *fakeRepoManager) MoodLogs(dbx.DBTX) logs.MoodLogRepository { return &fakeMoodLogs{m.s} }
func (m *fakeRepoManager) MedicationLogs(dbx.DBTX) logs.MedicationLogRepository {
	return &fakeMedicationLogs{m.s}
}
func (m *fakeRepoManager) HabitLogs(dbx.DBTX) logs.HabitLogRepository { return &fakeHabitLogs{m.s} }
func (m *fakeRepoManager) Stats(dbx.DBTX) statsrepo.Repository        { return &fakeStats{m.s} }

// --- users ---

type fakeUsers struct{ s *memStore }

func (f *fakeUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.failWith != nil {
		return nil, f.s.failWith
	}
	for _, x := range f.s.users {
		if x.Email == u.Email {
			return nil, common.ErrAlreadyExists
		}
	}
	c := *u
	c.ID = newID()
	if c.Timezone == "" {
		c.Timezone = common.DefaultTimezone
	}
	c.CreatedAt = time.Now()
	f.s.users[c.ID] = &c
	out := c
	return &out, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.failWith != nil {
		return nil, f.s.failWith
	}
	for _, u := range f.s.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, common.NewNotFound("User")
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.failWith != nil {
		return nil, f.s.failWith
	}
	u, ok := f.s.users[id]
	if !ok {
		return nil, common.NewNotFound("User")
	}
	c := *u
	return &c, nil
}

func (f *fakeUsers) LockByID(_ context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.users[id]; !ok {
		return common.NewNotFound("User")
	}
	return nil
}

func (f *fakeUsers) UpdatePassword(_ context.Context, id, hash string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	u, ok := f.s.users[id]
	if !ok {
		return common.NewNotFound("User")
	}
	u.PasswordHash = hash
	return nil
}

func (f *fakeUsers) UpdateProfile(_ context.Context, id string, upd models.UserUpdate) (*models.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	u, ok := f.s.users[id]
	if !ok {
		return nil, common.NewNotFound("User")
	}
	if upd.DisplayName != nil {
		u.DisplayName = upd.DisplayName
	}
	if upd.Timezone != nil {
		u.Timezone = *upd.Timezone
	}
	c := *u
	return &c, nil
}

func (f *fakeUsers) Delete(_ context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.users[id]; !ok {
		return common.NewNotFound("User")
	}
	delete(f.s.users, id)
	for k, v := range f.s.resetTokens {
		if v.UserID == id {
			delete(f.s.resetTokens, k)
		}
	}
	for k, v := range f.s.symptoms {
		if v.Owner.UserID() == id {
			delete(f.s.symptoms, k)
		}
	}
	for k, v := range f.s.habits {
		if v.Owner.UserID() == id {
			delete(f.s.habits, k)
		}
	}
	for k, v := range f.s.medications {
		if v.Owner.UserID() == id {
			delete(f.s.medications, k)
		}
	}
	for k, v := range f.s.symptomLogs {
		if v.UserID == id {
			delete(f.s.symptomLogs, k)
		}
	}
	for k, v := range f.s.moodLogs {
		if v.UserID == id {
			delete(f.s.moodLogs, k)
		}
	}
	for k, v := range f.s.medicationLogs {
		if v.UserID == id {
			delete(f.s.medicationLogs, k)
		}
	}
	for k, v := range f.s.habitLogs {
		if v.UserID == id {
			delete(f.s.habitLogs, k)
		}
	}
	return nil
}

// --- reset tokens ---

type fakeResetTokens struct{ s *memStore }

func (f *fakeResetTokens) DeleteByUser(_ context.Context, userID string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for k, v := range f.s.resetTokens {
		if v.UserID == userID {
			delete(f.s.resetTokens, k)
		}
	}
	return nil
}

func (f *fakeResetTokens) Create(_ context.Context, t *models.PasswordResetToken) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.failTokenCreate {
		return errors.New("insert failed")
	}
	t.ID = newID()
	t.CreatedAt = time.Now()
	c := *t
	f.s.resetTokens[c.ID] = &c
	return nil
}

func (f *fakeResetTokens) FindByToken(_ context.Context, token string) (*models.PasswordResetToken, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, v := range f.s.resetTokens {
		if v.Token == token {
			c := *v
			if f.s.deleteTokenOnFind {
				delete(f.s.resetTokens, v.ID)
			}
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeResetTokens) Delete(_ context.Context, id string) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.resetTokens[id]; !ok {
		return 0, nil
	}
	delete(f.s.resetTokens, id)
	return 1, nil
}

// --- resources ---

func visible(ownerID, userID string, defaults bool) bool {
	if ownerID == "" {
		return defaults
	}
	return ownerID == userID
}

func matchActive(active bool, f models.ResourceFilter) bool {
	return f.Active == nil || *f.Active == active
}

func paginate[T any](items []T, p models.ResourceFilter) ([]T, int) {
	return page(items, p.Page, p.Limit)
}

func page[T any](items []T, pageNo, limit int) ([]T, int) {
	total := len(items)
	if limit <= 0 {
		return items, total
	}
	off := (pageNo - 1) * limit
	if off < 0 {
		off = 0
	}
	if off >= total {
		return []T{}, total
	}
	end := off + limit
	if end > total {
		end = total
	}
	return items[off:end], total
}

type fakeSymptoms struct{ s *memStore }

func (f *fakeSymptoms) List(_ context.Context, userID string, flt models.ResourceFilter) ([]*models.Symptom, int, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*models.Symptom
	for _, v := range f.s.symptoms {
		if visible(v.Owner.UserID(), userID, true) && matchActive(v.Active, flt) {
			c := *v
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	items, total := paginate(out, flt)
	return items, total, nil
}

func (f *fakeSymptoms) Get(_ context.Context, id string) (*models.Symptom, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.failWith != nil {
		return nil, f.s.failWith
	}
	v, ok := f.s.symptoms[id]
	if !ok {
		return nil, common.NewNotFound("Symptom")
	}
	c := *v
	return &c, nil
}

func (f *fakeSymptoms) Create(_ context.Context, in *models.Symptom) (*models.Symptom, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	c := *in
	if c.ID == "" {
		c.ID = newID()
	}
	c.CreatedAt = time.Now()
	f.s.symptoms[c.ID] = &c
	out := c
	return &out, nil
}

func (f *fakeSymptoms) Update(_ context.Context, id string, upd models.SymptomUpdate) (*models.Symptom, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	v, ok := f.s.symptoms[id]
	if !ok {
		return nil, common.NewNotFound("Symptom")
	}
	if upd.Name != nil {
		v.Name = *upd.Name
	}
	if upd.Category != nil {
		v.Category = upd.Category
	}
	if upd.Active != nil {
		v.Active = *upd.Active
	}
	c := *v
	return &c, nil
}

func (f *fakeSymptoms) Delete(_ context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.symptoms[id]; !ok {
		return common.NewNotFound("Symptom")
	}
	delete(f.s.symptoms, id)
	for k, v := range f.s.symptomLogs {
		if v.SymptomID == id {
			delete(f.s.symptomLogs, k)
		}
	}
	return nil
}

type fakeHabits struct{ s *memStore }

func (f *fakeHabits) List(_ context.Context, userID string, flt models.ResourceFilter) ([]*models.Habit, int, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*models.Habit
	for _, v := range f.s.habits {
		if visible(v.Owner.UserID(), userID, true) && matchActive(v.Active, flt) {
			c := *v
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	items, total := paginate(out, flt)
	return items, total, nil
}

func (f *fakeHabits) Get(_ context.Context, id string) (*models.Habit, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	v, ok := f.s.habits[id]
	if !ok {
		return nil, common.NewNotFound("Habit")
	}
	c := *v
	return &c, nil
}

func (f *fakeHabits) Create(_ context.Context, in *models.Habit) (*models.Habit, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	c := *in
	if c.ID == "" {
		c.ID = newID()
	}
	c.CreatedAt = time.Now()
	f.s.habits[c.ID] = &c
	out := c
	return &out, nil
}

func (f *fakeHabits) Update(_ context.Context, id string, upd models.HabitUpdate) (*models.Habit, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	v, ok := f.s.habits[id]
	if !ok {
		return nil, common.NewNotFound("Habit")
	}
	if upd.Name != nil {
		v.Name = *upd.Name
	}
	if upd.Description != nil {
		v.Description = upd.Description
	}
	if upd.TrackingType != nil {
		v.TrackingType = *upd.TrackingType
	}
	if upd.Unit != nil {
		v.Unit = upd.Unit
	}
	if upd.Active != nil {
		v.Active = *upd.Active
	}
	c := *v
	return &c, nil
}

func (f *fakeHabits) Delete(_ context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.habits[id]; !ok {
		return common.NewNotFound("Habit")
	}
	delete(f.s.habits, id)
	for k, v := range f.s.habitLogs {
		if v.HabitID == id {
			delete(f.s.habitLogs, k)
		}
	}
	return nil
}

type fakeMedications struct{ s *memStore }

func (f *fakeMedications) List(_ context.Context, userID string, flt models.ResourceFilter) ([]*models.Medication, int, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*models.Medication
	for _, v := range f.s.medications {
		if visible(v.Owner.UserID(), userID, false) && matchActive(v.Active, flt) {
			c := *v
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	items, total := paginate(out, flt)
	return items, total, nil
}

func (f *fakeMedications) Get(_ context.Context, id string) (*models.Medication, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	v, ok := f.s.medications[id]
	if !ok {
		return nil, common.NewNotFound("Medication")
	}
	c := *v
	return &c, nil
}

func (f *fakeMedications) Create(_ context.Context, in *models.Medication) (*models.Medication, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	c := *in
	if c.ID == "" {
		c.ID = newID()
	}
	c.CreatedAt = time.Now()
	f.s.medications[c.ID] = &c
	out := c
	return &out, nil
}

func (f *fakeMedications) Update(_ context.Context, id string, upd models.MedicationUpdate) (*models.Medication, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	v, ok := f.s.medications[id]
	if !ok {
		return nil, common.NewNotFound("Medication")
	}
	if upd.Name != nil {
		v.Name = *upd.Name
	}
	if upd.Dosage != nil {
		v.Dosage = upd.Dosage
	}
	if upd.Frequency != nil {
		v.Frequency = upd.Frequency
	}
	if upd.Active != nil {
		v.Active = *upd.Active
	}
	c := *v
	return &c, nil
}

func (f *fakeMedications) Delete(_ context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.medications[id]; !ok {
		return common.NewNotFound("Medication")
	}
	delete(f.s.medications, id)
	for k, v := range f.s.medicationLogs {
		if v.MedicationID == id {
			delete(f.s.medicationLogs, k)
		}
	}
	return nil
}

// --- logs ---

func inRange(t time.Time, f models.LogFilter) bool {
	if f.From != nil && t.Before(*f.From) {
		return false
	}
	if f.To != nil && t.After(*f.To) {
		return false
	}
	return true
}

type fakeSymptomLogs struct{ s *memStore }

func (f *fakeSymptomLogs) List(_ context.Context, userID string, flt models.LogFilter) ([]*models.SymptomLog, int, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*models.SymptomLog
	for _, v := range f.s.symptomLogs {
		if v.UserID == userID && inRange(v.LoggedAt, flt) && (flt.ResourceID == "" || v.SymptomID == flt.ResourceID) {
			c := *v
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LoggedAt.After(out[j].LoggedAt) })
	items, total := page(out, flt.Page, flt.Limit)
	return items, total, nil
}

func (f *fakeSymptomLogs) Get(_ context.Context, id string) (*models.SymptomLog, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	v, ok := f.s.symptomLogs[id]
	if !ok {
		return nil, common.NewNotFound("Symptom log")
	}
	c := *v
	return &c, nil
}

func (f *fakeSymptomLogs) Create(_ context.Context, in *models.SymptomLog) (*models.SymptomLog, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	c := *in
	c.ID = newID()
	c.CreatedAt = time.Now()
	f.s.symptomLogs[c.ID] = &c
	out := c
	return &out, nil
}

func (f *fakeSymptomLogs) Update(_ context.Context, id string, upd models.SymptomLogUpdate) (*models.SymptomLog, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	v, ok := f.s.symptomLogs[id]
	if !ok {
		return nil, common.NewNotFound("Symptom log")
	}
	if upd.Severity != nil {
		v.Severity = *upd.Severity
	}
	if upd.Notes != nil {
		v.Notes = upd.Notes
	}
	if upd.LoggedAt != nil {
		v.LoggedAt = *upd.LoggedAt
	}
	c := *v
	return &c, nil
}

func (f *fakeSymptomLogs) Delete(_ context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.symptomLogs[id]; !ok {
		return common.NewNotFound("Symptom log")
	}
	delete(f.s.symptomLogs, id)
	return nil
}

type fakeMoodLogs struct{ s *memStore }

func (f *fakeMoodLogs) List(_ context.Context, userID string, flt models.LogFilter) ([]*models.MoodLog, int, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*models.MoodLog
	for _, v := range f.s.moodLogs {
		if v.UserID == userID && inRange(v.LoggedAt, flt) {
			c := *v
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LoggedAt.After(out[j].LoggedAt) })
	items, total := page(out, flt.Page, flt.Limit)
	return items, total, nil
}

func (f *fakeMoodLogs) Get(_ context.Context, id string) (*models.MoodLog, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	v, ok := f.s.moodLogs[id]
	if !ok {
		return nil, common.NewNotFound("Mood log")
	}
	c := *v
	return &c, nil
}

func (f *fakeMoodLogs) Create(_ context.Context, in *models.MoodLog) (*models.MoodLog, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	c := *in
	c.ID = newID()
	c.CreatedAt = time.Now()
	f.s.moodLogs[c.ID] = &c
	out := c
	return &out, nil
}

func (f *fakeMoodLogs) Update(_ context.Context, id string, upd models.MoodLogUpdate) (*models.MoodLog, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	v, ok := f.s.moodLogs[id]
	if !ok {
		return nil, common.NewNotFound("Mood log")
	}
	if upd.MoodScore != nil {
		v.MoodScore = *upd.MoodScore
	}
	if upd.EnergyLevel != nil {
		v.EnergyLevel = upd.EnergyLevel
	}
	if upd.StressLevel != nil {
		v.StressLevel = upd.StressLevel
	}
	if upd.Notes != nil {
		v.Notes = upd.Notes
	}
	if upd.LoggedAt != nil {
		v.LoggedAt = *upd.LoggedAt
	}
	c := *v
	return &c, nil
}

func (f *fakeMoodLogs) Delete(_ context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.moodLogs[id]; !ok {
		return common.NewNotFound("Mood log")
	}
	delete(f.s.moodLogs, id)
	return nil
}

type fakeMedicationLogs struct{ s *memStore }

func (f *fakeMedicationLogs) List(_ context.Context, userID string, flt models.LogFilter) ([]*models.MedicationLog, int, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*models.MedicationLog
	for _, v := range f.s.medicationLogs {
		if v.UserID == userID && inRange(v.CreatedAt, flt) && (flt.ResourceID == "" || v.MedicationID == flt.ResourceID) {
			c := *v
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	items, total := page(out, flt.Page, flt.Limit)
	return items, total, nil
}

func (f *fakeMedicationLogs) Get(_ context.Context, id string) (*models.MedicationLog, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	v, ok := f.s.medicationLogs[id]
	if !ok {
		return nil, common.NewNotFound("Medication log")
	}
	c := *v
	return &c, nil
}

func (f *fakeMedicationLogs) Create(_ context.Context, in *models.MedicationLog) (*models.MedicationLog, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	c := *in
	c.ID = newID()
	c.CreatedAt = time.Now()
	f.s.medicationLogs[c.ID] = &c
	out := c
	return &out, nil
}

func (f *fakeMedicationLogs) Update(_ context.Context, id string, upd models.MedicationLogUpdate) (*models.MedicationLog, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	v, ok := f.s.medicationLogs[id]
	if !ok {
		return nil, common.NewNotFound("Medication log")
	}
	if upd.Taken != nil {
		v.Taken = *upd.Taken
	}
	if upd.TakenAt != nil {
		v.TakenAt = upd.TakenAt
	}
	if upd.Notes != nil {
		v.Notes = upd.Notes
	}
	c := *v
	return &c, nil
}

func (f *fakeMedicationLogs) Delete(_ context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.medicationLogs[id]; !ok {
		return common.NewNotFound("Medication log")
	}
	delete(f.s.medicationLogs, id)
	return nil
}

type fakeHabitLogs struct{ s *memStore }

func (f *fakeHabitLogs) List(_ context.Context, userID string, flt models.LogFilter) ([]*models.HabitLog, int, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*models.HabitLog
	for _, v := range f.s.habitLogs {
		if v.UserID == userID && inRange(v.LoggedAt, flt) && (flt.ResourceID == "" || v.HabitID == flt.ResourceID) {
			c := *v
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LoggedAt.After(out[j].LoggedAt) })
	items, total := page(out, flt.Page, flt.Limit)
	return items, total, nil
}

func (f *fakeHabitLogs) Get(_ context.Context, id string) (*models.HabitLog, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	v, ok := f.s.habitLogs[id]
	if !ok {
		return nil, common.NewNotFound("Habit log")
	}
	c := *v
	return &c, nil
}

func (f *fakeHabitLogs) Create(_ context.Context, in *models.HabitLog) (*models.HabitLog, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	c := *in
	c.ID = newID()
	c.CreatedAt = time.Now()
	f.s.habitLogs[c.ID] = &c
	out := c
	return &out, nil
}

func (f *fakeHabitLogs) Update(_ context.Context, id string, upd models.HabitLogUpdate) (*models.HabitLog, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	v, ok := f.s.habitLogs[id]
	if !ok {
		return nil, common.NewNotFound("Habit log")
	}
	if upd.Value != nil {
		v.Value = *upd.Value
	}
	if upd.Notes != nil {
		v.Notes = upd.Notes
	}
	if upd.LoggedAt != nil {
		v.LoggedAt = *upd.LoggedAt
	}
	c := *v
	return &c, nil
}

func (f *fakeHabitLogs) Delete(_ context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.habitLogs[id]; !ok {
		return common.NewNotFound("Habit log")
	}
	delete(f.s.habitLogs, id)
	return nil
}

// --- stats ---

type fakeStats struct{ s *memStore }

func (f *fakeStats) MoodSince(_ context.Context, userID string, since time.Time) (int, int, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.failStats != nil {
		return 0, 0, f.s.failStats
	}
	count, sum := 0, 0
	for _, v := range f.s.moodLogs {
		if v.UserID == userID && !v.LoggedAt.Before(since) {
			count++
			sum += v.MoodScore
		}
	}
	return count, sum, nil
}

func (f *fakeStats) SymptomCountsSince(_ context.Context, userID string, since time.Time) ([]models.SymptomCount, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	byID := map[string]*models.SymptomCount{}
	for _, v := range f.s.symptomLogs {
		if v.UserID != userID || v.LoggedAt.Before(since) {
			continue
		}
		c, ok := byID[v.SymptomID]
		if !ok {
			name := ""
			if sym, ok := f.s.symptoms[v.SymptomID]; ok {
				name = sym.Name
			}
			c = &models.SymptomCount{SymptomID: v.SymptomID, Name: name, FirstSeen: v.LoggedAt}
			byID[v.SymptomID] = c
		}
		c.Count++
		if v.LoggedAt.Before(c.FirstSeen) {
			c.FirstSeen = v.LoggedAt
		}
	}
	out := make([]models.SymptomCount, 0, len(byID))
	for _, c := range byID {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeStats) Totals(_ context.Context, userID string) (models.LogTotals, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var t models.LogTotals
	for _, v := range f.s.symptomLogs {
		if v.UserID == userID {
			t.Symptoms++
		}
	}
	for _, v := range f.s.moodLogs {
		if v.UserID == userID {
			t.Moods++
		}
	}
	for _, v := range f.s.medicationLogs {
		if v.UserID == userID {
			t.Medications++
		}
	}
	for _, v := range f.s.habitLogs {
		if v.UserID == userID {
			t.Habits++
		}
	}
	return t, nil
}

func (f *fakeStats) ActiveDays(_ context.Context, userID string, since time.Time, tz string) ([]string, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	loc := timex.LoadLocation(tz)
	seen := map[string]bool{}
	add := func(owner string, at time.Time) {
		if owner == userID && !at.Before(since) {
			seen[timex.DayKey(at, loc)] = true
		}
	}
	for _, v := range f.s.symptomLogs {
		add(v.UserID, v.LoggedAt)
	}
	for _, v := range f.s.moodLogs {
		add(v.UserID, v.LoggedAt)
	}
	for _, v := range f.s.medicationLogs {
		add(v.UserID, v.CreatedAt)
	}
	for _, v := range f.s.habitLogs {
		add(v.UserID, v.LoggedAt)
	}
	out := make([]string, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out, nil
}
