package models

import (
	"time"

	"github.com/dmitrijs2005/healthlog/internal/server/pagination"
)

// MaxNotesLength bounds the free-text note on every log kind.
const MaxNotesLength = 1000

// SymptomLog records one occurrence of a symptom. SymptomName is filled on
// reads.
type SymptomLog struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	SymptomID   string    `json:"symptomId"`
	SymptomName string    `json:"symptomName,omitempty"`
	Severity    int       `json:"severity"`
	Notes       *string   `json:"notes"`
	LoggedAt    time.Time `json:"loggedAt"`
	CreatedAt   time.Time `json:"createdAt"`
}

type SymptomLogUpdate struct {
	Severity *int
	Notes    *string
	LoggedAt *time.Time
}

func (u SymptomLogUpdate) IsEmpty() bool {
	return u.Severity == nil && u.Notes == nil && u.LoggedAt == nil
}

// MoodLog is freestanding: it references no definition.
type MoodLog struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	MoodScore   int       `json:"moodScore"`
	EnergyLevel *int      `json:"energyLevel"`
	StressLevel *int      `json:"stressLevel"`
	Notes       *string   `json:"notes"`
	LoggedAt    time.Time `json:"loggedAt"`
	CreatedAt   time.Time `json:"createdAt"`
}

type MoodLogUpdate struct {
	MoodScore   *int
	EnergyLevel *int
	StressLevel *int
	Notes       *string
	LoggedAt    *time.Time
}

func (u MoodLogUpdate) IsEmpty() bool {
	return u.MoodScore == nil && u.EnergyLevel == nil && u.StressLevel == nil && u.Notes == nil && u.LoggedAt == nil
}

// MedicationLog records whether a dose was taken. Its event time TakenAt is
// optional, so lists filter and sort on CreatedAt.
type MedicationLog struct {
	ID             string     `json:"id"`
	UserID         string     `json:"userId"`
	MedicationID   string     `json:"medicationId"`
	MedicationName string     `json:"medicationName,omitempty"`
	Taken          bool       `json:"taken"`
	TakenAt        *time.Time `json:"takenAt"`
	Notes          *string    `json:"notes"`
	CreatedAt      time.Time  `json:"createdAt"`
}

type MedicationLogUpdate struct {
	Taken   *bool
	TakenAt *time.Time
	Notes   *string
}

func (u MedicationLogUpdate) IsEmpty() bool {
	return u.Taken == nil && u.TakenAt == nil && u.Notes == nil
}

// HabitLog records a habit value: 0/1 for boolean habits, a quantity or
// minutes otherwise.
type HabitLog struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	HabitID   string    `json:"habitId"`
	HabitName string    `json:"habitName,omitempty"`
	Value     float64   `json:"value"`
	Notes     *string   `json:"notes"`
	LoggedAt  time.Time `json:"loggedAt"`
	CreatedAt time.Time `json:"createdAt"`
}

type HabitLogUpdate struct {
	Value    *float64
	Notes    *string
	LoggedAt *time.Time
}

func (u HabitLogUpdate) IsEmpty() bool {
	return u.Value == nil && u.Notes == nil && u.LoggedAt == nil
}

// LogFilter narrows a log list. From and To are inclusive; ResourceID
// restricts to one referenced definition and is ignored for mood logs.
type LogFilter struct {
	From       *time.Time
	To         *time.Time
	ResourceID string
	pagination.Params
}
