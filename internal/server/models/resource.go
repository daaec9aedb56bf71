package models

import (
	"time"

	"github.com/dmitrijs2005/healthlog/internal/server/ownership"
	"github.com/dmitrijs2005/healthlog/internal/server/pagination"
)

// TrackingType is how a habit is measured.
type TrackingType string

const (
	TrackingBoolean  TrackingType = "boolean"
	TrackingNumeric  TrackingType = "numeric"
	TrackingDuration TrackingType = "duration"
)

// Symptom is a symptom definition, either a system default or user-owned.
type Symptom struct {
	ID        string
	Owner     ownership.Owner
	Name      string
	Category  *string
	Active    bool
	CreatedAt time.Time
}

type SymptomUpdate struct {
	Name     *string
	Category *string
	Active   *bool
}

func (u SymptomUpdate) IsEmpty() bool {
	return u.Name == nil && u.Category == nil && u.Active == nil
}

// Habit is a habit definition, either a system default or user-owned.
type Habit struct {
	ID           string
	Owner        ownership.Owner
	Name         string
	Description  *string
	TrackingType TrackingType
	Unit         *string
	Active       bool
	CreatedAt    time.Time
}

type HabitUpdate struct {
	Name         *string
	Description  *string
	TrackingType *TrackingType
	Unit         *string
	Active       *bool
}

func (u HabitUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.TrackingType == nil && u.Unit == nil && u.Active == nil
}

// Medication is always user-owned.
type Medication struct {
	ID        string
	Owner     ownership.Owner
	Name      string
	Dosage    *string
	Frequency *string
	Active    bool
	CreatedAt time.Time
}

type MedicationUpdate struct {
	Name      *string
	Dosage    *string
	Frequency *string
	Active    *bool
}

func (u MedicationUpdate) IsEmpty() bool {
	return u.Name == nil && u.Dosage == nil && u.Frequency == nil && u.Active == nil
}

// ResourceFilter narrows a definition list. Active nil means both.
type ResourceFilter struct {
	Active *bool
	pagination.Params
}
