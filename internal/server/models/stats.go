package models

import "time"

// TopSymptom is one entry of the 30-day symptom ranking.
type TopSymptom struct {
	SymptomID string `json:"symptomId"`
	Name      string `json:"name"`
	Count     int    `json:"count"`
}

// LogTotals holds all-time log counts per kind.
type LogTotals struct {
	Symptoms    int `json:"symptoms"`
	Moods       int `json:"moods"`
	Medications int `json:"medications"`
	Habits      int `json:"habits"`
}

// Summary is the statistics view for one user.
type Summary struct {
	AverageMoodScore *float64     `json:"averageMoodScore"`
	TopSymptoms      []TopSymptom `json:"topSymptoms"`
	CurrentStreak    int          `json:"currentStreak"`
	TotalLogs        LogTotals    `json:"totalLogs"`
}

// SymptomCount is one row of the per-symptom aggregation feeding the
// ranking. FirstSeen is the earliest logged_at in the window.
type SymptomCount struct {
	SymptomID string
	Name      string
	Count     int
	FirstSeen time.Time
}
