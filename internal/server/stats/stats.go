// Package stats holds the pure computations behind the statistics summary:
// the rolling mood average, the top-symptom ranking and the daily streak.
// Callers load the raw aggregates; nothing here touches storage.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/dmitrijs2005/healthlog/internal/server/models"
	"github.com/dmitrijs2005/healthlog/internal/timex"
)

const (
	// WindowDays is the look-back of the mood average and symptom ranking.
	WindowDays = 30
	// StreakLookbackDays bounds the activity days considered for the streak.
	StreakLookbackDays = 365
	// maxStreakIterations caps the backward walk.
	maxStreakIterations = 366
	// TopSymptomsLimit caps the ranking.
	TopSymptomsLimit = 5
)

// WindowStart returns local midnight of today minus days.
func WindowStart(now time.Time, loc *time.Location, days int) time.Time {
	return timex.AddDays(timex.StartOfDay(now.In(loc)), -days)
}

// AverageMood returns sum/count rounded to one decimal, or nil when count
// is zero.
func AverageMood(count, sum int) *float64 {
	if count <= 0 {
		return nil
	}
	avg := math.Round(float64(sum)/float64(count)*10) / 10
	return &avg
}

// RankSymptoms orders by count descending, then by first occurrence
// ascending, then by id, and keeps at most limit entries.
func RankSymptoms(counts []models.SymptomCount, limit int) []models.TopSymptom {
	sorted := make([]models.SymptomCount, len(counts))
	copy(sorted, counts)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if !a.FirstSeen.Equal(b.FirstSeen) {
			return a.FirstSeen.Before(b.FirstSeen)
		}
		return a.SymptomID < b.SymptomID
	})

	if limit >= 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}

	top := make([]models.TopSymptom, 0, len(sorted))
	for _, c := range sorted {
		top = append(top, models.TopSymptom{SymptomID: c.SymptomID, Name: c.Name, Count: c.Count})
	}
	return top
}

// CurrentStreak counts consecutive active days walking back from today.
// When today has no activity the walk starts from yesterday instead, so a
// user who has not logged yet today keeps yesterday's streak.
func CurrentStreak(activeDays []string, now time.Time, loc *time.Location) int {
	if len(activeDays) == 0 {
		return 0
	}

	set := make(map[string]struct{}, len(activeDays))
	for _, d := range activeDays {
		set[d] = struct{}{}
	}

	day := timex.StartOfDay(now.In(loc))
	if _, ok := set[day.Format(timex.DayKeyLayout)]; !ok {
		day = timex.AddDays(day, -1)
	}

	streak := 0
	for i := 0; i < maxStreakIterations; i++ {
		if _, ok := set[day.Format(timex.DayKeyLayout)]; !ok {
			break
		}
		streak++
		day = timex.AddDays(day, -1)
	}
	return streak
}
