package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/healthlog/internal/logging"
	"github.com/dmitrijs2005/healthlog/internal/server/metrics"
	"github.com/dmitrijs2005/healthlog/internal/server/models"
	"github.com/dmitrijs2005/healthlog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/healthlog/internal/server/stats"
	"github.com/dmitrijs2005/healthlog/internal/timex"
	"golang.org/x/sync/errgroup"
)

// StatsService builds the statistics summary. The four parts are read by
// independent concurrent queries and joined; they need not observe one
// snapshot.
type StatsService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
	now         func() time.Time
}

func NewStatsService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *StatsService {
	return &StatsService{db: db, repomanager: m, logger: logger, now: time.Now}
}

// Summary computes the statistics for userID. Calendar days follow the
// user's timezone.
func (s *StatsService) Summary(ctx context.Context, userID string) (*models.Summary, error) {
	start := time.Now()
	defer func() { metrics.ObserveStatsSummary(time.Since(start)) }()

	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	loc := timex.LoadLocation(user.Timezone)
	now := s.now()
	windowStart := stats.WindowStart(now, loc, stats.WindowDays)
	lookbackStart := stats.WindowStart(now, loc, stats.StreakLookbackDays)

	repo := s.repomanager.Stats(s.db)
	summary := &models.Summary{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		count, sum, err := repo.MoodSince(gctx, userID, windowStart)
		if err != nil {
			return err
		}
		summary.AverageMoodScore = stats.AverageMood(count, sum)
		return nil
	})

	g.Go(func() error {
		counts, err := repo.SymptomCountsSince(gctx, userID, windowStart)
		if err != nil {
			return err
		}
		summary.TopSymptoms = stats.RankSymptoms(counts, stats.TopSymptomsLimit)
		return nil
	})

	g.Go(func() error {
		totals, err := repo.Totals(gctx, userID)
		if err != nil {
			return err
		}
		summary.TotalLogs = totals
		return nil
	})

	g.Go(func() error {
		days, err := repo.ActiveDays(gctx, userID, lookbackStart, loc.String())
		if err != nil {
			return err
		}
		summary.CurrentStreak = stats.CurrentStreak(days, now, loc)
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error(ctx, "stats summary failed", "user_id", userID, "error", err)
		return nil, err
	}
	return summary, nil
}
