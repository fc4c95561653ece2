package stats

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/ammarbari/attendance-app/internal/domain/attendance"
	"github.com/ammarbari/attendance-app/internal/domain/stats"
	"github.com/ammarbari/attendance-app/internal/pkg/clockutil"
	"github.com/go-chi/jwtauth/v5"
)

type StatsServiceImpl struct {
	repo  attendance.Repository
	clock clockutil.Clock
}

func NewStatsService(repo attendance.Repository, clock clockutil.Clock) stats.Service {
	return &StatsServiceImpl{repo: repo, clock: clock}
}

func userIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}

	return userID, nil
}

// MonthlySummary implements stats.Service.
func (s *StatsServiceImpl) MonthlySummary(ctx context.Context, req stats.MonthlySummaryRequest) (stats.Summary, error) {
	if err := req.Validate(); err != nil {
		return stats.Summary{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return stats.Summary{}, err
	}

	start := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	return s.summarize(ctx, userID, start, end)
}

// WeeklySummary implements stats.Service.
func (s *StatsServiceImpl) WeeklySummary(ctx context.Context) (stats.Summary, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return stats.Summary{}, err
	}

	now := s.clock.Now()

	// Monday-based week containing today.
	offset := (int(now.Weekday()) + 6) % 7
	start := time.Date(now.Year(), now.Month(), now.Day()-offset, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 6)

	return s.summarize(ctx, userID, start, end)
}

func (s *StatsServiceImpl) summarize(ctx context.Context, userID string, start, end time.Time) (stats.Summary, error) {
	startKey := clockutil.DateKey(start)
	endKey := clockutil.DateKey(end)

	records, err := s.repo.ListByRange(ctx, userID, startKey, endKey)
	if err != nil {
		return stats.Summary{}, fmt.Errorf("failed to list attendance range: %w", err)
	}

	// One record per distinct date: records arrive ordered by date then
	// clock-in, so overwriting keeps the last record of each date.
	byDate := make(map[string]attendance.Attendance)
	for _, record := range records {
		byDate[record.Date] = record
	}

	summary := stats.Summary{
		PeriodStart: startKey,
		PeriodEnd:   endKey,
		TotalDays:   len(byDate),
	}

	for _, record := range byDate {
		switch record.Status {
		case attendance.StatusLate:
			summary.LateDays++
		case attendance.StatusEarlyLeave:
			summary.EarlyLeaveDays++
		default:
			summary.PresentDays++
		}
		if record.TotalWorkMinutes != nil {
			summary.TotalWorkMinutes += *record.TotalWorkMinutes
		}
	}

	if summary.TotalDays > 0 {
		summary.AverageWorkMinutes = summary.TotalWorkMinutes / summary.TotalDays
		summary.AttendanceRate = int(math.Round(100 * float64(summary.PresentDays) / float64(summary.TotalDays)))
	}

	return summary, nil
}
