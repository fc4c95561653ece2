package stats

import "github.com/ammarbari/attendance-app/internal/pkg/validator"

type MonthlySummaryRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (r *MonthlySummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Summary aggregates one record per distinct date (the last record of the
// date wins) over a reporting window.
type Summary struct {
	PeriodStart        string `json:"period_start"`
	PeriodEnd          string `json:"period_end"`
	TotalDays          int    `json:"total_days"`
	PresentDays        int    `json:"present_days"`
	LateDays           int    `json:"late_days"`
	EarlyLeaveDays     int    `json:"early_leave_days"`
	TotalWorkMinutes   int    `json:"total_work_minutes"`
	AverageWorkMinutes int    `json:"average_work_minutes"`
	AttendanceRate     int    `json:"attendance_rate"`
}
