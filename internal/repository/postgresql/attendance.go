package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ammarbari/attendance-app/internal/domain/attendance"
	"github.com/ammarbari/attendance-app/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	id, user_id, user_name, date,
	clock_in, clock_out,
	clock_in_latitude, clock_in_longitude, clock_in_accuracy,
	clock_out_latitude, clock_out_longitude, clock_out_accuracy,
	status, total_work_minutes, work_hours, work_minutes,
	face_verified, synced, created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.UserID, &att.UserName, &att.Date,
		&att.ClockIn, &att.ClockOut,
		&att.ClockInLatitude, &att.ClockInLongitude, &att.ClockInAccuracy,
		&att.ClockOutLatitude, &att.ClockOutLongitude, &att.ClockOutAccuracy,
		&att.Status, &att.TotalWorkMinutes, &att.WorkHours, &att.WorkMinutes,
		&att.FaceVerified, &att.Synced, &att.CreatedAt, &att.UpdatedAt,
	)
	return att, err
}

// Create implements attendance.Repository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			id, user_id, user_name, date,
			clock_in, clock_in_latitude, clock_in_longitude, clock_in_accuracy,
			status, face_verified, synced
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newAttendance.ID,
		newAttendance.UserID,
		newAttendance.UserName,
		newAttendance.Date,
		newAttendance.ClockIn,
		newAttendance.ClockInLatitude,
		newAttendance.ClockInLongitude,
		newAttendance.ClockInAccuracy,
		newAttendance.Status,
		newAttendance.FaceVerified,
		newAttendance.Synced,
	).Scan(&newAttendance.CreatedAt, &newAttendance.UpdatedAt)

	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return newAttendance, nil
}

// GetByID implements attendance.Repository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE id = $1`

	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by id: %w", err)
	}

	return att, nil
}

// Update implements attendance.Repository. It never creates: a missing id
// returns ErrAttendanceNotFound.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances SET
			clock_out = $2,
			clock_out_latitude = $3,
			clock_out_longitude = $4,
			clock_out_accuracy = $5,
			status = $6,
			total_work_minutes = $7,
			work_hours = $8,
			work_minutes = $9,
			synced = $10,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		att.ID,
		att.ClockOut,
		att.ClockOutLatitude,
		att.ClockOutLongitude,
		att.ClockOutAccuracy,
		att.Status,
		att.TotalWorkMinutes,
		att.WorkHours,
		att.WorkMinutes,
		att.Synced,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// ListByDate implements attendance.Repository.
func (a *attendanceRepository) ListByDate(ctx context.Context, userID string, date string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE user_id = $1 AND date = $2
		ORDER BY clock_in ASC`

	rows, err := q.Query(ctx, query, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances by date: %w", err)
	}
	defer rows.Close()

	return collectAttendances(rows)
}

// ListByRange implements attendance.Repository.
func (a *attendanceRepository) ListByRange(ctx context.Context, userID string, startDate, endDate string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE user_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC, clock_in ASC`

	rows, err := q.Query(ctx, query, userID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances by range: %w", err)
	}
	defer rows.Close()

	return collectAttendances(rows)
}

// ListUnsynced implements attendance.Repository.
func (a *attendanceRepository) ListUnsynced(ctx context.Context, userID string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE user_id = $1 AND synced = FALSE
		ORDER BY date ASC, clock_in ASC`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list unsynced attendances: %w", err)
	}
	defer rows.Close()

	return collectAttendances(rows)
}

// LatestForDate implements attendance.Repository.
func (a *attendanceRepository) LatestForDate(ctx context.Context, userID string, date string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE user_id = $1 AND date = $2
		ORDER BY clock_in DESC
		LIMIT 1`

	att, err := scanAttendance(q.QueryRow(ctx, query, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No record for this day yet
		}
		return nil, fmt.Errorf("failed to get latest attendance for date: %w", err)
	}

	return &att, nil
}

// ListMy implements attendance.Repository.
func (a *attendanceRepository) ListMy(ctx context.Context, userID string, filter attendance.MyAttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	conditions := []string{"user_id = $1"}
	args := []interface{}{userID}
	argPos := 2

	if filter.StartDate != nil && *filter.StartDate != "" {
		conditions = append(conditions, fmt.Sprintf("date >= $%d", argPos))
		args = append(args, *filter.StartDate)
		argPos++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		conditions = append(conditions, fmt.Sprintf("date <= $%d", argPos))
		args = append(args, *filter.EndDate)
		argPos++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, *filter.Status)
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM attendances WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	order := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		order = "ASC"
	}

	query := fmt.Sprintf(`SELECT %s FROM attendances WHERE %s
		ORDER BY date %s, clock_in %s
		LIMIT $%d OFFSET $%d`,
		attendanceColumns, where, order, order, argPos, argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	attendances, err := collectAttendances(rows)
	if err != nil {
		return nil, 0, err
	}

	return attendances, total, nil
}

// MarkSynced implements attendance.Repository.
func (a *attendanceRepository) MarkSynced(ctx context.Context, id string) error {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `UPDATE attendances SET synced = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark attendance synced: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

func collectAttendances(rows pgx.Rows) ([]attendance.Attendance, error) {
	var attendances []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}
	return attendances, nil
}
