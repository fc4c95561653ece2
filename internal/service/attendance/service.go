package attendance

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/ammarbari/attendance-app/internal/config"
	"github.com/ammarbari/attendance-app/internal/domain/attendance"
	"github.com/ammarbari/attendance-app/internal/domain/face"
	syncdomain "github.com/ammarbari/attendance-app/internal/domain/sync"
	"github.com/ammarbari/attendance-app/internal/pkg/clockutil"
	"github.com/ammarbari/attendance-app/internal/pkg/utils"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
)

type AttendanceServiceImpl struct {
	repo        attendance.Repository
	faceService face.Service
	syncService syncdomain.Service
	clock       clockutil.Clock

	geofence config.GeofenceConfig

	scheduleStartMinutes       int
	scheduleEndMinutes         int
	lateThresholdMinutes       int
	earlyLeaveThresholdMinutes int

	faceEnabled bool
}

func NewAttendanceService(
	repo attendance.Repository,
	faceService face.Service,
	syncService syncdomain.Service,
	clock clockutil.Clock,
	schedule config.ScheduleConfig,
	geofence config.GeofenceConfig,
	faceEnabled bool,
) (attendance.Service, error) {
	startMinutes, err := clockutil.ParseClockMinutes(schedule.ClockIn)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule clock-in: %w", err)
	}
	endMinutes, err := clockutil.ParseClockMinutes(schedule.ClockOut)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule clock-out: %w", err)
	}

	return &AttendanceServiceImpl{
		repo:                       repo,
		faceService:                faceService,
		syncService:                syncService,
		clock:                      clock,
		geofence:                   geofence,
		scheduleStartMinutes:       startMinutes,
		scheduleEndMinutes:         endMinutes,
		lateThresholdMinutes:       schedule.LateThresholdMinutes,
		earlyLeaveThresholdMinutes: schedule.EarlyLeaveThresholdMinutes,
		faceEnabled:                faceEnabled,
	}, nil
}

// claimsFromContext extracts the authenticated user's identity.
func claimsFromContext(ctx context.Context) (userID string, userName string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", fmt.Errorf("user_id claim is missing or invalid")
	}

	userName, _ = claims["name"].(string)

	return userID, userName, nil
}

// mapLocationError converts a client-reported geolocation failure code to
// its domain error.
func mapLocationError(code string) error {
	switch code {
	case attendance.LocationErrorTimeout:
		return attendance.ErrLocationTimeout
	case attendance.LocationErrorPermissionDenied:
		return attendance.ErrLocationPermissionDenied
	default:
		return attendance.ErrLocationUnavailable
	}
}

// isLate reports whether a time-in at now is past the schedule start plus
// the late threshold. The boundary minute itself is still on time.
func (a *AttendanceServiceImpl) isLate(now time.Time) bool {
	return clockutil.MinutesSinceMidnight(now) > a.scheduleStartMinutes+a.lateThresholdMinutes
}

// isEarlyLeave reports whether a time-out at now is before the schedule end
// minus the early-leave threshold. The boundary minute itself is not early.
func (a *AttendanceServiceImpl) isEarlyLeave(now time.Time) bool {
	return clockutil.MinutesSinceMidnight(now) < a.scheduleEndMinutes-a.earlyLeaveThresholdMinutes
}

func (a *AttendanceServiceImpl) checkGeofence(lat, lon float64) error {
	if !utils.WithinRadius(lat, lon, a.geofence.OfficeLatitude, a.geofence.OfficeLongitude, a.geofence.RadiusMeters) {
		return attendance.ErrOutsideGeofence
	}
	return nil
}

// TimeIn implements attendance.Service. Every guard must pass before any
// state is written; a second time-in while already checked in is allowed.
func (a *AttendanceServiceImpl) TimeIn(ctx context.Context, req attendance.TimeInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	userID, userName, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if req.LocationError != nil {
		return attendance.AttendanceResponse{}, mapLocationError(*req.LocationError)
	}

	if err := a.checkGeofence(req.Latitude, req.Longitude); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	faceVerified := false
	if a.faceEnabled {
		if req.FaceImage == nil {
			return attendance.AttendanceResponse{}, face.ErrNoFaceDetected
		}
		frame, err := base64.StdEncoding.DecodeString(*req.FaceImage)
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("invalid face image encoding: %w", err)
		}
		if err := a.faceService.Verify(ctx, userID, frame); err != nil {
			return attendance.AttendanceResponse{}, err
		}
		faceVerified = true
	}

	now := a.clock.Now()

	status := attendance.StatusPresent
	if a.isLate(now) {
		status = attendance.StatusLate
	}

	data := attendance.Attendance{
		ID:               uuid.NewString(),
		UserID:           userID,
		UserName:         userName,
		Date:             clockutil.DateKey(now),
		ClockIn:          now,
		ClockInLatitude:  req.Latitude,
		ClockInLongitude: req.Longitude,
		ClockInAccuracy:  req.Accuracy,
		Status:           status,
		FaceVerified:     faceVerified,
		Synced:           false,
	}

	created, err := a.repo.Create(ctx, data)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	// The record is durable from here on. Sync failures are absorbed by
	// the queue and never fail the transition.
	created.Synced = a.syncService.ProcessRecord(ctx, created)

	return mapAttendanceToResponse(created), nil
}

// TimeOut implements attendance.Service.
func (a *AttendanceServiceImpl) TimeOut(ctx context.Context, req attendance.TimeOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	userID, _, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if req.LocationError != nil {
		return attendance.AttendanceResponse{}, mapLocationError(*req.LocationError)
	}

	if err := a.checkGeofence(req.Latitude, req.Longitude); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := a.clock.Now()

	latest, err := a.repo.LatestForDate(ctx, userID, clockutil.DateKey(now))
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get latest attendance: %w", err)
	}
	if latest == nil || latest.Completed() {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}

	totalMinutes := int(now.Sub(latest.ClockIn).Minutes())
	workHours := totalMinutes / 60
	workMinutes := totalMinutes % 60

	latest.ClockOut = &now
	latest.ClockOutLatitude = &req.Latitude
	latest.ClockOutLongitude = &req.Longitude
	latest.ClockOutAccuracy = req.Accuracy
	latest.TotalWorkMinutes = &totalMinutes
	latest.WorkHours = &workHours
	latest.WorkMinutes = &workMinutes

	// Late takes precedence: only a present record escalates to
	// early_leave.
	if a.isEarlyLeave(now) && latest.Status == attendance.StatusPresent {
		latest.Status = attendance.StatusEarlyLeave
	}

	// The completed cycle must be acknowledged upstream again.
	latest.Synced = false

	if err := a.repo.Update(ctx, *latest); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	latest.Synced = a.syncService.ProcessRecord(ctx, *latest)

	return mapAttendanceToResponse(*latest), nil
}

// TodayState implements attendance.Service.
func (a *AttendanceServiceImpl) TodayState(ctx context.Context) (attendance.TodayStateResponse, error) {
	userID, _, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.TodayStateResponse{}, err
	}

	latest, err := a.repo.LatestForDate(ctx, userID, clockutil.DateKey(a.clock.Now()))
	if err != nil {
		return attendance.TodayStateResponse{}, fmt.Errorf("failed to get latest attendance: %w", err)
	}

	state := attendance.DayStateNotCheckedIn
	var openSession *attendance.AttendanceResponse
	if latest != nil && !latest.Completed() {
		state = attendance.DayStateCheckedIn
		resp := mapAttendanceToResponse(*latest)
		openSession = &resp
	}

	return attendance.TodayStateResponse{
		State: state,
		// A new cycle may always start, even while checked in.
		CanTimeIn:   true,
		CanTimeOut:  state == attendance.DayStateCheckedIn,
		OpenSession: openSession,
	}, nil
}

// GetMyAttendance implements attendance.Service.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.MyAttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	userID, _, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	attendances, total, err := a.repo.ListMy(ctx, userID, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list my attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(attendances))
	for _, att := range attendances {
		responses = append(responses, mapAttendanceToResponse(att))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Attendances: responses,
	}, nil
}

// mapAttendanceToResponse converts an Attendance entity to its response DTO
func mapAttendanceToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	var timeOut *string
	if att.ClockOut != nil {
		formatted := att.ClockOut.Format(time.RFC3339)
		timeOut = &formatted
	}

	return attendance.AttendanceResponse{
		ID:                att.ID,
		UserID:            att.UserID,
		UserName:          att.UserName,
		Date:              att.Date,
		TimeIn:            att.ClockIn.Format(time.RFC3339),
		TimeOut:           timeOut,
		ClockInLatitude:   att.ClockInLatitude,
		ClockInLongitude:  att.ClockInLongitude,
		ClockOutLatitude:  att.ClockOutLatitude,
		ClockOutLongitude: att.ClockOutLongitude,
		Status:            string(att.Status),
		TotalWorkMinutes:  att.TotalWorkMinutes,
		WorkHours:         att.WorkHours,
		WorkMinutes:       att.WorkMinutes,
		FaceVerified:      att.FaceVerified,
		Synced:            att.Synced,
	}
}
