package attendance

import (
	"strings"

	"github.com/ammarbari/attendance-app/internal/pkg/validator"
)

// LocationErrorCode values the client reports when geolocation acquisition
// failed on its side. The transition is rejected before any guard runs.
const (
	LocationErrorTimeout          = "timeout"
	LocationErrorPermissionDenied = "permission_denied"
	LocationErrorUnavailable      = "unavailable"
)

type TimeInRequest struct {
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	Accuracy      *float64 `json:"accuracy,omitempty"`
	LocationError *string  `json:"location_error,omitempty"`
	// FaceImage is a base64-encoded capture frame, required when face
	// verification is enabled.
	FaceImage *string `json:"face_image,omitempty"`
}

func (r *TimeInRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.LocationError != nil {
		valid := []string{LocationErrorTimeout, LocationErrorPermissionDenied, LocationErrorUnavailable}
		if !validator.IsInSlice(*r.LocationError, valid) {
			errs = append(errs, validator.ValidationError{
				Field:   "location_error",
				Message: "location_error must be one of: timeout, permission_denied, unavailable",
			})
		}
	} else {
		if !validator.IsValidLatitude(r.Latitude) {
			errs = append(errs, validator.ValidationError{
				Field:   "latitude",
				Message: "latitude must be between -90 and 90",
			})
		}
		if !validator.IsValidLongitude(r.Longitude) {
			errs = append(errs, validator.ValidationError{
				Field:   "longitude",
				Message: "longitude must be between -180 and 180",
			})
		}
	}

	if r.FaceImage != nil && validator.IsEmpty(*r.FaceImage) {
		errs = append(errs, validator.ValidationError{
			Field:   "face_image",
			Message: "face_image must not be empty when provided",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TimeOutRequest struct {
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	Accuracy      *float64 `json:"accuracy,omitempty"`
	LocationError *string  `json:"location_error,omitempty"`
}

func (r *TimeOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.LocationError != nil {
		valid := []string{LocationErrorTimeout, LocationErrorPermissionDenied, LocationErrorUnavailable}
		if !validator.IsInSlice(*r.LocationError, valid) {
			errs = append(errs, validator.ValidationError{
				Field:   "location_error",
				Message: "location_error must be one of: timeout, permission_denied, unavailable",
			})
		}
	} else {
		if !validator.IsValidLatitude(r.Latitude) {
			errs = append(errs, validator.ValidationError{
				Field:   "latitude",
				Message: "latitude must be between -90 and 90",
			})
		}
		if !validator.IsValidLongitude(r.Longitude) {
			errs = append(errs, validator.ValidationError{
				Field:   "longitude",
				Message: "longitude must be between -180 and 180",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceResponse struct {
	ID                string   `json:"id"`
	UserID            string   `json:"user_id"`
	UserName          string   `json:"user_name"`
	Date              string   `json:"date"`
	TimeIn            string   `json:"time_in"`
	TimeOut           *string  `json:"time_out,omitempty"`
	ClockInLatitude   float64  `json:"clock_in_latitude"`
	ClockInLongitude  float64  `json:"clock_in_longitude"`
	ClockOutLatitude  *float64 `json:"clock_out_latitude,omitempty"`
	ClockOutLongitude *float64 `json:"clock_out_longitude,omitempty"`
	Status            string   `json:"status"`
	TotalWorkMinutes  *int     `json:"total_work_minutes,omitempty"`
	WorkHours         *int     `json:"work_hours,omitempty"`
	WorkMinutes       *int     `json:"work_minutes,omitempty"`
	FaceVerified      bool     `json:"face_verified"`
	Synced            bool     `json:"synced"`
}

type TodayStateResponse struct {
	State       DayState            `json:"state"`
	CanTimeIn   bool                `json:"can_time_in"`
	CanTimeOut  bool                `json:"can_time_out"`
	OpenSession *AttendanceResponse `json:"open_session,omitempty"`
}

type MyAttendanceFilter struct {
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status    *string `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`

	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *MyAttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20 // Default limit
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.Status != nil {
		validStatuses := []string{string(StatusPresent), string(StatusLate), string(StatusEarlyLeave)}
		if !validator.IsInSlice(*f.Status, validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: present, late, early_leave",
			})
		}
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.SortOrder != "" {
		validSortOrders := []string{"asc", "desc"}
		if !validator.IsInSlice(strings.ToLower(f.SortOrder), validSortOrders) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		f.SortOrder = "desc" // Default descending (newest first)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Attendances []AttendanceResponse `json:"attendances"`
}
