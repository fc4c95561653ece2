package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ammarbari/attendance-app/internal/domain/attendance"
)

// Client talks to the upstream system of record that acknowledges locally
// created attendance records.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type recordPayload struct {
	ID               string   `json:"id"`
	UserID           string   `json:"user_id"`
	UserName         string   `json:"user_name"`
	Date             string   `json:"date"`
	TimeIn           string   `json:"time_in"`
	TimeOut          *string  `json:"time_out,omitempty"`
	Status           string   `json:"status"`
	TotalWorkMinutes *int     `json:"total_work_minutes,omitempty"`
	Latitude         float64  `json:"latitude"`
	Longitude        float64  `json:"longitude"`
	Accuracy         *float64 `json:"accuracy,omitempty"`
	FaceVerified     bool     `json:"face_verified"`
}

// Push acknowledges one record upstream. Any transport or non-2xx failure
// is returned to the caller; the sync service decides what to do with it.
func (c *Client) Push(ctx context.Context, record attendance.Attendance) error {
	payload := recordPayload{
		ID:               record.ID,
		UserID:           record.UserID,
		UserName:         record.UserName,
		Date:             record.Date,
		TimeIn:           record.ClockIn.Format(time.RFC3339),
		Status:           string(record.Status),
		TotalWorkMinutes: record.TotalWorkMinutes,
		Latitude:         record.ClockInLatitude,
		Longitude:        record.ClockInLongitude,
		Accuracy:         record.ClockInAccuracy,
		FaceVerified:     record.FaceVerified,
	}
	if record.ClockOut != nil {
		out := record.ClockOut.Format(time.RFC3339)
		payload.TimeOut = &out
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/records", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to push record: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("upstream rejected record: status %d", resp.StatusCode)
	}

	return nil
}

// Online probes the upstream health endpoint with a short deadline.
func (c *Client) Online(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
