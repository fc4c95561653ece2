package facerec

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/ammarbari/attendance-app/internal/domain/face"
)

// Client implements face.Provider against a detection sidecar that accepts
// a raw image and returns descriptor vectors for every face it finds.
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

type detectionResponse struct {
	Faces []struct {
		Descriptor []float64 `json:"descriptor"`
		Score      float64   `json:"score"`
	} `json:"faces"`
}

// Detect sends a capture frame to the detection service.
func (c *Client) Detect(ctx context.Context, frame []byte) ([]face.Detection, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/detect", bytes.NewReader(frame))
	if err != nil {
		return nil, fmt.Errorf("failed to build detect request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", face.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", face.ErrProviderUnavailable, resp.StatusCode)
	}

	var body detectionResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode detection response: %w", err)
	}

	detections := make([]face.Detection, 0, len(body.Faces))
	for _, f := range body.Faces {
		detections = append(detections, face.Detection{
			Descriptor: f.Descriptor,
			Score:      f.Score,
		})
	}
	return detections, nil
}

// Distance is the Euclidean distance between two descriptors. Mismatched
// lengths compare as infinitely far apart.
func (c *Client) Distance(d1, d2 []float64) float64 {
	if len(d1) != len(d2) {
		return math.Inf(1)
	}
	var sum float64
	for i := range d1 {
		diff := d1[i] - d2[i]
		sum += diff * diff
	}
	return math.Sqrt(sum)
}
