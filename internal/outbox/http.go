package outbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/misterclayt0n/warrior/internal/models"
)

// Batch is the request body of a sync submission.
type Batch struct {
	Events []models.SyncEvent `json:"events"`
}

// Ack is the endpoint's answer. OK must be true for the batch to count as delivered.
type Ack struct {
	OK       bool `json:"ok"`
	Accepted int  `json:"accepted"`
}

// HTTPSender posts batches as JSON.
type HTTPSender struct {
	Endpoint string
	Client   *http.Client
}

func NewHTTPSender(endpoint string, timeout time.Duration) *HTTPSender {
	return &HTTPSender{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: timeout},
	}
}

func (s *HTTPSender) Send(ctx context.Context, batch []models.SyncEvent) error {
	body, err := json.Marshal(Batch{Events: batch})
	if err != nil {
		return fmt.Errorf("encoding batch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("endpoint returned %s: %s", resp.Status, bytes.TrimSpace(msg))
	}

	var ack Ack
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return fmt.Errorf("decoding ack: %w", err)
	}
	if !ack.OK {
		return fmt.Errorf("endpoint did not acknowledge the batch")
	}
	return nil
}
