// Package media drives the remote music player. Commands are fire-and-forget
// POSTs to the player's trusted origin; the player never reports back.
package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Command is a player command
type Command string

const (
	CommandPlay     Command = "play"
	CommandPause    Command = "pause"
	CommandNext     Command = "next"
	CommandPrevious Command = "previous"
)

// Transport delivers a command to the player
type Transport interface {
	Send(ctx context.Context, cmd Command) error
}

// HTTPTransport posts commands to the player endpoint on a trusted origin
type HTTPTransport struct {
	origin   string
	endpoint string
	client   *http.Client
}

// NewHTTPTransport creates a transport posting to origin+endpoint
func NewHTTPTransport(origin, endpoint string, timeout time.Duration) *HTTPTransport {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPTransport{
		origin:   strings.TrimRight(origin, "/"),
		endpoint: endpoint,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// URL returns the address commands are posted to
func (t *HTTPTransport) URL() string {
	if t.endpoint == "" {
		return t.origin
	}
	return t.origin + "/" + strings.TrimLeft(t.endpoint, "/")
}

// Send implements Transport
func (t *HTTPTransport) Send(ctx context.Context, cmd Command) error {
	body, err := json.Marshal(struct {
		Method Command `json:"method"`
	}{Method: cmd})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.URL(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", t.origin)

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("player responded %s", resp.Status)
	}
	return nil
}
