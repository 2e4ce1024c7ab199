package media

import (
	"context"
	"net/http"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Prober checks whether the player origin is reachable
type Prober struct {
	mu        sync.RWMutex
	lastCheck time.Time
	url       string
	client    *http.Client
}

// ProbeMsg is sent after a readiness probe
type ProbeMsg struct {
	Reachable bool
}

// NewProber creates a prober for url
func NewProber(url string, timeout time.Duration) *Prober {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Prober{
		url: url,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DisableKeepAlives: true,
			},
		},
	}
}

// Check performs one probe. Any 2xx or 3xx response counts as reachable.
func (p *Prober) Check(ctx context.Context) bool {
	defer p.markChecked()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.url, nil)
	if err != nil {
		return false
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 400
}

// LastCheck returns the time of the last probe
func (p *Prober) LastCheck() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastCheck
}

func (p *Prober) markChecked() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastCheck = time.Now()
}

// ProbeCmd returns a tea.Cmd that probes once
func (p *Prober) ProbeCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return ProbeMsg{Reachable: p.Check(ctx)}
	}
}

// RetryCmd probes again after interval
func (p *Prober) RetryCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return p.ProbeCmd()()
	})
}
