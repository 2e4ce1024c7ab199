// Package diagnostics checks the environment tomodoro depends on: the
// shared store directory, tmux for the companion pane and the music
// player origin.
package diagnostics

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"
)

// HealthStatus represents the health state of a component
type HealthStatus string

const (
	HealthHealthy  HealthStatus = "healthy"
	HealthDegraded HealthStatus = "degraded"
	HealthCritical HealthStatus = "critical"
)

// StoreInfo describes the shared record directory
type StoreInfo struct {
	Dir         string
	Writable    bool
	HealthState HealthStatus
}

// CompanionInfo describes whether a companion pane can be opened
type CompanionInfo struct {
	InTmux       bool
	Panes        int
	Command      string
	CommandFound bool
	HealthState  HealthStatus
}

// MediaInfo describes the music player origin
type MediaInfo struct {
	Disabled    bool
	Origin      string
	Reachable   bool
	LastCheck   time.Time
	HealthState HealthStatus
}

// SystemInfo contains system-level information
type SystemInfo struct {
	GoVersion    string
	OS           string
	Arch         string
	NumGoroutine int
	MemoryUsage  uint64
}

// Report is the complete diagnostics snapshot
type Report struct {
	Timestamp    time.Time
	OverallState HealthStatus
	Store        StoreInfo
	Companion    CompanionInfo
	Media        MediaInfo
	System       SystemInfo
	Warnings     []string
	Errors       []string
}

// TmuxClient is the part of the tmux client the checks need
type TmuxClient interface {
	InSession() bool
	ListPanes(ctx context.Context) ([]string, error)
}

// MediaChecker probes the player origin
type MediaChecker interface {
	Check(ctx context.Context) bool
	LastCheck() time.Time
}

// Options configures a Service
type Options struct {
	Tmux TmuxClient
	// Media is nil when the player is disabled
	Media            MediaChecker
	MediaOrigin      string
	StoreDir         string
	CompanionCommand []string
	// LookPath resolves the companion command; defaults to exec.LookPath
	LookPath func(string) (string, error)
	Now      func() time.Time
}

// Service provides environment diagnostics
type Service struct {
	mu sync.RWMutex

	opts Options

	lastReport *Report
}

// NewService creates a new diagnostics service
func NewService(opts Options) *Service {
	if opts.LookPath == nil {
		opts.LookPath = exec.LookPath
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{opts: opts}
}

// Collect runs every check
func (s *Service) Collect(ctx context.Context) *Report {
	s.mu.Lock()
	defer s.mu.Unlock()

	var warnings []string
	var errors []string

	store := StoreInfo{Dir: s.opts.StoreDir, HealthState: HealthHealthy}
	if err := checkWritable(s.opts.StoreDir); err != nil {
		store.HealthState = HealthCritical
		errors = append(errors, fmt.Sprintf("Store directory not writable: %v", err))
	} else {
		store.Writable = true
	}

	companion := CompanionInfo{HealthState: HealthHealthy}
	if len(s.opts.CompanionCommand) > 0 {
		companion.Command = s.opts.CompanionCommand[0]
		if _, err := s.opts.LookPath(companion.Command); err == nil {
			companion.CommandFound = true
		} else {
			companion.HealthState = HealthDegraded
			warnings = append(warnings, fmt.Sprintf("Companion command %q not found on PATH", companion.Command))
		}
	}
	if s.opts.Tmux != nil && s.opts.Tmux.InSession() {
		companion.InTmux = true
		panes, err := s.opts.Tmux.ListPanes(ctx)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("Failed to list tmux panes: %v", err))
		}
		companion.Panes = len(panes)
	} else {
		companion.HealthState = HealthDegraded
		warnings = append(warnings, "Not running inside tmux; the companion pane is unavailable")
	}

	media := MediaInfo{Origin: s.opts.MediaOrigin, HealthState: HealthHealthy}
	if s.opts.Media == nil {
		media.Disabled = true
	} else {
		media.Reachable = s.opts.Media.Check(ctx)
		media.LastCheck = s.opts.Media.LastCheck()
		if !media.Reachable {
			media.HealthState = HealthDegraded
			warnings = append(warnings, fmt.Sprintf("Music player not reachable at %s", media.Origin))
		}
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	system := SystemInfo{
		GoVersion:    runtime.Version(),
		OS:           runtime.GOOS,
		Arch:         runtime.GOARCH,
		NumGoroutine: runtime.NumGoroutine(),
		MemoryUsage:  memStats.Alloc,
	}

	overallState := HealthHealthy
	if len(errors) > 0 {
		overallState = HealthCritical
	} else if len(warnings) > 0 {
		overallState = HealthDegraded
	}

	report := &Report{
		Timestamp:    s.opts.Now(),
		OverallState: overallState,
		Store:        store,
		Companion:    companion,
		Media:        media,
		System:       system,
		Warnings:     warnings,
		Errors:       errors,
	}
	s.lastReport = report
	return report
}

// LastReport returns the last collected report without refresh
func (s *Service) LastReport() *Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastReport
}

// FormatReport returns a human-readable diagnostics report
func FormatReport(r *Report) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("System Status: %s\n", strings.ToUpper(string(r.OverallState))))
	b.WriteString(fmt.Sprintf("Checked: %s\n\n", r.Timestamp.Format("15:04:05")))

	if len(r.Errors) > 0 {
		b.WriteString("ERRORS:\n")
		for _, err := range r.Errors {
			b.WriteString(fmt.Sprintf("  ✗ %s\n", err))
		}
		b.WriteString("\n")
	}

	if len(r.Warnings) > 0 {
		b.WriteString("WARNINGS:\n")
		for _, warn := range r.Warnings {
			b.WriteString(fmt.Sprintf("  ⚠ %s\n", warn))
		}
		b.WriteString("\n")
	}

	b.WriteString("STORE:\n")
	b.WriteString(fmt.Sprintf("  %s %s\n\n", mark(r.Store.Writable), r.Store.Dir))

	b.WriteString("COMPANION:\n")
	b.WriteString(fmt.Sprintf("  %s tmux", mark(r.Companion.InTmux)))
	if r.Companion.InTmux {
		b.WriteString(fmt.Sprintf(" (%d panes)", r.Companion.Panes))
	}
	b.WriteString("\n")
	if r.Companion.Command != "" {
		b.WriteString(fmt.Sprintf("  %s %s\n", mark(r.Companion.CommandFound), r.Companion.Command))
	}
	b.WriteString("\n")

	b.WriteString("MEDIA:\n")
	switch {
	case r.Media.Disabled:
		b.WriteString("  - disabled\n")
	case r.Media.Reachable:
		b.WriteString(fmt.Sprintf("  ✓ %s\n", r.Media.Origin))
	default:
		b.WriteString(fmt.Sprintf("  ✗ %s\n", r.Media.Origin))
	}
	b.WriteString("\n")

	b.WriteString("SYSTEM:\n")
	b.WriteString(fmt.Sprintf("  Go: %s\n", r.System.GoVersion))
	b.WriteString(fmt.Sprintf("  OS: %s/%s\n", r.System.OS, r.System.Arch))
	b.WriteString(fmt.Sprintf("  Goroutines: %d\n", r.System.NumGoroutine))
	b.WriteString(fmt.Sprintf("  Memory: %s\n", formatBytes(r.System.MemoryUsage)))

	return b.String()
}

// checkWritable creates dir if needed and writes a scratch file into it
func checkWritable(dir string) error {
	if dir == "" {
		return fmt.Errorf("no directory configured")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".doctor-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

// formatBytes formats bytes in a human-readable format
func formatBytes(bytes uint64) string {
	const (
		KB = 1024
		MB = 1024 * KB
		GB = 1024 * MB
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
