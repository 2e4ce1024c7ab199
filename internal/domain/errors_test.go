package domain

import (
	"errors"
	"testing"
)

func TestStoreError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  StoreError
		want string
	}{
		{
			name: "with key",
			err:  StoreError{Op: "put", Key: "timerState", Err: errors.New("disk full")},
			want: "store put [timerState]: disk full",
		},
		{
			name: "without key",
			err:  StoreError{Op: "watch", Err: errors.New("too many watches")},
			want: "store watch: too many watches",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("StoreError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTmuxError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  TmuxError
		want string
	}{
		{
			name: "with target",
			err:  TmuxError{Op: "kill-pane", Target: "%3", Err: errors.New("no such pane")},
			want: "tmux kill-pane [%3]: no such pane",
		},
		{
			name: "without target",
			err:  TmuxError{Op: "split-window", Err: errors.New("no server")},
			want: "tmux split-window: no server",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("TmuxError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorUnwrapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"store", &StoreError{Op: "decode", Key: "mediaState", Err: ErrInvalidSnapshot}, ErrInvalidSnapshot},
		{"channel", &ChannelError{Op: "open", Err: ErrCompanionUnavailable}, ErrCompanionUnavailable},
		{"media", &MediaError{Op: "play", Err: ErrMediaNotReady}, ErrMediaNotReady},
		{"tmux", &TmuxError{Op: "select-pane", Err: ErrNotFound}, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.want) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.want)
			}
		})
	}
}

func TestMediaError_As(t *testing.T) {
	var err error = &MediaError{Op: "next", Err: errors.New("connection refused")}

	var mediaErr *MediaError
	if !errors.As(err, &mediaErr) {
		t.Fatal("errors.As should find *MediaError")
	}
	if mediaErr.Op != "next" {
		t.Errorf("Op = %q, want %q", mediaErr.Op, "next")
	}
	if got, want := err.Error(), "media next: connection refused"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
