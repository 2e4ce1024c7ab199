package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrNotFound             = errors.New("not found")
	ErrCompanionUnavailable = errors.New("companion window unavailable")
	ErrMediaNotReady        = errors.New("media player not ready")
	ErrInvalidSnapshot      = errors.New("invalid snapshot")
)

// StoreError represents a failed read or write of a persisted key
type StoreError struct {
	Op  string // Operation: "get", "put", "decode", "watch"
	Key string
	Err error
}

func (e *StoreError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("store %s [%s]: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// ChannelError represents a failure on the companion window channel
type ChannelError struct {
	Op  string
	Err error
}

func (e *ChannelError) Error() string {
	return fmt.Sprintf("companion %s: %v", e.Op, e.Err)
}

func (e *ChannelError) Unwrap() error {
	return e.Err
}

// MediaError represents a failed command to the remote media player
type MediaError struct {
	Op  string // Method: "play", "pause", "next", "previous"
	Err error
}

func (e *MediaError) Error() string {
	return fmt.Sprintf("media %s: %v", e.Op, e.Err)
}

func (e *MediaError) Unwrap() error {
	return e.Err
}

// TmuxError represents an error from tmux operations
type TmuxError struct {
	Op     string
	Target string
	Err    error
}

func (e *TmuxError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("tmux %s [%s]: %v", e.Op, e.Target, e.Err)
	}
	return fmt.Sprintf("tmux %s: %v", e.Op, e.Err)
}

func (e *TmuxError) Unwrap() error {
	return e.Err
}
