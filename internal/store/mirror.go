package store

import (
	"encoding/json"
	"fmt"

	"github.com/riordanpawley/tomodoro/internal/domain"
)

// Mirror is the typed repository over a Store
type Mirror struct {
	store Store
}

// NewMirror wraps s
func NewMirror(s Store) *Mirror {
	return &Mirror{store: s}
}

// Store returns the underlying store
func (m *Mirror) Store() Store {
	return m.store
}

// SaveTimer writes the replicated timer snapshot
func (m *Mirror) SaveTimer(state domain.TimerState) error {
	return m.put(KeyTimerState, state)
}

// SaveMedia writes the replicated media snapshot
func (m *Mirror) SaveMedia(media domain.MediaState) error {
	return m.put(KeyMediaState, media)
}

// SaveRecords writes the durable records, one key each
func (m *Mirror) SaveRecords(records domain.Records) error {
	if err := m.put(KeySettings, records.Settings); err != nil {
		return err
	}
	if err := m.put(KeyStats, records.Stats); err != nil {
		return err
	}
	tasks := records.Tasks
	if tasks == nil {
		tasks = []domain.Task{}
	}
	if err := m.put(KeyTasks, tasks); err != nil {
		return err
	}
	presets := records.Presets
	if presets == nil {
		presets = []domain.Preset{}
	}
	return m.put(KeyPresets, presets)
}

// LoadTimer reads the last timer snapshot. ok is false when none was stored.
func (m *Mirror) LoadTimer() (state domain.TimerState, ok bool, err error) {
	raw, err := m.store.Get(KeyTimerState)
	if err != nil || raw == nil {
		return domain.TimerState{}, false, err
	}
	state, err = DecodeTimerState(raw)
	if err != nil {
		return domain.TimerState{}, false, err
	}
	return state, true, nil
}

// LoadMedia reads the last media snapshot. ok is false when none was stored.
func (m *Mirror) LoadMedia() (media domain.MediaState, ok bool, err error) {
	raw, err := m.store.Get(KeyMediaState)
	if err != nil || raw == nil {
		return domain.MediaState{}, false, err
	}
	media, err = DecodeMediaState(raw)
	if err != nil {
		return domain.MediaState{}, false, err
	}
	return media, true, nil
}

// LoadRecords reads the durable records. Keys never written keep the value
// from defaults; keys holding unreadable data are an error.
func (m *Mirror) LoadRecords(defaults domain.Records) (domain.Records, error) {
	records := defaults
	if err := m.get(KeySettings, &records.Settings); err != nil {
		return defaults, err
	}
	if err := m.get(KeyStats, &records.Stats); err != nil {
		return defaults, err
	}
	if err := m.get(KeyTasks, &records.Tasks); err != nil {
		return defaults, err
	}
	if err := m.get(KeyPresets, &records.Presets); err != nil {
		return defaults, err
	}
	records.Settings = records.Settings.Normalize()
	return records, nil
}

// DecodeTimerState parses and validates a timer snapshot written by another window
func DecodeTimerState(raw []byte) (domain.TimerState, error) {
	var state domain.TimerState
	if err := json.Unmarshal(raw, &state); err != nil {
		return domain.TimerState{}, fmt.Errorf("%w: %v", domain.ErrInvalidSnapshot, err)
	}
	if err := state.Validate(); err != nil {
		return domain.TimerState{}, err
	}
	return state, nil
}

// DecodeMediaState parses a media snapshot written by another window
func DecodeMediaState(raw []byte) (domain.MediaState, error) {
	return decode[domain.MediaState](raw)
}

// DecodeSettings parses settings written by another window
func DecodeSettings(raw []byte) (domain.Settings, error) {
	settings, err := decode[domain.Settings](raw)
	if err != nil {
		return domain.Settings{}, err
	}
	return settings.Normalize(), nil
}

// DecodeStats parses counters written by another process
func DecodeStats(raw []byte) (domain.Stats, error) {
	return decode[domain.Stats](raw)
}

// DecodeTasks parses a task list written by another process
func DecodeTasks(raw []byte) ([]domain.Task, error) {
	return decode[[]domain.Task](raw)
}

// DecodePresets parses presets written by another process
func DecodePresets(raw []byte) ([]domain.Preset, error) {
	return decode[[]domain.Preset](raw)
}

func decode[T any](raw []byte) (T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %v", domain.ErrInvalidSnapshot, err)
	}
	return v, nil
}

func (m *Mirror) put(key Key, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return &domain.StoreError{Op: "encode", Key: string(key), Err: err}
	}
	return m.store.Put(key, data)
}

func (m *Mirror) get(key Key, v any) error {
	raw, err := m.store.Get(key)
	if err != nil || raw == nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &domain.StoreError{Op: "decode", Key: string(key), Err: err}
	}
	return nil
}
