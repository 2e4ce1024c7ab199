package app

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riordanpawley/tomodoro/internal/domain"
	"github.com/riordanpawley/tomodoro/internal/logging"
	"github.com/riordanpawley/tomodoro/internal/pip"
	"github.com/riordanpawley/tomodoro/internal/services/companion"
	"github.com/riordanpawley/tomodoro/internal/store"
	"github.com/riordanpawley/tomodoro/internal/ui/render"
)

// drainChanges feeds the model every store change already published to it
func drainChanges(t *testing.T, m Model) Model {
	t.Helper()
	for {
		select {
		case change := <-m.changes:
			m, _ = update(t, m, storeChangeMsg{change: change})
		default:
			return m
		}
	}
}

type bootstrapLink struct {
	bootstrap companion.Bootstrap
	messages  chan companion.Message
}

func (l *bootstrapLink) Bootstrap() companion.Bootstrap {
	return l.bootstrap
}

func (l *bootstrapLink) Messages() <-chan companion.Message {
	return l.messages
}

func (l *bootstrapLink) Send(action companion.Action) error {
	return nil
}

func (l *bootstrapLink) Close() error {
	return nil
}

// companionWindow runs a companion model's store subscription the way the
// bubbletea runtime would: one command in flight, its result fed back.
type companionWindow struct {
	t       *testing.T
	model   pip.Model
	results chan tea.Msg
}

func openCompanionWindow(t *testing.T, env *testEnv, bootstrap companion.Bootstrap) *companionWindow {
	t.Helper()
	s := env.hub.Open()
	t.Cleanup(func() { s.Close() })

	model := pip.New(pip.Options{
		Link:   &bootstrapLink{bootstrap: bootstrap, messages: make(chan companion.Message)},
		Store:  s,
		Logger: logging.Discard(),
		Now:    fixedNow,
	})
	sized, _ := model.Update(tea.WindowSizeMsg{Width: 44, Height: 20})
	model, ok := sized.(pip.Model)
	require.True(t, ok)
	batch, ok := model.Init()().(tea.BatchMsg)
	require.True(t, ok)
	require.NotEmpty(t, batch)

	w := &companionWindow{t: t, model: model, results: make(chan tea.Msg, 1)}
	w.run(batch[0])
	return w
}

func (w *companionWindow) run(cmd tea.Cmd) {
	go func() { w.results <- cmd() }()
}

// settle applies every store change already published to the companion
func (w *companionWindow) settle() {
	w.t.Helper()
	for {
		select {
		case msg := <-w.results:
			require.NotNil(w.t, msg, "store subscription closed")
			next, cmd := w.model.Update(msg)
			model, ok := next.(pip.Model)
			require.True(w.t, ok)
			w.model = model
			require.NotNil(w.t, cmd)
			w.run(cmd)
		case <-time.After(50 * time.Millisecond):
			return
		}
	}
}

func assertSameFrame(t *testing.T, main Model, w *companionWindow) {
	t.Helper()
	want := render.Project(main.State().Timer())
	got := render.Project(w.model.Timer())
	assert.Equal(t, want.Clock, got.Clock)
	assert.InDelta(t, want.Angle, got.Angle, 1e-9)
	assert.Equal(t, want.Label, got.Label)
}

func TestCompanionMirrorsOpenerCountdown(t *testing.T) {
	env := newEnv(t)
	m := env.model()

	m, cmd := update(t, m, press("p"))
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	require.True(t, env.channel.IsOpen())

	w := openCompanionWindow(t, env, m.bootstrap())
	w.settle()
	assertSameFrame(t, m, w)
	assert.True(t, w.model.Timer().PipActive)

	m, _ = update(t, m, press(" "))
	w.settle()
	assertSameFrame(t, m, w)
	assert.True(t, w.model.Timer().IsRunning)

	// the first start issues tick generation 1
	for i := 0; i < 3; i++ {
		m, _ = update(t, m, tickMsg{generation: 1})
	}
	w.settle()
	assertSameFrame(t, m, w)
	assert.Equal(t, "24:57", render.Project(w.model.Timer()).Clock)
	assert.Contains(t, w.model.View(), "24:57")

	m, _ = update(t, m, press(" "))
	w.settle()
	assertSameFrame(t, m, w)
	assert.True(t, w.model.Timer().IsPaused)
}

func TestExternalImportSurvivesNextPersist(t *testing.T) {
	env := newEnv(t)
	m := env.model()

	require.NoError(t, store.NewMirror(env.other).SaveRecords(domain.Records{
		Settings: domain.Settings{FocusDuration: 30, ShortBreakDuration: 5, Theme: "ocean"},
		Stats:    domain.Stats{CompletedPomodoros: 4, LastDate: domain.DateKey(fixedNow())},
		Tasks:    []domain.Task{{ID: 11, Text: "Imported", Priority: domain.PriorityHigh}},
		Presets:  []domain.Preset{{Name: "Imported preset", FocusDuration: 30, ShortBreakDuration: 5}},
	}))
	m = drainChanges(t, m)

	assert.Equal(t, "ocean", m.styles.Theme)
	assert.Equal(t, 1800, m.State().Timer().TimeRemaining)
	require.Len(t, m.State().Tasks(), 1)
	require.Len(t, m.State().Presets(), 1)

	m, _ = update(t, m, press("s"))

	records, err := store.NewMirror(env.other).LoadRecords(domain.Records{})
	require.NoError(t, err)
	require.Len(t, records.Tasks, 1)
	assert.Equal(t, "Imported", records.Tasks[0].Text)
	require.Len(t, records.Presets, 1)
	assert.Equal(t, 5, records.Stats.CompletedPomodoros)
	assert.Equal(t, "ocean", records.Settings.Theme)
}

func TestExternalRecordsInvalidIgnored(t *testing.T) {
	env := newEnv(t)
	m := env.model()

	require.NoError(t, env.other.Put(store.KeyTasks, []byte(`{"not":"a list"}`)))
	m = drainChanges(t, m)

	assert.Empty(t, m.State().Tasks())
}
