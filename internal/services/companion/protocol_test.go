package companion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage_Validate(t *testing.T) {
	tests := []struct {
		name    string
		msg     Message
		wantErr bool
	}{
		{name: "companion command", msg: Message{Action: ActionSkipTimer}},
		{name: "close", msg: Message{Action: ActionCloseCompanion}},
		{name: "notification", msg: Message{Action: ActionShowNotification, Message: "hi"}},
		{name: "notification without text", msg: Message{Action: ActionShowNotification}, wantErr: true},
		{name: "theme without name", msg: Message{Action: ActionUpdateTheme}, wantErr: true},
		{name: "init without bootstrap", msg: Message{Action: ActionInit}, wantErr: true},
		{name: "unknown action", msg: Message{Action: "openPip"}, wantErr: true},
		{name: "empty action", msg: Message{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.msg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestAction_Direction(t *testing.T) {
	assert.True(t, ActionNextTrack.FromCompanion())
	assert.False(t, ActionNextTrack.FromOpener())
	assert.True(t, ActionUpdateTheme.FromOpener())
	assert.False(t, ActionUpdateTheme.FromCompanion())
}

func TestCodec_DeterministicBootstrap(t *testing.T) {
	msg := Message{Action: ActionInit, Bootstrap: &Bootstrap{Theme: "dark", Themes: map[string]string{
		"default": "#282c34", "dark": "#1c2526", "ocean": "#2b3e50",
	}}}

	first, err := Marshal(msg)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Marshal(msg)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	var decoded Message
	require.NoError(t, Unmarshal(first, &decoded))
	assert.Equal(t, msg, decoded)
}
