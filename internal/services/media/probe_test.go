package media

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProber(t *testing.T) {
	prober := NewProber("http://localhost", 0)
	require.NotNil(t, prober)
	assert.True(t, prober.LastCheck().IsZero())
}

func TestProber_Check(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   bool
	}{
		{name: "ok", status: http.StatusOK, want: true},
		{name: "no content", status: http.StatusNoContent, want: true},
		{name: "server error", status: http.StatusInternalServerError, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodHead, r.Method)
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			prober := NewProber(server.URL, time.Second)

			assert.Equal(t, tt.want, prober.Check(context.Background()))
			assert.False(t, prober.LastCheck().IsZero())
		})
	}
}

func TestProber_ProbeCmd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	msg := NewProber(server.URL, time.Second).ProbeCmd()()

	assert.Equal(t, ProbeMsg{Reachable: true}, msg)
}
