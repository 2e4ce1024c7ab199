package media

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPTransport_Send(t *testing.T) {
	var got struct {
		Method string `json:"method"`
	}
	var origin, path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		origin = r.Header.Get("Origin")
		path = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	transport := NewHTTPTransport(server.URL+"/", "/player/command", time.Second)

	require.NoError(t, transport.Send(context.Background(), CommandNext))
	assert.Equal(t, "next", got.Method)
	assert.Equal(t, server.URL, origin)
	assert.Equal(t, "/player/command", path)
}

func TestHTTPTransport_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	transport := NewHTTPTransport(server.URL, "", time.Second)

	err := transport.Send(context.Background(), CommandPlay)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestHTTPTransport_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	err := NewHTTPTransport(url, "", time.Second).Send(context.Background(), CommandPause)
	assert.Error(t, err)
}
