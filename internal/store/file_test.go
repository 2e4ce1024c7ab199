package store

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openPair(t *testing.T) (*FileStore, *FileStore) {
	t.Helper()
	dir := t.TempDir()
	a, err := OpenFileStore(dir, "", nil)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	b, err := OpenFileStore(dir, "", nil)
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })
	return a, b
}

func receive(t *testing.T, ch <-chan Change) Change {
	t.Helper()
	select {
	case change := <-ch:
		return change
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change")
		return Change{}
	}
}

func TestFileStore_PutGet(t *testing.T) {
	a, b := openPair(t)

	require.NoError(t, a.Put(KeySettings, []byte(`{ "theme": "ocean" }`)))

	value, err := b.Get(KeySettings)
	require.NoError(t, err)
	assert.JSONEq(t, `{"theme":"ocean"}`, string(value))
	assert.FileExists(t, a.Path(KeySettings))
	assert.Contains(t, a.Path(KeySettings), "tomodoro_settings.json")
}

func TestFileStore_CrossInstanceChange(t *testing.T) {
	a, b := openPair(t)
	aChanges := a.Subscribe(8)
	bChanges := b.Subscribe(8)

	require.NoError(t, a.Put(KeyTimerState, []byte(`{"timeRemaining":1499}`)))

	change := receive(t, bChanges)
	assert.Equal(t, KeyTimerState, change.Key)
	assert.JSONEq(t, `{"timeRemaining":1499}`, string(change.Value))

	// The reverse direction proves a's watch is alive, and that it never
	// reported its own earlier write.
	require.NoError(t, b.Put(KeyMediaState, []byte(`{"isPlaying":true}`)))
	change = receive(t, aChanges)
	assert.Equal(t, KeyMediaState, change.Key)
}

func TestFileStore_IgnoresUnrelatedFiles(t *testing.T) {
	a, b := openPair(t)
	changes := b.Subscribe(8)

	require.NoError(t, os.WriteFile(a.dir+"/notes.txt", []byte("hi"), 0o644))
	require.NoError(t, a.Put(KeyTasks, []byte(`[]`)))

	change := receive(t, changes)
	assert.Equal(t, KeyTasks, change.Key)
}

func TestFileStore_RejectsInvalidJSON(t *testing.T) {
	a, _ := openPair(t)
	err := a.Put(KeyStats, []byte(`{not json`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store put [stats]")
}

func TestFileStore_GetMissing(t *testing.T) {
	a, _ := openPair(t)
	value, err := a.Get(KeyPresets)
	require.NoError(t, err)
	assert.Nil(t, value)
}
