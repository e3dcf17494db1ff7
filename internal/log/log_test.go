package log

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLog_FormatsFields(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf)
	t.Cleanup(func() { defaultLogger = nil })

	Warn(CatStore, "corrupt value", "key", "mara-gym/exercises")

	out := buf.String()
	require.Contains(t, out, "[WARN] [store] corrupt value key=mara-gym/exercises")
	require.True(t, out[len(out)-1] == '\n')
}

func TestLog_OddFieldCount(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf)
	t.Cleanup(func() { defaultLogger = nil })

	Info(CatLedger, "added", "id")

	require.Contains(t, buf.String(), "id=<missing>")
}

func TestLog_MinLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf)
	t.Cleanup(func() { defaultLogger = nil })

	SetMinLevel(LevelWarn)
	Debug(CatCache, "hit")
	Info(CatCache, "miss")
	require.Empty(t, buf.String())

	ErrorErr(CatBackup, "upload failed", nil)
	require.Contains(t, buf.String(), "error=<nil>")
}

func TestLog_Disabled(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf)
	t.Cleanup(func() { defaultLogger = nil })

	SetEnabled(false)
	Error(CatUI, "boom")
	require.Empty(t, buf.String())
}

func TestLog_NoLoggerIsNoop(t *testing.T) {
	defaultLogger = nil
	require.NotPanics(t, func() {
		Info(CatConfig, "nothing configured")
	})
}

func TestInit_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gymlog.log")
	cleanup, err := Init(path)
	require.NoError(t, err)
	t.Cleanup(func() { defaultLogger = nil })

	Info(CatConfig, "hello")
	cleanup()

	require.FileExists(t, path)
}

func TestInit_EmptyPath(t *testing.T) {
	_, err := Init("")
	require.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, LevelDebug, ParseLevel("debug"))
	require.Equal(t, LevelWarn, ParseLevel("warning"))
	require.Equal(t, LevelError, ParseLevel("ERROR"))
	require.Equal(t, LevelInfo, ParseLevel("nonsense"))
}
