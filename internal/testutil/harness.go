package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/gretago/internal/app"
	"github.com/specialistvlad/gretago/internal/ctxlog"
	"github.com/specialistvlad/gretago/internal/hcl"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// Context returns a background context whose logger discards everything.
func Context() context.Context {
	return ctxlog.WithLogger(context.Background(), ctxlog.Discard())
}

// WriteFiles writes the given relative paths and contents into a fresh
// temporary directory and returns its path.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

// HarnessResult holds the outcomes of an application test run.
type HarnessResult struct {
	App *app.App
	// Err is the error of NewApp, if any.
	Err error
	Out *SafeBuffer
	Log *SafeBuffer
}

// NewApp writes files to a temporary directory and creates an App over it
// with debug logging. Tweak may adjust the configuration before validation.
// The App is closed when the test ends.
func NewApp(t *testing.T, files map[string]string, tweak func(*app.Config)) *HarnessResult {
	t.Helper()

	cfg := app.Config{
		Paths:     []string{WriteFiles(t, files)},
		LogLevel:  "debug",
		LogFormat: "text",
	}
	if tweak != nil {
		tweak(&cfg)
	}
	validated, err := app.NewConfig(cfg)
	require.NoError(t, err)

	res := &HarnessResult{Out: &SafeBuffer{}, Log: &SafeBuffer{}}
	res.App, res.Err = app.NewApp(context.Background(), res.Out, res.Log, validated, hcl.NewLoader())
	if res.App != nil {
		t.Cleanup(func() { _ = res.App.Close(context.Background()) })
	}
	return res
}
