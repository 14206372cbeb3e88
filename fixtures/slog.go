package fixtures

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/databricks/databricks-sdk-go/logger"
	"github.com/databrickslabs/sandbox/tally/lite"
)

func init() {
	logDir, ok := os.LookupEnv("TALLY_LOG_DIR")
	if !ok {
		// we're debugging from IDE
		logger.DefaultLogger = &logger.SimpleLogger{
			Level: logger.LevelDebug,
		}
		return
	}
	filename := filepath.Join(logDir, "go-slog.json")
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		panic(err)
	}
	// we don't close file descriptor, as this is test-binary-wide logger
	logger.DefaultLogger = lite.Adapt(newJSON(file).With("global", true))
}

// Context returns a context carrying a logger that writes JSON records into
// the log of t, so they only show up for failing or verbose tests.
func Context(t testing.TB) context.Context {
	t.Helper()
	return logger.NewContext(context.Background(), lite.Adapt(
		newJSON(&testWriter{t}).With("test", t.Name()),
	))
}

func newJSON(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

type testWriter struct {
	t testing.TB
}

func (w *testWriter) Write(p []byte) (int, error) {
	w.t.Log(strings.TrimSpace(string(p)))
	return len(p), nil
}
