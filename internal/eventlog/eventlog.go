// Package eventlog writes a JSON-lines trace of a play session: key
// presses, committed turns, shuffles, resets, rebuilds and device frames.
package eventlog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/SeamusWaldron/nxcube"
	"github.com/SeamusWaldron/nxcube/internal/protocol"
)

// Logger writes session events to a JSONL file. A nil or unstarted Logger
// discards everything.
type Logger struct {
	log   *zap.Logger
	file  *os.File
	path  string
	start time.Time
}

// New returns a logger that discards events until Start is called.
func New() *Logger {
	return &Logger{}
}

// Start opens a new timestamped log file in dir.
func (l *Logger) Start(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	l.start = time.Now()
	path := filepath.Join(dir, fmt.Sprintf("session_%s.jsonl", l.start.Format("20060102_150405")))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(file),
		zap.DebugLevel,
	)
	l.file = file
	l.path = path
	l.log = zap.New(core)
	l.log.Info("header", zap.String("version", "1.0"), zap.Time("created_at", l.start))
	return nil
}

// FilePath returns the path of the open log file.
func (l *Logger) FilePath() string {
	if l == nil {
		return ""
	}
	return l.path
}

func (l *Logger) event(name string, fields ...zap.Field) {
	if l == nil || l.log == nil {
		return
	}
	fields = append(fields, zap.Int64("elapsed_ms", time.Since(l.start).Milliseconds()))
	l.log.Info(name, fields...)
}

// SetSession tags every later event with the journal session ID.
func (l *Logger) SetSession(sessionID, deviceName string) {
	if l == nil || l.log == nil {
		return
	}
	l.log = l.log.With(zap.String("session_id", sessionID), zap.String("device", deviceName))
}

// LogKey records a key press and whether it was accepted.
func (l *Logger) LogKey(key string, accepted bool) {
	l.event("key", zap.String("key", key), zap.Bool("accepted", accepted))
}

// LogTurn records a committed turn.
func (l *Logger) LogTurn(ev nxcube.TurnEvent) {
	l.event("turn",
		zap.Int("index", ev.Index),
		zap.Stringer("rotation", ev.Rotation),
		zap.Stringer("cause", ev.Cause),
	)
}

// LogShuffle records the turns of a shuffle.
func (l *Logger) LogShuffle(turns []nxcube.Rotation) {
	names := make([]string, len(turns))
	for i, r := range turns {
		names[i] = r.String()
	}
	l.event("shuffle", zap.Strings("turns", names))
}

// LogReset records a reset to solved.
func (l *Logger) LogReset() {
	l.event("reset")
}

// LogRebuild records a change of size or mode.
func (l *Logger) LogRebuild(n int, m nxcube.Mode) {
	l.event("rebuild", zap.Int("size", n), zap.Stringer("mode", m))
}

// LogDevice records a frame received from a smart cube.
func (l *Logger) LogDevice(msg *protocol.Message, description string) {
	l.event("device",
		zap.String("type", protocol.TypeName(msg.Type)),
		zap.Binary("payload", msg.Payload),
		zap.String("description", description),
	)
}

// LogError records a failure that did not stop the session.
func (l *Logger) LogError(what string, err error) {
	l.event("error", zap.String("what", what), zap.Error(err))
}

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	if l == nil || l.log == nil {
		return nil
	}
	l.event("footer")
	_ = l.log.Sync()
	l.log = nil
	return l.file.Close()
}

// NewAppLogger returns the diagnostics logger for commands. Only warnings
// and errors are written unless verbose is set.
func NewAppLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zap.WarnLevel
	if verbose {
		level = zap.DebugLevel
	}
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	return zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.AddSync(w), level))
}
