package eventlog

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/nxcube"
	"github.com/SeamusWaldron/nxcube/internal/protocol"
)

func readEvents(t *testing.T, path string) []map[string]any {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var events []map[string]any
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var ev map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &ev), sc.Text())
		events = append(events, ev)
	}
	require.NoError(t, sc.Err())
	return events
}

func TestLogger(t *testing.T) {
	l := New()
	require.NoError(t, l.Start(t.TempDir()))
	require.NotEmpty(t, l.FilePath())

	l.SetSession("abc", "GoCube_1")
	l.LogKey("R", true)
	l.LogTurn(nxcube.TurnEvent{
		Trigger: nxcube.Trigger{Rotation: nxcube.Rotation{Axis: nxcube.AxisX, Layer: 2, Direction: nxcube.Positive}, Key: 'R'},
	})
	l.LogShuffle([]nxcube.Rotation{{Axis: nxcube.AxisY, Layer: 0, Direction: nxcube.Negative}})
	l.LogReset()
	l.LogRebuild(4, nxcube.Void)
	l.LogDevice(&protocol.Message{Type: protocol.TypeBattery, Payload: []byte{80}}, "battery 80%")
	l.LogError("save", errors.New("disk full"))
	path := l.FilePath()
	require.NoError(t, l.Close())

	events := readEvents(t, path)
	var names []string
	for _, ev := range events {
		names = append(names, ev["msg"].(string))
	}
	assert.Equal(t, []string{"header", "key", "turn", "shuffle", "reset", "rebuild", "device", "error", "footer"}, names)

	assert.Equal(t, "abc", events[1]["session_id"])
	assert.Equal(t, "R", events[1]["key"])
	assert.Equal(t, "x2+", events[2]["rotation"])
	assert.Equal(t, "key", events[2]["cause"])
	assert.Equal(t, "void", events[5]["mode"])
	assert.Equal(t, "battery", events[6]["type"])
	assert.Contains(t, events[3], "elapsed_ms")
}

func TestNilLoggerDiscards(t *testing.T) {
	var l *Logger
	l.LogKey("R", true)
	l.LogReset()
	assert.Empty(t, l.FilePath())
	assert.NoError(t, l.Close())

	unstarted := New()
	unstarted.LogRebuild(3, nxcube.Standard)
	assert.NoError(t, unstarted.Close())
}

func TestAppLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewAppLogger(&buf, false)
	log.Debug("hidden")
	log.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	NewAppLogger(&buf, true).Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}
