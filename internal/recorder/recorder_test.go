package recorder

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/nxcube"
	"github.com/SeamusWaldron/nxcube/internal/protocol"
	"github.com/SeamusWaldron/nxcube/internal/storage"
)

func openTestDB(t *testing.T) *storage.DB {
	t.Helper()
	db, err := storage.OpenAndMigrate(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// wire journals every controller action into s.
func wire(t *testing.T, c *nxcube.Controller, s *Session) {
	c.SetTurnCallback(func(ev nxcube.TurnEvent) { require.NoError(t, s.RecordTurn(ev)) })
	c.SetShuffleCallback(func(turns []nxcube.Rotation) { require.NoError(t, s.RecordShuffle(turns)) })
	c.SetResetCallback(func() { require.NoError(t, s.RecordReset()) })
	c.SetRebuildCallback(func(n int, m nxcube.Mode) { require.NoError(t, s.RecordRebuild(n, m)) })
}

func play(t *testing.T, c *nxcube.Controller, keys string) {
	for _, k := range keys {
		require.True(t, c.Press(k), "key %c", k)
		c.Flush()
	}
}

func assertSamePuzzle(t *testing.T, want, got *nxcube.Puzzle) {
	t.Helper()
	require.Equal(t, want.Size(), got.Size())
	require.Equal(t, want.Mode(), got.Mode())
	for _, f := range nxcube.Faces {
		assert.Equal(t, want.Facelets(f), got.Facelets(f), "face %s", f)
	}
	for _, c := range want.Cubies() {
		other, ok := got.Cubie(c.ID)
		require.True(t, ok)
		assert.Equal(t, c.Grid, other.Grid, "cubie %d", c.ID)
	}
}

func TestSessionStateMachine(t *testing.T) {
	db := openTestDB(t)
	sf, err := OpenStateFile(t.TempDir())
	require.NoError(t, err)

	s := NewSession(db, sf, nil)
	assert.Equal(t, StateIdle, s.State())
	assert.ErrorIs(t, s.End(), ErrNoSession)

	id, err := s.Start(3, nxcube.Standard, "", "", "", "test")
	require.NoError(t, err)
	assert.Equal(t, StateRecording, s.State())
	assert.Equal(t, id, sf.ActiveSessionID())

	_, err = s.Start(3, nxcube.Standard, "", "", "", "test")
	assert.ErrorIs(t, err, ErrSessionActive)

	require.NoError(t, s.End())
	assert.Equal(t, StateEnded, s.State())
	assert.Empty(t, sf.ActiveSessionID())

	// Recording after the end is ignored.
	require.NoError(t, s.RecordReset())
	n, err := storage.NewActionRepository(db).Count(id)
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.ErrorIs(t, s.Resume(id), ErrSessionEnded)
	assert.ErrorIs(t, s.Resume("missing"), ErrSessionNotFound)
}

func TestRecordAndReplay(t *testing.T) {
	db := openTestDB(t)
	s := NewSession(db, nil, nil)

	c, err := nxcube.NewController(3, nxcube.WithSeed(7), nxcube.WithShuffleTurns(6))
	require.NoError(t, err)
	wire(t, c, s)

	id, err := s.Start(3, nxcube.Standard, "", "", "", "test")
	require.NoError(t, err)

	play(t, c, "RUFM")
	_, err = c.Shuffle()
	require.NoError(t, err)
	play(t, c, "lbS")
	require.NoError(t, c.Resize(4))
	play(t, c, "RRD")
	require.NoError(t, c.CycleMode())
	play(t, c, "UF")

	assert.Equal(t, 4+6+3+1+3+1+2, s.ActionCount())

	sessions := storage.NewSessionRepository(db)
	sess, err := sessions.Get(id)
	require.NoError(t, err)
	actions, err := storage.NewActionRepository(db).ListBySession(id)
	require.NoError(t, err)
	require.Len(t, actions, s.ActionCount())

	got, err := Replay(sess, actions)
	require.NoError(t, err)
	assertSamePuzzle(t, c.Puzzle(), got)
	t.Log(got.String())

	// Replaying up to the first rebuild gives the 3x3 state before it.
	partial, err := ReplayUntil(sess, actions, 13)
	require.NoError(t, err)
	assert.Equal(t, 3, partial.Size())
	assert.False(t, partial.IsSolved())
}

func TestReplayAfterReset(t *testing.T) {
	db := openTestDB(t)
	s := NewSession(db, nil, nil)

	c, err := nxcube.NewController(5, nxcube.WithSeed(1))
	require.NoError(t, err)
	wire(t, c, s)

	id, err := s.Start(5, nxcube.Standard, "", "", "", "test")
	require.NoError(t, err)

	play(t, c, "RUE")
	c.Reset()
	play(t, c, "F")

	sess, err := storage.NewSessionRepository(db).Get(id)
	require.NoError(t, err)
	actions, err := storage.NewActionRepository(db).ListBySession(id)
	require.NoError(t, err)

	got, err := Replay(sess, actions)
	require.NoError(t, err)
	assertSamePuzzle(t, c.Puzzle(), got)
}

func TestResumeContinuesIndex(t *testing.T) {
	db := openTestDB(t)
	s := NewSession(db, nil, nil)

	c, err := nxcube.NewController(3)
	require.NoError(t, err)
	wire(t, c, s)

	id, err := s.Start(3, nxcube.Standard, "", "", "", "test")
	require.NoError(t, err)
	play(t, c, "RU")

	// A fresh process picks the session back up.
	resumed := NewSession(db, nil, nil)
	require.NoError(t, resumed.Resume(id))
	assert.Equal(t, 2, resumed.ActionCount())
	wire(t, c, resumed)
	play(t, c, "F")

	actions, err := storage.NewActionRepository(db).ListBySession(id)
	require.NoError(t, err)
	require.Len(t, actions, 3)
	assert.Equal(t, 2, actions[2].ActionIndex)
	assert.Equal(t, "F", actions[2].Face)
}

func TestHandleDeviceMessage(t *testing.T) {
	db := openTestDB(t)
	s := NewSession(db, nil, nil)

	// yellow counterclockwise, green clockwise
	raw := []byte{0x2A, 0x08, 0x01, 0x07, 0x00, 0x02, 0x03}
	var sum byte
	for _, b := range raw {
		sum += b
	}
	raw = append(raw, sum, 0x0D, 0x0A)
	msg, err := protocol.Parse(raw)
	require.NoError(t, err)

	// Not recording: turns are still decoded but nothing is stored.
	turns, err := s.HandleDeviceMessage(msg)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, nxcube.FaceD, turns[0].Face)
	assert.False(t, turns[0].Clockwise)
	assert.Equal(t, nxcube.FaceF, turns[1].Face)
	assert.True(t, turns[1].Clockwise)

	id, err := s.Start(3, nxcube.Standard, "", "GoCube", "AA", "test")
	require.NoError(t, err)
	_, err = s.HandleDeviceMessage(msg)
	require.NoError(t, err)

	events, err := storage.NewDeviceEventRepository(db).ListBySession(id, "rotation")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, msg.RawBase64, *events[0].RawPayloadBase64)
}

func TestStateFile(t *testing.T) {
	dir := t.TempDir()
	sf, err := OpenStateFile(dir)
	require.NoError(t, err)
	assert.Equal(t, AppState{}, sf.State())

	require.NoError(t, sf.SetLastPuzzle(4, "mirror"))
	require.NoError(t, sf.SetLastDevice("AA:BB", "GoCube_1"))
	require.NoError(t, sf.SetActiveSession("abc"))

	reloaded, err := OpenStateFile(dir)
	require.NoError(t, err)
	state := reloaded.State()
	assert.Equal(t, 4, state.LastSize)
	assert.Equal(t, "mirror", state.LastMode)
	assert.Equal(t, "GoCube_1", state.LastDeviceName)
	assert.Equal(t, "abc", reloaded.ActiveSessionID())
}
