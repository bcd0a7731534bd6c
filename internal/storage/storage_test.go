package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/nxcube"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenAndMigrate(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrateUp(t *testing.T) {
	db := openTestDB(t)

	version, err := db.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, 2, version)

	// Applying again is a no-op.
	require.NoError(t, db.MigrateUp())
	version, err = db.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, 2, version)
}

func TestSessionLifecycle(t *testing.T) {
	db := openTestDB(t)
	sessions := NewSessionRepository(db)

	id, err := sessions.Create(4, "mirror", "", "GoCube_1234", "AA:BB", "dev")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	s, err := sessions.Get(id)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, 4, s.Size)
	assert.Equal(t, "mirror", s.Mode)
	assert.Nil(t, s.Notes)
	require.NotNil(t, s.DeviceName)
	assert.Equal(t, "GoCube_1234", *s.DeviceName)
	assert.Nil(t, s.EndedAt)

	require.NoError(t, sessions.End(id))
	s, err = sessions.Get(id)
	require.NoError(t, err)
	require.NotNil(t, s.EndedAt)
	require.NotNil(t, s.DurationMs)
	assert.GreaterOrEqual(t, *s.DurationMs, int64(0))

	found, err := sessions.FindByPrefix(id[:8])
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, id, found.SessionID)

	missing, err := sessions.Get("no-such-session")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSessionListAndLatest(t *testing.T) {
	db := openTestDB(t)
	sessions := NewSessionRepository(db)

	latest, err := sessions.Latest()
	require.NoError(t, err)
	assert.Nil(t, latest)

	var ids []string
	for i := 0; i < 3; i++ {
		id, err := sessions.Create(3, "standard", "", "", "", "")
		require.NoError(t, err)
		ids = append(ids, id)
	}

	list, err := sessions.List(2)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	latest, err = sessions.Latest()
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Contains(t, ids, latest.SessionID)
}

func TestActions(t *testing.T) {
	db := openTestDB(t)
	sessions := NewSessionRepository(db)
	actions := NewActionRepository(db)

	id, err := sessions.Create(3, "standard", "", "", "", "")
	require.NoError(t, err)

	next, err := actions.NextIndex(id)
	require.NoError(t, err)
	assert.Equal(t, 0, next)

	r := nxcube.Rotation{Axis: nxcube.AxisX, Layer: 2, Direction: nxcube.Positive}
	_, err = actions.Create(Action{SessionID: id, ActionIndex: 0, TsMs: 10, Kind: KindTurn, Rotation: &r, Face: "R"})
	require.NoError(t, err)

	shuffle := []Action{
		{SessionID: id, ActionIndex: 1, TsMs: 20, Kind: KindShuffleTurn, Rotation: &nxcube.Rotation{Axis: nxcube.AxisY, Layer: 0, Direction: nxcube.Negative}},
		{SessionID: id, ActionIndex: 2, TsMs: 20, Kind: KindShuffleTurn, Rotation: &nxcube.Rotation{Axis: nxcube.AxisZ, Layer: 1, Direction: nxcube.Positive}},
		{SessionID: id, ActionIndex: 3, TsMs: 30, Kind: KindReset},
		{SessionID: id, ActionIndex: 4, TsMs: 40, Kind: KindRebuild, Size: 5, Mode: "void"},
	}
	require.NoError(t, actions.CreateBatch(shuffle))

	list, err := actions.ListBySession(id)
	require.NoError(t, err)
	require.Len(t, list, 5)

	assert.Equal(t, KindTurn, list[0].Kind)
	require.NotNil(t, list[0].Rotation)
	assert.Equal(t, r, *list[0].Rotation)
	assert.Equal(t, "R", list[0].Face)

	assert.Equal(t, nxcube.Negative, list[1].Rotation.Direction)
	assert.Nil(t, list[3].Rotation)
	assert.Equal(t, KindRebuild, list[4].Kind)
	assert.Equal(t, 5, list[4].Size)
	assert.Equal(t, "void", list[4].Mode)

	turns, err := actions.Count(id, KindTurn, KindShuffleTurn)
	require.NoError(t, err)
	assert.Equal(t, 3, turns)

	total, err := actions.Count(id)
	require.NoError(t, err)
	assert.Equal(t, 5, total)

	next, err = actions.NextIndex(id)
	require.NoError(t, err)
	assert.Equal(t, 5, next)
}

func TestCreateBatchRollsBack(t *testing.T) {
	db := openTestDB(t)
	sessions := NewSessionRepository(db)
	actions := NewActionRepository(db)

	id, err := sessions.Create(3, "standard", "", "", "", "")
	require.NoError(t, err)

	batch := []Action{
		{SessionID: id, ActionIndex: 0, Kind: KindReset},
		{SessionID: id, ActionIndex: 0, Kind: KindReset},
	}
	require.Error(t, actions.CreateBatch(batch))

	total, err := actions.Count(id)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestDeleteCascades(t *testing.T) {
	db := openTestDB(t)
	sessions := NewSessionRepository(db)
	actions := NewActionRepository(db)
	events := NewDeviceEventRepository(db)

	id, err := sessions.Create(3, "standard", "", "", "", "")
	require.NoError(t, err)
	_, err = actions.Create(Action{SessionID: id, Kind: KindReset})
	require.NoError(t, err)
	_, err = events.Create(id, 5, "rotation", `{"face":"R"}`, nil)
	require.NoError(t, err)

	require.NoError(t, sessions.Delete(id))

	total, err := actions.Count(id)
	require.NoError(t, err)
	assert.Zero(t, total)
	n, err := events.Count(id)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDeviceEvents(t *testing.T) {
	db := openTestDB(t)
	sessions := NewSessionRepository(db)
	events := NewDeviceEventRepository(db)

	id, err := sessions.Create(3, "standard", "", "", "", "")
	require.NoError(t, err)

	raw := "KgYBAAE="
	_, err = events.Create(id, 1, "rotation", `{"face":"U"}`, &raw)
	require.NoError(t, err)
	_, err = events.Create(id, 2, "battery", `{"level":80}`, nil)
	require.NoError(t, err)

	all, err := events.ListBySession(id, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.NotNil(t, all[0].RawPayloadBase64)
	assert.Equal(t, raw, *all[0].RawPayloadBase64)

	battery, err := events.ListBySession(id, "battery")
	require.NoError(t, err)
	require.Len(t, battery, 1)
	assert.Equal(t, int64(2), battery[0].TsMs)
}
