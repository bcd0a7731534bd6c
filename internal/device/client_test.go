package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/nxcube/internal/protocol"
)

func batteryFrame(level byte) []byte {
	data := []byte{0x2A, 0x05, protocol.TypeBattery, level}
	var sum byte
	for _, b := range data {
		sum += b
	}
	return append(data, sum, 0x0D, 0x0A)
}

func TestIsGoCube(t *testing.T) {
	assert.True(t, IsGoCube("GoCube_4F2A"))
	assert.True(t, IsGoCube("gocubeedge"))
	assert.False(t, IsGoCube("Rubiks Connected"))
	assert.False(t, IsGoCube(""))
}

func TestHandleNotification(t *testing.T) {
	c := &Client{battery: -1}

	var got []*protocol.Message
	var errs []error
	c.SetMessageCallback(func(m *protocol.Message) { got = append(got, m) })
	c.SetErrorCallback(func(err error) { errs = append(errs, err) })

	c.handleNotification(batteryFrame(64))
	require.Len(t, got, 1)
	assert.Equal(t, protocol.TypeBattery, got[0].Type)
	assert.Equal(t, 64, c.Battery())

	c.handleNotification([]byte{0x00, 0x01, 0x02, 0x03, 0x04})
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], protocol.ErrInvalidPrefix)
	assert.Len(t, got, 1)
}

func TestSendCommandRequiresConnection(t *testing.T) {
	c := &Client{battery: -1}
	assert.ErrorIs(t, c.RequestBattery(), ErrNotConnected)
	assert.NoError(t, c.Disconnect())
	assert.False(t, c.IsConnected())
}

func TestServiceUUIDs(t *testing.T) {
	assert.Equal(t, protocol.ServiceUUID, serviceUUID.String())
	assert.Equal(t, protocol.TxCharUUID, txCharUUID.String())
	assert.Equal(t, protocol.RxCharUUID, rxCharUUID.String())
}
