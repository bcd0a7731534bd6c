// Package device connects to GoCube smart cubes over Bluetooth LE.
package device

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"tinygo.org/x/bluetooth"

	"github.com/SeamusWaldron/nxcube/internal/protocol"
)

var (
	ErrNotConnected     = errors.New("device: not connected")
	ErrAlreadyConnected = errors.New("device: already connected")
	ErrDeviceNotFound   = errors.New("device: not found")
	ErrServiceNotFound  = errors.New("device: GoCube service not found")
)

// NamePrefix is matched case-insensitively against advertised names.
const NamePrefix = "gocube"

var (
	serviceUUID = mustUUID(protocol.ServiceUUID)
	txCharUUID  = mustUUID(protocol.TxCharUUID)
	rxCharUUID  = mustUUID(protocol.RxCharUUID)
)

func mustUUID(s string) bluetooth.UUID {
	u, err := bluetooth.ParseUUID(s)
	if err != nil {
		panic(fmt.Sprintf("device: bad UUID %q: %v", s, err))
	}
	return u
}

// ScanResult is a discovered cube.
type ScanResult struct {
	Name    string
	ID      string
	RSSI    int16
	Address bluetooth.Address
}

// IsGoCube reports whether an advertised name belongs to a GoCube.
func IsGoCube(name string) bool {
	return strings.HasPrefix(strings.ToLower(name), NamePrefix)
}

// Client manages the connection to one cube.
type Client struct {
	adapter *bluetooth.Adapter
	device  bluetooth.Device
	rxChar  bluetooth.DeviceCharacteristic

	mu        sync.RWMutex
	connected bool
	name      string
	id        string
	battery   int

	onMessage func(*protocol.Message)
	onError   func(error)
}

// NewClient enables the default adapter.
func NewClient() (*Client, error) {
	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("failed to enable BLE adapter: %w", err)
	}
	return &Client{adapter: adapter, battery: -1}, nil
}

// SetMessageCallback sets the callback for parsed notifications. It runs on
// the adapter's goroutine.
func (c *Client) SetMessageCallback(cb func(*protocol.Message)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onMessage = cb
}

// SetErrorCallback sets the callback for frames that fail to parse.
func (c *Client) SetErrorCallback(cb func(error)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onError = cb
}

// Scan collects cubes seen until timeout or ctx ends.
func (c *Client) Scan(ctx context.Context, timeout time.Duration) ([]ScanResult, error) {
	if c.IsConnected() {
		return nil, ErrAlreadyConnected
	}

	var (
		mu      sync.Mutex
		results []ScanResult
		seen    = make(map[string]bool)
		done    = make(chan error, 1)
	)

	go func() {
		done <- c.adapter.Scan(func(_ *bluetooth.Adapter, r bluetooth.ScanResult) {
			addr := r.Address.String()
			mu.Lock()
			defer mu.Unlock()
			if seen[addr] || !IsGoCube(r.LocalName()) {
				return
			}
			seen[addr] = true
			results = append(results, ScanResult{Name: r.LocalName(), ID: addr, RSSI: r.RSSI, Address: r.Address})
		})
	}()

	select {
	case <-time.After(timeout):
	case <-ctx.Done():
	case err := <-done:
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
	}
	c.adapter.StopScan()

	mu.Lock()
	defer mu.Unlock()
	return append([]ScanResult(nil), results...), nil
}

// Connect scans for the cube with the given ID and connects to it.
func (c *Client) Connect(ctx context.Context, id string, timeout time.Duration) error {
	if c.IsConnected() {
		return ErrAlreadyConnected
	}

	found := make(chan ScanResult, 1)
	var once sync.Once
	go c.adapter.Scan(func(_ *bluetooth.Adapter, r bluetooth.ScanResult) {
		if r.Address.String() == id {
			once.Do(func() {
				found <- ScanResult{Name: r.LocalName(), ID: id, RSSI: r.RSSI, Address: r.Address}
			})
		}
	})

	var target ScanResult
	select {
	case target = <-found:
		c.adapter.StopScan()
	case <-time.After(timeout):
		c.adapter.StopScan()
		return ErrDeviceNotFound
	case <-ctx.Done():
		c.adapter.StopScan()
		return ctx.Err()
	}
	return c.ConnectToResult(target)
}

// ConnectToResult connects to a cube found by Scan, subscribes to its
// notifications and asks for the battery level.
func (c *Client) ConnectToResult(result ScanResult) error {
	if c.IsConnected() {
		return ErrAlreadyConnected
	}

	dev, err := c.adapter.Connect(result.Address, bluetooth.ConnectionParams{})
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	services, err := dev.DiscoverServices([]bluetooth.UUID{serviceUUID})
	if err != nil {
		dev.Disconnect()
		return fmt.Errorf("failed to discover services: %w", err)
	}
	if len(services) == 0 {
		dev.Disconnect()
		return ErrServiceNotFound
	}

	chars, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{txCharUUID, rxCharUUID})
	if err != nil {
		dev.Disconnect()
		return fmt.Errorf("failed to discover characteristics: %w", err)
	}

	var tx, rx bluetooth.DeviceCharacteristic
	for _, ch := range chars {
		switch ch.UUID() {
		case txCharUUID:
			tx = ch
		case rxCharUUID:
			rx = ch
		}
	}

	if err := tx.EnableNotifications(c.handleNotification); err != nil {
		dev.Disconnect()
		return fmt.Errorf("failed to enable notifications: %w", err)
	}

	c.mu.Lock()
	c.device = dev
	c.rxChar = rx
	c.connected = true
	c.name = result.Name
	c.id = result.ID
	c.mu.Unlock()

	return c.RequestBattery()
}

// Disconnect drops the connection, if any.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return nil
	}
	err := c.device.Disconnect()
	c.connected = false
	c.name = ""
	c.id = ""
	c.battery = -1
	return err
}

// IsConnected reports whether a cube is connected.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// DeviceName returns the connected cube's advertised name.
func (c *Client) DeviceName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.name
}

// DeviceID returns the connected cube's address.
func (c *Client) DeviceID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.id
}

// Battery returns the last reported battery level, -1 if unknown.
func (c *Client) Battery() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.battery
}

// SendCommand writes a command frame to the cube.
func (c *Client) SendCommand(cmd byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.connected {
		return ErrNotConnected
	}
	data := protocol.BuildCommand(cmd)
	if _, err := c.rxChar.WriteWithoutResponse(data); err != nil {
		if _, err := c.rxChar.Write(data); err != nil {
			return fmt.Errorf("failed to send command 0x%02X: %w", cmd, err)
		}
	}
	return nil
}

// RequestBattery asks the cube for its battery level.
func (c *Client) RequestBattery() error {
	return c.SendCommand(protocol.CmdRequestBattery)
}

// ResetSolved tells the cube its current state is solved, matching a
// freshly reset puzzle.
func (c *Client) ResetSolved() error {
	return c.SendCommand(protocol.CmdResetSolved)
}

// FlashBacklight flashes the cube's backlight.
func (c *Client) FlashBacklight() error {
	return c.SendCommand(protocol.CmdFlashBacklight)
}

func (c *Client) handleNotification(data []byte) {
	msg, err := protocol.Parse(data)

	c.mu.Lock()
	if err == nil && msg.Type == protocol.TypeBattery {
		if b, derr := protocol.DecodeBattery(msg.Payload); derr == nil {
			c.battery = b.Level
		}
	}
	onMessage, onError := c.onMessage, c.onError
	c.mu.Unlock()

	if err != nil {
		if onError != nil {
			onError(err)
		}
		return
	}
	if onMessage != nil {
		onMessage(msg)
	}
}
