package storage

import (
	"fmt"
)

// DeviceEvent is a decoded smart cube frame kept alongside a session.
type DeviceEvent struct {
	EventID          int64
	SessionID        string
	TsMs             int64
	EventType        string
	PayloadJSON      string
	RawPayloadBase64 *string
}

// DeviceEventRepository provides CRUD operations for device events.
type DeviceEventRepository struct {
	db *DB
}

// NewDeviceEventRepository creates a new device event repository.
func NewDeviceEventRepository(db *DB) *DeviceEventRepository {
	return &DeviceEventRepository{db: db}
}

// Create stores a device event and returns its ID.
func (r *DeviceEventRepository) Create(sessionID string, tsMs int64, eventType, payloadJSON string, rawBase64 *string) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO device_events (session_id, ts_ms, event_type, payload_json, raw_payload_base64)
		VALUES (?, ?, ?, ?, ?)
	`, sessionID, tsMs, eventType, payloadJSON, rawBase64)
	if err != nil {
		return 0, fmt.Errorf("failed to create device event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get device event ID: %w", err)
	}
	return id, nil
}

// ListBySession retrieves the device events of a session, optionally
// restricted to one event type.
func (r *DeviceEventRepository) ListBySession(sessionID, eventType string) ([]DeviceEvent, error) {
	query := `
		SELECT event_id, session_id, ts_ms, event_type, payload_json, raw_payload_base64
		FROM device_events
		WHERE session_id = ?`
	args := []any{sessionID}
	if eventType != "" {
		query += " AND event_type = ?"
		args = append(args, eventType)
	}
	query += " ORDER BY ts_ms, event_id"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get device events: %w", err)
	}
	defer rows.Close()

	var events []DeviceEvent
	for rows.Next() {
		var e DeviceEvent
		err := rows.Scan(&e.EventID, &e.SessionID, &e.TsMs, &e.EventType, &e.PayloadJSON, &e.RawPayloadBase64)
		if err != nil {
			return nil, fmt.Errorf("failed to scan device event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Count returns the number of device events for a session.
func (r *DeviceEventRepository) Count(sessionID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM device_events WHERE session_id = ?", sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count device events: %w", err)
	}
	return count, nil
}
