package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/SeamusWaldron/nxcube"
)

// ActionKind names a journal entry type.
type ActionKind string

const (
	KindTurn        ActionKind = "turn"
	KindShuffleTurn ActionKind = "shuffle_turn"
	KindReset       ActionKind = "reset"
	KindRebuild     ActionKind = "rebuild"
)

// Action is one journal entry. Rotation is set for turns, Size and Mode for
// rebuilds.
type Action struct {
	ActionID    int64
	SessionID   string
	ActionIndex int
	TsMs        int64
	Kind        ActionKind
	Rotation    *nxcube.Rotation
	Face        string
	Size        int
	Mode        string
}

// ActionRepository provides CRUD operations for actions.
type ActionRepository struct {
	db *DB
}

// NewActionRepository creates a new action repository.
func NewActionRepository(db *DB) *ActionRepository {
	return &ActionRepository{db: db}
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func insertAction(x execer, a Action) (sql.Result, error) {
	var axis, layer, dir *int
	if a.Rotation != nil {
		ax, l, d := int(a.Rotation.Axis), a.Rotation.Layer, int(a.Rotation.Direction)
		axis, layer, dir = &ax, &l, &d
	}
	var size *int
	if a.Kind == KindRebuild {
		size = &a.Size
	}
	return x.Exec(`
		INSERT INTO actions (session_id, action_index, ts_ms, kind, axis, layer, direction, face, size, mode)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.SessionID, a.ActionIndex, a.TsMs, string(a.Kind), axis, layer, dir, nullable(a.Face), size, nullable(a.Mode))
}

// Create stores an action and returns its ID.
func (r *ActionRepository) Create(a Action) (int64, error) {
	result, err := insertAction(r.db, a)
	if err != nil {
		return 0, fmt.Errorf("failed to create action: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get action ID: %w", err)
	}
	return id, nil
}

// CreateBatch stores several actions in a single transaction.
func (r *ActionRepository) CreateBatch(actions []Action) error {
	return r.db.Transaction(func(tx *sql.Tx) error {
		for _, a := range actions {
			if _, err := insertAction(tx, a); err != nil {
				return fmt.Errorf("failed to create action %d: %w", a.ActionIndex, err)
			}
		}
		return nil
	})
}

// ListBySession retrieves the actions of a session in order.
func (r *ActionRepository) ListBySession(sessionID string) ([]Action, error) {
	rows, err := r.db.Query(`
		SELECT action_id, session_id, action_index, ts_ms, kind, axis, layer, direction, face, size, mode
		FROM actions
		WHERE session_id = ?
		ORDER BY action_index
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get actions: %w", err)
	}
	defer rows.Close()

	var actions []Action
	for rows.Next() {
		var a Action
		var kind string
		var axis, layer, dir, size sql.NullInt64
		var face, mode sql.NullString

		err := rows.Scan(&a.ActionID, &a.SessionID, &a.ActionIndex, &a.TsMs, &kind,
			&axis, &layer, &dir, &face, &size, &mode)
		if err != nil {
			return nil, fmt.Errorf("failed to scan action: %w", err)
		}

		a.Kind = ActionKind(kind)
		if axis.Valid && layer.Valid && dir.Valid {
			a.Rotation = &nxcube.Rotation{
				Axis:      nxcube.Axis(axis.Int64),
				Layer:     int(layer.Int64),
				Direction: nxcube.Direction(dir.Int64),
			}
		}
		a.Face = face.String
		a.Size = int(size.Int64)
		a.Mode = mode.String
		actions = append(actions, a)
	}
	return actions, rows.Err()
}

// Count returns the number of actions of the given kinds in a session. With
// no kinds every action is counted.
func (r *ActionRepository) Count(sessionID string, kinds ...ActionKind) (int, error) {
	query := "SELECT COUNT(*) FROM actions WHERE session_id = ?"
	args := []any{sessionID}
	if len(kinds) > 0 {
		query += " AND kind IN (?" + strings.Repeat(",?", len(kinds)-1) + ")"
		for _, k := range kinds {
			args = append(args, string(k))
		}
	}

	var count int
	if err := r.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count actions: %w", err)
	}
	return count, nil
}

// NextIndex returns the index the next action of a session should use.
func (r *ActionRepository) NextIndex(sessionID string) (int, error) {
	var next int
	err := r.db.QueryRow(`
		SELECT COALESCE(MAX(action_index) + 1, 0) FROM actions WHERE session_id = ?
	`, sessionID).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("failed to get next action index: %w", err)
	}
	return next, nil
}
