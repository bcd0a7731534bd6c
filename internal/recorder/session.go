package recorder

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/SeamusWaldron/nxcube"
	"github.com/SeamusWaldron/nxcube/internal/protocol"
	"github.com/SeamusWaldron/nxcube/internal/storage"
)

var (
	ErrSessionActive   = errors.New("recorder: session already in progress")
	ErrNoSession       = errors.New("recorder: no session in progress")
	ErrSessionNotFound = errors.New("recorder: session not found")
	ErrSessionEnded    = errors.New("recorder: session already ended")
)

// SessionState is the lifecycle state of a recording session.
type SessionState int

const (
	StateIdle SessionState = iota
	StateRecording
	StateEnded
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Session journals the actions of one play session. Methods are safe for
// concurrent use; Record calls outside StateRecording are ignored.
type Session struct {
	stateFile *StateFile
	log       *zap.Logger

	mu        sync.RWMutex
	state     SessionState
	sessionID string
	startTime time.Time
	index     int

	sessions *storage.SessionRepository
	actions  *storage.ActionRepository
	events   *storage.DeviceEventRepository
}

// NewSession creates a session manager. stateFile and log may be nil.
func NewSession(db *storage.DB, stateFile *StateFile, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		stateFile: stateFile,
		log:       log,
		state:     StateIdle,
		sessions:  storage.NewSessionRepository(db),
		actions:   storage.NewActionRepository(db),
		events:    storage.NewDeviceEventRepository(db),
	}
}

// State returns the current session state.
func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SessionID returns the current session ID.
func (s *Session) SessionID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionID
}

// ElapsedMs returns the time since the session started.
func (s *Session) ElapsedMs() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateRecording {
		return 0
	}
	return time.Since(s.startTime).Milliseconds()
}

// ActionCount returns the number of actions journaled so far.
func (s *Session) ActionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}

// Start opens a new session for a puzzle of size n in mode m.
func (s *Session) Start(n int, m nxcube.Mode, notes, deviceName, deviceID, appVersion string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRecording {
		return "", ErrSessionActive
	}

	id, err := s.sessions.Create(n, m.String(), notes, deviceName, deviceID, appVersion)
	if err != nil {
		return "", err
	}

	s.sessionID = id
	s.startTime = time.Now()
	s.index = 0
	s.state = StateRecording

	if s.stateFile != nil {
		if err := s.stateFile.SetActiveSession(id); err != nil {
			s.log.Warn("failed to save active session", zap.Error(err))
		}
	}
	return id, nil
}

// Resume reopens a session that was never ended, continuing its action
// index.
func (s *Session) Resume(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRecording {
		return ErrSessionActive
	}

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return err
	}
	if sess == nil {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	if sess.EndedAt != nil {
		return ErrSessionEnded
	}

	next, err := s.actions.NextIndex(sessionID)
	if err != nil {
		return err
	}

	s.sessionID = sessionID
	s.startTime = sess.StartedAt
	s.index = next
	s.state = StateRecording
	return nil
}

// End closes the session.
func (s *Session) End() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return ErrNoSession
	}
	if err := s.sessions.End(s.sessionID); err != nil {
		return err
	}
	s.state = StateEnded

	if s.stateFile != nil {
		if err := s.stateFile.ClearActiveSession(); err != nil {
			s.log.Warn("failed to clear active session", zap.Error(err))
		}
	}
	return nil
}

func (s *Session) next(kind storage.ActionKind) storage.Action {
	a := storage.Action{
		SessionID:   s.sessionID,
		ActionIndex: s.index,
		TsMs:        time.Since(s.startTime).Milliseconds(),
		Kind:        kind,
	}
	s.index++
	return a
}

// RecordTurn journals a committed turn.
func (s *Session) RecordTurn(ev nxcube.TurnEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return nil
	}

	a := s.next(storage.KindTurn)
	r := ev.Rotation
	a.Rotation = &r
	if ev.Key != 0 {
		a.Face = string(ev.Key)
	}
	if _, err := s.actions.Create(a); err != nil {
		s.index--
		return err
	}
	return nil
}

// RecordShuffle journals the turns of a shuffle in one transaction.
func (s *Session) RecordShuffle(turns []nxcube.Rotation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording || len(turns) == 0 {
		return nil
	}

	start := s.index
	batch := make([]storage.Action, len(turns))
	for i := range turns {
		r := turns[i]
		batch[i] = s.next(storage.KindShuffleTurn)
		batch[i].Rotation = &r
	}
	if err := s.actions.CreateBatch(batch); err != nil {
		s.index = start
		return err
	}
	return nil
}

// RecordReset journals a reset to solved.
func (s *Session) RecordReset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return nil
	}
	if _, err := s.actions.Create(s.next(storage.KindReset)); err != nil {
		s.index--
		return err
	}
	return nil
}

// RecordRebuild journals a change of size or mode.
func (s *Session) RecordRebuild(n int, m nxcube.Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return nil
	}

	a := s.next(storage.KindRebuild)
	a.Size = n
	a.Mode = m.String()
	if _, err := s.actions.Create(a); err != nil {
		s.index--
		return err
	}
	return nil
}

// HandleDeviceMessage journals a smart cube frame and returns the face
// turns it carries. The caller feeds the turns to the controller, which
// reports them back through RecordTurn once they commit.
func (s *Session) HandleDeviceMessage(msg *protocol.Message) ([]protocol.Turn, error) {
	var turns []protocol.Turn
	if msg.Type == protocol.TypeRotation {
		var err error
		if turns, err = protocol.DecodeRotation(msg.Payload); err != nil {
			return nil, fmt.Errorf("failed to decode rotation: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return turns, nil
	}

	eventType, payloadJSON, err := protocol.Decode(msg)
	if err != nil {
		return turns, fmt.Errorf("failed to decode message: %w", err)
	}

	raw := msg.RawBase64
	tsMs := time.Since(s.startTime).Milliseconds()
	if _, err := s.events.Create(s.sessionID, tsMs, eventType, payloadJSON, &raw); err != nil {
		return turns, err
	}
	return turns, nil
}
