package recorder

import (
	"fmt"

	"github.com/SeamusWaldron/nxcube"
	"github.com/SeamusWaldron/nxcube/internal/storage"
)

// Replay rebuilds the puzzle a session ended in. The puzzle starts solved
// at the session's size and mode and every journaled action is reapplied
// without animation. opts are passed to nxcube.New; a mode option is
// overridden by the session's.
func Replay(sess *storage.Session, actions []storage.Action, opts ...nxcube.Option) (*nxcube.Puzzle, error) {
	return ReplayUntil(sess, actions, len(actions), opts...)
}

// ReplayUntil replays only the first limit actions.
func ReplayUntil(sess *storage.Session, actions []storage.Action, limit int, opts ...nxcube.Option) (*nxcube.Puzzle, error) {
	mode, err := nxcube.ParseMode(sess.Mode)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sess.SessionID, err)
	}

	opts = append(opts[:len(opts):len(opts)], nxcube.WithMode(mode))
	p, err := nxcube.New(sess.Size, opts...)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sess.SessionID, err)
	}

	if limit > len(actions) {
		limit = len(actions)
	}
	for _, a := range actions[:limit] {
		if err := apply(p, a); err != nil {
			return nil, fmt.Errorf("action %d: %w", a.ActionIndex, err)
		}
	}
	return p, nil
}

func apply(p *nxcube.Puzzle, a storage.Action) error {
	switch a.Kind {
	case storage.KindTurn, storage.KindShuffleTurn:
		if a.Rotation == nil {
			return fmt.Errorf("%s without rotation", a.Kind)
		}
		return p.Apply(*a.Rotation)
	case storage.KindReset:
		p.Reset()
		return nil
	case storage.KindRebuild:
		m, err := nxcube.ParseMode(a.Mode)
		if err != nil {
			return err
		}
		return p.Rebuild(a.Size, m)
	default:
		return fmt.Errorf("unknown action kind %q", a.Kind)
	}
}
