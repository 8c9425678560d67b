package blockslide

import (
	"fmt"

	"github.com/vovakirdan/blockslide/internal/games/blockslide/codec"
	"github.com/vovakirdan/blockslide/internal/storage"
)

// Record captures the session's current state for storage.
func (s *Session) Record() (storage.SessionRecord, error) {
	blob, err := codec.PackState(s.State())
	if err != nil {
		return storage.SessionRecord{}, fmt.Errorf("blockslide: pack state: %w", err)
	}
	return storage.SessionRecord{
		LevelID: s.levelID,
		Moves:   s.moves,
		Actions: s.actions,
		Blocks:  s.BlockCount(),
		State:   blob,
	}, nil
}

// Save stores the session's current state and returns the record ID.
func (s *Session) Save(store *storage.Store) (int64, error) {
	rec, err := s.Record()
	if err != nil {
		return 0, err
	}
	id, err := store.SaveSession(rec)
	if err != nil {
		return 0, err
	}
	s.logger.Info("session saved", "level", s.levelID, "id", id, "moves", s.moves, "bytes", len(rec.State))
	return id, nil
}

// RestoreSession starts a session from a saved record. The undo history
// starts empty; the move and action counters continue from the record.
func RestoreSession(rec storage.SessionRecord, opts ...SessionOption) (*Session, error) {
	st, err := codec.UnpackState(rec.State)
	if err != nil {
		return nil, fmt.Errorf("blockslide: restore session %d: %w", rec.ID, err)
	}
	s, err := NewSession(rec.LevelID, st, opts...)
	if err != nil {
		return nil, err
	}
	s.moves, s.actions = rec.Moves, rec.Actions
	s.logger.Info("session restored", "level", rec.LevelID, "id", rec.ID, "moves", rec.Moves)
	return s, nil
}
