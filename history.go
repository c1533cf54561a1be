package cubetimer

import (
	"errors"
	"log/slog"
	"slices"

	"cubetimer/internal/kv"
)

// Store key layout. Session and solve records are tagged envelopes; the
// active session key holds a raw session ID string.
const (
	keySessions      = "sessions"
	keyActiveSession = "active_session"
)

func keySession(id string) string       { return "session:" + id }
func keySessionSolves(id string) string { return "session_solves:" + id }
func keySolve(id string) string         { return "solve:" + id }

// ProgressFunc reports load progress as (done, total). Returning true
// requests cancellation of the load.
type ProgressFunc func(done, total int) bool

// History is the top-level aggregate: the ordered session list, the
// optional active session, and the database handle. It is single-threaded
// and non-reentrant; callers must serialize all mutating operations.
type History struct {
	// Sessions is the ordered session list. Treat as read-only; mutate
	// through the History methods so persistence stays consistent.
	Sessions []*Session

	active           *Session
	sessionListDirty bool

	ids        IDGenerator
	clock      Clock
	logger     *slog.Logger
	syncWrites bool
	store      *kv.Store
	codec      codec
}

// NewHistory creates a history handle with the given ID generator. The
// generator must produce values unique across the lifetime of the
// database; OpenDatabase fails without one.
func NewHistory(ids IDGenerator, opts ...Option) *History {
	h := &History{
		ids:        ids,
		clock:      SystemClock(),
		syncWrites: true,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.codec = codec{ids: h.ids, clock: h.clock}
	return h
}

// ActiveSession returns the session new solves are appended to, or nil.
// The active session is always an element of Sessions.
func (h *History) ActiveSession() *Session {
	return h.active
}

// SessionByID finds a loaded session by identifier, or nil.
func (h *History) SessionByID(id string) *Session {
	for _, s := range h.Sessions {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// IsDatabaseOpen reports whether a store handle is held.
func (h *History) IsDatabaseOpen() bool {
	return h.store != nil
}

// NewSolve allocates an identified solve with sync bookkeeping stamped,
// ready to be filled in and recorded.
func (h *History) NewSolve(scramble MoveSequence) Solve {
	return Solve{
		ID:       h.ids.GenerateID(),
		Scramble: scramble,
		Created:  h.clock.Now(),
		Update:   SyncRecord{ID: h.ids.GenerateID(), Date: h.clock.Now()},
	}
}

// OpenDatabase opens the store at path (creating it if missing) and loads
// the session history. Per-record read and decode failures are recorded
// but do not abort the load; the most recent failure is returned alongside
// whatever was loaded. progress may be nil; returning true from it aborts
// the load with the status accumulated so far. Sessions that end up with
// zero solves are dropped from the in-memory list.
func (h *History) OpenDatabase(path string, progress ProgressFunc) error {
	h.CloseDatabase()

	if h.ids == nil {
		return ErrIDGeneratorRequired
	}
	if progress == nil {
		progress = func(int, int) bool { return false }
	}

	store, err := kv.Open(kv.Config{
		Path:       path,
		SyncWrites: h.syncWrites,
		Logger:     h.logger,
	})
	if err != nil {
		return err
	}
	h.store = store
	h.Sessions = nil
	h.active = nil
	h.sessionListDirty = false

	data, err := store.Get(keySessions)
	if errors.Is(err, kv.ErrNotFound) {
		// Fresh database.
		return nil
	}
	if err != nil {
		return err
	}
	sessionList, err := h.codec.decodeSessionList(data)
	if err != nil {
		return err
	}

	var finalErr error
	for i, sessionID := range sessionList {
		if progress(i, len(sessionList)) {
			return finalErr
		}

		sessionData, err := store.Get(keySession(sessionID))
		if err != nil {
			finalErr = err
			continue
		}
		session := &Session{ID: sessionID}
		if err := h.codec.decodeSession(sessionData, session); err != nil {
			finalErr = err
			continue
		}

		solveListData, err := store.Get(keySessionSolves(sessionID))
		if err != nil {
			finalErr = err
			continue
		}
		solveIDs, err := h.codec.decodeSolveList(solveListData)
		if err != nil {
			finalErr = err
			continue
		}

		for _, solveID := range solveIDs {
			if progress(i, len(sessionList)) {
				return finalErr
			}
			solveData, err := store.Get(keySolve(solveID))
			if err != nil {
				finalErr = err
				continue
			}
			solve := Solve{ID: solveID}
			if err := h.codec.decodeSolve(solveData, &solve); err != nil {
				finalErr = err
				continue
			}
			session.Solves = append(session.Solves, solve)
		}

		if len(session.Solves) > 0 {
			h.Sessions = append(h.Sessions, session)
		}
	}

	if activeID, err := store.Get(keyActiveSession); err == nil {
		h.active = h.SessionByID(string(activeID))
	}

	progress(len(sessionList), len(sessionList))
	if h.logger != nil {
		h.logger.Debug("history loaded",
			"sessions", len(h.Sessions), "active", h.active != nil)
	}
	return finalErr
}

// CloseDatabase releases the store handle. The in-memory history is kept.
func (h *History) CloseDatabase() error {
	if h.store == nil {
		return nil
	}
	err := h.store.Close()
	h.store = nil
	return err
}

// stampUpdate gives a sync record a fresh revision ID and date, keeping
// the opaque sync token.
func (h *History) stampUpdate(rec *SyncRecord) {
	rec.ID = h.ids.GenerateID()
	rec.Date = h.clock.Now()
}

// RecordSolve appends a solve to the active session, allocating a new
// session first when there is no active session or its type differs. The
// solve, the session records and the session index commit as one atomic
// batch. When a new session is started, the active-session key is written
// in a separate store write before that batch.
func (h *History) RecordSolve(solveType SolveType, solve Solve) error {
	if h.active == nil || h.active.Type != solveType {
		session := &Session{
			ID:   h.ids.GenerateID(),
			Type: solveType,
		}
		h.Sessions = append(h.Sessions, session)
		h.active = session
		h.sessionListDirty = true

		if h.store != nil {
			if err := h.store.Put(keyActiveSession, []byte(session.ID)); err != nil {
				return err
			}
		}
	}

	if solve.ID == "" {
		solve.ID = h.ids.GenerateID()
	}
	if solve.Update.ID == "" {
		h.stampUpdate(&solve.Update)
	}
	solve.Dirty = true
	h.active.Solves = append(h.active.Solves, solve)
	h.stampUpdate(&h.active.Update)
	h.active.Dirty = true

	return h.commitSessions([]*Session{h.active})
}

// ResetSession clears the active session so the next recorded solve
// starts a new one.
func (h *History) ResetSession() error {
	h.active = nil
	if h.store != nil {
		return h.store.Delete(keyActiveSession)
	}
	return nil
}

// DeleteSession removes a session from the history and deletes its
// record, its solve list, and every solve record no surviving session
// still references, in one atomic batch.
func (h *History) DeleteSession(session *Session) error {
	for i, s := range h.Sessions {
		if s == session {
			h.Sessions = slices.Delete(h.Sessions, i, i+1)
			h.sessionListDirty = true
			break
		}
	}

	if h.active == session {
		h.active = nil
		if h.store != nil {
			if err := h.store.Delete(keyActiveSession); err != nil {
				return err
			}
		}
	}

	if h.store == nil {
		return nil
	}

	batch := &kv.Batch{}
	batch.Delete(keySession(session.ID))
	batch.Delete(keySessionSolves(session.ID))

	orphans := make(map[string]struct{}, len(session.Solves))
	for i := range session.Solves {
		orphans[session.Solves[i].ID] = struct{}{}
	}
	for _, s := range h.Sessions {
		for i := range s.Solves {
			delete(orphans, s.Solves[i].ID)
		}
	}
	for id := range orphans {
		batch.Delete(keySolve(id))
	}

	listWritten := false
	if h.sessionListDirty {
		batch.Put(keySessions, h.codec.encodeSessionList(h.Sessions))
		listWritten = true
	}

	if err := h.store.Write(batch); err != nil {
		return err
	}
	if listWritten {
		h.sessionListDirty = false
	}
	return nil
}

// SplitSessionAtSolve moves solves [solveIdx:] of a session into a new
// session inserted immediately after it. The new session inherits the
// type and name, and becomes active if the split session was active.
// Out-of-range indices are a silent no-op.
func (h *History) SplitSessionAtSolve(session *Session, solveIdx int) error {
	if solveIdx <= 0 || solveIdx >= len(session.Solves) {
		return nil
	}

	for i, s := range h.Sessions {
		if s != session {
			continue
		}

		split := &Session{
			ID:   h.ids.GenerateID(),
			Type: session.Type,
			Name: session.Name,
		}
		h.stampUpdate(&split.Update)
		split.Solves = append([]Solve{}, session.Solves[solveIdx:]...)
		split.Dirty = true
		session.Solves = session.Solves[:solveIdx]
		h.stampUpdate(&session.Update)
		session.Dirty = true

		h.Sessions = slices.Insert(h.Sessions, i+1, split)
		h.sessionListDirty = true

		if err := h.commitSessions([]*Session{session, split}); err != nil {
			return err
		}

		if h.active == session {
			h.active = split
			if h.store != nil {
				return h.store.Put(keyActiveSession, []byte(split.ID))
			}
		}
		return nil
	}
	return nil
}

// MergeSessions prepends the first session's solves onto the second,
// renames the second, and deletes the first. Sessions of different types
// are a silent no-op.
func (h *History) MergeSessions(first, second *Session, name string) error {
	if first.Type != second.Type {
		return nil
	}

	merged := make([]Solve, 0, len(first.Solves)+len(second.Solves))
	merged = append(merged, first.Solves...)
	merged = append(merged, second.Solves...)
	second.Solves = merged
	second.Name = name
	h.stampUpdate(&second.Update)
	second.Dirty = true

	if err := h.commitSessions([]*Session{second}); err != nil {
		return err
	}
	return h.DeleteSession(first)
}

// CommitSession persists a session the caller has mutated directly (for
// example after changing a solve's penalty). The caller is responsible
// for setting the dirty flags on the session and the changed solves.
func (h *History) CommitSession(session *Session) error {
	return h.commitSessions([]*Session{session})
}

// commitSessions writes every dirty solve of each dirty session, the
// session metadata and solve list, and the session index when dirty, as
// one atomic batch. Dirty flags are cleared only after the commit
// succeeds so a failed write can be retried.
func (h *History) commitSessions(sessions []*Session) error {
	if h.store == nil {
		return nil
	}

	batch := &kv.Batch{}
	var writtenSolves []*Solve
	var writtenSessions []*Session
	for _, session := range sessions {
		if !session.Dirty {
			continue
		}
		for i := range session.Solves {
			solve := &session.Solves[i]
			if !solve.Dirty {
				continue
			}
			batch.Put(keySolve(solve.ID), h.codec.encodeSolve(solve))
			writtenSolves = append(writtenSolves, solve)
		}
		batch.Put(keySessionSolves(session.ID), h.codec.encodeSolveList(session))
		batch.Put(keySession(session.ID), h.codec.encodeSession(session))
		writtenSessions = append(writtenSessions, session)
	}

	listWritten := false
	if h.sessionListDirty {
		batch.Put(keySessions, h.codec.encodeSessionList(h.Sessions))
		listWritten = true
	}

	if batch.Len() == 0 {
		return nil
	}
	if err := h.store.Write(batch); err != nil {
		return err
	}

	for _, solve := range writtenSolves {
		solve.Dirty = false
	}
	for _, session := range writtenSessions {
		session.Dirty = false
	}
	if listWritten {
		h.sessionListDirty = false
	}
	if h.logger != nil {
		h.logger.Debug("history committed", "writes", batch.Len())
	}
	return nil
}
