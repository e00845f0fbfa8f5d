package chat

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

const idFormat = "2006-01-02 15:04:05"

// Session is one conversation thread. Messages are append-only and strictly
// ordered by append time.
type Session struct {
	mu        sync.Mutex
	id        string
	createdAt time.Time
	messages  []Message

	processing sync.Mutex
	busy       atomic.Bool
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// Append stamps the message with its sequence number and append time and adds
// it to the session.
func (s *Session) Append(msg *Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg.Seq = len(s.messages) + 1
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	s.messages = append(s.messages, *msg)
}

func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]Message, len(s.messages))
	copy(copied, s.messages)

	return copied
}

func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

// TryAcquire attempts to acquire the generation lock.
// Returns true if acquired, false if a turn is already in flight.
func (s *Session) TryAcquire() bool {
	if !s.processing.TryLock() {
		return false
	}
	s.busy.Store(true)
	return true
}

// Release releases the generation lock.
func (s *Session) Release() {
	s.busy.Store(false)
	s.processing.Unlock()
}

// Generating reports whether a turn is currently in flight.
func (s *Session) Generating() bool {
	return s.busy.Load()
}

// NotFoundError is returned for operations against an unknown session id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("session %q not found", e.ID)
}

// Store owns all sessions for the process lifetime. Sessions are never
// removed; writes are serialized per session, not globally.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	order    []string
	active   string

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Create inserts a new empty session, marks it active and returns it.
// Ids are wall-clock derived; a counter suffix keeps two creations within the
// same second distinct.
func (st *Store) Create() *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	id := now.Format(idFormat)
	for n := 2; ; n++ {
		if _, taken := st.sessions[id]; !taken {
			break
		}
		id = fmt.Sprintf("%s #%d", now.Format(idFormat), n)
	}

	sess := &Session{id: id, createdAt: now}
	st.sessions[id] = sess
	st.order = append(st.order, id)
	st.active = id

	return sess
}

// Get returns the named session or a NotFoundError.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	sess, ok := st.sessions[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return sess, nil
}

// SwitchActive marks the named session active and returns its messages for
// display.
func (st *Store) SwitchActive(id string) ([]Message, error) {
	st.mu.Lock()
	sess, ok := st.sessions[id]
	if !ok {
		st.mu.Unlock()
		return nil, &NotFoundError{ID: id}
	}
	st.active = id
	st.mu.Unlock()

	return sess.Messages(), nil
}

// Active returns the active session, creating the first one on demand.
func (st *Store) Active() *Session {
	st.mu.RLock()
	sess, ok := st.sessions[st.active]
	st.mu.RUnlock()

	if ok {
		return sess
	}
	return st.Create()
}

// Append adds a message to the named session.
func (st *Store) Append(id string, msg *Message) error {
	sess, err := st.Get(id)
	if err != nil {
		return err
	}
	sess.Append(msg)
	return nil
}

// List returns all session ids, most recently created first.
func (st *Store) List() []string {
	st.mu.RLock()
	defer st.mu.RUnlock()

	ids := make([]string, len(st.order))
	for i, id := range st.order {
		ids[len(st.order)-1-i] = id
	}
	return ids
}
