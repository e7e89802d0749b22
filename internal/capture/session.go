package capture

// State represents the current phase of a capture session
type State int

const (
	// StateIdle means no capture session is in progress
	StateIdle State = iota
	// StateListening means the next key press will be captured
	StateListening
)

// String returns a string representation of the state
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateListening:
		return "listening"
	default:
		return "unknown"
	}
}

// Accessor reads and writes the caller-owned captured value.
// The session never keeps its own copy of the value; every read and write
// goes through these functions.
type Accessor struct {
	Get func() string
	Set func(string)
}

// Session is the capture state machine. It is confined to the UI goroutine:
// all methods and the deferred finish task run on the same logical thread,
// so no locking is needed.
//
// Value mutation happens synchronously with the triggering event, but the
// Listening -> Idle transition and the finish notification are posted to the
// end of the current task queue. This avoids re-entrant focus-manager calls
// during key-event dispatch.
type Session struct {
	state         State
	preListen     string // snapshot taken on Idle -> Listening, used by Cancel
	value         Accessor
	onFinished    func()
	post          func(func())
	finishPending bool
	debugPrint    func(format string, args ...interface{})
}

// NewSession creates a capture session in the Idle state.
// post schedules a function at the end of the current UI task queue; a nil
// post runs the finish task synchronously, which is only suitable for tests.
func NewSession(value Accessor, onFinished func(), post func(func()), debugPrint func(format string, args ...interface{})) *Session {
	if debugPrint == nil {
		debugPrint = func(format string, args ...interface{}) {}
	}
	return &Session{
		state:      StateIdle,
		value:      value,
		onFinished: onFinished,
		post:       post,
		debugPrint: debugPrint,
	}
}

// State returns the current session state.
func (s *Session) State() State {
	return s.state
}

// Listening reports whether a capture session is in progress.
func (s *Session) Listening() bool {
	return s.state == StateListening
}

// PreListenValue returns the value snapshot taken when the current (or most
// recent) session started.
func (s *Session) PreListenValue() string {
	return s.preListen
}

// Activate starts a capture session. It returns true when the session moved
// from Idle to Listening, in which case the caller must request keyboard
// focus so key events can arrive. Activating an already listening session is
// a no-op and returns false.
func (s *Session) Activate() bool {
	if s.state != StateIdle {
		s.debugPrint("Session: Activate ignored, already %s", s.state)
		return false
	}
	s.preListen = s.value.Get()
	s.state = StateListening
	s.debugPrint("Session: Listening, pre-listen value %q", s.preListen)
	return true
}

// Cancel reverts the value to the pre-listen snapshot and ends the session.
// Returns true when the event was consumed.
func (s *Session) Cancel() bool {
	if !s.accepting() {
		return false
	}
	s.value.Set(s.preListen)
	s.debugPrint("Session: Cancelled, restored %q", s.preListen)
	s.scheduleFinish()
	return true
}

// Clear empties the value and ends the session.
// Returns true when the event was consumed.
func (s *Session) Clear() bool {
	if !s.accepting() {
		return false
	}
	s.value.Set("")
	s.debugPrint("Session: Cleared")
	s.scheduleFinish()
	return true
}

// Commit stores the first character of text and ends the session. Multi
// character payloads are truncated to their first character. An empty
// payload is ignored: the session keeps listening and no notification fires.
// Returns true when the event was consumed.
func (s *Session) Commit(text string) bool {
	if !s.accepting() {
		return false
	}
	runes := []rune(text)
	if len(runes) == 0 {
		s.debugPrint("Session: Ignoring key with no character payload")
		return false
	}
	s.value.Set(string(runes[0]))
	s.debugPrint("Session: Committed %q", string(runes[0]))
	s.scheduleFinish()
	return true
}

// FocusLost ends the session without touching the value. It must be called
// whenever the host window manager takes keyboard focus away while the
// session is listening. Calling it when the session is idle, or after a key
// has already ended the session, is a no-op; a session never notifies twice.
func (s *Session) FocusLost() {
	if s.state != StateListening || s.finishPending {
		return
	}
	s.debugPrint("Session: Focus lost while listening")
	s.scheduleFinish()
}

// accepting reports whether key events should still be consumed: the session
// must be listening and must not already have a finish task queued.
func (s *Session) accepting() bool {
	return s.state == StateListening && !s.finishPending
}

// scheduleFinish queues the single Listening -> Idle transition for this
// session. The finishPending latch guarantees exactly one notification per
// session even when a key event and a focus loss both try to end it.
func (s *Session) scheduleFinish() {
	if s.finishPending {
		return
	}
	s.finishPending = true
	run := func() {
		s.state = StateIdle
		s.finishPending = false
		if s.onFinished != nil {
			s.onFinished()
		}
	}
	if s.post != nil {
		s.post(run)
	} else {
		run()
	}
}
