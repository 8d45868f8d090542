package patrol

import (
	"fmt"
	"strings"
)

// Trace event kinds.
const (
	EventTurn = "turn"
	EventMove = "move"
	EventExit = "exit"
	EventLoop = "loop"
)

// TraceEntry is one recorded tick of a patrol run.
type TraceEntry struct {
	Tick    int
	Event   string // turn, move, exit, loop
	Pos     Pos
	Heading Heading
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] turn  (6,4) east
func (e TraceEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-5s %s %s", e.Tick, e.Event, e.Pos, e.Heading)
}

// Trace collects tick events for a single run. It is unbounded, so only
// attach one to runs you want to inspect.
type Trace struct {
	entries []TraceEntry
}

// NewTrace creates an empty trace.
func NewTrace() *Trace {
	return &Trace{}
}

// Add records a new entry.
func (t *Trace) Add(tick int, event string, a Agent) {
	t.entries = append(t.entries, TraceEntry{
		Tick:    tick,
		Event:   event,
		Pos:     a.Pos,
		Heading: a.Heading,
	})
}

// Entries returns all recorded entries.
func (t *Trace) Entries() []TraceEntry {
	return t.entries
}

// Count returns how many entries have the given event kind.
func (t *Trace) Count(event string) int {
	n := 0
	for _, e := range t.entries {
		if e.Event == event {
			n++
		}
	}
	return n
}

// Last returns the final entry, or false if the trace is empty.
func (t *Trace) Last() (TraceEntry, bool) {
	if len(t.entries) == 0 {
		return TraceEntry{}, false
	}
	return t.entries[len(t.entries)-1], true
}

// Format returns the full trace as a single string for t.Log output.
func (t *Trace) Format() string {
	var sb strings.Builder
	for _, e := range t.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
