package logger

import (
	"sync"
	"time"
)

// SubsystemError is the latest recorded error for one subsystem, plus how
// often it has repeated since it was first seen.
type SubsystemError struct {
	Subsystem string                 `json:"subsystem"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
	Count     int                    `json:"count"`
	FirstSeen time.Time              `json:"first_seen"`
	LastSeen  time.Time              `json:"last_seen"`
}

// ErrorCollector keeps the most recent error per subsystem so the debug
// endpoint can show what last went wrong in each polling cycle without
// trawling logs. It never blocks logging and never grows past one entry
// per subsystem.
type ErrorCollector struct {
	mu      sync.RWMutex
	entries map[string]*SubsystemError
}

func NewErrorCollector() *ErrorCollector {
	return &ErrorCollector{entries: make(map[string]*SubsystemError)}
}

// Record stores msg as the latest error for subsystem. A repeat of the same
// message bumps the count instead of resetting first-seen.
func (c *ErrorCollector) Record(subsystem, msg string, fields []Field) {
	now := time.Now()

	fieldMap := make(map[string]interface{}, len(fields))
	for _, f := range fields {
		k, v := f.GetKeyValue()
		fieldMap[k] = v
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[subsystem]; ok && e.Message == msg {
		e.Count++
		e.LastSeen = now
		e.Fields = fieldMap
		return
	}
	c.entries[subsystem] = &SubsystemError{
		Subsystem: subsystem,
		Message:   msg,
		Fields:    fieldMap,
		Count:     1,
		FirstSeen: now,
		LastSeen:  now,
	}
}

// Clear drops the entry for subsystem, typically after a successful cycle.
func (c *ErrorCollector) Clear(subsystem string) {
	c.mu.Lock()
	delete(c.entries, subsystem)
	c.mu.Unlock()
}

// Snapshot returns a copy of all current entries.
func (c *ErrorCollector) Snapshot() []SubsystemError {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]SubsystemError, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, *e)
	}
	return out
}
