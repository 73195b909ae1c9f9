package downloads

import (
	"sync"
	"time"

	"ytproxy/internal/models"
	"ytproxy/internal/utils/logging"

	"github.com/google/uuid"
)

// Process is one in-flight download subprocess.
type Process struct {
	ID      uuid.UUID
	URL     string
	Mode    models.Mode
	PID     int
	Started time.Time

	kill func()
}

// Tracker is the table of running download subprocesses.
type Tracker struct {
	mu    sync.Mutex
	procs map[uuid.UUID]*Process
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{procs: make(map[uuid.UUID]*Process)}
}

// Add registers a running process. kill must terminate it.
func (t *Tracker) Add(url string, mode models.Mode, pid int, kill func()) uuid.UUID {
	p := &Process{
		ID:      uuid.New(),
		URL:     url,
		Mode:    mode,
		PID:     pid,
		Started: time.Now(),
		kill:    kill,
	}

	t.mu.Lock()
	t.procs[p.ID] = p
	t.mu.Unlock()

	logging.D(2, "Tracking download %s (PID %d) for URL %q", p.ID, pid, url)
	return p.ID
}

// Remove drops a process from the table.
func (t *Tracker) Remove(id uuid.UUID) {
	t.mu.Lock()
	p, ok := t.procs[id]
	delete(t.procs, id)
	t.mu.Unlock()

	if ok {
		logging.D(2, "Download %s (PID %d) finished after %v", id, p.PID, time.Since(p.Started).Round(time.Millisecond))
	}
}

// Len returns the number of running processes.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.procs)
}

// Snapshot returns a copy of the table.
func (t *Tracker) Snapshot() []Process {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Process, 0, len(t.procs))
	for _, p := range t.procs {
		cp := *p
		cp.kill = nil
		out = append(out, cp)
	}
	return out
}

// KillAll terminates every tracked process and returns how many were signalled.
//
// Entries are removed by their owning stream once the process is reaped.
func (t *Tracker) KillAll() int {
	t.mu.Lock()
	kills := make([]func(), 0, len(t.procs))
	for _, p := range t.procs {
		if p.kill != nil {
			kills = append(kills, p.kill)
		}
	}
	t.mu.Unlock()

	for _, kill := range kills {
		kill()
	}
	return len(kills)
}
