package app

import (
	"sync"
	"time"

	"impostor/internal/domain"
)

type timerKind int

const (
	timerGhost timerKind = iota
	timerSweep
)

type timerKey struct {
	kind   timerKind
	room   domain.RoomCode
	player domain.PlayerID
}

// Scheduler owns the grace timers: one per disconnected player (ghost
// window) and one per empty room (deletion window). Scheduling a key that
// is already armed re-arms it; canceling an unarmed key is a no-op. A timer
// removes itself before firing, so a late Cancel after the callback started
// is harmless.
type Scheduler struct {
	mu     sync.Mutex
	timers map[timerKey]*time.Timer
}

func NewScheduler() *Scheduler {
	return &Scheduler{timers: make(map[timerKey]*time.Timer)}
}

func (s *Scheduler) ScheduleGhost(code domain.RoomCode, id domain.PlayerID, d time.Duration, fn func()) {
	s.schedule(timerKey{timerGhost, code, id}, d, fn)
}

func (s *Scheduler) CancelGhost(code domain.RoomCode, id domain.PlayerID) {
	s.cancel(timerKey{timerGhost, code, id})
}

func (s *Scheduler) ScheduleSweep(code domain.RoomCode, d time.Duration, fn func()) {
	s.schedule(timerKey{kind: timerSweep, room: code}, d, fn)
}

func (s *Scheduler) CancelSweep(code domain.RoomCode) {
	s.cancel(timerKey{kind: timerSweep, room: code})
}

func (s *Scheduler) schedule(key timerKey, d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[key]; ok {
		t.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(d, func() {
		s.mu.Lock()
		// The key may already belong to a re-armed timer; a stale
		// callback must not evict it.
		if cur, ok := s.timers[key]; ok && cur == t {
			delete(s.timers, key)
		}
		s.mu.Unlock()
		fn()
	})
	s.timers[key] = t
}

func (s *Scheduler) cancel(key timerKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[key]; ok {
		t.Stop()
		delete(s.timers, key)
	}
}

// Stop cancels everything. Only used on shutdown.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, t := range s.timers {
		t.Stop()
		delete(s.timers, k)
	}
}
