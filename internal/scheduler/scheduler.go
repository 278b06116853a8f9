// Package scheduler runs the controller tasks cooperatively on a single
// goroutine. Every turn each task runs at most once, in registration order,
// and only if its interval has elapsed.
package scheduler

import (
	"context"
	"time"

	"github.com/humidistat/humidistat/internal/ui"
)

type Clock interface {
	Now() time.Time
}

// SystemClock reads the monotonic wall clock
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// Gate is a non-blocking interval check
type Gate struct {
	interval time.Duration
	last     time.Time
	armed    bool
}

func NewGate(interval time.Duration) *Gate {
	return &Gate{interval: interval}
}

// Ready reports whether interval has elapsed since the last Mark, always true before the first one
func (g *Gate) Ready(now time.Time) bool {
	return !g.armed || now.Sub(g.last) >= g.interval
}

// Mark records now as the last run
func (g *Gate) Mark(now time.Time) {
	g.last = now
	g.armed = true
}

// Enter marks the gate and returns true if it is ready
func (g *Gate) Enter(now time.Time) bool {
	if !g.Ready(now) {
		return false
	}
	g.Mark(now)
	return true
}

func (g *Gate) SetInterval(interval time.Duration) {
	g.interval = interval
}

func (g *Gate) Interval() time.Duration {
	return g.interval
}

type Task struct {
	Name string
	// Interval returns the minimum time between two runs, nil or zero runs every turn.
	// It is evaluated every turn, so intervals may change at runtime.
	Interval func() time.Duration
	Run      func(now time.Time)
}

type scheduledTask struct {
	Task
	gate *Gate
}

type Scheduler struct {
	clock        Clock
	turnInterval time.Duration
	tasks        []*scheduledTask
	turns        uint64
}

func New(clock Clock, turnInterval time.Duration) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Scheduler{
		clock:        clock,
		turnInterval: turnInterval,
	}
}

// Add registers a task, tasks run in the order they were added
func (s *Scheduler) Add(task Task) {
	s.tasks = append(s.tasks, &scheduledTask{
		Task: task,
		gate: NewGate(0),
	})
}

// RunOnce executes a single turn
func (s *Scheduler) RunOnce() {
	for _, task := range s.tasks {
		now := s.clock.Now()
		if task.Interval != nil {
			task.gate.SetInterval(task.Interval())
		}
		if !task.gate.Enter(now) {
			continue
		}
		task.Run(now)
	}
	s.turns++
}

// Turns returns the number of completed turns
func (s *Scheduler) Turns() uint64 {
	return s.turns
}

func (s *Scheduler) TurnInterval() time.Duration {
	return s.turnInterval
}

// Run executes turns every turnInterval until ctx is cancelled
func (s *Scheduler) Run(ctx context.Context) error {
	ui.Debug("Starting scheduler with %d tasks, turn interval %v", len(s.tasks), s.turnInterval)
	if s.turnInterval <= 0 {
		for {
			select {
			case <-ctx.Done():
				return nil
			default:
				s.RunOnce()
			}
		}
	}

	ticker := time.NewTicker(s.turnInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.RunOnce()
		}
	}
}
