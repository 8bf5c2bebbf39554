package viewport

import (
	"sync"
	"time"

	"github.com/gadsdencode/CivMap-sub000/geometry"
)

// CancelFunc stops an animation or a scheduled frame stream. Calling it
// more than once is harmless.
type CancelFunc func()

// Scheduler is the frame pump the animator runs on. The real
// implementation ticks at display rate; tests substitute a manual one
// and advance time explicitly, making every animation deterministic.
type Scheduler interface {
	// Schedule invokes fn once per frame with the current time until the
	// returned CancelFunc is called.
	Schedule(fn func(now time.Time)) CancelFunc
}

// TickerScheduler drives frames off a time.Ticker.
type TickerScheduler struct {
	Interval time.Duration
}

// Schedule starts a goroutine delivering ticker times to fn.
func (s TickerScheduler) Schedule(fn func(now time.Time)) CancelFunc {
	interval := s.Interval
	if interval <= 0 {
		interval = time.Second / 60
	}
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	var once sync.Once

	go func() {
		for {
			select {
			case now := <-ticker.C:
				fn(now)
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()
	return func() { once.Do(func() { close(done) }) }
}

// ManualScheduler delivers frames only when Advance is called.
type ManualScheduler struct {
	mu  sync.Mutex
	now time.Time
	seq int
	fn  func(now time.Time)
}

// NewManualScheduler starts the manual clock at an arbitrary fixed time.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{now: time.Unix(0, 0)}
}

// Schedule registers fn as the active frame callback, replacing any
// previous one. The returned CancelFunc only clears its own
// registration, so a stale token cannot cancel a newer animation.
func (s *ManualScheduler) Schedule(fn func(now time.Time)) CancelFunc {
	s.mu.Lock()
	s.seq++
	id := s.seq
	s.fn = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		if s.seq == id {
			s.fn = nil
		}
		s.mu.Unlock()
	}
}

// Advance moves the clock forward and delivers one frame.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now = s.now.Add(d)
	fn := s.fn
	now := s.now
	s.mu.Unlock()
	if fn != nil {
		fn(now)
	}
}

// Animator interpolates the viewport between two rectangles over time.
// It owns the single-driver rule: starting a new animation cancels any
// in-flight one first, so exactly one driver of the viewport rectangle
// is ever active.
type Animator struct {
	mu      sync.Mutex
	sched   Scheduler
	current *animation
}

// NewAnimator builds an animator on the given frame scheduler.
func NewAnimator(sched Scheduler) *Animator {
	return &Animator{sched: sched}
}

type animation struct {
	mu        sync.Mutex
	finished  bool
	needStop  bool
	schedStop CancelFunc
}

// stop marks the animation finished and halts its frame stream. Safe to
// call from either the frame callback or a cancel token.
func (an *animation) stop() {
	an.mu.Lock()
	if an.finished {
		an.mu.Unlock()
		return
	}
	an.finished = true
	stop := an.schedStop
	if stop == nil {
		// Scheduler handle not recorded yet; AnimateTo will stop it.
		an.needStop = true
	}
	an.mu.Unlock()
	if stop != nil {
		stop()
	}
}

// AnimateTo drives an eased interpolation from start to end over the
// given duration, invoking onTick once per frame with the interpolated
// rectangle and onDone exactly once on natural completion. The returned
// token cancels the animation: after cancellation the viewport stays at
// whatever rectangle was last applied, no further ticks arrive, and
// onDone never fires.
func (a *Animator) AnimateTo(start, end geometry.Rect, duration time.Duration, onTick func(geometry.Rect), onDone func()) CancelFunc {
	a.cancelCurrent()

	an := &animation{}
	a.mu.Lock()
	a.current = an
	a.mu.Unlock()

	if duration <= 0 {
		an.stop()
		if onTick != nil {
			onTick(end)
		}
		if onDone != nil {
			onDone()
		}
		return an.stop
	}

	var startTime time.Time
	schedStop := a.sched.Schedule(func(now time.Time) {
		an.mu.Lock()
		if an.finished {
			an.mu.Unlock()
			return
		}
		if startTime.IsZero() {
			startTime = now
		}
		progress := float64(now.Sub(startTime)) / float64(duration)
		if progress < 1 {
			an.mu.Unlock()
			if onTick != nil {
				onTick(geometry.LerpRect(start, end, easeInOut(progress)))
			}
			return
		}
		an.mu.Unlock()
		an.stop()
		if onTick != nil {
			onTick(end)
		}
		if onDone != nil {
			onDone()
		}
	})

	an.mu.Lock()
	an.schedStop = schedStop
	needStop := an.needStop
	an.mu.Unlock()
	if needStop {
		schedStop()
	}
	return an.stop
}

// Cancel stops any in-flight animation without starting a new one. Used
// when a pointer drag takes over as the viewport driver.
func (a *Animator) Cancel() {
	a.cancelCurrent()
}

func (a *Animator) cancelCurrent() {
	a.mu.Lock()
	cur := a.current
	a.current = nil
	a.mu.Unlock()
	if cur != nil {
		cur.stop()
	}
}

// easeInOut is a quadratic ease: slow start, fast middle, slow arrival.
func easeInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	u := -2*t + 2
	return 1 - u*u/2
}
