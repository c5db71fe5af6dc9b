package strategy

import (
	"sync"
	"time"
)

// ParkTimeout bounds how long EpochPark's Park waits on its condition
// variable before re-checking the capture itself. Mirrors the
// parking_lot::Condvar::wait_for(Duration::from_micros(100)) timeout this
// strategy is grounded on: short enough that a writer blocked behind a
// genuinely stuck reader still notices new wakeups promptly, long enough
// that it isn't just a second spin loop.
const ParkTimeout = 100 * time.Microsecond

// epochPark is S3p: Epoch's per-reader tags plus a condition variable so
// a writer waiting on a slow reader parks instead of spinning. Readers
// broadcast on EndGuard so a parked writer wakes as soon as the reader it
// was waiting on finishes, rather than only on the next timeout tick.
type epochPark struct {
	*epoch
	mu   sync.Mutex
	cond *sync.Cond
}

// EpochPark returns the per-reader-epoch strategy with a parking
// fallback for writers that would otherwise spin a long time waiting on
// a slow reader.
func EpochPark() *epochPark {
	s := &epochPark{epoch: &epoch{}}
	s.cond = sync.NewCond(&s.mu)
	return s
}

func (s *epochPark) EndGuard(rawGuard any) {
	s.epoch.EndGuard(rawGuard)
	s.mu.Lock()
	s.cond.Broadcast()
	s.mu.Unlock()
}

// Park waits until either the capture drains or ParkTimeout elapses,
// whichever comes first, then returns so the caller's backoff loop can
// re-check IsCaptureDrained. sync.Cond has no timed wait, so a one-shot
// timer stands in for parking_lot's wait_for: it forces the Wait below to
// return by broadcasting once the timeout fires, and is stopped when Park
// returns. A timer that has already fired by then may still broadcast
// after Park returns, which at most wakes a later Park early for a
// re-check.
func (s *epochPark) Park(capture any) {
	if s.epoch.IsCaptureDrained(capture) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	timer := time.AfterFunc(ParkTimeout, func() {
		s.mu.Lock()
		s.cond.Broadcast()
		s.mu.Unlock()
	})
	defer timer.Stop()

	if !s.epoch.IsCaptureDrained(capture) {
		s.cond.Wait()
	}
}
