package backoff

import "testing"

func TestSnoozeReportsCompleted(t *testing.T) {
	b := New()
	if b.Completed() {
		t.Fatal("fresh Backoff reported Completed")
	}
	for i := 0; i < spinLimit+yieldLimit+1; i++ {
		b.Snooze()
	}
	if !b.Completed() {
		t.Fatal("Backoff did not report Completed after exceeding its tiers")
	}
}

func TestResetClearsStep(t *testing.T) {
	b := New()
	for i := 0; i < spinLimit+yieldLimit+1; i++ {
		b.Snooze()
	}
	if !b.Completed() {
		t.Fatal("expected Completed before Reset")
	}
	b.Reset()
	if b.Completed() {
		t.Fatal("Completed still true after Reset")
	}
}

func TestSpinDoesNotPanic(t *testing.T) {
	b := New()
	for i := 0; i < spinLimit; i++ {
		b.Spin()
	}
}
