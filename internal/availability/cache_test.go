package availability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeChecker struct {
	mu     sync.Mutex
	calls  int
	result bool
	err    error
	called chan struct{}
}

func (f *fakeChecker) CheckAvailability(ctx context.Context, staffID, day, timeSlot string) (bool, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.called != nil {
		select {
		case f.called <- struct{}{}:
		default:
		}
	}
	return f.result, f.err
}

func (f *fakeChecker) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestCheckCachesServerAnswer(t *testing.T) {
	t.Parallel()
	chk := &fakeChecker{result: false}
	c := New(chk, FailOpen, 0, nil)

	if got := c.Check(context.Background(), "816031001", "Monday", "9:00 am"); got {
		t.Fatalf("expected unavailable from server")
	}
	if got := c.Check(context.Background(), "816031001", "Monday", "9:00 am"); got {
		t.Fatalf("expected cached unavailable")
	}
	if n := chk.callCount(); n != 1 {
		t.Fatalf("expected 1 server call; got %d", n)
	}
}

func TestCheckFailOpenCachesAssumedTrue(t *testing.T) {
	t.Parallel()
	chk := &fakeChecker{err: errors.New("boom")}
	c := New(chk, FailOpen, 0, nil)

	if got := c.Check(context.Background(), "816031001", "Monday", "9:00 am"); !got {
		t.Fatalf("fail-open check should resolve true")
	}
	// The assumed value is cached for the rest of the session.
	if got := c.Check(context.Background(), "816031001", "Monday", "9:00 am"); !got {
		t.Fatalf("expected cached true after failure")
	}
	if n := chk.callCount(); n != 1 {
		t.Fatalf("expected 1 server call; got %d", n)
	}
	if st := c.Peek("816031001", "Monday", "9:00 am"); st != StateAvailable {
		t.Fatalf("expected StateAvailable after fail-open; got %v", st)
	}
}

func TestCheckFailClosedPolicy(t *testing.T) {
	t.Parallel()
	chk := &fakeChecker{err: errors.New("boom")}
	c := New(chk, FailClosed, 0, nil)

	if got := c.Check(context.Background(), "816031001", "Monday", "9:00 am"); got {
		t.Fatalf("fail-closed check should resolve false")
	}
	if st := c.Peek("816031001", "Monday", "9:00 am"); st != StateUnavailable {
		t.Fatalf("expected StateUnavailable; got %v", st)
	}
}

func TestPeekMissWarmsInBackground(t *testing.T) {
	t.Parallel()
	chk := &fakeChecker{result: true, called: make(chan struct{}, 1)}
	c := New(chk, FailOpen, 0, nil)

	if st := c.Peek("816031001", "Monday", "9:00 am"); st != StateUnknown {
		t.Fatalf("expected StateUnknown on miss; got %v", st)
	}
	select {
	case <-chk.called:
	case <-time.After(2 * time.Second):
		t.Fatalf("peek did not trigger a background check")
	}
	deadline := time.Now().Add(2 * time.Second)
	for {
		if st := c.Peek("816031001", "Monday", "9:00 am"); st == StateAvailable {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("cache never warmed to StateAvailable")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestPutOverridesAndFlushClears(t *testing.T) {
	t.Parallel()
	chk := &fakeChecker{result: true}
	c := New(chk, FailOpen, 0, nil)

	c.Put("816031001", "Monday", "9:00 am", false)
	if st := c.Peek("816031001", "Monday", "9:00 am"); st != StateUnavailable {
		t.Fatalf("expected StateUnavailable after Put; got %v", st)
	}

	c.Flush()
	// A flushed key misses again; seed it to avoid racing the warm goroutine.
	c.Put("816031001", "Monday", "9:00 am", true)
	if st := c.Peek("816031001", "Monday", "9:00 am"); st != StateAvailable {
		t.Fatalf("expected StateAvailable after second Put; got %v", st)
	}
}

func TestPolicyOnError(t *testing.T) {
	t.Parallel()
	if !FailOpen.OnError() {
		t.Fatalf("FailOpen should assume available")
	}
	if FailClosed.OnError() {
		t.Fatalf("FailClosed should assume unavailable")
	}
	if FailOpen.String() != "fail-open" || FailClosed.String() != "fail-closed" {
		t.Fatalf("unexpected policy strings: %v %v", FailOpen, FailClosed)
	}
}
