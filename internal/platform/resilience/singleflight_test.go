package resilience

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_Do(t *testing.T) {
	var g SingleFlight
	var counter int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			_, err, _ := g.Do("roster", func() (any, error) {
				atomic.AddInt32(&counter, 1)
				time.Sleep(20 * time.Millisecond)
				return "ok", nil
			})
			if err != nil {
				t.Errorf("singleflight call failed: %v", err)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&counter); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}
}

func TestSingleFlight_ErrorIsShared(t *testing.T) {
	var g SingleFlight
	errBuild := errors.New("build failed")

	release := make(chan struct{})
	leaderDone := make(chan error, 1)
	go func() {
		_, err, _ := g.Do("k", func() (any, error) {
			<-release
			return nil, errBuild
		})
		leaderDone <- err
	}()

	// wait for the leader to register
	for {
		g.mu.Lock()
		_, ok := g.calls["k"]
		g.mu.Unlock()
		if ok {
			break
		}
		time.Sleep(time.Millisecond)
	}

	followerDone := make(chan error, 1)
	go func() {
		_, err, shared := g.Do("k", func() (any, error) { return "unexpected", nil })
		if !shared {
			t.Errorf("expected follower to share the leader call")
		}
		followerDone <- err
	}()

	time.Sleep(10 * time.Millisecond)
	close(release)

	if err := <-leaderDone; !errors.Is(err, errBuild) {
		t.Fatalf("unexpected leader error: %v", err)
	}
	if err := <-followerDone; !errors.Is(err, errBuild) {
		t.Fatalf("unexpected follower error: %v", err)
	}
}

func TestSingleFlight_ForgetStartsFreshCall(t *testing.T) {
	var g SingleFlight
	var calls atomic.Int32

	release := make(chan struct{})
	go func() {
		_, _, _ = g.Do("k", func() (any, error) {
			calls.Add(1)
			<-release
			return nil, nil
		})
	}()
	for calls.Load() == 0 {
		time.Sleep(time.Millisecond)
	}

	g.Forget("k")
	v, err, _ := g.Do("k", func() (any, error) {
		calls.Add(1)
		return "fresh", nil
	})
	close(release)

	if err != nil || v != "fresh" {
		t.Fatalf("unexpected fresh result: v=%v err=%v", v, err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected two executions after Forget, got %d", got)
	}
}
