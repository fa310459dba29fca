package worker_test

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/examtrack/backend/internal/worker"
)

func TestPool_RunsEveryJob(t *testing.T) {
	p := worker.NewPool[int](3, 2)

	const jobs = 20
	go func() {
		for i := 0; i < jobs; i++ {
			n := i
			p.Submit(fmt.Sprintf("job-%d", n), func() int { return n * n })
		}
		p.Close()
	}()

	seen := make(map[string]int)
	for r := range p.Results() {
		seen[r.JobID] = r.Output
	}

	if len(seen) != jobs {
		t.Fatalf("expected %d results, got %d", jobs, len(seen))
	}
	if seen["job-7"] != 49 {
		t.Errorf("expected job-7 to produce 49, got %d", seen["job-7"])
	}
}

func TestPool_LimitsConcurrency(t *testing.T) {
	const workers = 2
	p := worker.NewPool[struct{}](workers, 0)

	var running, peak atomic.Int32
	release := make(chan struct{})

	go func() {
		for i := 0; i < 6; i++ {
			p.Submit(fmt.Sprint(i), func() struct{} {
				n := running.Add(1)
				for {
					old := peak.Load()
					if n <= old || peak.CompareAndSwap(old, n) {
						break
					}
				}
				<-release
				running.Add(-1)
				return struct{}{}
			})
		}
		p.Close()
	}()

	close(release)
	count := 0
	for range p.Results() {
		count++
	}

	if count != 6 {
		t.Errorf("expected 6 results, got %d", count)
	}
	if peak.Load() > workers {
		t.Errorf("expected at most %d concurrent jobs, saw %d", workers, peak.Load())
	}
}

func TestPool_CloseTwice(t *testing.T) {
	p := worker.NewPool[int](1, 1)
	p.Close()
	p.Close()

	if _, ok := <-p.Results(); ok {
		t.Error("expected results channel to be closed")
	}
}
