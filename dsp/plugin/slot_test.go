package plugin

import (
	"sync"
	"testing"
)

func TestParamSlotLatestValueWins(t *testing.T) {
	var s ParamSlot

	if _, changed := s.Load(); changed {
		t.Fatal("zero slot reported a change")
	}

	s.Store(1)
	s.Store(2)
	s.Store(3)

	v, changed := s.Load()
	if !changed || v != 3 {
		t.Fatalf("Load() = %v, %v; want 3, true", v, changed)
	}

	if v, changed = s.Load(); changed || v != 3 {
		t.Fatalf("second Load() = %v, %v; want 3, false", v, changed)
	}

	if s.Peek() != 3 {
		t.Fatalf("Peek() = %v", s.Peek())
	}
}

func TestParamSlotConcurrentWriters(t *testing.T) {
	var (
		s  ParamSlot
		wg sync.WaitGroup
	)

	for w := range 4 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := range 1000 {
				s.Store(float64(w*1000 + i))
			}
		}()
	}

	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-done:
				return
			default:
				s.Load()
			}
		}
	}()

	wg.Wait()
	close(done)

	v := s.Peek()
	if v < 0 || v >= 4000 {
		t.Fatalf("Peek() = %v, want one of the stored values", v)
	}
}
