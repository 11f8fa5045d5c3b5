package parallel

import (
	"runtime"
	"sync/atomic"
	"testing"
)

func TestNewDefaultsToGOMAXPROCS(t *testing.T) {
	for _, workers := range []int{0, -3} {
		if got := New(workers).Workers(); got != runtime.GOMAXPROCS(0) {
			t.Errorf("New(%d).Workers() = %d, want GOMAXPROCS", workers, got)
		}
	}
	if got := New(7).Workers(); got != 7 {
		t.Errorf("New(7).Workers() = %d", got)
	}
}

func TestRowsVisitsEachRowOnce(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		n       int
	}{
		{"serial", 1, 64},
		{"parallel", 4, 64},
		{"more workers than rows", 16, 3},
		{"single row", 8, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counts := make([]atomic.Int32, tt.n)
			New(tt.workers).Rows(tt.n, func(y int) {
				counts[y].Add(1)
			})
			for y := range counts {
				if got := counts[y].Load(); got != 1 {
					t.Errorf("row %d visited %d times", y, got)
				}
			}
		})
	}
}

func TestRowsEmpty(t *testing.T) {
	called := false
	p := New(4)
	p.Rows(0, func(y int) { called = true })
	p.Rows(-5, func(y int) { called = true })
	if called {
		t.Error("fn called for empty row range")
	}
}

func TestRowsSerialOrder(t *testing.T) {
	// A single worker runs rows in order, which keeps renders
	// deterministic when callers ask for one worker.
	var got []int
	New(1).Rows(5, func(y int) { got = append(got, y) })
	for i, y := range got {
		if y != i {
			t.Fatalf("serial order broken: %v", got)
		}
	}
	if len(got) != 5 {
		t.Fatalf("visited %d rows, want 5", len(got))
	}
}

func TestRowsConcurrentCalls(t *testing.T) {
	// Independent Rows calls on one pool must not interfere.
	p := New(4)
	var total atomic.Int64
	done := make(chan struct{})
	for i := 0; i < 3; i++ {
		go func() {
			p.Rows(100, func(y int) { total.Add(1) })
			done <- struct{}{}
		}()
	}
	for i := 0; i < 3; i++ {
		<-done
	}
	if total.Load() != 300 {
		t.Errorf("total rows = %d, want 300", total.Load())
	}
}

func TestPackageLevelRows(t *testing.T) {
	var total atomic.Int64
	Rows(2, 10, func(y int) { total.Add(1) })
	if total.Load() != 10 {
		t.Errorf("total = %d, want 10", total.Load())
	}
}
