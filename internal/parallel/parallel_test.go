package parallel_test

import (
	"testing"
	"time"

	"nsmc/internal/parallel"
)

func TestMap_OrderedByIndex(t *testing.T) {
	n := 50
	results := parallel.Map(n, 8, func(i int) int {
		if i%7 == 0 {
			time.Sleep(time.Millisecond)
		}
		return i * i
	})

	if len(results) != n {
		t.Fatalf("expected %d results, got %d", n, len(results))
	}
	for i, v := range results {
		if v != i*i {
			t.Errorf("index %d: got %d, want %d", i, v, i*i)
		}
	}
}

func TestMap_SingleWorkerMatchesSequential(t *testing.T) {
	n := 10
	got := parallel.Map(n, 1, func(i int) int { return i + 1 })
	for i, v := range got {
		if v != i+1 {
			t.Errorf("index %d: got %d, want %d", i, v, i+1)
		}
	}
}

func TestMap_ZeroItems(t *testing.T) {
	got := parallel.Map(0, 4, func(i int) int { return i })
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}
