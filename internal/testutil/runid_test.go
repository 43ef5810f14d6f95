package testutil

import (
	"sync"
	"testing"
)

func TestFixedRunIDGenerator_Sequence(t *testing.T) {
	g := NewFixedRunIDGenerator("run")
	want := []string{"run", "run-2", "run-3"}
	for i, w := range want {
		if got := g.Generate(); got != w {
			t.Errorf("Generate() #%d = %q, want %q", i+1, got, w)
		}
	}
}

func TestFixedRunIDGenerator_EmptyPrefixDefault(t *testing.T) {
	g := NewFixedRunIDGenerator("")
	if got := g.Generate(); got != "test-run" {
		t.Errorf("Generate() = %q, want %q", got, "test-run")
	}
}

func TestFixedRunIDGenerator_ThreadSafe(t *testing.T) {
	g := NewFixedRunIDGenerator("run")

	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := g.Generate()
			mu.Lock()
			seen[id] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(seen) != 50 {
		t.Errorf("got %d distinct IDs, want 50", len(seen))
	}
}
