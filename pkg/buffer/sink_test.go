package buffer

import (
	"slices"
	"sync"
	"testing"
)

func TestSink(t *testing.T) {
	s := NewSink[string](2)
	if s.Len() != 0 {
		t.Errorf("len=%d", s.Len())
	}
	for _, v := range []string{"a", "b", "c"} {
		s.Append(v)
	}
	if s.Len() != 3 {
		t.Errorf("len=%d", s.Len())
	}
	got := s.Items()
	if !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("items=%v", got)
	}

	// Items is a copy.
	got[0] = "z"
	if s.Items()[0] != "a" {
		t.Error("Items shares storage with the sink")
	}
}

func TestSinkNegativeHint(t *testing.T) {
	s := NewSink[int](-5)
	s.Append(1)
	if s.Len() != 1 {
		t.Errorf("len=%d", s.Len())
	}
}

func TestSinkConcurrentAppend(t *testing.T) {
	s := NewSink[int](0)
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 100 {
				s.Append(g*100 + i)
			}
		}()
	}
	wg.Wait()
	if s.Len() != 800 {
		t.Fatalf("len=%d", s.Len())
	}
}
