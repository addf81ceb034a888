package history

import (
	"math"
	"testing"
	"time"
)

func TestSeries(t *testing.T) {
	s := NewSeries(5)

	now := time.Now()
	for i := 0; i < 7; i++ {
		s.Push(float64(30+i), now.Add(time.Duration(i)*time.Second))
	}

	if len(s.Points) != 5 {
		t.Errorf("expected 5 points, got %d", len(s.Points))
	}
	if s.Last() != 36.0 {
		t.Errorf("Last(): got %f, want 36.0", s.Last())
	}
	if s.Min != 30.0 {
		t.Errorf("Min: got %f, want 30.0", s.Min)
	}
	if s.Peak != 36.0 {
		t.Errorf("Peak: got %f, want 36.0", s.Peak)
	}
	// Points 32..36 remain in the ring.
	if s.Avg() != 34.0 {
		t.Errorf("Avg(): got %f, want 34.0", s.Avg())
	}
}

func TestSeriesNaN(t *testing.T) {
	s := NewSeries(3)
	if !math.IsNaN(s.Last()) || !math.IsNaN(s.Avg()) || s.HasStats() {
		t.Fatal("empty series should have no value")
	}

	now := time.Now()
	s.Push(math.NaN(), now)
	if s.HasStats() {
		t.Error("NaN sample should not count as a value")
	}

	s.Push(10, now)
	s.Push(20, now)
	s.Push(30, now) // evicts the NaN
	if got := s.Avg(); got != 20 {
		t.Errorf("Avg(): got %f, want 20", got)
	}
	if s.Min != 10 || s.Peak != 30 {
		t.Errorf("Min/Peak: got %f/%f, want 10/30", s.Min, s.Peak)
	}
}

func TestLastN(t *testing.T) {
	s := NewSeries(100)
	base := time.Date(2026, 2, 21, 14, 0, 0, 0, time.Local)

	for i := 0; i < 120; i++ {
		s.Push(float64(30+i%10), base.Add(time.Duration(i)*time.Second))
	}

	pts := s.LastN(5)
	if len(pts) != 5 {
		t.Fatalf("LastN(5): got %d, want 5", len(pts))
	}
	last := pts[len(pts)-1]
	if last.Time != base.Add(119*time.Second) {
		t.Errorf("last point time: got %v, want %v", last.Time, base.Add(119*time.Second))
	}

	pts[0].Value = -1
	if s.Points[95].Value == -1 {
		t.Error("LastN should return a copy")
	}

	if got := s.LastN(500); len(got) != 100 {
		t.Errorf("LastN(500): got %d, want 100", len(got))
	}
	if s.LastN(0) != nil {
		t.Error("LastN(0) should be nil")
	}
}

func TestStore(t *testing.T) {
	st := NewStore(10)
	now := time.Now()
	st.Record("coretemp-isa-0000/temp1", 40, now)
	st.Record("coretemp-isa-0000/temp1", 42, now)
	st.Record("nct6775-isa-0290/fan2", 1100, now)

	if st.Len() != 2 {
		t.Errorf("Len(): got %d, want 2", st.Len())
	}
	if got := st.Get("coretemp-isa-0000/temp1"); got == nil || got.Last() != 42 {
		t.Errorf("Get(temp1): got %+v", got)
	}
	if st.Get("missing") != nil {
		t.Error("Get(missing) should be nil")
	}
}
