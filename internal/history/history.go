// Package history keeps a bounded time series per sensor reading with
// min/peak/avg statistics for the live monitor.
package history

import (
	"math"
	"time"
)

// Point is one sample of a series.
type Point struct {
	Value float64
	Time  time.Time
}

// Series is a fixed-capacity ring of samples. NaN samples are kept in the
// ring but do not affect the statistics.
type Series struct {
	Points []Point
	Cap    int
	Min    float64
	Peak   float64

	sum   float64
	count int
}

// NewSeries creates an empty series holding at most capacity points.
func NewSeries(capacity int) *Series {
	if capacity < 1 {
		capacity = 1
	}
	return &Series{
		Points: make([]Point, 0, capacity),
		Cap:    capacity,
		Min:    math.Inf(1),
		Peak:   math.Inf(-1),
	}
}

// Push appends a sample, evicting the oldest when full.
func (s *Series) Push(v float64, t time.Time) {
	p := Point{Value: v, Time: t}
	if len(s.Points) >= s.Cap {
		old := s.Points[0]
		if !math.IsNaN(old.Value) {
			s.sum -= old.Value
			s.count--
		}
		copy(s.Points, s.Points[1:])
		s.Points[len(s.Points)-1] = p
	} else {
		s.Points = append(s.Points, p)
	}

	if math.IsNaN(v) {
		return
	}
	s.sum += v
	s.count++
	s.Min = math.Min(s.Min, v)
	s.Peak = math.Max(s.Peak, v)
}

// Last returns the newest value, or NaN if the series is empty.
func (s *Series) Last() float64 {
	if len(s.Points) == 0 {
		return math.NaN()
	}
	return s.Points[len(s.Points)-1].Value
}

// Avg returns the mean of the non-NaN values currently held.
func (s *Series) Avg() float64 {
	if s.count == 0 {
		return math.NaN()
	}
	return s.sum / float64(s.count)
}

// HasStats reports whether at least one real value was recorded.
func (s *Series) HasStats() bool {
	return !math.IsInf(s.Min, 1)
}

// LastN returns a copy of the newest n points.
func (s *Series) LastN(n int) []Point {
	if n <= 0 || len(s.Points) == 0 {
		return nil
	}
	start := max(len(s.Points)-n, 0)
	out := make([]Point, len(s.Points)-start)
	copy(out, s.Points[start:])
	return out
}

// Store holds one series per key.
type Store struct {
	series   map[string]*Series
	capacity int
}

// NewStore creates a store whose series hold capacity points each.
func NewStore(capacity int) *Store {
	return &Store{
		series:   make(map[string]*Series),
		capacity: capacity,
	}
}

// Record appends v to the series for key.
func (s *Store) Record(key string, v float64, t time.Time) {
	ser, ok := s.series[key]
	if !ok {
		ser = NewSeries(s.capacity)
		s.series[key] = ser
	}
	ser.Push(v, t)
}

// Get returns the series for key, or nil.
func (s *Store) Get(key string) *Series {
	return s.series[key]
}

// Len returns the number of tracked series.
func (s *Store) Len() int { return len(s.series) }
