package chart

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/luki/lmsensors/internal/history"
)

var tempLimits = Limits{High: 80, Crit: 100, HasHigh: true, HasCrit: true}

func TestColor(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{50, "78"},
		{70, "220"},
		{85, "208"},
		{100, "196"},
		{math.NaN(), "240"},
	}
	for _, tt := range tests {
		if got := Color(tt.v, tempLimits); string(got) != tt.want {
			t.Errorf("Color(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}

	if got := Color(5000, Limits{}); string(got) != "78" {
		t.Errorf("Color without limits = %q, want 78", got)
	}
}

func TestSparkline(t *testing.T) {
	var pts []history.Point
	for _, v := range []float64{30, 35, 40, 50, math.NaN(), 70, 80, 90, 100} {
		pts = append(pts, history.Point{Value: v})
	}
	result := Sparkline(pts, 20, 20, 110, tempLimits)
	if len(result) == 0 {
		t.Error("sparkline should not be empty")
	}
	if Sparkline(pts, 0, 20, 110, tempLimits) != "" {
		t.Error("zero width sparkline should be empty")
	}
	t.Logf("Sparkline: %s", result)
}

func TestSparklineMinuteTicks(t *testing.T) {
	base := time.Date(2026, 2, 21, 14, 0, 50, 0, time.Local)
	var pts []history.Point
	for i := 0; i < 20; i++ {
		pts = append(pts, history.Point{
			Value: float64(40 + i%5),
			Time:  base.Add(time.Duration(i) * time.Second),
		})
	}

	result := Sparkline(pts, 20, 30, 55, tempLimits)
	if !strings.Contains(result, "│") {
		t.Error("expected minute tick mark in sparkline")
	}

	timeline := Timeline(pts, 20)
	if !strings.Contains(timeline, "14:01") {
		t.Errorf("expected 14:01 label in timeline, got %q", timeline)
	}
}

func TestRange(t *testing.T) {
	s := history.NewSeries(10)
	if lo, hi := Range(s, tempLimits, 5); lo != 0 || hi != 1 {
		t.Errorf("empty Range = %v..%v, want 0..1", lo, hi)
	}

	now := time.Now()
	s.Push(40, now)
	s.Push(60, now)
	lo, hi := Range(s, tempLimits, 5)
	if lo != 35 || hi != 105 {
		t.Errorf("Range = %v..%v, want 35..105", lo, hi)
	}

	neg := history.NewSeries(10)
	neg.Push(-12, now)
	neg.Push(-10, now)
	lo, hi = Range(neg, Limits{}, 1)
	if lo != -13 || hi != -9 {
		t.Errorf("negative Range = %v..%v, want -13..-9", lo, hi)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{45, "45.0"},
		{27.8, "27.8"},
		{0.88, "0.880"},
		{1138, "1138"},
		{0, "0.0"},
		{math.NaN(), "N/A"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.v); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}
