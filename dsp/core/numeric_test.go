package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "inside", value: 0.5, min: 0, max: 1, expected: 0.5},
		{name: "below", value: -1, min: 0, max: 1, expected: 0},
		{name: "above", value: 2, min: 0, max: 1, expected: 1},
		{name: "swapped", value: 2, min: 1, max: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.min, tt.max)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
}

func TestDBConversions(t *testing.T) {
	linear := DBToLinear(-6)
	db := LinearToDB(linear)
	if !NearlyEqual(db, -6, 1e-10) {
		t.Fatalf("LinearToDB(DBToLinear(-6)) = %v, want -6", db)
	}
	if !math.IsInf(LinearToDB(0), -1) {
		t.Fatal("expected -Inf for zero")
	}
	if !math.IsNaN(LinearToDB(-1)) {
		t.Fatal("expected NaN for negative amplitude")
	}
}

func TestClampNaN(t *testing.T) {
	if got := Clamp(math.NaN(), 20, 20000); got != 20 {
		t.Fatalf("Clamp(NaN) = %v, want 20", got)
	}
}

func TestGainToDecibels(t *testing.T) {
	tests := []struct {
		name  string
		gain  float64
		floor float64
		want  float64
	}{
		{name: "unity", gain: 1, floor: -120, want: 0},
		{name: "half", gain: 0.5, floor: -120, want: 20 * math.Log10(0.5)},
		{name: "zero", gain: 0, floor: -120, want: -120},
		{name: "negative", gain: -1, floor: -24, want: -24},
		{name: "nan", gain: math.NaN(), floor: -24, want: -24},
		{name: "below floor", gain: 1e-9, floor: -120, want: -120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GainToDecibels(tt.gain, tt.floor)
			if !NearlyEqual(got, tt.want, 1e-12) {
				t.Fatalf("GainToDecibels(%v, %v) = %v, want %v", tt.gain, tt.floor, got, tt.want)
			}
		})
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(1) || IsFinite(math.NaN()) || IsFinite(math.Inf(1)) {
		t.Fatal("IsFinite misclassified a value")
	}
}
