package testutil

import (
	"errors"
	"fmt"
	"testing"
)

// Failure paths need a mock *testing.T, so these cover the passing paths
// and the internal helpers.

func TestAssertEqual_Success(t *testing.T) {
	AssertEqual(t, "hello", "hello")
	AssertEqual(t, []int{1, 2, 3}, []int{1, 2, 3})
	AssertEqual(t, map[string]float64{"a": 0.5}, map[string]float64{"a": 0.5}, "weights")
	AssertEqual(t, nil, nil)
}

func TestAssertApprox_Success(t *testing.T) {
	AssertApprox(t, 0.1+0.2, 0.3)
	AssertApprox(t, map[string]float64{"wNb1A": 1.0 / 3, "wNb1B": 2.0 / 3},
		map[string]float64{"wNb1A": 0.3333333333333333, "wNb1B": 0.6666666666666666})
}

func TestAssertErrorIs_Success(t *testing.T) {
	base := errors.New("base")
	AssertErrorIs(t, fmt.Errorf("wrapped: %w", base), base)
	AssertError(t, base)
	AssertNoError(t, nil)
}

func TestAssertBooleansAndStrings(t *testing.T) {
	AssertTrue(t, len("hello") == 5)
	AssertFalse(t, 1 == 2)
	AssertContains(t, "split wNb1", "wNb1")
	var p *int
	AssertNil(t, p)
	AssertNil(t, nil)
}

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		name string
		args []interface{}
		want string
	}{
		{"empty", nil, ""},
		{"single string", []interface{}{"hello"}, "hello"},
		{"format string", []interface{}{"value is %d", 42}, "value is 42"},
		{"non-string first arg", []interface{}{42}, "42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatMessage(tt.args...); got != tt.want {
				t.Errorf("formatMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsNil(t *testing.T) {
	var p *int
	var m map[string]int
	var s []int
	x := 1
	tests := []struct {
		name string
		v    interface{}
		want bool
	}{
		{"untyped nil", nil, true},
		{"nil pointer", p, true},
		{"nil map", m, true},
		{"nil slice", s, true},
		{"pointer", &x, false},
		{"int", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isNil(tt.v); got != tt.want {
				t.Errorf("isNil(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestSequence(t *testing.T) {
	s := NewSequence(0.1, 0.9)
	AssertEqual(t, s.Float64(), 0.1)
	AssertEqual(t, s.Float64(), 0.9)
	AssertEqual(t, s.Float64(), 0.9, "exhausted sequence repeats its last value")
	AssertEqual(t, s.Calls(), 2)

	AssertEqual(t, NewSequence().Float64(), 0.0)
}
