package core

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"12.50", 12.5, false},
		{"12,50", 12.5, false},
		{" 7 ", 7, false},
		{"0", 0, false},
		{"", 0, true},
		{"-1", 0, true},
		{"NaN", 0, true},
		{"abc", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidAmount) {
				t.Errorf("ParseAmount(%q) err = %v, want ErrInvalidAmount", tc.in, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParseAmount(%q) = (%v, %v), want %v", tc.in, got, err, tc.want)
		}
	}
}

func TestCoerceAmountNeverRejects(t *testing.T) {
	if got := CoerceAmount("49.99"); got != 49.99 {
		t.Errorf("CoerceAmount(49.99) = %v", got)
	}
	for _, in := range []string{"", "garbage", "NaN", "+Inf"} {
		if got := CoerceAmount(in); got != 0 {
			t.Errorf("CoerceAmount(%q) = %v, want 0", in, got)
		}
	}
}

func TestCoerceSavingTruncates(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1200.75", 1200},
		{"300", 300},
		{"-2.9", -2},
		{"abc", 0},
	}
	for _, tc := range cases {
		if got := CoerceSaving(tc.in); got != tc.want {
			t.Errorf("CoerceSaving(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestCoerceSavingValueAcceptsStringsAndNumbers(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want float64
	}{
		{"string", "700.9", 700},
		{"number", 700.9, 700},
		{"json number", json.Number("700.9"), 700},
		{"garbage string", "abc", 0},
		{"nan", math.NaN(), 0},
		{"unexpected type", true, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CoerceSavingValue(tc.in); got != tc.want {
				t.Errorf("CoerceSavingValue(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}
