package problemgen

import (
	"errors"
	"testing"
)

func TestCheckAnswer_Integer(t *testing.T) {
	p := &Problem{Kind: KindMath, Answer: "42", Value: 42}

	tests := []struct {
		input string
		want  bool
	}{
		{"42", true},
		{" 42 ", true},
		{"042", true},
		{"43", false},
		{"-42", false},
	}

	for _, tc := range tests {
		got, err := CheckAnswer(tc.input, p)
		if err != nil {
			t.Errorf("CheckAnswer(%q) unexpected error: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("CheckAnswer(%q, 42) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestCheckAnswer_NonNumeric(t *testing.T) {
	p := &Problem{Kind: KindMath, Answer: "42", Value: 42}
	for _, input := range []string{"", "  ", "abc", "4 2", "4.2"} {
		_, err := CheckAnswer(input, p)
		if !errors.Is(err, ErrInvalidAnswer) {
			t.Errorf("CheckAnswer(%q) err = %v, want ErrInvalidAnswer", input, err)
		}
	}
}

func TestCheckAnswer_Time(t *testing.T) {
	p := &Problem{Kind: KindClock, Answer: "3:05", Clock: &ClockTime{3, 5}}

	tests := []struct {
		input string
		want  bool
	}{
		{"3:05", true},
		{" 3:05", true},
		{"3:5", false},
		{"03:05", false},
		{"4:05", false},
	}
	for _, tc := range tests {
		got, err := CheckAnswer(tc.input, p)
		if err != nil {
			t.Fatalf("time answers never fail to parse, got %v", err)
		}
		if got != tc.want {
			t.Errorf("CheckAnswer(%q, 3:05) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		h, m int
		want string
	}{
		{12, 0, "12:00"},
		{1, 5, "1:05"},
		{9, 45, "9:45"},
	}
	for _, tc := range tests {
		if got := FormatTime(tc.h, tc.m); got != tc.want {
			t.Errorf("FormatTime(%d, %d) = %q, want %q", tc.h, tc.m, got, tc.want)
		}
	}
}
