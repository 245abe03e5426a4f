// SPDX-License-Identifier: MPL-2.0

package meshconfig

import (
	"errors"
	"math"
	"testing"
)

func TestParseAngle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    float64 // degrees
		wantErr bool
	}{
		{name: "degrees with unit", input: "90deg", want: 90},
		{name: "negative degrees", input: "-12.5deg", want: -12.5},
		{name: "bare number means degrees", input: "45", want: 45},
		{name: "radians", input: "0rad", want: 0},
		{name: "pi radians", input: "3.141592653589793rad", want: 180},
		{name: "whitespace around magnitude", input: "  90 deg ", want: 90},
		{name: "empty", input: "", wantErr: true},
		{name: "whitespace only", input: "   ", wantErr: true},
		{name: "garbage", input: "ninetydeg", wantErr: true},
		{name: "unit only", input: "deg", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseAngle(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseAngle(%q) expected error, got %v", tt.input, got)
				}
				if !errors.Is(err, ErrInvalidAngle) {
					t.Errorf("ParseAngle(%q) error = %v, want ErrInvalidAngle", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAngle(%q) unexpected error: %v", tt.input, err)
			}
			if math.Abs(got.Degrees()-tt.want) > 1e-9 {
				t.Errorf("ParseAngle(%q).Degrees() = %v, want %v", tt.input, got.Degrees(), tt.want)
			}
		})
	}
}

func TestAngleDegreeConstructionIsExact(t *testing.T) {
	t.Parallel()

	// The chunk-matching rules compare against exactly 90 degrees, so a
	// degree-constructed angle must round-trip without drift.
	if Degrees(90) != Degrees(90.0) {
		t.Error("Degrees(90) must compare equal to itself")
	}
	if got := Degrees(90).Degrees(); got != 90 {
		t.Errorf("Degrees(90).Degrees() = %v, want exactly 90", got)
	}
}

func TestAngleRadians(t *testing.T) {
	t.Parallel()

	if got := Degrees(180).Radians(); math.Abs(got-math.Pi) > 1e-12 {
		t.Errorf("Degrees(180).Radians() = %v, want pi", got)
	}
	if got := Radians(math.Pi / 2).Degrees(); math.Abs(got-90) > 1e-9 {
		t.Errorf("Radians(pi/2).Degrees() = %v, want 90", got)
	}
}

func TestAngleString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		angle Angle
		want  string
	}{
		{Degrees(90), "90deg"},
		{Degrees(0), "0deg"},
		{Degrees(-12.5), "-12.5deg"},
	}

	for _, tt := range tests {
		if got := tt.angle.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
