// SPDX-License-Identifier: MPL-2.0

package meshconfig

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidAngle is the sentinel error wrapped by InvalidAngleError.
var ErrInvalidAngle = errors.New("invalid angle")

type (
	// Angle is a unit-carrying angular quantity. It is stored internally
	// in degrees so that values constructed from degree literals compare
	// exactly (the chunk-matching rules test for exactly 90 degrees).
	//
	// The zero value is 0 degrees.
	Angle struct {
		degrees float64
	}

	// InvalidAngleError is returned when an angle string cannot be parsed.
	// It wraps ErrInvalidAngle for errors.Is() compatibility.
	InvalidAngleError struct {
		Value string
	}
)

// Degrees constructs an Angle from a degree magnitude.
func Degrees(v float64) Angle {
	return Angle{degrees: v}
}

// Radians constructs an Angle from a radian magnitude.
func Radians(v float64) Angle {
	return Angle{degrees: v * 180 / math.Pi}
}

// ParseAngle parses the parameter-file notation for angles: "90deg",
// "0.5rad", or a bare number meaning degrees. Whitespace around the
// magnitude and unit is ignored.
func ParseAngle(s string) (Angle, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Angle{}, &InvalidAngleError{Value: s}
	}

	unit := ""
	switch {
	case strings.HasSuffix(trimmed, "deg"):
		unit = "deg"
		trimmed = strings.TrimSuffix(trimmed, "deg")
	case strings.HasSuffix(trimmed, "rad"):
		unit = "rad"
		trimmed = strings.TrimSuffix(trimmed, "rad")
	}

	magnitude, err := strconv.ParseFloat(strings.TrimSpace(trimmed), 64)
	if err != nil {
		return Angle{}, &InvalidAngleError{Value: s}
	}

	if unit == "rad" {
		return Radians(magnitude), nil
	}
	return Degrees(magnitude), nil
}

// Degrees returns the magnitude of the angle expressed in degrees.
// This is the normalized form consumed by the external mesh generator.
func (a Angle) Degrees() float64 {
	return a.degrees
}

// Radians returns the magnitude of the angle expressed in radians.
func (a Angle) Radians() float64 {
	return a.degrees * math.Pi / 180
}

// String returns the parameter-file notation for the angle.
func (a Angle) String() string {
	return strconv.FormatFloat(a.degrees, 'g', -1, 64) + "deg"
}

// Error implements the error interface for InvalidAngleError.
func (e *InvalidAngleError) Error() string {
	return fmt.Sprintf("invalid angle: %q (expected e.g. \"90deg\", \"0.5rad\", or a bare degree value)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidAngleError) Unwrap() error {
	return ErrInvalidAngle
}
