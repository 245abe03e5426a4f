// SPDX-License-Identifier: MPL-2.0

package meshconfig

import (
	"errors"
	"fmt"
)

const (
	// DefaultNChunks is the default number of chunks (the full cubed sphere).
	DefaultNChunks ChunkCount = 6
	// DefaultNex is the default number of spectral elements along each
	// logical direction of a chunk.
	DefaultNex ElementCount = 64
	// DefaultNProc is the default number of processors along each
	// direction of the processor grid.
	DefaultNProc ProcCount = 1
)

var (
	// ErrInvalidChunkCount is returned when a ChunkCount is not one of 1, 2, 3, or 6.
	ErrInvalidChunkCount = errors.New("invalid chunk count")
	// ErrInvalidProcCount is returned when a ProcCount is below 1.
	ErrInvalidProcCount = errors.New("invalid processor count")
)

type (
	// ChunkCount is the number of curved surface patches the spherical
	// shell is divided into. Only 1, 2, 3, and 6 chunks produce a
	// geometrically consistent decomposition, so the enumeration is
	// closed and enforced at construction time.
	ChunkCount int

	// InvalidChunkCountError is returned when a ChunkCount value is not recognized.
	// It wraps ErrInvalidChunkCount for errors.Is() compatibility.
	InvalidChunkCountError struct {
		Value ChunkCount
	}

	// ElementCount is the number of spectral elements along one logical
	// in-chunk direction. Divisibility and minimum-size constraints on
	// element counts are cross-parameter rules and live in the constraint
	// checker, not here.
	ElementCount int

	// ProcCount is the number of processors the element grid is split
	// across along one direction. Must be at least 1.
	ProcCount int

	// InvalidProcCountError is returned when a ProcCount value is below 1.
	// It wraps ErrInvalidProcCount for errors.Is() compatibility.
	InvalidProcCountError struct {
		Value ProcCount
	}

	// MeshConfig is the raw, user-supplied mesh decomposition
	// configuration. It is constructed once from the parameter file,
	// passed through the constraint checker exactly once, and either
	// discarded (on a non-empty report) or frozen into a Resolved
	// snapshot for dispatch.
	MeshConfig struct {
		// SaveFiles requests that the mesh generator write mesh files.
		SaveFiles bool
		// Dry reports what would be executed without invoking the mesh
		// generator.
		Dry bool

		// AngularWidthXi is the angular extent of a chunk along xi.
		// Must be exactly 90 degrees for more than one chunk.
		AngularWidthXi Angle
		// AngularWidthEta is the angular extent of a chunk along eta.
		// Must be exactly 90 degrees for more than two chunks.
		AngularWidthEta Angle
		// CenterLatitude is the latitude of the first chunk center.
		CenterLatitude Angle
		// CenterLongitude is the longitude of the first chunk center.
		CenterLongitude Angle
		// GammaRotationAzimuth rotates the chunk layout about its center.
		GammaRotationAzimuth Angle

		// NChunks is the number of chunks.
		NChunks ChunkCount
		// NexXi is the element count along xi.
		NexXi ElementCount
		// NexEta is the element count along eta.
		NexEta ElementCount
		// NProcXi is the processor-grid extent along xi.
		NProcXi ProcCount
		// NProcEta is the processor-grid extent along eta.
		NProcEta ProcCount
	}

	// Resolved is the frozen view of a configuration that passed the
	// constraint checker. Fields are unexported for immutability; the
	// derived plain-degree values are computed once during Resolve and
	// are the only angle form the external mesh generator sees.
	Resolved struct {
		cfg MeshConfig

		angularWidthXiDegrees       float64
		angularWidthEtaDegrees      float64
		centerLatitudeDegrees       float64
		centerLongitudeDegrees      float64
		gammaRotationAzimuthDegrees float64

		totalProcessors int
	}
)

// NewChunkCount creates a validated ChunkCount. Values outside the
// closed enumeration {1, 2, 3, 6} are a construction-time error, not a
// report entry.
func NewChunkCount(n int) (ChunkCount, error) {
	c := ChunkCount(n)
	if isValid, errs := c.IsValid(); !isValid {
		return 0, errs[0]
	}
	return c, nil
}

// IsValid returns whether the ChunkCount is one of the legal chunk
// counts, and a list of validation errors if it is not.
func (c ChunkCount) IsValid() (bool, []error) {
	switch c {
	case 1, 2, 3, 6:
		return true, nil
	default:
		return false, []error{&InvalidChunkCountError{Value: c}}
	}
}

// Error implements the error interface for InvalidChunkCountError.
func (e *InvalidChunkCountError) Error() string {
	return fmt.Sprintf("invalid chunk count %d (valid: 1, 2, 3, 6)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidChunkCountError) Unwrap() error {
	return ErrInvalidChunkCount
}

// NewProcCount creates a validated ProcCount. Values below 1 are a
// construction-time error.
func NewProcCount(n int) (ProcCount, error) {
	p := ProcCount(n)
	if isValid, errs := p.IsValid(); !isValid {
		return 0, errs[0]
	}
	return p, nil
}

// IsValid returns whether the ProcCount is at least 1, and a list of
// validation errors if it is not.
func (p ProcCount) IsValid() (bool, []error) {
	if p < 1 {
		return false, []error{&InvalidProcCountError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidProcCountError.
func (e *InvalidProcCountError) Error() string {
	return fmt.Sprintf("invalid processor count %d (must be >= 1)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidProcCountError) Unwrap() error {
	return ErrInvalidProcCount
}

// Defaults returns a MeshConfig populated with the documented defaults:
// six chunks of 90x90 degrees centered on the equator at longitude zero,
// 64 elements and one processor along each direction.
func Defaults() MeshConfig {
	return MeshConfig{
		AngularWidthXi:  Degrees(90),
		AngularWidthEta: Degrees(90),
		NChunks:         DefaultNChunks,
		NexXi:           DefaultNex,
		NexEta:          DefaultNex,
		NProcXi:         DefaultNProc,
		NProcEta:        DefaultNProc,
	}
}

// TotalProcessors returns the total number of processors the mesh
// generator needs: one processor grid per chunk. Pure and callable
// regardless of validation outcome, but only meaningful for a
// configuration that passed the constraint checker.
func (c MeshConfig) TotalProcessors() int {
	return int(c.NChunks) * int(c.NProcXi) * int(c.NProcEta)
}

// Resolve gates the configuration through the constraint checker and, on
// an empty report, freezes it into a Resolved snapshot with the derived
// degree values. On a non-empty report Resolve returns nil and the full
// report; the configuration must then be discarded.
func (c MeshConfig) Resolve() (*Resolved, ValidationErrors) {
	if report := Validate(&c); len(report) > 0 {
		return nil, report
	}

	return &Resolved{
		cfg:                         c,
		angularWidthXiDegrees:       c.AngularWidthXi.Degrees(),
		angularWidthEtaDegrees:      c.AngularWidthEta.Degrees(),
		centerLatitudeDegrees:       c.CenterLatitude.Degrees(),
		centerLongitudeDegrees:      c.CenterLongitude.Degrees(),
		gammaRotationAzimuthDegrees: c.GammaRotationAzimuth.Degrees(),
		totalProcessors:             c.TotalProcessors(),
	}, nil
}

// Config returns a copy of the validated configuration.
func (r *Resolved) Config() MeshConfig { return r.cfg }

// AngularWidthXiDegrees returns the chunk width along xi in plain degrees.
func (r *Resolved) AngularWidthXiDegrees() float64 { return r.angularWidthXiDegrees }

// AngularWidthEtaDegrees returns the chunk width along eta in plain degrees.
func (r *Resolved) AngularWidthEtaDegrees() float64 { return r.angularWidthEtaDegrees }

// CenterLatitudeDegrees returns the chunk-center latitude in plain degrees.
func (r *Resolved) CenterLatitudeDegrees() float64 { return r.centerLatitudeDegrees }

// CenterLongitudeDegrees returns the chunk-center longitude in plain degrees.
func (r *Resolved) CenterLongitudeDegrees() float64 { return r.centerLongitudeDegrees }

// GammaRotationAzimuthDegrees returns the gamma rotation azimuth in plain degrees.
func (r *Resolved) GammaRotationAzimuthDegrees() float64 { return r.gammaRotationAzimuthDegrees }

// TotalProcessors returns the total processor count frozen at resolution.
func (r *Resolved) TotalProcessors() int { return r.totalProcessors }
