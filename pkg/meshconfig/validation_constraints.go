// SPDX-License-Identifier: MPL-2.0

package meshconfig

// ConstraintValidator evaluates every topology, divisibility, and
// geometry rule a mesh decomposition must satisfy before the mesh
// generator may run. It collects ALL violations rather than stopping at
// the first: the intended workflow is "fix every reported problem in
// one pass".
//
// Rules are organized across focused files by concern:
//   - validation_topology.go: chunk-matching geometry and processor-grid
//     symmetry (angular widths, square processor grid)
//   - validation_grid.go: element-grid divisibility, the minimum element
//     count for a positive Jacobian, and per-processor slice rules
//     (outer-core doubling, cross-direction balance)
type ConstraintValidator struct{}

// NewConstraintValidator creates a new ConstraintValidator.
func NewConstraintValidator() *ConstraintValidator {
	return &ConstraintValidator{}
}

// Name returns the validator name.
func (v *ConstraintValidator) Name() ValidatorName {
	return "constraints"
}

// Validate checks the configuration and collects all constraint
// violations. The rule order matches the documented rule table; no rule
// depends on the outcome of another.
func (v *ConstraintValidator) Validate(cfg *MeshConfig) []ValidationError {
	var errors []ValidationError

	errors = append(errors, v.validateChunkGeometry(cfg)...)
	errors = append(errors, v.validateElementGrid(cfg)...)
	errors = append(errors, v.validateSliceDecomposition(cfg)...)

	return errors
}

// Validators returns the registered validators in evaluation order.
func Validators() []Validator {
	return []Validator{
		NewConstraintValidator(),
	}
}

// Validate runs every registered validator against the configuration and
// returns the concatenated report. The pass is pure: re-running it on an
// unmutated configuration produces an identical report, and the
// configuration itself is never touched.
func Validate(cfg *MeshConfig) ValidationErrors {
	var report ValidationErrors
	for _, v := range Validators() {
		report = append(report, v.Validate(cfg)...)
	}
	return report
}
