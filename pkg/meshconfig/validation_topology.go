// SPDX-License-Identifier: MPL-2.0

package meshconfig

// rightAngle is the chunk width required for chunks to match along
// shared edges.
var rightAngle = Degrees(90)

// validateChunkGeometry checks the rules that make adjacent chunks meet
// geometrically: angular widths for multi-chunk layouts and the
// processor-grid symmetry the cubed-sphere topology requires.
func (v *ConstraintValidator) validateChunkGeometry(cfg *MeshConfig) []ValidationError {
	var errors []ValidationError

	// Chunks share edges along xi as soon as there is more than one of
	// them, so the xi width cannot deviate from 90 degrees.
	if cfg.NChunks > 1 && cfg.AngularWidthXi != rightAngle {
		errors = append(errors, ValidationError{
			Validator: v.Name(),
			Fields:    []FieldRef{FieldAngularWidthXi},
			Message:   "'angular-width-xi' must be 90 degrees for more than one chunk",
			Severity:  SeverityError,
		})
	}

	// The eta width can be anything for one or two chunks.
	if cfg.NChunks > 2 && cfg.AngularWidthEta != rightAngle {
		errors = append(errors, ValidationError{
			Validator: v.Name(),
			Fields:    []FieldRef{FieldAngularWidthEta},
			Message:   "'angular-width-eta' must be 90 degrees for more than two chunks",
			Severity:  SeverityError,
		})
	}

	// Beyond two chunks the decomposition topology is only consistent
	// with a square processor grid.
	if cfg.NChunks > 2 && cfg.NProcXi != cfg.NProcEta {
		errors = append(errors, ValidationError{
			Validator: v.Name(),
			Fields:    []FieldRef{FieldNProcXi, FieldNProcEta},
			Message:   "'nproc-xi' and 'nproc-eta' must be equal for more than two chunks",
			Severity:  SeverityError,
		})
	}

	return errors
}
