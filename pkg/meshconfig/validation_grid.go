// SPDX-License-Identifier: MPL-2.0

package meshconfig

// minNexForPositiveJacobian is the smallest element count for which the
// sphere can be cut into slices without a negative Jacobian. The guard
// rejects strictly smaller values: 48 itself is accepted, even though
// the historical message says "greater than 48". The boundary is
// preserved over the wording.
const minNexForPositiveJacobian = 48

// validateElementGrid checks the divisibility rules that let the element
// grid be coarsened in depth twice (block size a multiple of 8) and the
// minimum element count that keeps the sphere-to-slice cut well-posed.
func (v *ConstraintValidator) validateElementGrid(cfg *MeshConfig) []ValidationError {
	var errors []ValidationError

	if (int(cfg.NexXi)/8)%int(cfg.NProcXi) != 0 {
		errors = append(errors, ValidationError{
			Validator: v.Name(),
			Fields:    []FieldRef{FieldNexXi},
			Message:   "'nex-xi' must be a multiple of 8*nproc-xi",
			Severity:  SeverityError,
		})
	}
	if (int(cfg.NexEta)/8)%int(cfg.NProcEta) != 0 {
		errors = append(errors, ValidationError{
			Validator: v.Name(),
			Fields:    []FieldRef{FieldNexEta},
			Message:   "'nex-eta' must be a multiple of 8*nproc-eta",
			Severity:  SeverityError,
		})
	}
	if cfg.NexXi%8 != 0 {
		errors = append(errors, ValidationError{
			Validator: v.Name(),
			Fields:    []FieldRef{FieldNexXi},
			Message:   "'nex-xi' must be a multiple of 8",
			Severity:  SeverityError,
		})
	}
	if cfg.NexEta%8 != 0 {
		errors = append(errors, ValidationError{
			Validator: v.Name(),
			Fields:    []FieldRef{FieldNexEta},
			Message:   "'nex-eta' must be a multiple of 8",
			Severity:  SeverityError,
		})
	}

	if cfg.NexXi < minNexForPositiveJacobian {
		errors = append(errors, ValidationError{
			Validator: v.Name(),
			Fields:    []FieldRef{FieldNexXi},
			Message:   "'nex-xi' must be greater than 48 to cut the sphere into slices with positive Jacobian",
			Severity:  SeverityError,
		})
	}
	if cfg.NexEta < minNexForPositiveJacobian {
		errors = append(errors, ValidationError{
			Validator: v.Name(),
			Fields:    []FieldRef{FieldNexEta},
			Message:   "'nex-eta' must be greater than 48 to cut the sphere into slices with positive Jacobian",
			Severity:  SeverityError,
		})
	}

	return errors
}

// validateSliceDecomposition checks the per-processor slice rules: the
// outer-core doubling layer needs the elements per processor to be a
// multiple of 16 in each direction, and beyond two chunks both
// directions must carry the same number of elements per processor.
func (v *ConstraintValidator) validateSliceDecomposition(cfg *MeshConfig) []ValidationError {
	var errors []ValidationError

	nexPerProcXi := int(cfg.NexXi) / int(cfg.NProcXi)
	nexPerProcEta := int(cfg.NexEta) / int(cfg.NProcEta)

	if nexPerProcXi%16 != 0 {
		errors = append(errors, ValidationError{
			Validator: v.Name(),
			Fields:    []FieldRef{FieldNexXi, FieldNProcXi},
			Message:   "'nex-xi / nproc-xi' (i.e., elements per processor) must be a multiple of 16 for outer core doubling",
			Severity:  SeverityError,
		})
	}
	if nexPerProcEta%16 != 0 {
		errors = append(errors, ValidationError{
			Validator: v.Name(),
			Fields:    []FieldRef{FieldNexEta, FieldNProcEta},
			Message:   "'nex-eta / nproc-eta' (i.e., elements per processor) must be a multiple of 16 for outer core doubling",
			Severity:  SeverityError,
		})
	}

	if cfg.NChunks > 2 && nexPerProcXi != nexPerProcEta {
		errors = append(errors, ValidationError{
			Validator: v.Name(),
			Fields:    []FieldRef{FieldNexXi, FieldNProcXi, FieldNexEta, FieldNProcEta},
			Message:   "must have the same number of elements per processor in both directions for more than two chunks",
			Severity:  SeverityError,
		})
	}

	return errors
}
