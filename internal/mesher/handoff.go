// SPDX-License-Identifier: MPL-2.0

package mesher

import (
	"fmt"

	"spheremesh/pkg/meshconfig"

	"github.com/pelletier/go-toml/v2"
)

// handoffParams is the TOML shape of the resolved-parameter file handed
// to the mesh generator. Angles are plain degrees only; the generator
// never sees unit suffixes.
type handoffParams struct {
	AngularWidthXiInDegrees       float64 `toml:"angular_width_xi_in_degrees"`
	AngularWidthEtaInDegrees      float64 `toml:"angular_width_eta_in_degrees"`
	CenterLatitudeInDegrees       float64 `toml:"center_latitude_in_degrees"`
	CenterLongitudeInDegrees      float64 `toml:"center_longitude_in_degrees"`
	GammaRotationAzimuthInDegrees float64 `toml:"gamma_rotation_azimuth_in_degrees"`

	NChunks int `toml:"nchunks"`

	NexXi  int `toml:"nex_xi"`
	NexEta int `toml:"nex_eta"`

	NProcXi  int `toml:"nproc_xi"`
	NProcEta int `toml:"nproc_eta"`

	TotalProcessors int `toml:"total_processors"`

	SaveMeshFiles bool `toml:"save_mesh_files"`
}

// EncodeHandoff serializes a validated snapshot into the TOML handoff
// document.
func EncodeHandoff(resolved *meshconfig.Resolved) ([]byte, error) {
	cfg := resolved.Config()

	params := handoffParams{
		AngularWidthXiInDegrees:       resolved.AngularWidthXiDegrees(),
		AngularWidthEtaInDegrees:      resolved.AngularWidthEtaDegrees(),
		CenterLatitudeInDegrees:       resolved.CenterLatitudeDegrees(),
		CenterLongitudeInDegrees:      resolved.CenterLongitudeDegrees(),
		GammaRotationAzimuthInDegrees: resolved.GammaRotationAzimuthDegrees(),
		NChunks:                       int(cfg.NChunks),
		NexXi:                         int(cfg.NexXi),
		NexEta:                        int(cfg.NexEta),
		NProcXi:                       int(cfg.NProcXi),
		NProcEta:                      int(cfg.NProcEta),
		TotalProcessors:               resolved.TotalProcessors(),
		SaveMeshFiles:                 cfg.SaveFiles,
	}

	data, err := toml.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to encode handoff parameters: %w", err)
	}
	return data, nil
}
