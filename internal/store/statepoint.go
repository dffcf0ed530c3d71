package store

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
)

// Statepoint is the job key: which engine package produced the document,
// at which version, with which cutoff.
type Statepoint struct {
	Package string  `json:"package"`
	Version string  `json:"version"`
	RCut    float64 `json:"rcut"`
}

// JobID derives a stable id from the statepoint. Struct encoding preserves
// field order, so the id does not depend on how the value was built.
func (sp Statepoint) JobID() string {
	b, err := json.Marshal(sp)
	if err != nil {
		// Statepoint has no unencodable fields
		panic(err)
	}
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}

// Document is the per-job record: the two pairwise check energies and the
// two bulk slab energies.
type Document struct {
	TwoParticleEnergies [2]float64 `json:"two_particle_energies"`
	LJSlabEnergy        float64    `json:"lj_slab_energy"`
	WCASlabEnergy       float64    `json:"wca_slab_energy"`
}
