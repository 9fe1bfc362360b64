// Package veil maps layer-visibility profiles to per-node visibility
// weights. Lower weights push a node's probability down during sector
// optimization.
package veil

import (
	"strings"

	"github.com/dd0wney/cluso-blueprint/pkg/fixture"
)

// LayerProfile selects a layer-visibility preset
type LayerProfile string

// Supported visibility presets. Unrecognized values fall back to AllLayers.
const (
	AllLayers      LayerProfile = "all_layers"
	ElectricalOnly LayerProfile = "electrical_only"
	HVACOnly       LayerProfile = "hvac_only"
	StructuralOnly LayerProfile = "structural_only"
	ElectricalHVAC LayerProfile = "electrical_hvac"
	Mechanical     LayerProfile = "mechanical"
)

// dampenedVisibility is the weight given to fixtures outside the active layer
const dampenedVisibility = 0.05

// ParseLayerProfile maps a raw profile string to a LayerProfile,
// falling back to AllLayers for anything unrecognized.
func ParseLayerProfile(s string) LayerProfile {
	switch LayerProfile(strings.ToLower(strings.TrimSpace(s))) {
	case ElectricalOnly:
		return ElectricalOnly
	case HVACOnly:
		return HVACOnly
	case StructuralOnly:
		return StructuralOnly
	case ElectricalHVAC:
		return ElectricalHVAC
	case Mechanical:
		return Mechanical
	default:
		return AllLayers
	}
}

// String returns the profile tag
func (p LayerProfile) String() string {
	return string(p)
}

// Fixture-type groupings used by the profile weight functions
var (
	electricalTypes = map[fixture.FixtureType]bool{
		fixture.TypeSocket: true,
		fixture.TypeSwitch: true,
		fixture.TypeLight:  true,
		fixture.TypeOutlet: true,
	}
	hvacTypes = map[fixture.FixtureType]bool{
		fixture.TypeVent: true,
		fixture.TypeDuct: true,
	}
	structuralTypes = map[fixture.FixtureType]bool{
		fixture.TypeBeam: true,
	}
	mechanicalTypes = map[fixture.FixtureType]bool{
		fixture.TypeVent: true,
		fixture.TypeDuct: true,
		fixture.TypePipe: true,
		fixture.TypeBeam: true,
	}
)

// profileWeights is the dispatch table from profile to per-type weight
// function. Built once at package init, not per call.
var profileWeights = map[LayerProfile]func(fixture.FixtureType) float64{
	AllLayers:      func(fixture.FixtureType) float64 { return 1.0 },
	ElectricalOnly: membershipWeight(electricalTypes, 1.0, dampenedVisibility),
	HVACOnly:       membershipWeight(hvacTypes, 1.0, dampenedVisibility),
	StructuralOnly: membershipWeight(structuralTypes, 1.0, dampenedVisibility),
	ElectricalHVAC: electricalHVACWeight,
	Mechanical:     membershipWeight(mechanicalTypes, 0.9, 0.3),
}

// membershipWeight builds a weight function that returns `in` for types in
// the set and `out` otherwise
func membershipWeight(set map[fixture.FixtureType]bool, in, out float64) func(fixture.FixtureType) float64 {
	return func(ft fixture.FixtureType) float64 {
		if set[ft] {
			return in
		}
		return out
	}
}

// electricalHVACWeight blends the electrical and HVAC layers
func electricalHVACWeight(ft fixture.FixtureType) float64 {
	switch {
	case electricalTypes[ft]:
		return 0.8
	case hvacTypes[ft]:
		return 0.7
	default:
		return 0.2
	}
}

// Factors returns the visibility weight vector for the requested profile.
// The result has the same length and ordering as nodes; every weight is in
// [0, 1]. Pure and stateless: unrecognized profiles behave as AllLayers,
// and an empty node list yields an empty vector.
func Factors(nodes []fixture.Node, profile LayerProfile) []float64 {
	factors := make([]float64, len(nodes))
	if len(nodes) == 0 {
		return factors
	}

	weight, ok := profileWeights[profile]
	if !ok {
		weight = profileWeights[AllLayers]
	}

	for i, node := range nodes {
		factors[i] = weight(node.Type)
	}

	return factors
}
