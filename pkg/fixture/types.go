package fixture

import (
	"strings"

	"github.com/dd0wney/cluso-blueprint/pkg/geometry"
)

// FixtureType categorizes a fixture candidate on the blueprint
type FixtureType string

// Supported fixture categories. Anything else degrades to TypeGeneric.
const (
	TypeSocket  FixtureType = "socket"
	TypeSwitch  FixtureType = "switch"
	TypeLight   FixtureType = "light"
	TypeOutlet  FixtureType = "outlet"
	TypeVent    FixtureType = "vent"
	TypeDuct    FixtureType = "duct"
	TypePipe    FixtureType = "pipe"
	TypeBeam    FixtureType = "beam"
	TypeGeneric FixtureType = "generic"
)

// knownTypes is the closed set of valid fixture categories
var knownTypes = map[FixtureType]bool{
	TypeSocket:  true,
	TypeSwitch:  true,
	TypeLight:   true,
	TypeOutlet:  true,
	TypeVent:    true,
	TypeDuct:    true,
	TypePipe:    true,
	TypeBeam:    true,
	TypeGeneric: true,
}

// ParseFixtureType maps a raw tag to a FixtureType.
// Unknown values degrade to TypeGeneric; the pipeline never fails on an
// unrecognized tag.
func ParseFixtureType(s string) FixtureType {
	ft := FixtureType(strings.ToLower(strings.TrimSpace(s)))
	if knownTypes[ft] {
		return ft
	}
	return TypeGeneric
}

// IsValid reports whether the type belongs to the closed set
func (ft FixtureType) IsValid() bool {
	return knownTypes[ft]
}

// String returns the string tag of the fixture type
func (ft FixtureType) String() string {
	return string(ft)
}

// Node is a single fixture candidate extracted from a blueprint.
// Nodes are created by upstream extraction and are read-only for the
// optimization core.
type Node struct {
	ID         string             `json:"id" validate:"required"`
	Position   geometry.Point     `json:"position"`
	Type       FixtureType        `json:"type"`
	Attributes map[string]float64 `json:"attributes,omitempty"`
}

// Positions extracts the position of every node, preserving order
func Positions(nodes []Node) []geometry.Point {
	points := make([]geometry.Point, len(nodes))
	for i, n := range nodes {
		points[i] = n.Position
	}
	return points
}

// IDs extracts the id of every node, preserving order
func IDs(nodes []Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
