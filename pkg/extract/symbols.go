// Package extract turns raw blueprint shapes into fixture candidates.
// It is the upstream collaborator of the optimization core: its output is
// a validated fixture node list, and the core never looks behind it.
package extract

import (
	"math"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-blueprint/pkg/fixture"
	"github.com/dd0wney/cluso-blueprint/pkg/geometry"
)

// Shape is a raw vector shape pulled from a blueprint document
type Shape struct {
	Bounds geometry.Rect
}

// Center returns the shape's center point
func (s Shape) Center() geometry.Point {
	return geometry.Point{
		X: (s.Bounds.X1 + s.Bounds.X2) / 2,
		Y: (s.Bounds.Y1 + s.Bounds.Y2) / 2,
	}
}

// Symbol describes one entry of the symbol library: a fixture type
// recognized by its drawn dimensions within a tolerance.
type Symbol struct {
	Name      string  `yaml:"name"`
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	Tolerance float64 `yaml:"tolerance"`
}

// DefaultLibrary returns a symbol library covering the supported fixture
// types at common blueprint drawing sizes.
func DefaultLibrary() []Symbol {
	return []Symbol{
		{Name: "socket", Width: 6, Height: 6, Tolerance: 1.0},
		{Name: "switch", Width: 6, Height: 9, Tolerance: 1.0},
		{Name: "light", Width: 10, Height: 10, Tolerance: 1.5},
		{Name: "outlet", Width: 8, Height: 4, Tolerance: 1.0},
		{Name: "vent", Width: 14, Height: 14, Tolerance: 2.0},
		{Name: "duct", Width: 24, Height: 12, Tolerance: 2.5},
		{Name: "pipe", Width: 4, Height: 18, Tolerance: 1.5},
		{Name: "beam", Width: 40, Height: 8, Tolerance: 3.0},
	}
}

// IdentifyFixtures classifies shapes into fixture nodes using the symbol
// library. Shapes matching no symbol are skipped. Generated ids are
// unique per call.
func IdentifyFixtures(shapes []Shape, library []Symbol) []fixture.Node {
	nodes := make([]fixture.Node, 0)

	for _, shape := range shapes {
		width := shape.Bounds.Width()
		height := shape.Bounds.Height()

		for _, symbol := range library {
			if math.Abs(width-symbol.Width) < symbol.Tolerance &&
				math.Abs(height-symbol.Height) < symbol.Tolerance {
				nodes = append(nodes, fixture.Node{
					ID:       uuid.NewString(),
					Position: shape.Center(),
					Type:     fixture.ParseFixtureType(symbol.Name),
				})
				break
			}
		}
	}

	return nodes
}
