package extract

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-blueprint/pkg/fixture"
	"github.com/dd0wney/cluso-blueprint/pkg/geometry"
)

// rawNode is the on-disk node representation. The fixture type stays a
// plain string here so unknown tags can degrade to generic instead of
// failing decode.
type rawNode struct {
	ID       string             `json:"id"`
	Position [2]float64         `json:"position"`
	Type     string             `json:"type"`
	Attrs    map[string]float64 `json:"attributes,omitempty"`
}

// LoadNodes reads a pre-extracted fixture node list from a JSON file.
// Nodes without an id get a generated one.
func LoadNodes(path string) ([]fixture.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeNodes(data)
}

// DecodeNodes parses a fixture node list from raw JSON
func DecodeNodes(data []byte) ([]fixture.Node, error) {
	var raw []rawNode
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode node list: %w", err)
	}

	nodes := make([]fixture.Node, len(raw))
	for i, r := range raw {
		id := r.ID
		if id == "" {
			id = uuid.NewString()
		}
		nodes[i] = fixture.Node{
			ID:         id,
			Position:   geometry.Point{X: r.Position[0], Y: r.Position[1]},
			Type:       fixture.ParseFixtureType(r.Type),
			Attributes: r.Attrs,
		}
	}

	return nodes, nil
}
