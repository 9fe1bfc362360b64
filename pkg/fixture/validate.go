package fixture

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/dd0wney/cluso-blueprint/pkg/geometry"
)

// Validation sentinel errors
var (
	ErrNoNodes        = errors.New("node list is empty")
	ErrDuplicateID    = errors.New("duplicate node id")
	ErrNonFinitePos   = errors.New("position is not finite")
	ErrMissingID      = errors.New("node id is empty")
	ErrUnknownFixture = errors.New("fixture type outside the closed set")
)

// validate is a singleton validator instance
var validate = validator.New()

// ValidateNodes checks an inbound node list from the extraction
// collaborator: ids present and unique, positions finite. Unknown fixture
// types are repaired to generic in place of failing, per the inbound
// contract.
func ValidateNodes(nodes []Node) error {
	if len(nodes) == 0 {
		return ErrNoNodes
	}

	seen := make(map[string]bool, len(nodes))

	for i := range nodes {
		node := &nodes[i]

		if err := validate.Struct(node); err != nil {
			return fmt.Errorf("node %d: %w", i, ErrMissingID)
		}

		if seen[node.ID] {
			return fmt.Errorf("node %d (%s): %w", i, node.ID, ErrDuplicateID)
		}
		seen[node.ID] = true

		if !geometry.IsFinite(node.Position) {
			return fmt.Errorf("node %d (%s): %w", i, node.ID, ErrNonFinitePos)
		}

		// Repair rather than reject: unknown tags degrade to generic
		if !node.Type.IsValid() {
			node.Type = TypeGeneric
		}
	}

	return nil
}
