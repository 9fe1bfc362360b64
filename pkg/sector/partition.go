// Package sector partitions a blueprint's fixture candidates into spatial
// grid cells and builds each cell's proximity graph. Sectors are the unit
// of work for the quantum optimizer: evolution cost grows faster than
// linearly with node count, so the grid keeps each unit small instead of
// solving one global system.
package sector

import (
	"github.com/dd0wney/cluso-blueprint/pkg/fixture"
	"github.com/dd0wney/cluso-blueprint/pkg/geometry"
	"github.com/dd0wney/cluso-blueprint/pkg/validation"
)

// PartitionerOptions configures grid partitioning and graph construction
type PartitionerOptions struct {
	MaxNodesPerSector   int     `yaml:"max_nodes_per_sector"`
	GridRows            int     `yaml:"grid_rows"`
	GridCols            int     `yaml:"grid_cols"`
	ConnectionThreshold float64 `yaml:"connection_threshold"`
	BoundaryMargin      float64 `yaml:"boundary_margin"`
}

// DefaultPartitionerOptions returns the default partitioner configuration
func DefaultPartitionerOptions() PartitionerOptions {
	return PartitionerOptions{
		MaxNodesPerSector:   512,
		GridRows:            4,
		GridCols:            4,
		ConnectionThreshold: 10.0,
		BoundaryMargin:      0.1,
	}
}

// Validate checks that all partitioner options are within their legal ranges
func (o PartitionerOptions) Validate() error {
	return validation.NewConfigValidator("PartitionerOptions").
		Positive("MaxNodesPerSector", o.MaxNodesPerSector).
		MinInt("GridRows", o.GridRows, 1).
		MinInt("GridCols", o.GridCols, 1).
		PositiveFloat("ConnectionThreshold", o.ConnectionThreshold).
		HalfOpenFloat("BoundaryMargin", o.BoundaryMargin, 0, 0.5).
		Validate()
}

// Config is one spatial partition cell processed as an optimization unit.
// IDs are dense sequential integers assigned in row-major grid order over
// kept sectors only, so they do not encode grid coordinates.
type Config struct {
	ID          int
	Nodes       []fixture.Node
	BoundaryIDs []string
	Bounds      geometry.Rect
}

// Stats accounts for what happened to every input node during
// partitioning. Cells whose member count exceeds capacity are dropped
// entirely rather than split; the dropped counts keep that observable.
type Stats struct {
	TotalNodes     int // nodes presented to the partitioner
	AssignedNodes  int // nodes covered by kept sectors
	DroppedNodes   int // nodes lost to over-capacity cells
	KeptSectors    int
	EmptyCells     int
	DroppedSectors int // over-capacity cells excluded from the result
}

// CreateSectors divides the nodes' bounding box into a GridRows x GridCols
// grid and emits one Config per non-empty cell within capacity. Cell
// membership is half-open [x1,x2) x [y1,y2); nodes on the absolute maximum
// boundary are clamped into the last row/column so every node lands in
// exactly one cell.
func CreateSectors(nodes []fixture.Node, opts PartitionerOptions) ([]Config, Stats) {
	stats := Stats{TotalNodes: len(nodes)}
	if len(nodes) == 0 {
		return nil, stats
	}

	box, _ := geometry.BoundingBox(fixture.Positions(nodes))

	rows, cols := opts.GridRows, opts.GridCols
	cellW := box.Width() / float64(cols)
	cellH := box.Height() / float64(rows)

	// Bucket nodes by cell, row-major
	cells := make([][]fixture.Node, rows*cols)
	for _, node := range nodes {
		col := cellIndex(node.Position.X, box.X1, cellW, cols)
		row := cellIndex(node.Position.Y, box.Y1, cellH, rows)
		idx := row*cols + col
		cells[idx] = append(cells[idx], node)
	}

	sectors := make([]Config, 0)
	nextID := 0

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			members := cells[row*cols+col]
			if len(members) == 0 {
				stats.EmptyCells++
				continue
			}
			if len(members) > opts.MaxNodesPerSector {
				stats.DroppedSectors++
				stats.DroppedNodes += len(members)
				continue
			}

			bounds := geometry.Rect{
				X1: box.X1 + float64(col)*cellW,
				Y1: box.Y1 + float64(row)*cellH,
				X2: box.X1 + float64(col+1)*cellW,
				Y2: box.Y1 + float64(row+1)*cellH,
			}

			sectors = append(sectors, Config{
				ID:          nextID,
				Nodes:       members,
				BoundaryIDs: boundaryIDs(members, bounds, opts.BoundaryMargin),
				Bounds:      bounds,
			})
			nextID++
			stats.KeptSectors++
			stats.AssignedNodes += len(members)
		}
	}

	return sectors, stats
}

// cellIndex maps a coordinate to its grid index along one axis. A zero
// cell extent (all nodes collinear on that axis) collapses to index 0;
// the upper clamp closes the last cell so the absolute maximum boundary
// belongs to it.
func cellIndex(coord, min, cellExtent float64, count int) int {
	if cellExtent <= 0 {
		return 0
	}
	idx := int((coord - min) / cellExtent)
	if idx < 0 {
		idx = 0
	}
	if idx >= count {
		idx = count - 1
	}
	return idx
}

// boundaryIDs collects ids of nodes within the margin fraction of any of
// the cell's four edges. The set is carried for downstream cross-sector
// reconciliation and is not consumed internally.
func boundaryIDs(nodes []fixture.Node, bounds geometry.Rect, margin float64) []string {
	marginX := margin * bounds.Width()
	marginY := margin * bounds.Height()

	ids := make([]string, 0)
	for _, node := range nodes {
		p := node.Position
		if p.X < bounds.X1+marginX || p.X > bounds.X2-marginX ||
			p.Y < bounds.Y1+marginY || p.Y > bounds.Y2-marginY {
			ids = append(ids, node.ID)
		}
	}
	return ids
}
