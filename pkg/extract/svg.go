package extract

import (
	"encoding/xml"
	"os"
	"strconv"

	"github.com/dd0wney/cluso-blueprint/pkg/geometry"
)

type svgDoc struct {
	Rects []svgRect `xml:"rect"`
}

type svgRect struct {
	X      string `xml:"x,attr"`
	Y      string `xml:"y,attr"`
	Width  string `xml:"width,attr"`
	Height string `xml:"height,attr"`
}

// ParseSVG extracts rectangle shapes from an SVG blueprint export.
// Extraction is best-effort: rects with unparsable or non-positive
// dimensions are skipped rather than failing the document.
func ParseSVG(path string) ([]Shape, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSVGBytes(data)
}

// ParseSVGBytes extracts rectangle shapes from raw SVG content
func ParseSVGBytes(data []byte) ([]Shape, error) {
	var doc svgDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	shapes := make([]Shape, 0, len(doc.Rects))
	for _, r := range doc.Rects {
		x, errX := strconv.ParseFloat(r.X, 64)
		y, errY := strconv.ParseFloat(r.Y, 64)
		w, errW := strconv.ParseFloat(r.Width, 64)
		h, errH := strconv.ParseFloat(r.Height, 64)
		if errX != nil || errY != nil || errW != nil || errH != nil || w <= 0 || h <= 0 {
			continue
		}

		shapes = append(shapes, Shape{
			Bounds: geometry.Rect{X1: x, Y1: y, X2: x + w, Y2: y + h},
		})
	}

	return shapes, nil
}
