// Package annotate recognizes text annotations (measurements, labels) on
// rendered blueprint pages. The OCR engine is an expensive handle: it is
// initialized once, owned by whoever constructs it, and injected into the
// Service explicitly rather than hiding behind a process-wide singleton.
package annotate

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

// ErrNoEngine is returned when a Service is used without an engine.
var ErrNoEngine = errors.New("annotate: no OCR engine configured")

// Engine recognizes text in a blueprint page image
type Engine interface {
	Recognize(imagePath string) (string, error)
}

// TesseractEngine is an Engine backed by a gosseract client. The client
// is created lazily on first use and reused afterwards; Close releases it.
type TesseractEngine struct {
	once   sync.Once
	mu     sync.Mutex
	client *gosseract.Client
}

// NewTesseractEngine creates an engine. No OCR resources are allocated
// until the first Recognize call.
func NewTesseractEngine() *TesseractEngine {
	return &TesseractEngine{}
}

// Recognize runs OCR over the image at the given path
func (e *TesseractEngine) Recognize(imagePath string) (string, error) {
	e.once.Do(func() {
		e.client = gosseract.NewClient()
	})

	// gosseract clients are not safe for concurrent use
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.client.SetImage(imagePath); err != nil {
		return "", err
	}
	return e.client.Text()
}

// Close releases the underlying OCR client, if one was created
func (e *TesseractEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.client == nil {
		return nil
	}
	return e.client.Close()
}

// StaticEngine is an Engine returning fixed output, for tests
type StaticEngine struct {
	Text string
	Err  error
}

// Recognize returns the configured text or error
func (e StaticEngine) Recognize(string) (string, error) {
	return e.Text, e.Err
}

// Measurement is a numeric annotation recognized on a blueprint page
type Measurement struct {
	Text  string
	Value float64
	Unit  string
}

// measurementPattern matches numbers with an optional metric length unit
var measurementPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(mm|cm|m)?\b`)

// Service extracts measurements from blueprint pages using an injected
// OCR engine.
type Service struct {
	engine Engine
}

// NewService creates an annotation service around the given engine
func NewService(engine Engine) *Service {
	return &Service{engine: engine}
}

// ExtractMeasurements runs OCR on the image and parses every numeric
// annotation with its unit, if present.
func (s *Service) ExtractMeasurements(imagePath string) ([]Measurement, error) {
	if s.engine == nil {
		return nil, ErrNoEngine
	}

	text, err := s.engine.Recognize(imagePath)
	if err != nil {
		return nil, err
	}

	return ParseMeasurements(text), nil
}

// ParseMeasurements extracts measurements from recognized text
func ParseMeasurements(text string) []Measurement {
	matches := measurementPattern.FindAllStringSubmatch(text, -1)

	measurements := make([]Measurement, 0, len(matches))
	for _, m := range matches {
		value, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		measurements = append(measurements, Measurement{
			Text:  strings.TrimSpace(m[0]),
			Value: value,
			Unit:  m[2],
		})
	}

	return measurements
}
