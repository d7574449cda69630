// Package export writes scenes to image, text and JSON files.
package export

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"routeboard/connections"
	"routeboard/diagram"
	"routeboard/render"
)

// ErrUnsupportedFormat is returned for an unknown export format.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Format represents an export format
type Format string

const (
	// FormatPNG rasterises the scene with gg
	FormatPNG Format = "png"
	// FormatSVG writes vector paths
	FormatSVG Format = "svg"
	// FormatText draws the scene with box-drawing characters
	FormatText Format = "text"
	// FormatJSON writes the scene file itself
	FormatJSON Format = "json"
)

// Exporter writes a scene in one format.
type Exporter interface {
	// Export writes scene to w
	Export(w io.Writer, scene *diagram.Scene) error
	// Extension returns the recommended file extension, including the dot
	Extension() string
}

// Settings controls how scenes are drawn.
type Settings struct {
	Render     render.Options
	Scale      float64      // Output pixels per world unit; also the routing zoom
	Padding    float64      // World units around the scene bounds
	Background render.Color // Transparent leaves PNG pixels clear and omits the SVG backdrop
	CellWidth  float64      // World units per text column
	CellHeight float64      // World units per text row
}

// DefaultSettings returns the settings used when none are configured.
func DefaultSettings() Settings {
	return Settings{
		Render:     render.DefaultOptions(),
		Scale:      1,
		Padding:    40,
		Background: render.MustColor("#ffffff"),
		CellWidth:  8,
		CellHeight: 16,
	}
}

func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.Scale <= 0 {
		s.Scale = d.Scale
	}
	if s.Padding < 0 {
		s.Padding = 0
	}
	if s.CellWidth <= 0 {
		s.CellWidth = d.CellWidth
	}
	if s.CellHeight <= 0 {
		s.CellHeight = d.CellHeight
	}
	return s
}

// NewExporter creates an exporter for the specified format. A nil router routes with
// connections.DefaultConfig.
func NewExporter(format Format, router *connections.Router, settings Settings) (Exporter, error) {
	if router == nil {
		router = connections.NewRouter(connections.DefaultConfig())
	}
	settings = settings.withDefaults()
	switch format {
	case FormatPNG:
		return &pngExporter{router: router, settings: settings}, nil
	case FormatSVG:
		return &svgExporter{router: router, settings: settings}, nil
	case FormatText:
		return &textExporter{router: router, settings: settings}, nil
	case FormatJSON:
		return jsonExporter{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// ParseFormat converts a string to a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "png":
		return FormatPNG, nil
	case "svg":
		return FormatSVG, nil
	case "text", "txt", "ascii":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// FormatForPath picks the format matching a file name's extension.
func FormatForPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Formats returns every available export format.
func Formats() []Format {
	return []Format{FormatPNG, FormatSVG, FormatText, FormatJSON}
}

// FormatDescriptions returns human-readable descriptions of all formats
func FormatDescriptions() map[Format]string {
	return map[Format]string{
		FormatPNG:  "PNG image with rounded connectors",
		FormatSVG:  "SVG vector image",
		FormatText: "Unicode box-drawing text",
		FormatJSON: "routeboard scene file",
	}
}
