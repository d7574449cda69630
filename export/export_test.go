package export_test

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"routeboard/connections"
	"routeboard/diagram"
	"routeboard/export"
	"routeboard/render"
)

// pairScene joins A=(0,0,100,100) and B=(300,0,100,100) from A.right to B.left.
func pairScene(t *testing.T) *diagram.Scene {
	t.Helper()
	scene := &diagram.Scene{Metadata: diagram.Metadata{Name: "pair"}}
	a := scene.AddShape(diagram.Shape{ID: 1, Kind: diagram.KindRectangle, Width: 100, Height: 100, Text: "A"})
	b := scene.AddShape(diagram.Shape{ID: 2, Kind: diagram.KindRectangle, X: 300, Width: 100, Height: 100, Text: "B"})
	if _, err := scene.Connect(a, diagram.PortRight, b, diagram.PortLeft); err != nil {
		t.Fatal(err)
	}
	return scene
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected export.Format
		wantErr  bool
	}{
		{"png", export.FormatPNG, false},
		{".svg", export.FormatSVG, false},
		{"text", export.FormatText, false},
		{"TXT", export.FormatText, false},
		{"ascii", export.FormatText, false},
		{"json", export.FormatJSON, false},
		{"mermaid", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := export.ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if err != nil && !errors.Is(err, export.ErrUnsupportedFormat) {
				t.Errorf("ParseFormat(%q) error = %v, want ErrUnsupportedFormat", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFormatForPath(t *testing.T) {
	got, err := export.FormatForPath("out/board.PNG")
	if err != nil || got != export.FormatPNG {
		t.Errorf("FormatForPath() = %v, %v, want png", got, err)
	}
	if _, err := export.FormatForPath("board"); !errors.Is(err, export.ErrUnsupportedFormat) {
		t.Errorf("FormatForPath without extension error = %v", err)
	}
}

func TestNewExporter(t *testing.T) {
	router := connections.NewRouter(connections.DefaultConfig())
	for _, format := range export.Formats() {
		t.Run(string(format), func(t *testing.T) {
			exporter, err := export.NewExporter(format, router, export.DefaultSettings())
			if err != nil {
				t.Fatalf("NewExporter(%v) returned error: %v", format, err)
			}
			if !strings.HasPrefix(exporter.Extension(), ".") {
				t.Errorf("Extension() = %q", exporter.Extension())
			}
			if export.FormatDescriptions()[format] == "" {
				t.Errorf("no description for %v", format)
			}
		})
	}

	if _, err := export.NewExporter("gif", router, export.DefaultSettings()); !errors.Is(err, export.ErrUnsupportedFormat) {
		t.Errorf("NewExporter(gif) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestExportPNG(t *testing.T) {
	exporter, err := export.NewExporter(export.FormatPNG, nil, export.DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := exporter.Export(&buf, pairScene(t)); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	// Bounds (0,0,400,100) plus 40 padding on each side.
	if b := img.Bounds(); b.Dx() != 480 || b.Dy() != 180 {
		t.Fatalf("image size = %dx%d, want 480x180", b.Dx(), b.Dy())
	}

	white := color.NRGBAModel.Convert(color.White)
	if got := color.NRGBAModel.Convert(img.At(2, 2)); got != white {
		t.Errorf("background pixel = %v, want white", got)
	}
	// Midpoint of the connector at world (200, 50).
	if got := color.NRGBAModel.Convert(img.At(240, 90)); got == white {
		t.Error("connector pixel was not drawn")
	}
}

func TestExportPNGScale(t *testing.T) {
	settings := export.DefaultSettings()
	settings.Scale = 2
	settings.Padding = 0
	exporter, err := export.NewExporter(export.FormatPNG, nil, settings)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := exporter.Export(&buf, pairScene(t)); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 800 || b.Dy() != 200 {
		t.Errorf("image size = %dx%d, want 800x200", b.Dx(), b.Dy())
	}
}

func TestExportSVG(t *testing.T) {
	out, err := export.SVG(nil, pairScene(t), export.DefaultSettings())
	if err != nil {
		t.Fatalf("SVG() error = %v", err)
	}

	for _, want := range []string{
		`width="480" height="180"`,
		`<g transform="scale(1) translate(40 40)">`,
		`d="M100 50 L300 50"`,
		`fill="#ffffff"`,
		`>A</text>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG output missing %q:\n%s", want, out)
		}
	}
}

func TestExportText(t *testing.T) {
	exporter, err := export.NewExporter(export.FormatText, nil, export.DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := exporter.Export(&buf, pairScene(t)); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	out := buf.String()

	for _, want := range []rune{'╭', '╯', '─', render.ArrowRight, 'A', 'B'} {
		if !strings.ContainsRune(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestExportEmptyScene(t *testing.T) {
	for _, format := range []export.Format{export.FormatPNG, export.FormatSVG, export.FormatText} {
		t.Run(string(format), func(t *testing.T) {
			exporter, err := export.NewExporter(format, nil, export.DefaultSettings())
			if err != nil {
				t.Fatal(err)
			}
			var buf bytes.Buffer
			if err := exporter.Export(&buf, &diagram.Scene{}); err != nil {
				t.Errorf("Export() on empty scene error = %v", err)
			}
		})
	}
}

func TestSceneRoundTrip(t *testing.T) {
	scene := pairScene(t)
	scene.Connections[0].Stroke = diagram.StrokeStyle{Color: "#e03131", Dash: diagram.DashDashed, Arrow: diagram.ArrowBoth}

	var buf bytes.Buffer
	if err := export.SaveScene(&buf, scene); err != nil {
		t.Fatalf("SaveScene() error = %v", err)
	}
	for _, want := range []string{`"kind": "rectangle"`, `"fromPort": "right"`, `"arrow": "both"`} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("scene JSON missing %s", want)
		}
	}

	loaded, err := export.LoadScene(&buf)
	if err != nil {
		t.Fatalf("LoadScene() error = %v", err)
	}
	if !reflect.DeepEqual(loaded, scene) {
		t.Errorf("round trip changed the scene:\ngot  %+v\nwant %+v", loaded, scene)
	}
}

func TestLoadSceneErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:  "malformed",
			input: `{"shapes": [`,
		},
		{
			name:  "unknown field",
			input: `{"shapes": [], "connections": [], "layers": 3}`,
		},
		{
			name:  "unknown port",
			input: `{"shapes": [{"id": 1}], "connections": [{"id": 2, "from": 1, "to": 1, "fromPort": "middle", "toPort": "top"}]}`,
			wantErr: diagram.ErrInvalidPort,
		},
		{
			name:    "dangling connection",
			input:   `{"shapes": [{"id": 1}], "connections": [{"id": 2, "from": 1, "to": 9, "fromPort": "right", "toPort": "left"}]}`,
			wantErr: diagram.ErrShapeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := export.LoadScene(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("LoadScene() succeeded, want error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadScene() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSceneFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	scene := pairScene(t)

	if err := export.SaveSceneFile(path, scene); err != nil {
		t.Fatalf("SaveSceneFile() error = %v", err)
	}
	loaded, err := export.LoadSceneFile(path)
	if err != nil {
		t.Fatalf("LoadSceneFile() error = %v", err)
	}
	if len(loaded.Shapes) != 2 || len(loaded.Connections) != 1 {
		t.Errorf("loaded %d shapes and %d connections", len(loaded.Shapes), len(loaded.Connections))
	}

	if _, err := export.LoadSceneFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("LoadSceneFile on a missing file succeeded")
	}
}
