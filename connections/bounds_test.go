package connections

import (
	"testing"

	"routeboard/diagram"
)

func TestPathBounds(t *testing.T) {
	if _, ok := PathBounds(nil); ok {
		t.Error("PathBounds(nil) reported ok")
	}

	got, ok := PathBounds([]diagram.Point{{X: 10, Y: 40}, {X: 10, Y: 5}, {X: 60, Y: 5}})
	want := diagram.Rect{X: 10, Y: 5, W: 50, H: 35}
	if !ok || got != want {
		t.Errorf("PathBounds() = %+v, %v, want %+v, true", got, ok, want)
	}
}

func TestSceneBounds(t *testing.T) {
	r := NewRouter(DefaultConfig())

	t.Run("shapes and straight route", func(t *testing.T) {
		scene, _ := pairScene()
		got, ok := r.SceneBounds(scene, 1)
		want := diagram.Rect{X: 0, Y: 0, W: 400, H: 100}
		if !ok || got != want {
			t.Errorf("SceneBounds() = %+v, %v, want %+v", got, ok, want)
		}
	})

	t.Run("route leaving the shapes", func(t *testing.T) {
		scene := &diagram.Scene{}
		a := scene.AddShape(diagram.Shape{ID: 1, Kind: diagram.KindRectangle, X: 0, Y: 0, Width: 100, Height: 100})
		b := scene.AddShape(diagram.Shape{ID: 2, Kind: diagram.KindRectangle, X: 250, Y: 300, Width: 100, Height: 100})
		if _, err := scene.Connect(a, diagram.PortBottom, b, diagram.PortLeft); err != nil {
			t.Fatal(err)
		}
		got, ok := r.SceneBounds(scene, 1)
		want := diagram.Rect{X: 0, Y: 0, W: 350, H: 400}
		if !ok || got != want {
			t.Errorf("SceneBounds() = %+v, %v, want %+v", got, ok, want)
		}
	})

	t.Run("empty scene", func(t *testing.T) {
		if _, ok := r.SceneBounds(&diagram.Scene{}, 1); ok {
			t.Error("SceneBounds on empty scene reported ok")
		}
		if _, ok := r.SceneBounds(nil, 1); ok {
			t.Error("SceneBounds on nil scene reported ok")
		}
	})
}
