// Package terminal is an interactive scene viewer drawn with box-drawing characters.
package terminal

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"routeboard/config"
	"routeboard/connections"
	"routeboard/diagram"
	"routeboard/export"
	"routeboard/geometry"
	"routeboard/render"
)

// RotateStep is the rotation applied by r and R, in degrees.
const RotateStep = 15

// Styles
var (
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleError  = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorNavy).Bold(true)
	styleGrid   = render.MustColor("#868e96")
)

// Viewer shows a scene on a tcell screen and applies edits from the keyboard and mouse.
// Every frame recomputes every connector route.
type Viewer struct {
	screen   tcell.Screen
	scene    *diagram.Scene
	router   *connections.Router
	cfg      config.Config
	opts     render.Options
	path     string
	origin   diagram.Point // World position of the top-left cell
	selShape int
	selConn  int
	showGrid bool
	modified bool
	message  string
	isError  bool
	history  *History
	haloBg   tcell.Color

	// copyText puts text on the system clipboard.
	copyText func(string) error
}

// NewViewer creates a viewer for scene on an initialised screen. path is where s saves;
// empty disables saving.
func NewViewer(screen tcell.Screen, scene *diagram.Scene, path string, cfg config.Config, router *connections.Router) *Viewer {
	if scene == nil {
		scene = &diagram.Scene{}
	}
	if router == nil {
		router = connections.NewRouter(cfg.RouterConfig())
	}
	v := &Viewer{
		screen:   screen,
		scene:    scene,
		router:   router,
		cfg:      cfg,
		opts:     cfg.RenderOptions(),
		path:     path,
		history:  NewHistory(0),
		copyText: clipboard.WriteAll,
	}
	tint := v.opts.HaloTint(cfg.ExportSettings().Background).NRGBA()
	v.haloBg = tcell.NewRGBColor(int32(tint.R), int32(tint.G), int32(tint.B))
	v.history.SaveState(scene)
	if b, ok := router.SceneBounds(scene, 1); ok {
		v.origin = diagram.Point{X: b.X - 2*cfg.Viewer.CellWidth, Y: b.Y - cfg.Viewer.CellHeight}
	}
	return v
}

// Run opens the terminal, shows scene until the user quits and restores the terminal.
func Run(scene *diagram.Scene, path string, cfg config.Config, router *connections.Router) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialise screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.Clear()

	return NewViewer(screen, scene, path, cfg, router).Run()
}

// Run processes events until the user quits.
func (v *Viewer) Run() error {
	for {
		v.Draw()
		v.screen.Show()

		switch ev := v.screen.PollEvent().(type) {
		case nil:
			return nil // screen finalised
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventKey:
			if v.HandleKey(ev) {
				return nil
			}
		case *tcell.EventMouse:
			v.HandleMouse(ev)
		}
	}
}

// Scene returns the scene being viewed.
func (v *Viewer) Scene() *diagram.Scene { return v.scene }

// Selection returns the selected shape and connection IDs. Zero means none.
func (v *Viewer) Selection() render.Selection {
	return render.Selection{ShapeID: v.selShape, ConnectionID: v.selConn}
}

// Modified reports whether the scene has unsaved edits.
func (v *Viewer) Modified() bool { return v.modified }

// Message returns the status message of the last command.
func (v *Viewer) Message() string { return v.message }

func (v *Viewer) canvas() *render.CellSurface {
	w, h := v.screen.Size()
	return render.NewCellSurface(w, h-1, v.origin, v.cfg.Viewer.CellWidth, v.cfg.Viewer.CellHeight)
}

// Draw renders the scene and the status line to the screen buffer.
func (v *Viewer) Draw() {
	v.screen.Clear()
	w, h := v.screen.Size()
	if w <= 0 || h <= 0 {
		return
	}

	cells := v.canvas()
	if err := render.DrawScene(cells, v.scene, v.router, 1, v.opts, v.Selection()); err != nil {
		v.fail(err)
	}
	if v.showGrid {
		v.plotGrid(cells)
	}

	cw, ch := cells.Size()
	for y := 0; y < ch; y++ {
		for x := 0; x < cw; x++ {
			cell := cells.Cell(x, y)
			if cell.Empty() || cell.Continuation {
				continue
			}
			style := tcell.StyleDefault
			if !cell.Color.Transparent() {
				rgb := cell.Color.NRGBA()
				style = style.Foreground(tcell.NewRGBColor(int32(rgb.R), int32(rgb.G), int32(rgb.B)))
			}
			if cell.Highlight {
				style = style.Background(v.haloBg)
			}
			v.screen.SetContent(x, y, cell.Glyph(), nil, style)
		}
	}

	v.drawStatusBar(w, h)
}

// plotGrid marks the routing grid intersections of every connection.
func (v *Viewer) plotGrid(cells *render.CellSurface) {
	for _, conn := range v.scene.Connections {
		trace, ok := v.router.Debug(v.scene, conn, 1)
		if !ok {
			continue
		}
		for _, x := range trace.Grid.Xs {
			for _, y := range trace.Grid.Ys {
				cells.Plot(diagram.Point{X: x, Y: y}, '·', styleGrid)
			}
		}
	}
}

func (v *Viewer) drawStatusBar(w, h int) {
	y := h - 1
	for x := 0; x < w; x++ {
		v.screen.SetContent(x, y, ' ', nil, styleStatus)
	}

	name := "[scratch]"
	if v.path != "" {
		name = filepath.Base(v.path)
	}
	if v.modified {
		name += " [+]"
	}
	status := fmt.Sprintf(" %s  %d shapes  %d connections", name, len(v.scene.Shapes), len(v.scene.Connections))
	switch {
	case v.selConn != 0:
		status += fmt.Sprintf("  conn %d", v.selConn)
	case v.selShape != 0:
		status += fmt.Sprintf("  shape %d", v.selShape)
	}
	if v.showGrid {
		status += "  grid"
	}

	style := styleStatus
	if v.message != "" {
		status += "  " + v.message
		if v.isError {
			style = styleError
		}
	}
	v.drawText(0, y, runewidth.Truncate(status, w, "…"), style)
}

// drawText writes s from column x, advancing by each rune's display width.
func (v *Viewer) drawText(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		v.screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

func (v *Viewer) notify(msg string) {
	v.message, v.isError = msg, false
}

func (v *Viewer) fail(err error) {
	v.message, v.isError = "Error: "+err.Error(), true
}

// HandleKey applies a key press and reports whether the viewer should quit.
func (v *Viewer) HandleKey(ev *tcell.EventKey) bool {
	step := v.cfg.Viewer.Step
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return true
	case tcell.KeyTab:
		v.cycleShape(1)
	case tcell.KeyBacktab:
		v.cycleShape(-1)
	case tcell.KeyUp:
		v.move(0, -step)
	case tcell.KeyDown:
		v.move(0, step)
	case tcell.KeyLeft:
		v.move(-step, 0)
	case tcell.KeyRight:
		v.move(step, 0)
	case tcell.KeyDelete, tcell.KeyBackspace, tcell.KeyBackspace2:
		v.deleteSelected()
	case tcell.KeyCtrlZ:
		v.undo()
	case tcell.KeyCtrlY:
		v.redo()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'r':
			v.rotate(RotateStep)
		case 'R':
			v.rotate(-RotateStep)
		case 'x':
			v.deleteSelected()
		case 'u':
			v.undo()
		case 'U':
			v.redo()
		case 'c':
			v.connectNext()
		case 'g':
			v.showGrid = !v.showGrid
		case 'y':
			v.copySVG()
		case 's':
			v.save()
		}
	}
	return false
}

// HandleMouse selects the connector under a left click, or failing that the topmost
// shape containing it.
func (v *Viewer) HandleMouse(ev *tcell.EventMouse) {
	if ev.Buttons()&tcell.Button1 == 0 {
		return
	}
	x, y := ev.Position()
	p := v.canvas().ToWorld(x, y)
	tolerance := math.Max(v.cfg.Viewer.CellWidth, v.cfg.Viewer.CellHeight) / 2

	if id, ok := v.router.HitTest(v.scene, p, tolerance, 1); ok {
		v.selShape, v.selConn = 0, id
		return
	}
	v.selShape, v.selConn = 0, 0
	for i := len(v.scene.Shapes) - 1; i >= 0; i-- {
		if geometry.ShapeBounds(v.scene.Shapes[i]).Contains(p) {
			v.selShape = v.scene.Shapes[i].ID
			return
		}
	}
}

func (v *Viewer) cycleShape(dir int) {
	n := len(v.scene.Shapes)
	v.selConn = 0
	if n == 0 {
		v.selShape = 0
		return
	}
	i := -1
	for j, s := range v.scene.Shapes {
		if s.ID == v.selShape {
			i = j
			break
		}
	}
	switch {
	case i < 0 && dir > 0:
		i = 0
	case i < 0:
		i = n - 1
	default:
		i = (i + dir + n) % n
	}
	v.selShape = v.scene.Shapes[i].ID
}

// move shifts the selected shape, or pans the view when nothing is selected.
func (v *Viewer) move(dx, dy float64) {
	if v.selShape == 0 {
		v.origin = v.origin.Add(diagram.Point{X: dx, Y: dy})
		return
	}
	if err := v.scene.MoveShape(v.selShape, dx, dy); err != nil {
		v.fail(err)
		return
	}
	v.edited()
}

func (v *Viewer) rotate(deg float64) {
	if v.selShape == 0 {
		return
	}
	if err := v.scene.RotateShape(v.selShape, deg); err != nil {
		v.fail(err)
		return
	}
	v.edited()
}

func (v *Viewer) deleteSelected() {
	var err error
	switch {
	case v.selConn != 0:
		err = v.scene.RemoveConnection(v.selConn)
		v.selConn = 0
	case v.selShape != 0:
		err = v.scene.RemoveShape(v.selShape)
		v.selShape = 0
	default:
		return
	}
	if err != nil {
		v.fail(err)
		return
	}
	v.edited()
	v.notify("Deleted")
}

// connectNext joins the selected shape to the shape after it, through the sides that
// face each other.
func (v *Viewer) connectNext() {
	if v.selShape == 0 || len(v.scene.Shapes) < 2 {
		return
	}
	from, _ := v.scene.ShapeByID(v.selShape)
	v.cycleShape(1)
	to, _ := v.scene.ShapeByID(v.selShape)
	v.selShape = from.ID

	fromPort, toPort := FacingPorts(from, to)
	id, err := v.scene.Connect(from.ID, fromPort, to.ID, toPort)
	if err != nil {
		v.fail(err)
		return
	}
	v.selShape, v.selConn = 0, id
	v.edited()
	v.notify(fmt.Sprintf("Connected %d to %d", from.ID, to.ID))
}

// FacingPorts picks the sides of a and b that face each other along the axis on which
// their centers are furthest apart.
func FacingPorts(a, b diagram.Shape) (diagram.Port, diagram.Port) {
	d := b.Center().Sub(a.Center())
	if math.Abs(d.X) >= math.Abs(d.Y) {
		if d.X >= 0 {
			return diagram.PortRight, diagram.PortLeft
		}
		return diagram.PortLeft, diagram.PortRight
	}
	if d.Y >= 0 {
		return diagram.PortBottom, diagram.PortTop
	}
	return diagram.PortTop, diagram.PortBottom
}

// edited records the scene after a change.
func (v *Viewer) edited() {
	v.modified = true
	v.history.SaveState(v.scene)
}

func (v *Viewer) undo() {
	if scene := v.history.Undo(); scene != nil {
		v.restore(scene, "Undo")
	}
}

func (v *Viewer) redo() {
	if scene := v.history.Redo(); scene != nil {
		v.restore(scene, "Redo")
	}
}

// restore replaces the live scene, dropping selections that no longer exist.
func (v *Viewer) restore(scene *diagram.Scene, msg string) {
	v.scene = scene
	if _, ok := scene.ShapeByID(v.selShape); !ok {
		v.selShape = 0
	}
	if _, ok := scene.ConnectionByID(v.selConn); !ok {
		v.selConn = 0
	}
	v.modified = true
	v.notify(msg)
}

func (v *Viewer) copySVG() {
	svg, err := export.SVG(v.router, v.scene, v.cfg.ExportSettings())
	if err != nil {
		v.fail(err)
		return
	}
	if err := v.copyText(svg); err != nil {
		v.fail(fmt.Errorf("clipboard: %w", err))
		return
	}
	v.notify("Copied SVG")
}

func (v *Viewer) save() {
	if v.path == "" {
		v.fail(fmt.Errorf("no file to save to"))
		return
	}
	if err := export.SaveSceneFile(v.path, v.scene); err != nil {
		v.fail(err)
		return
	}
	v.modified = false
	v.notify("Saved: " + v.path)
}
