// renderdemo exercises the drawing tools without a GUI: it drives each tool
// through a scripted gesture, rasterizes the resulting document to a PNG,
// and optionally exports the same document as a PDF. Useful for checking
// the renderer on headless machines.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"

	"github.com/google/uuid"

	"sketchpad/internal/export"
	"sketchpad/internal/object"
	"sketchpad/internal/tool"
	"sketchpad/pkg/geometry"
	"sketchpad/ui/canvas"
)

// demoContext is a minimal tool.Context for scripted drawing.
type demoContext struct {
	opts    object.Options
	surface *canvas.RasterSurface
}

func (c *demoContext) GenerateID() string      { return uuid.NewString() }
func (c *demoContext) Options() object.Options { return c.opts }
func (c *demoContext) Surface() tool.Surface   { return c.surface }
func (c *demoContext) RedrawCanvas()           {}
func (c *demoContext) SaveState()              {}

// gesture scripts one tool stroke: which tool, the press point, optional
// intermediate points, and the release point.
type gesture struct {
	tool    object.Type
	press   geometry.Point2D
	moves   []geometry.Point2D
	release geometry.Point2D
	text    string
	options func(o *object.Options)
}

func demoGestures() []gesture {
	return []gesture{
		{
			tool:  object.TypePen,
			press: geometry.Point2D{X: 40, Y: 60},
			moves: []geometry.Point2D{
				{X: 70, Y: 30}, {X: 100, Y: 70}, {X: 130, Y: 35}, {X: 160, Y: 60},
			},
			release: geometry.Point2D{X: 190, Y: 40},
		},
		{
			tool:    object.TypeLine,
			press:   geometry.Point2D{X: 40, Y: 110},
			release: geometry.Point2D{X: 220, Y: 140},
			options: func(o *object.Options) { o.StrokeColor = "#1971c2"; o.StrokeWidth = 3 },
		},
		{
			tool:    object.TypeRectangle,
			press:   geometry.Point2D{X: 260, Y: 40},
			release: geometry.Point2D{X: 380, Y: 120},
			options: func(o *object.Options) { o.Filled = true; o.FillColor = "#fcc419" },
		},
		{
			tool:    object.TypeHandDrawnRect,
			press:   geometry.Point2D{X: 420, Y: 40},
			release: geometry.Point2D{X: 560, Y: 120},
		},
		{
			tool:    object.TypeEllipse,
			press:   geometry.Point2D{X: 260, Y: 160},
			release: geometry.Point2D{X: 380, Y: 260},
			options: func(o *object.Options) { o.StrokeColor = "#2f9e44" },
		},
		{
			tool:    object.TypeArrow,
			press:   geometry.Point2D{X: 40, Y: 200},
			release: geometry.Point2D{X: 220, Y: 230},
			options: func(o *object.Options) { o.StrokeColor = "#e03131"; o.StrokeWidth = 2 },
		},
		{
			tool:    object.TypeStar,
			press:   geometry.Point2D{X: 420, Y: 160},
			release: geometry.Point2D{X: 540, Y: 280},
			options: func(o *object.Options) { o.Filled = true; o.FillColor = "#fcc419" },
		},
		{
			tool:    object.TypeTriangle,
			press:   geometry.Point2D{X: 580, Y: 160},
			release: geometry.Point2D{X: 700, Y: 280},
		},
		{
			tool:  object.TypeHighlighter,
			press: geometry.Point2D{X: 40, Y: 300},
			moves: []geometry.Point2D{
				{X: 150, Y: 300}, {X: 260, Y: 305},
			},
			release: geometry.Point2D{X: 380, Y: 300},
			options: func(o *object.Options) { o.StrokeColor = "#fcc419"; o.StrokeWidth = 6 },
		},
		{
			tool:    object.TypeText,
			press:   geometry.Point2D{X: 40, Y: 350},
			release: geometry.Point2D{X: 40, Y: 350},
			text:    "sketchpad render demo",
		},
	}
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	pngPath := flag.String("png", "demo.png", "output PNG path")
	pdfPath := flag.String("pdf", "", "optional output PDF path")
	width := flag.Int("width", 760, "canvas width in pixels")
	height := flag.Int("height", 420, "canvas height in pixels")
	flag.Parse()

	tools := tool.NewDefaultManager()
	surface := canvas.NewRasterSurface(*width, *height)
	ctx := &demoContext{surface: surface}

	var objects []*object.Object
	for _, g := range demoGestures() {
		ctx.opts = object.DefaultOptions()
		if g.options != nil {
			g.options(&ctx.opts)
		}
		if !tools.SetCurrentTool(g.tool) {
			log.Fatalf("tool %q not registered", g.tool)
		}

		obj := tools.StartDrawing(g.press, ctx)
		for _, move := range g.moves {
			tools.ContinueDrawing(move, obj, ctx)
		}
		done, action := tools.FinishDrawing(g.release, obj, ctx)
		if action == tool.ActionNone {
			continue
		}
		if g.text != "" {
			done.Text = g.text
			done.Bounds = tools.ObjectBounds(done, surface)
		}
		objects = append(objects, done)
	}

	for _, obj := range objects {
		tools.RenderObject(obj, surface)
	}

	if err := writePNG(*pngPath, surface); err != nil {
		log.Fatalf("writing png: %v", err)
	}
	fmt.Printf("wrote %s (%d objects)\n", *pngPath, len(objects))

	if *pdfPath != "" {
		if err := export.PDF(*pdfPath, objects); err != nil {
			log.Fatalf("writing pdf: %v", err)
		}
		fmt.Printf("wrote %s\n", *pdfPath)
	}
}

func writePNG(path string, surface *canvas.RasterSurface) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, surface.Image())
}
