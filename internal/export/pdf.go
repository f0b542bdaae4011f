// Package export renders a document to external file formats.
package export

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"sketchpad/internal/object"
	"sketchpad/pkg/colorutil"
	"sketchpad/pkg/geometry"
)

// pdfScale converts surface units (logical pixels) to PDF millimeters.
const pdfScale = 25.4 / 96

// PDF writes the objects to a single-page PDF at the given path. Objects
// are drawn in list order with their own stroke and fill options; object
// types without a vector representation here (eraser strokes) are drawn
// like plain freehand paths in their recorded color.
func PDF(path string, objects []*object.Object) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	for _, obj := range objects {
		drawObject(pdf, obj)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

func drawObject(pdf *gofpdf.Fpdf, obj *object.Object) {
	if obj == nil {
		return
	}
	// Export what the canvas shows: any post-hoc transform is baked in first.
	obj = obj.Resolved()

	applyOptions(pdf, obj)

	switch obj.Type {
	case object.TypePen, object.TypeEraser, object.TypeHighlighter:
		drawPath(pdf, obj.Points)
	case object.TypeLine:
		end := obj.AnchorEnd()
		pdf.Line(mm(obj.Start.X), mm(obj.Start.Y), mm(end.X), mm(end.Y))
	case object.TypeArrow:
		end := obj.AnchorEnd()
		pdf.Line(mm(obj.Start.X), mm(obj.Start.Y), mm(end.X), mm(end.Y))
		if head := geometry.ArrowHead(obj.Start, end); head != nil {
			stroke := colorutil.Parse(obj.Options.StrokeColor)
			pdf.SetFillColor(int(stroke.R), int(stroke.G), int(stroke.B))
			drawPolygon(pdf, head, "F")
		}
	case object.TypeRectangle, object.TypeHandDrawnRect:
		r := obj.AnchorRect()
		pdf.Rect(mm(r.X), mm(r.Y), mm(r.Width), mm(r.Height), styleString(obj))
	case object.TypeEllipse:
		r := obj.AnchorRect()
		c := r.Center()
		pdf.Ellipse(mm(c.X), mm(c.Y), mm(r.Width/2), mm(r.Height/2), 0, styleString(obj))
	case object.TypeStar:
		drawPolygon(pdf, geometry.StarPolygon(obj.AnchorRect()), styleString(obj))
	case object.TypeTriangle:
		drawPolygon(pdf, geometry.TrianglePolygon(obj.AnchorRect()), styleString(obj))
	case object.TypeText:
		drawText(pdf, obj)
	}
}

func applyOptions(pdf *gofpdf.Fpdf, obj *object.Object) {
	stroke := colorutil.Parse(obj.Options.StrokeColor)
	if obj.Type == object.TypeEraser {
		stroke = colorutil.White
	}
	pdf.SetDrawColor(int(stroke.R), int(stroke.G), int(stroke.B))
	pdf.SetLineWidth(mm(obj.Options.StrokeWidth))

	if obj.Options.Filled {
		fill := colorutil.Parse(obj.Options.FillColor)
		pdf.SetFillColor(int(fill.R), int(fill.G), int(fill.B))
	}

	alpha := obj.Options.Opacity
	if obj.Type == object.TypeHighlighter {
		alpha *= 0.4
	}
	pdf.SetAlpha(alpha, "Normal")

	if len(obj.Options.DashPattern) > 0 {
		dash := make([]float64, len(obj.Options.DashPattern))
		for i, d := range obj.Options.DashPattern {
			dash[i] = mm(d)
		}
		pdf.SetDashPattern(dash, 0)
	} else {
		pdf.SetDashPattern(nil, 0)
	}
}

func styleString(obj *object.Object) string {
	if obj.Options.Filled {
		return "FD"
	}
	return "D"
}

func drawPath(pdf *gofpdf.Fpdf, points []geometry.Point2D) {
	for i := 1; i < len(points); i++ {
		pdf.Line(mm(points[i-1].X), mm(points[i-1].Y), mm(points[i].X), mm(points[i].Y))
	}
}

func drawPolygon(pdf *gofpdf.Fpdf, points []geometry.Point2D, style string) {
	if len(points) < 3 {
		return
	}
	pts := make([]gofpdf.PointType, len(points))
	for i, p := range points {
		pts[i] = gofpdf.PointType{X: mm(p.X), Y: mm(p.Y)}
	}
	pdf.Polygon(pts, style)
}

func drawText(pdf *gofpdf.Fpdf, obj *object.Object) {
	if obj.Text == "" {
		return
	}

	style := ""
	if obj.Options.FontBold {
		style = "B"
	}
	// PDF font size is in points; surface font size is in logical pixels.
	pdf.SetFont("Helvetica", style, obj.Options.FontSize*0.75)
	stroke := colorutil.Parse(obj.Options.StrokeColor)
	pdf.SetTextColor(int(stroke.R), int(stroke.G), int(stroke.B))

	x := mm(obj.Start.X)
	width := pdf.GetStringWidth(obj.Text)
	switch obj.Options.TextAlign {
	case object.AlignCenter:
		x -= width / 2
	case object.AlignRight:
		x -= width
	}
	// Text is anchored at its top; shift down by one line height.
	pdf.Text(x, mm(obj.Start.Y+obj.Options.FontSize), obj.Text)
}

func mm(v float64) float64 { return v * pdfScale }
