// Package canvas provides the drawing board widget and its software
// rasterizer.
package canvas

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"sketchpad/internal/object"
	"sketchpad/pkg/colorutil"
	"sketchpad/pkg/geometry"
)

// style is one entry of the surface's style stack.
type style struct {
	strokeColor color.RGBA
	strokeWidth float64
	fillColor   color.RGBA
	opacity     float64
	dash        []float64

	shadowColor   color.RGBA
	shadowSet     bool
	shadowOffsetX float64
	shadowOffsetY float64
}

func defaultStyle() style {
	return style{
		strokeColor: colorutil.Black,
		strokeWidth: 1,
		fillColor:   colorutil.White,
		opacity:     1,
	}
}

// RasterSurface rasterizes tool output onto an RGBA image. Coordinates are
// in surface units, shifted by the view origin and multiplied by the scale
// factor, so the same object list renders correctly at any zoom and pan.
type RasterSurface struct {
	img    *image.RGBA
	scale  float64
	origin geometry.Point2D
	cur    style
	stack  []style
}

// NewRasterSurface creates a surface of the given pixel size at scale 1,
// cleared to white.
func NewRasterSurface(w, h int) *RasterSurface {
	return NewScaledRasterSurface(w, h, 1)
}

// NewScaledRasterSurface creates a surface whose drawing operations are
// multiplied by scale before rasterization.
func NewScaledRasterSurface(w, h int, scale float64) *RasterSurface {
	return NewViewRasterSurface(w, h, scale, geometry.Point2D{})
}

// NewViewRasterSurface creates a surface showing the view that starts at
// origin in surface units; origin maps to the top-left pixel.
func NewViewRasterSurface(w, h int, scale float64, origin geometry.Point2D) *RasterSurface {
	if scale <= 0 {
		scale = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	s := &RasterSurface{img: img, scale: scale, origin: origin, cur: defaultStyle()}
	s.clear(colorutil.White)
	return s
}

// toPx converts a surface coordinate pair to fractional pixel coordinates.
func (s *RasterSurface) toPx(x, y float64) (float64, float64) {
	return (x - s.origin.X) * s.scale, (y - s.origin.Y) * s.scale
}

// Image returns the backing image.
func (s *RasterSurface) Image() *image.RGBA { return s.img }

func (s *RasterSurface) clear(c color.RGBA) {
	for i := 0; i < len(s.img.Pix); i += 4 {
		s.img.Pix[i] = c.R
		s.img.Pix[i+1] = c.G
		s.img.Pix[i+2] = c.B
		s.img.Pix[i+3] = 255
	}
}

// PushStyle saves the current style onto the stack.
func (s *RasterSurface) PushStyle() {
	saved := s.cur
	if saved.dash != nil {
		saved.dash = append([]float64(nil), saved.dash...)
	}
	s.stack = append(s.stack, saved)
	// A fresh render scope starts from neutral dash/shadow settings.
	s.cur.dash = nil
	s.cur.shadowSet = false
}

// PopStyle restores the most recently pushed style.
func (s *RasterSurface) PopStyle() {
	if len(s.stack) == 0 {
		s.cur = defaultStyle()
		return
	}
	s.cur = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *RasterSurface) SetStroke(c string, width float64) {
	s.cur.strokeColor = colorutil.Parse(c)
	if width < 1 {
		width = 1
	}
	s.cur.strokeWidth = width
}

func (s *RasterSurface) SetFill(c string) {
	s.cur.fillColor = colorutil.Parse(c)
}

func (s *RasterSurface) SetOpacity(alpha float64) {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	s.cur.opacity = alpha
}

func (s *RasterSurface) SetDash(pattern []float64) {
	s.cur.dash = append([]float64(nil), pattern...)
}

func (s *RasterSurface) SetShadow(c string, blur, offsetX, offsetY float64) {
	// Blur is approximated by translucency; only the offset is honored.
	s.cur.shadowColor = colorutil.WithOpacity(colorutil.Parse(c), 0.4)
	s.cur.shadowSet = true
	s.cur.shadowOffsetX = offsetX
	s.cur.shadowOffsetY = offsetY
}

func (s *RasterSurface) strokePaint() color.RGBA {
	return colorutil.WithOpacity(s.cur.strokeColor, s.cur.opacity)
}

func (s *RasterSurface) fillPaint() color.RGBA {
	return colorutil.WithOpacity(s.cur.fillColor, s.cur.opacity)
}

// withShadow runs the draw function once for the shadow pass, offset and in
// the shadow color, then once for the main pass.
func (s *RasterSurface) withShadow(main color.RGBA, draw func(off geometry.Point2D, c color.RGBA)) {
	if s.cur.shadowSet {
		draw(geometry.Point2D{X: s.cur.shadowOffsetX, Y: s.cur.shadowOffsetY}, s.cur.shadowColor)
	}
	draw(geometry.Point2D{}, main)
}

func (s *RasterSurface) StrokeLine(a, b geometry.Point2D) {
	s.withShadow(s.strokePaint(), func(off geometry.Point2D, c color.RGBA) {
		s.dashedLine(a.Add(off), b.Add(off), c)
	})
}

func (s *RasterSurface) StrokePath(points []geometry.Point2D) {
	if len(points) == 0 {
		return
	}
	if len(points) == 1 {
		s.StrokeLine(points[0], points[0])
		return
	}
	s.withShadow(s.strokePaint(), func(off geometry.Point2D, c color.RGBA) {
		for i := 0; i < len(points)-1; i++ {
			s.dashedLine(points[i].Add(off), points[i+1].Add(off), c)
		}
	})
}

func (s *RasterSurface) StrokePolygon(points []geometry.Point2D) {
	n := len(points)
	if n < 2 {
		return
	}
	s.withShadow(s.strokePaint(), func(off geometry.Point2D, c color.RGBA) {
		for i := 0; i < n; i++ {
			s.dashedLine(points[i].Add(off), points[(i+1)%n].Add(off), c)
		}
	})
}

func (s *RasterSurface) FillPolygon(points []geometry.Point2D) {
	if len(points) < 3 {
		return
	}
	s.withShadow(s.fillPaint(), func(off geometry.Point2D, c color.RGBA) {
		s.scanlineFill(points, off, c)
	})
}

func (s *RasterSurface) StrokeRect(r geometry.Rect) {
	s.StrokePolygon([]geometry.Point2D{
		{X: r.X, Y: r.Y},
		{X: r.X + r.Width, Y: r.Y},
		{X: r.X + r.Width, Y: r.Y + r.Height},
		{X: r.X, Y: r.Y + r.Height},
	})
}

func (s *RasterSurface) FillRect(r geometry.Rect) {
	s.FillPolygon([]geometry.Point2D{
		{X: r.X, Y: r.Y},
		{X: r.X + r.Width, Y: r.Y},
		{X: r.X + r.Width, Y: r.Y + r.Height},
		{X: r.X, Y: r.Y + r.Height},
	})
}

func (s *RasterSurface) StrokeEllipse(r geometry.Rect) {
	s.withShadow(s.strokePaint(), func(off geometry.Point2D, c color.RGBA) {
		s.ellipse(r, off, c, false)
	})
}

func (s *RasterSurface) FillEllipse(r geometry.Rect) {
	s.withShadow(s.fillPaint(), func(off geometry.Point2D, c color.RGBA) {
		s.ellipse(r, off, c, true)
	})
}

// DrawText renders text with the built-in bitmap face. The face has a fixed
// size, so font options only affect color selection here; the vector
// exporters honor the full font options.
func (s *RasterSurface) DrawText(text string, origin geometry.Point2D, opts object.Options) {
	if text == "" {
		return
	}
	face := basicfont.Face7x13
	col := colorutil.WithOpacity(colorutil.Parse(opts.StrokeColor), s.cur.opacity)

	px, py := s.toPx(origin.X, origin.Y)
	d := &font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(int(px)),
			Y: fixed.I(int(py) + face.Ascent),
		},
	}
	d.DrawString(text)
}

// MeasureText returns the width of text in surface units.
func (s *RasterSurface) MeasureText(text string, _ object.Options) float64 {
	w := font.MeasureString(basicfont.Face7x13, text)
	return float64(w>>6) / s.scale
}

// setPixel writes a pixel, alpha-blending translucent paint over the
// existing value.
func (s *RasterSurface) setPixel(x, y int, c color.RGBA) {
	b := s.img.Bounds()
	if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
		return
	}
	if c.A == 255 {
		s.img.SetRGBA(x, y, c)
		return
	}
	s.img.SetRGBA(x, y, colorutil.Blend(s.img.RGBAAt(x, y), c))
}

// dashedLine splits a line into on/off runs of the current dash pattern and
// rasterizes the on runs. Without a pattern the whole line is drawn.
func (s *RasterSurface) dashedLine(a, b geometry.Point2D, c color.RGBA) {
	if len(s.cur.dash) == 0 {
		s.line(a, b, c)
		return
	}

	total := a.Distance(b)
	if total == 0 {
		s.line(a, b, c)
		return
	}
	dir := b.Sub(a).Scale(1 / total)

	pos := 0.0
	idx := 0
	for pos < total {
		run := s.cur.dash[idx%len(s.cur.dash)]
		if run <= 0 {
			run = 1
		}
		end := math.Min(pos+run, total)
		if idx%2 == 0 {
			s.line(a.Add(dir.Scale(pos)), a.Add(dir.Scale(end)), c)
		}
		pos = end
		idx++
	}
}

// line rasterizes a thick segment with Bresenham stepping and a square
// stamp.
func (s *RasterSurface) line(a, b geometry.Point2D, c color.RGBA) {
	ax, ay := s.toPx(a.X, a.Y)
	bx, by := s.toPx(b.X, b.Y)
	x1 := int(math.Round(ax))
	y1 := int(math.Round(ay))
	x2 := int(math.Round(bx))
	y2 := int(math.Round(by))
	thickness := int(math.Round(s.cur.strokeWidth * s.scale))
	if thickness < 1 {
		thickness = 1
	}

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy

	for {
		for t := -thickness / 2; t <= thickness/2; t++ {
			for u := -thickness / 2; u <= thickness/2; u++ {
				s.setPixel(x1+u, y1+t, c)
			}
		}
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// scanlineFill fills a polygon with even-odd scanline spans.
func (s *RasterSurface) scanlineFill(points []geometry.Point2D, off geometry.Point2D, c color.RGBA) {
	n := len(points)
	scaled := make([]geometry.Point2D, n)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for i, p := range points {
		px, py := s.toPx(p.X+off.X, p.Y+off.Y)
		scaled[i] = geometry.Point2D{X: px, Y: py}
		minY = math.Min(minY, scaled[i].Y)
		maxY = math.Max(maxY, scaled[i].Y)
	}

	bounds := s.img.Bounds()
	for y := int(minY); y <= int(maxY); y++ {
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}
		fy := float64(y)

		var xs []float64
		for i := 0; i < n; i++ {
			p1 := scaled[i]
			p2 := scaled[(i+1)%n]
			if (p1.Y <= fy && p2.Y > fy) || (p2.Y <= fy && p1.Y > fy) {
				t := (fy - p1.Y) / (p2.Y - p1.Y)
				xs = append(xs, p1.X+t*(p2.X-p1.X))
			}
		}

		// Insertion sort; the crossing count is tiny.
		for i := 1; i < len(xs); i++ {
			for j := i; j > 0 && xs[j] < xs[j-1]; j-- {
				xs[j], xs[j-1] = xs[j-1], xs[j]
			}
		}

		for i := 0; i+1 < len(xs); i += 2 {
			for x := int(xs[i]); x <= int(xs[i+1]); x++ {
				s.setPixel(x, y, c)
			}
		}
	}
}

// ellipse rasterizes an ellipse inscribed in r, filled or as a ring of the
// current stroke width.
func (s *RasterSurface) ellipse(r geometry.Rect, off geometry.Point2D, c color.RGBA, filled bool) {
	cx, cy := s.toPx(r.X+r.Width/2+off.X, r.Y+r.Height/2+off.Y)
	rx := r.Width / 2 * s.scale
	ry := r.Height / 2 * s.scale
	if rx <= 0 || ry <= 0 {
		return
	}

	halfStroke := s.cur.strokeWidth * s.scale / 2
	if halfStroke < 0.5 {
		halfStroke = 0.5
	}
	meanR := (rx + ry) / 2

	minX := int(cx - rx - halfStroke - 1)
	maxX := int(cx + rx + halfStroke + 1)
	minY := int(cy - ry - halfStroke - 1)
	maxY := int(cy + ry + halfStroke + 1)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			nx := (float64(x) - cx) / rx
			ny := (float64(y) - cy) / ry
			v := math.Sqrt(nx*nx + ny*ny)
			if filled {
				if v <= 1 {
					s.setPixel(x, y, c)
				}
			} else if math.Abs(v-1)*meanR <= halfStroke {
				s.setPixel(x, y, c)
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
