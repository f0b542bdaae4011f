package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"sketchpad/internal/object"
	"sketchpad/pkg/geometry"
)

func TestPDFExport(t *testing.T) {
	opts := object.DefaultOptions()

	line := object.New("l", object.TypeLine, geometry.Point2D{X: 10, Y: 10}, opts)
	line.SetEnd(geometry.Point2D{X: 200, Y: 100})

	filledOpts := opts
	filledOpts.Filled = true
	filledOpts.FillColor = "#ffcc00"
	star := object.New("s", object.TypeStar, geometry.Point2D{X: 50, Y: 50}, filledOpts)
	star.SetEnd(geometry.Point2D{X: 150, Y: 150})

	pen := object.New("p", object.TypePen, geometry.Point2D{}, opts)
	pen.AppendPoint(geometry.Point2D{X: 0, Y: 0})
	pen.AppendPoint(geometry.Point2D{X: 30, Y: 40})
	pen.AppendPoint(geometry.Point2D{X: 60, Y: 10})

	textOpts := opts
	textOpts.TextAlign = object.AlignCenter
	text := object.New("t", object.TypeText, geometry.Point2D{X: 100, Y: 20}, textOpts)
	text.Text = "hello"

	arrow := object.New("a", object.TypeArrow, geometry.Point2D{X: 0, Y: 200}, opts)
	arrow.SetEnd(geometry.Point2D{X: 90, Y: 200})

	path := filepath.Join(t.TempDir(), "out.pdf")
	objects := []*object.Object{line, star, pen, text, arrow, nil}
	if err := PDF(path, objects); err != nil {
		t.Fatalf("export: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("output is not a PDF")
	}
	if len(data) < 500 {
		t.Errorf("suspiciously small PDF: %d bytes", len(data))
	}
}

func TestPDFExportEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	if err := PDF(path, nil); err != nil {
		t.Fatalf("empty export should still produce a page: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("stat: %v", err)
	}
}
