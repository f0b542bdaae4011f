package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// FitAffineLeastSquares computes the affine transform that best maps the
// source points onto the destination points in a least-squares sense.
// At least 3 point pairs are required.
func FitAffineLeastSquares(src, dst []Point2D) (AffineTransform, error) {
	n := len(src)
	if n != len(dst) {
		return AffineTransform{}, fmt.Errorf("point count mismatch: %d vs %d", n, len(dst))
	}
	if n < 3 {
		return AffineTransform{}, fmt.Errorf("need at least 3 points, got %d", n)
	}

	// Build the overdetermined system: [x', y'] = [a, b, tx; c, d, ty] * [x, y, 1]
	A := mat.NewDense(n*2, 6, nil)
	B := mat.NewVecDense(n*2, nil)

	for i := 0; i < n; i++ {
		x, y := src[i].X, src[i].Y
		xp, yp := dst[i].X, dst[i].Y

		A.Set(i*2, 0, x)
		A.Set(i*2, 1, y)
		A.Set(i*2, 2, 1)
		B.SetVec(i*2, xp)

		A.Set(i*2+1, 3, x)
		A.Set(i*2+1, 4, y)
		A.Set(i*2+1, 5, 1)
		B.SetVec(i*2+1, yp)
	}

	var qr mat.QR
	qr.Factorize(A)

	var params mat.VecDense
	if err := qr.SolveVecTo(&params, false, B); err != nil {
		return AffineTransform{}, err
	}

	return AffineTransform{
		A:  params.AtVec(0),
		B:  params.AtVec(1),
		TX: params.AtVec(2),
		C:  params.AtVec(3),
		D:  params.AtVec(4),
		TY: params.AtVec(5),
	}, nil
}

// FitRigidLeastSquares computes the best rigid transform (rotation plus
// translation, no scale) from N point pairs. Used when an affine fit would be
// poorly constrained, e.g. for nearly collinear anchors.
func FitRigidLeastSquares(src, dst []Point2D) (AffineTransform, error) {
	if len(src) != len(dst) || len(src) < 2 {
		return AffineTransform{}, fmt.Errorf("invalid point sets")
	}
	n := float64(len(src))

	// Centroids of both sets.
	var srcCx, srcCy, dstCx, dstCy float64
	for i := range src {
		srcCx += src[i].X
		srcCy += src[i].Y
		dstCx += dst[i].X
		dstCy += dst[i].Y
	}
	srcCx /= n
	srcCy /= n
	dstCx /= n
	dstCy /= n

	// Rotation via the cross/dot product method.
	var dotSum, crossSum float64
	for i := range src {
		sx, sy := src[i].X-srcCx, src[i].Y-srcCy
		dx, dy := dst[i].X-dstCx, dst[i].Y-dstCy
		dotSum += sx*dx + sy*dy
		crossSum += sx*dy - sy*dx
	}

	theta := math.Atan2(crossSum, dotSum)
	cosT := math.Cos(theta)
	sinT := math.Sin(theta)

	tx := dstCx - (cosT*srcCx - sinT*srcCy)
	ty := dstCy - (sinT*srcCx + cosT*srcCy)

	return AffineTransform{
		A: cosT, B: -sinT, TX: tx,
		C: sinT, D: cosT, TY: ty,
	}, nil
}

// FitError returns the mean distance between transformed source points and
// their destinations.
func FitError(src, dst []Point2D, transform AffineTransform) float64 {
	if len(src) != len(dst) || len(src) == 0 {
		return math.Inf(1)
	}

	var total float64
	for i := range src {
		total += transform.Apply(src[i]).Distance(dst[i])
	}
	return total / float64(len(src))
}
