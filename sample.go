package graphcalc

import (
	"math"
	"strconv"
)

// Point is a sampled point on a curve.
type Point struct {
	X, Y float64
}

// Segment is a maximal run of consecutive finite samples. A plot draws each
// segment as one polyline.
type Segment []Point

// Sample evaluates e at cols+1 evenly spaced values of its variable from xmin
// to xmax inclusive, i.e. one step per pixel column of a plot. Finite results
// are collected into segments; a NaN or infinite result ends the current
// segment without adding a point, leaving a gap where the function is
// undefined or discontinuous. Segments are in order of increasing x.
//
// The error is a *RangeError for an invalid sampling range or
// *UnboundVariableError if e refers to a variable other than its own, which
// Parse never produces.
func Sample(e *Expr, xmin, xmax float64, cols int) ([]Segment, error) {
	if err := checkRange(xmin, xmax, cols); err != nil {
		return nil, err
	}
	vars := Bindings{e.vname: 0}
	return sample(xmin, xmax, cols, func(x float64) (float64, error) {
		vars[e.vname] = x
		return e.Eval(vars)
	})
}

// SampleFunc is like Sample for an arbitrary function.
func SampleFunc(f func(float64) float64, xmin, xmax float64, cols int) ([]Segment, error) {
	if err := checkRange(xmin, xmax, cols); err != nil {
		return nil, err
	}
	return sample(xmin, xmax, cols, func(x float64) (float64, error) {
		return f(x), nil
	})
}

func sample(xmin, xmax float64, cols int, f func(float64) (float64, error)) ([]Segment, error) {
	var (
		segs []Segment
		cur  Segment
	)
	w := xmax - xmin
	for i := 0; i <= cols; i++ {
		// Scale before dividing so that exactly representable sample points,
		// e.g. 0 on [-5, 5], are hit exactly.
		x := xmin + w*float64(i)/float64(cols)
		y, err := f(x)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(y) || math.IsInf(y, 0) {
			if len(cur) > 0 {
				segs = append(segs, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, Point{X: x, Y: y})
	}
	if len(cur) > 0 {
		segs = append(segs, cur)
	}
	return segs, nil
}

func checkRange(xmin, xmax float64, cols int) error {
	switch {
	case cols < 1:
		return &RangeError{XMin: xmin, XMax: xmax, Cols: cols, Reason: "need at least one column"}
	case math.IsNaN(xmin) || math.IsInf(xmin, 0) || math.IsNaN(xmax) || math.IsInf(xmax, 0):
		return &RangeError{XMin: xmin, XMax: xmax, Cols: cols, Reason: "bounds must be finite"}
	case xmax <= xmin:
		return &RangeError{XMin: xmin, XMax: xmax, Cols: cols, Reason: "empty range"}
	case math.IsInf(xmax-xmin, 0):
		return &RangeError{XMin: xmin, XMax: xmax, Cols: cols, Reason: "range too wide"}
	}
	return nil
}

// RangeError is an error indicating an invalid sampling range.
type RangeError struct {
	XMin, XMax float64
	Cols       int
	Reason     string
}

func (err *RangeError) Error() string {
	return "cannot sample [" + strconv.FormatFloat(err.XMin, 'g', -1, 64) + ", " +
		strconv.FormatFloat(err.XMax, 'g', -1, 64) + "] in " + strconv.Itoa(err.Cols) +
		" columns: " + err.Reason
}
