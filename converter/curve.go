package converter

import (
	"errors"
	"fmt"

	"github.com/binzume/spineconv/spine"
)

const CurveStepped = "stepped"

var ErrUnknownCurveShape = errors.New("unknown curve shape")

// identity values of the c2, c3 and c4 bezier fields
var curveDefaults = [3]float64{0, 1, 1}
var curveFields = [3]string{"c2", "c3", "c4"}

// EncodeCurve converts a legacy curve descriptor to the 3.8 fields.
//
//	"stepped"          -> {curve: "stepped"}
//	[c1, c2, c3, c4]   -> {curve: c1, c2: c2, c3: c3, c4: c4} (identity values omitted)
//	anything else      -> {curve: value}
func EncodeCurve(curve interface{}) *spine.Object {
	out := spine.NewObject()
	if s, ok := curve.(string); ok && s == CurveStepped {
		return out.Set("curve", CurveStepped)
	}
	if points, ok := bezierPoints(curve); ok {
		out.Set("curve", points[0])
		for i, name := range curveFields {
			if f, _ := spine.Float(points[i+1]); f != curveDefaults[i] {
				out.Set(name, points[i+1])
			}
		}
		return out
	}
	return out.Set("curve", spine.Clone(curve))
}

// IsKnownCurve reports whether EncodeCurve understands the descriptor.
func IsKnownCurve(curve interface{}) bool {
	if s, ok := curve.(string); ok {
		return s == CurveStepped
	}
	_, ok := bezierPoints(curve)
	return ok
}

func checkCurve(curve interface{}) error {
	if IsKnownCurve(curve) {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrUnknownCurveShape, curve)
}

func bezierPoints(curve interface{}) ([]interface{}, bool) {
	points, ok := curve.([]interface{})
	if !ok || len(points) != 4 {
		return nil, false
	}
	for _, p := range points {
		if _, ok := spine.Float(p); !ok {
			return nil, false
		}
	}
	return points, true
}
