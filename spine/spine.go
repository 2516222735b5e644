package spine

// http://esotericsoftware.com/spine-json-format

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
)

const (
	// Version38 is the skeleton.spine value the 3.8 runtime expects.
	Version38 = "3.8.75"
)

// Top-level sections.
const (
	KeySkeleton   = "skeleton"
	KeyBones      = "bones"
	KeySlots      = "slots"
	KeySkins      = "skins"
	KeyAnimations = "animations"
)

// Skeleton metadata fields.
const (
	KeySpine  = "spine"
	KeyHash   = "hash"
	KeyX      = "x"
	KeyY      = "y"
	KeyWidth  = "width"
	KeyHeight = "height"
	KeyImages = "images"
	KeyAudio  = "audio"
)

var ErrMalformedInput = errors.New("malformed rig document")

// SkeletonVersion returns skeleton.spine or "".
func SkeletonVersion(doc *Object) string {
	v, _ := doc.Object(KeySkeleton).String(KeySpine)
	return v
}

// IsRig reports whether doc looks like a skeleton document at all.
func IsRig(doc *Object) bool {
	return doc.Has(KeySkeleton) || doc.Has(KeyBones)
}

// Float converts a JSON number to float64.
func Float(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// FloatOr returns the numeric value of v, or def when v is missing or not a number.
func FloatOr(v interface{}, def float64) float64 {
	if f, ok := Float(v); ok {
		return f
	}
	return def
}

// Number converts a computed float64 into a JSON number.
func Number(f float64) json.Number {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "0"
	}
	return json.Number(strconv.FormatFloat(f, 'f', -1, 64))
}
