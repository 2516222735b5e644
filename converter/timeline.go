package converter

import (
	"strings"

	"github.com/binzume/spineconv/spine"
)

type PropertyKind string

const (
	Rotate     PropertyKind = "rotate"
	Translate  PropertyKind = "translate"
	Scale      PropertyKind = "scale"
	Shear      PropertyKind = "shear"
	Attachment PropertyKind = "attachment"
	Color      PropertyKind = "color"
	IK         PropertyKind = "ik"
	Deform     PropertyKind = "deform"
	DrawOrder  PropertyKind = "drawOrder"
)

// FieldRule describes one keyframe field of a timeline.
type FieldRule struct {
	Name string
	// Default is the identity value of the field. nil means there is none.
	Default interface{}
	// Keep retains the field whenever it is present, even at its default.
	Keep bool
}

var emptyArray = []interface{}{}

// propertyRules lists the fields that matter for each timeline kind, in output order.
var propertyRules = map[PropertyKind][]FieldRule{
	Rotate:     {{Name: "angle", Default: 0.0}},
	Translate:  {{Name: "x", Default: 0.0}, {Name: "y", Default: 0.0}},
	Scale:      {{Name: "x", Default: 1.0}, {Name: "y", Default: 1.0}},
	Shear:      {{Name: "x", Default: 0.0}, {Name: "y", Default: 0.0}},
	Attachment: {{Name: "name", Keep: true}},
	Color:      {{Name: "color", Default: "ffffffff", Keep: true}},
	IK:         {{Name: "mix", Default: 1.0}, {Name: "bendPositive", Default: true}},
	Deform:     {{Name: "offset", Default: 0.0}, {Name: "vertices", Keep: true}},
	DrawOrder:  {{Name: "offsets", Default: emptyArray, Keep: true}},
}

func (r *FieldRule) isDefault(v interface{}) bool {
	switch def := r.Default.(type) {
	case float64:
		f, ok := spine.Float(v)
		return ok && f == def
	case bool:
		b, ok := v.(bool)
		return ok && b == def
	case string:
		s, ok := v.(string)
		return ok && strings.EqualFold(s, def)
	case []interface{}:
		arr, ok := v.([]interface{})
		return ok && len(arr) == len(def)
	}
	return false
}

func isZeroTime(v interface{}) bool {
	f, ok := spine.Float(v)
	return ok && f == 0
}

// Canonicalize removes default-valued fields from each keyframe and
// re-encodes curves. The first keyframe is always kept, even when empty,
// because the runtime reads an empty timeline as having no valid bounds.
// Later keyframes are kept only when something is left in them.
func Canonicalize(timeline []interface{}, kind PropertyKind) []interface{} {
	rules := propertyRules[kind]
	out := []interface{}{}
	for i, e := range timeline {
		rec := spine.NewObject()
		if kf, ok := e.(*spine.Object); ok {
			if t, ok := kf.Get("time"); ok && !isZeroTime(t) {
				rec.Set("time", spine.Clone(t))
			}
			for _, r := range rules {
				v, ok := kf.Get(r.Name)
				if !ok {
					continue
				}
				if r.Keep || !r.isDefault(v) {
					rec.Set(r.Name, spine.Clone(v))
				}
			}
			if c, ok := kf.Get("curve"); ok {
				rec.Merge(EncodeCurve(c))
			}
		}
		if i == 0 || rec.Len() > 0 {
			out = append(out, rec)
		}
	}
	return out
}

// HasMeaningfulChanges reports whether any keyframe deviates from the
// identity pose. Kinds with a field lacking an identity value (attachment
// names, deform vertices) are always meaningful.
func HasMeaningfulChanges(timeline []interface{}, kind PropertyKind) bool {
	rules, ok := propertyRules[kind]
	if !ok || len(timeline) == 0 {
		return false
	}
	for _, r := range rules {
		if r.Default == nil {
			return true
		}
	}
	for _, e := range timeline {
		kf, ok := e.(*spine.Object)
		if !ok {
			continue
		}
		for _, r := range rules {
			if v, ok := kf.Get(r.Name); ok && !r.isDefault(v) {
				return true
			}
		}
	}
	return false
}
