package converter

import (
	"github.com/binzume/spineconv/spine"
)

// 3.8 bone field order. Other fields follow in their original order.
var boneFieldOrder = []string{"name", "parent", "length", "rotation", "x", "y"}

// RestructureSkins converts the legacy {skinName: attachments} mapping to
// a list of {name, attachments} records. A list is returned as is.
// Record values are shared with the input.
func RestructureSkins(skins interface{}) []interface{} {
	switch s := skins.(type) {
	case []interface{}:
		return s
	case *spine.Object:
		out := make([]interface{}, 0, s.Len())
		for _, name := range s.Keys() {
			out = append(out, spine.NewObject().Set("name", name).Set("attachments", s.Value(name)))
		}
		return out
	}
	return []interface{}{}
}

// ReorderBone returns a copy of bone with its fields in 3.8 order.
func ReorderBone(bone *spine.Object) *spine.Object {
	out := spine.NewObject()
	for _, k := range boneFieldOrder {
		if v, ok := bone.Get(k); ok {
			out.Set(k, spine.Clone(v))
		}
	}
	for _, k := range bone.Keys() {
		if !out.Has(k) {
			out.Set(k, spine.Clone(bone.Value(k)))
		}
	}
	return out
}

func reorderBones(bones interface{}) interface{} {
	list, ok := bones.([]interface{})
	if !ok {
		return spine.Clone(bones)
	}
	out := make([]interface{}, len(list))
	for i, e := range list {
		if b, ok := e.(*spine.Object); ok {
			out[i] = ReorderBone(b)
		} else {
			out[i] = spine.Clone(e)
		}
	}
	return out
}
