package converter

import (
	"github.com/binzume/spineconv/geom"
	"github.com/binzume/spineconv/spine"
)

// EstimateBounds returns the union of the attachment rectangles of all skins.
// Rotation and scale of attachments are ignored. Attachments without a
// positive width and height do not contribute.
func EstimateBounds(skins interface{}) (geom.Rect, bool) {
	var b geom.Bounds
	forEachAttachment(skins, func(att *spine.Object) {
		w, okw := att.Float("width")
		h, okh := att.Float("height")
		if !okw || !okh || w <= 0 || h <= 0 {
			return
		}
		c := geom.NewVector2(spine.FloatOr(att.Value("x"), 0), spine.FloatOr(att.Value("y"), 0))
		b.Add(geom.NewRectFromCenter(c, w, h))
	})
	return b.Rect()
}

// forEachAttachment visits attachments of both the legacy skin mapping
// and the 3.8 list of skin records.
func forEachAttachment(skins interface{}, fn func(att *spine.Object)) {
	walk := func(slots *spine.Object) {
		for _, slot := range slots.Keys() {
			atts := slots.Object(slot)
			for _, name := range atts.Keys() {
				if att := atts.Object(name); att != nil {
					fn(att)
				}
			}
		}
	}
	switch s := skins.(type) {
	case *spine.Object:
		for _, name := range s.Keys() {
			walk(s.Object(name))
		}
	case []interface{}:
		for _, e := range s {
			if rec, ok := e.(*spine.Object); ok {
				walk(rec.Object("attachments"))
			}
		}
	}
}
