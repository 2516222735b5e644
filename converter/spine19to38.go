package converter

import (
	"errors"
	"fmt"

	"github.com/binzume/spineconv/spine"
)

var (
	ErrMissingGeometry     = errors.New("no usable skeleton geometry")
	ErrUnsupportedTimeline = errors.New("unsupported timeline")
)

type State int

const (
	AlreadyTarget State = iota
	NeedsConversion
	NeedsGeometryEstimate
)

func (s State) String() string {
	switch s {
	case AlreadyTarget:
		return "already-target"
	case NeedsConversion:
		return "needs-conversion"
	case NeedsGeometryEstimate:
		return "needs-geometry-estimate"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ViewportSource tells where the skeleton x/y/width/height came from.
type ViewportSource string

const (
	ViewportPassthrough ViewportSource = "passthrough"
	ViewportOriginal    ViewportSource = "original"
	ViewportEstimate    ViewportSource = "estimate"
	ViewportZero        ViewportSource = "zero"
	ViewportTemplate    ViewportSource = "template"
)

type Result struct {
	Document *spine.Object
	State    State
	Viewport ViewportSource
	// Warnings are non-fatal problems. Each wraps one of the package errors.
	Warnings []error
}

func (r *Result) warn(err error) {
	r.Warnings = append(r.Warnings, err)
}

type SpineUpgradeOption struct {
	TargetVersion        string // Default: spine.Version38
	KeepDefaultTimelines bool   // keep bone/slot timelines that never leave the setup pose
	OutputSuffix         string
	Exclude              []string
}

type spineUpgrade struct {
	*SpineUpgradeOption
	boneKinds map[string]PropertyKind
	slotKinds map[string]PropertyKind
}

func NewSpineUpgradeConverter(options *SpineUpgradeOption) *spineUpgrade {
	if options == nil {
		options = &SpineUpgradeOption{}
	}
	if options.TargetVersion == "" {
		options.TargetVersion = spine.Version38
	}
	return &spineUpgrade{
		SpineUpgradeOption: options,
		boneKinds: map[string]PropertyKind{
			"rotate":    Rotate,
			"translate": Translate,
			"scale":     Scale,
			"shear":     Shear,
		},
		slotKinds: map[string]PropertyKind{
			"attachment": Attachment,
			"color":      Color,
		},
	}
}

func (c *spineUpgrade) TemplatePolicy() TemplatePolicy {
	return TemplatePolicy{TargetVersion: c.TargetVersion, OutputSuffix: c.OutputSuffix, Exclude: c.Exclude}
}

// Classify decides how doc has to be processed.
func (c *spineUpgrade) Classify(doc *spine.Object) State {
	if spine.SkeletonVersion(doc) == c.TargetVersion {
		return AlreadyTarget
	}
	sk := doc.Object(spine.KeySkeleton)
	w, okw := sk.Float(spine.KeyWidth)
	h, okh := sk.Float(spine.KeyHeight)
	if okw && okh && w > 0 && h > 0 {
		return NeedsConversion
	}
	return NeedsGeometryEstimate
}

// Convert returns a new document in the target format. doc is not modified.
// tc may be nil.
func (c *spineUpgrade) Convert(doc *spine.Object, tc *TemplateContext) (*Result, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: empty document", spine.ErrMalformedInput)
	}
	res := &Result{State: c.Classify(doc)}
	if res.State == AlreadyTarget {
		res.Document = doc.Clone()
		res.Viewport = ViewportPassthrough
	} else {
		res.Document = c.convertDocument(doc, res)
	}

	if tpl, ok := tc.resolve(c.TemplatePolicy()); ok {
		applyTemplate(res.Document, tpl, c.TargetVersion)
		res.Viewport = ViewportTemplate
	}
	if res.Viewport == ViewportZero {
		res.warn(ErrMissingGeometry)
	}
	return res, nil
}

func (c *spineUpgrade) convertDocument(doc *spine.Object, res *Result) *spine.Object {
	out := spine.NewObject()
	out.Set(spine.KeySkeleton, c.convertSkeleton(doc, res))
	if doc.Has(spine.KeyBones) {
		out.Set(spine.KeyBones, reorderBones(doc.Value(spine.KeyBones)))
	}
	if doc.Has(spine.KeySlots) {
		out.Set(spine.KeySlots, spine.Clone(doc.Value(spine.KeySlots)))
	}
	if doc.Has(spine.KeySkins) {
		out.Set(spine.KeySkins, spine.Clone(RestructureSkins(doc.Value(spine.KeySkins))))
	}
	if doc.Has(spine.KeyAnimations) {
		if anims := doc.Object(spine.KeyAnimations); anims != nil {
			out.Set(spine.KeyAnimations, c.convertAnimations(anims, res))
		} else {
			out.Set(spine.KeyAnimations, spine.Clone(doc.Value(spine.KeyAnimations)))
		}
	}
	for _, k := range doc.Keys() {
		if !out.Has(k) {
			out.Set(k, spine.Clone(doc.Value(k)))
		}
	}
	return out
}

func (c *spineUpgrade) convertSkeleton(doc *spine.Object, res *Result) *spine.Object {
	old := doc.Object(spine.KeySkeleton)
	var x, y, w, h interface{}
	if res.State == NeedsConversion {
		x, y = valueOr(old, spine.KeyX, spine.Number(0)), valueOr(old, spine.KeyY, spine.Number(0))
		w, h = old.Value(spine.KeyWidth), old.Value(spine.KeyHeight)
		res.Viewport = ViewportOriginal
	} else if r, ok := EstimateBounds(doc.Value(spine.KeySkins)); ok {
		x, y = spine.Number(r.Min.X), spine.Number(r.Min.Y)
		w, h = spine.Number(r.Width()), spine.Number(r.Height())
		res.Viewport = ViewportEstimate
	} else {
		x, y, w, h = spine.Number(0), spine.Number(0), spine.Number(0), spine.Number(0)
		res.Viewport = ViewportZero
	}

	sk := spine.NewObject()
	sk.Set(spine.KeyHash, valueOr(old, spine.KeyHash, ""))
	sk.Set(spine.KeySpine, c.TargetVersion)
	sk.Set(spine.KeyX, x)
	sk.Set(spine.KeyY, y)
	sk.Set(spine.KeyWidth, w)
	sk.Set(spine.KeyHeight, h)
	sk.Set(spine.KeyImages, valueOr(old, spine.KeyImages, ""))
	sk.Set(spine.KeyAudio, valueOr(old, spine.KeyAudio, ""))
	for _, k := range old.Keys() {
		if !sk.Has(k) {
			sk.Set(k, spine.Clone(old.Value(k)))
		}
	}
	return sk
}

func valueOr(o *spine.Object, key string, def interface{}) interface{} {
	if v, ok := o.Get(key); ok {
		return spine.Clone(v)
	}
	return def
}

func (c *spineUpgrade) convertAnimations(anims *spine.Object, res *Result) *spine.Object {
	out := spine.NewObject()
	for _, name := range anims.Keys() {
		anim := anims.Object(name)
		if anim == nil {
			out.Set(name, spine.Clone(anims.Value(name)))
			continue
		}
		out.Set(name, c.convertAnimation(name, anim, res))
	}
	return out
}

func (c *spineUpgrade) convertAnimation(name string, anim *spine.Object, res *Result) *spine.Object {
	out := spine.NewObject()
	for _, key := range anim.Keys() {
		v := anim.Value(key)
		switch key {
		case "bones":
			if g := c.convertGroup(name+".bones", v, c.boneKinds, res); g.Len() > 0 {
				out.Set(key, g)
			}
		case "slots":
			if g := c.convertGroup(name+".slots", v, c.slotKinds, res); g.Len() > 0 {
				out.Set(key, g)
			}
		case "ik":
			if g := c.convertIK(name, v, res); g.Len() > 0 {
				out.Set(key, g)
			}
		case "ffd", "deform":
			if g := c.convertDeform(name, v, res); g.Len() > 0 {
				if prev := out.Object("deform"); prev != nil {
					prev.Merge(g)
				} else {
					out.Set("deform", g)
				}
			}
		case "draworder", "drawOrder":
			if tl, ok := c.convertDrawOrder(name, v, res); ok {
				out.Set("drawOrder", tl)
			}
		default:
			out.Set(key, spine.Clone(v))
		}
	}
	return out
}

// convertGroup converts {target: {property: [keyframes]}} sections.
func (c *spineUpgrade) convertGroup(path string, group interface{}, kinds map[string]PropertyKind, res *Result) *spine.Object {
	out := spine.NewObject()
	g, ok := group.(*spine.Object)
	if !ok {
		return out
	}
	for _, target := range g.Keys() {
		props := g.Object(target)
		if props == nil {
			res.warn(fmt.Errorf("%w: %s.%s", ErrUnsupportedTimeline, path, target))
			continue
		}
		conv := spine.NewObject()
		for _, prop := range props.Keys() {
			kind, known := kinds[prop]
			tl, isList := props.Value(prop).([]interface{})
			if !known || !isList {
				res.warn(fmt.Errorf("%w: %s.%s.%s", ErrUnsupportedTimeline, path, target, prop))
				continue
			}
			if !c.KeepDefaultTimelines && !HasMeaningfulChanges(tl, kind) {
				continue
			}
			if ct := c.canonicalize(path+"."+target+"."+prop, tl, kind, res); len(ct) > 0 {
				conv.Set(prop, ct)
			}
		}
		if conv.Len() > 0 {
			out.Set(target, conv)
		}
	}
	return out
}

func (c *spineUpgrade) convertIK(anim string, group interface{}, res *Result) *spine.Object {
	out := spine.NewObject()
	g, ok := group.(*spine.Object)
	if !ok {
		return out
	}
	for _, name := range g.Keys() {
		tl, ok := g.Value(name).([]interface{})
		if !ok {
			res.warn(fmt.Errorf("%w: %s.ik.%s", ErrUnsupportedTimeline, anim, name))
			continue
		}
		if ct := c.canonicalize(anim+".ik."+name, tl, IK, res); len(ct) > 0 {
			out.Set(name, ct)
		}
	}
	return out
}

// convertDeform converts {skin: {slot: {attachment: [keyframes]}}}.
func (c *spineUpgrade) convertDeform(anim string, group interface{}, res *Result) *spine.Object {
	out := spine.NewObject()
	skins, ok := group.(*spine.Object)
	if !ok {
		return out
	}
	for _, skin := range skins.Keys() {
		slots := skins.Object(skin)
		skinOut := spine.NewObject()
		for _, slot := range slots.Keys() {
			atts := slots.Object(slot)
			slotOut := spine.NewObject()
			for _, att := range atts.Keys() {
				path := anim + ".deform." + skin + "." + slot + "." + att
				tl, ok := atts.Value(att).([]interface{})
				if !ok {
					res.warn(fmt.Errorf("%w: %s", ErrUnsupportedTimeline, path))
					continue
				}
				if ct := c.canonicalize(path, tl, Deform, res); len(ct) > 0 {
					slotOut.Set(att, ct)
				}
			}
			if slotOut.Len() > 0 {
				skinOut.Set(slot, slotOut)
			}
		}
		if skinOut.Len() > 0 {
			out.Set(skin, skinOut)
		}
	}
	return out
}

func (c *spineUpgrade) convertDrawOrder(anim string, v interface{}, res *Result) ([]interface{}, bool) {
	tl, ok := v.([]interface{})
	if !ok {
		res.warn(fmt.Errorf("%w: %s.drawOrder", ErrUnsupportedTimeline, anim))
		return nil, false
	}
	if !HasMeaningfulChanges(tl, DrawOrder) {
		return nil, false
	}
	return c.canonicalize(anim+".drawOrder", tl, DrawOrder, res), true
}

func (c *spineUpgrade) canonicalize(path string, tl []interface{}, kind PropertyKind, res *Result) []interface{} {
	for _, e := range tl {
		if kf, ok := e.(*spine.Object); ok {
			if curve, ok := kf.Get("curve"); ok {
				if err := checkCurve(curve); err != nil {
					res.warn(fmt.Errorf("%s: %w", path, err))
				}
			}
		}
	}
	return Canonicalize(tl, kind)
}
