package converter

import (
	"strings"

	"github.com/binzume/spineconv/spine"
)

// Candidate is a sibling document that may serve as a skeleton template.
type Candidate struct {
	Name     string // file name
	Document *spine.Object
}

type TemplatePolicy struct {
	TargetVersion string
	OutputSuffix  string   // our own outputs are never templates
	Exclude       []string // name substrings
}

// TemplateContext is passed to Convert. A nil context disables template override.
type TemplateContext struct {
	Candidates    []Candidate
	PreferredName string
	// Override is used before any candidate when it is at the target version.
	Override *spine.Object
}

func (tc *TemplateContext) resolve(p TemplatePolicy) (*spine.Object, bool) {
	if tc == nil {
		return nil, false
	}
	if tc.Override != nil && spine.SkeletonVersion(tc.Override) == p.TargetVersion {
		return templateSkeleton(tc.Override), true
	}
	return ResolveTemplate(tc.Candidates, tc.PreferredName, p)
}

var templateFields = []string{
	spine.KeyHash, spine.KeyX, spine.KeyY, spine.KeyWidth, spine.KeyHeight, spine.KeyImages, spine.KeyAudio,
}

func (p *TemplatePolicy) excluded(name string) bool {
	if p.OutputSuffix != "" && strings.Contains(name, p.OutputSuffix) {
		return true
	}
	for _, e := range p.Exclude {
		if e != "" && strings.Contains(name, e) {
			return true
		}
	}
	return false
}

func (p *TemplatePolicy) eligible(c *Candidate) bool {
	return c.Document != nil && !p.excluded(c.Name) && spine.SkeletonVersion(c.Document) == p.TargetVersion
}

// ResolveTemplate picks the skeleton viewport of an eligible candidate.
// The candidate named preferredName wins, otherwise the first eligible one
// in candidate order.
func ResolveTemplate(candidates []Candidate, preferredName string, p TemplatePolicy) (*spine.Object, bool) {
	if p.TargetVersion == "" {
		p.TargetVersion = spine.Version38
	}
	if preferredName != "" {
		for i := range candidates {
			if candidates[i].Name == preferredName && p.eligible(&candidates[i]) {
				return templateSkeleton(candidates[i].Document), true
			}
		}
	}
	for i := range candidates {
		if p.eligible(&candidates[i]) {
			return templateSkeleton(candidates[i].Document), true
		}
	}
	return nil, false
}

func templateSkeleton(doc *spine.Object) *spine.Object {
	sk := doc.Object(spine.KeySkeleton)
	out := spine.NewObject()
	for _, k := range templateFields {
		if v, ok := sk.Get(k); ok {
			out.Set(k, spine.Clone(v))
		}
	}
	return out
}

func applyTemplate(doc, tpl *spine.Object, version string) {
	sk := doc.Object(spine.KeySkeleton)
	if sk == nil {
		sk = spine.NewObject()
		doc.Set(spine.KeySkeleton, sk)
	}
	sk.Merge(tpl)
	sk.Set(spine.KeySpine, version)
}
