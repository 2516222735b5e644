package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveTemplate(t *testing.T) {
	v38 := func(w string) Candidate {
		return Candidate{Name: "c" + w, Document: parseDoc(t, `{"skeleton":{"spine":"3.8.75","width":`+w+`,"height":1}}`)}
	}
	a, b := v38("1"), v38("2")
	legacy := Candidate{Name: "old", Document: parseDoc(t, `{"skeleton":{"spine":"2.1","width":9,"height":9}}`)}
	excluded := Candidate{Name: "hero-new", Document: parseDoc(t, `{"skeleton":{"spine":"3.8.75","width":7,"height":7}}`)}
	own := Candidate{Name: "hero_v38", Document: parseDoc(t, `{"skeleton":{"spine":"3.8.75","width":8,"height":8}}`)}
	p := TemplatePolicy{OutputSuffix: "_v38", Exclude: []string{"-new"}}

	tpl, ok := ResolveTemplate([]Candidate{legacy, excluded, own, a, b}, "", p)
	assert.True(t, ok)
	assert.Equal(t, `{"width":1,"height":1}`, toJSON(t, tpl))

	tpl, ok = ResolveTemplate([]Candidate{a, b}, "c2", p)
	assert.True(t, ok)
	assert.Equal(t, `{"width":2,"height":1}`, toJSON(t, tpl))

	// preferred but excluded falls back to the first eligible
	tpl, ok = ResolveTemplate([]Candidate{a, excluded}, "hero-new", p)
	assert.True(t, ok)
	assert.Equal(t, `{"width":1,"height":1}`, toJSON(t, tpl))

	_, ok = ResolveTemplate([]Candidate{legacy, excluded, own}, "old", p)
	assert.False(t, ok)
	_, ok = ResolveTemplate(nil, "", p)
	assert.False(t, ok)
}

func TestTemplateContextOverride(t *testing.T) {
	p := TemplatePolicy{TargetVersion: "3.8.75", OutputSuffix: "_v38"}
	tc := &TemplateContext{
		Candidates: []Candidate{{Name: "a.json", Document: parseDoc(t, `{"skeleton":{"spine":"3.8.75","width":1}}`)}},
		Override:   parseDoc(t, `{"skeleton":{"spine":"3.8.75","width":5}}`),
	}
	tpl, ok := tc.resolve(p)
	assert.True(t, ok)
	assert.Equal(t, `{"width":5}`, toJSON(t, tpl))

	// an override at another version is ignored
	tc.Override = parseDoc(t, `{"skeleton":{"spine":"2.1","width":5}}`)
	tpl, ok = tc.resolve(p)
	assert.True(t, ok)
	assert.Equal(t, `{"width":1}`, toJSON(t, tpl))

	var none *TemplateContext
	_, ok = none.resolve(p)
	assert.False(t, ok)
}
