package geom

// Rect is an axis-aligned rectangle.
type Rect struct {
	Min Vector2
	Max Vector2
}

// NewRectFromCenter returns the w*h rectangle centered at c.
func NewRectFromCenter(c *Vector2, w, h Element) *Rect {
	half := &Vector2{X: w / 2, Y: h / 2}
	return &Rect{Min: *c.Sub(half), Max: *c.Add(half)}
}

func (r *Rect) Width() Element {
	return r.Max.X - r.Min.X
}

func (r *Rect) Height() Element {
	return r.Max.Y - r.Min.Y
}

func (r *Rect) Union(r2 *Rect) *Rect {
	return &Rect{Min: *r.Min.Min(&r2.Min), Max: *r.Max.Max(&r2.Max)}
}

// Bounds accumulates rectangles. The zero value is empty.
type Bounds struct {
	rect  Rect
	valid bool
}

func (b *Bounds) Add(r *Rect) {
	if !b.valid {
		b.rect = *r
		b.valid = true
		return
	}
	b.rect = *b.rect.Union(r)
}

// Rect returns the union of all added rectangles, or false if none were added.
func (b *Bounds) Rect() (Rect, bool) {
	return b.rect, b.valid
}
