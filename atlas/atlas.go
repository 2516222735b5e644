package atlas

// http://esotericsoftware.com/spine-atlas-format

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var ErrUnresolvedImageReference = errors.New("unresolved image reference")

var DefaultImageExtensions = []string{".png", ".jpg", ".jpeg", ".webp", ".bmp", ".tga", ".psd"}

var sizeDirective = regexp.MustCompile(`(?m)^size:\s*\d+\s*,\s*\d+`)

// DimensionReader resolves an image referenced by an atlas to its pixel size.
type DimensionReader interface {
	Dimensions(name string) (w, h int, err error)
}

type SizeInjector struct {
	ImageExtensions []string // Default: DefaultImageExtensions
}

// InjectSize adds the missing size line with the default image extensions.
func InjectSize(text string, r DimensionReader) (string, bool, error) {
	return (&SizeInjector{}).Inject(text, r)
}

// HasSize reports whether the atlas already declares a page size. Region
// size lines are indented and do not count.
func HasSize(text string) bool {
	return sizeDirective.MatchString(text)
}

// Inject inserts "size: W,H" after the first page image line. It returns
// the text unchanged and false when a size line exists, no image line is
// found, or the image can not be resolved (the latter with an error).
func (s *SizeInjector) Inject(text string, r DimensionReader) (string, bool, error) {
	if HasSize(text) {
		return text, false, nil
	}
	pos := 0
	for pos < len(text) {
		end := strings.IndexByte(text[pos:], '\n')
		lineEnd, next := len(text), len(text)
		if end >= 0 {
			lineEnd, next = pos+end, pos+end+1
		}
		line := strings.TrimSpace(text[pos:lineEnd])
		if s.isImageLine(line) {
			w, h, err := r.Dimensions(line)
			if err != nil {
				return text, false, fmt.Errorf("%w: %s: %v", ErrUnresolvedImageReference, line, err)
			}
			eol := "\n"
			if strings.HasSuffix(text[pos:lineEnd], "\r") {
				eol = "\r\n"
			}
			size := fmt.Sprintf("size: %d,%d", w, h)
			if end < 0 {
				return text + eol + size, true, nil
			}
			return text[:next] + size + eol + text[next:], true, nil
		}
		pos = next
	}
	return text, false, nil
}

func (s *SizeInjector) isImageLine(line string) bool {
	if line == "" || strings.Contains(line, ":") {
		return false
	}
	exts := s.ImageExtensions
	if len(exts) == 0 {
		exts = DefaultImageExtensions
	}
	lower := strings.ToLower(line)
	for _, ext := range exts {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

var jsonReference = regexp.MustCompile(`\b(\w[\w.-]*)\.json\b`)

// RewriteReferences replaces "<name>.json" references for every name in
// renamed with the new file name.
func RewriteReferences(text string, renamed map[string]string) (string, bool) {
	if len(renamed) == 0 {
		return text, false
	}
	changed := false
	out := jsonReference.ReplaceAllStringFunc(text, func(ref string) string {
		if to, ok := renamed[strings.TrimSuffix(ref, ".json")]; ok && to != ref {
			changed = true
			return to
		}
		return ref
	})
	return out, changed
}
