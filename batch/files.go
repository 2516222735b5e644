package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/binzume/spineconv/spine"
	"github.com/zeebo/blake3"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	DocumentExt = ".json"
	AtlasExt    = ".atlas"
)

// ListDocuments returns the sorted names of the JSON files in dir.
func ListDocuments(dir string) ([]string, error) {
	return listFiles(dir, DocumentExt)
}

// ListAtlases returns the sorted names of the atlas files in dir.
func ListAtlases(dir string) ([]string, error) {
	return listFiles(dir, AtlasExt)
}

func listFiles(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.EqualFold(filepath.Ext(e.Name()), ext) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func ReadDocument(path string) (*spine.Object, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	doc, err := spine.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return doc, nil
}

// WriteDocument writes data to path unless the file already holds the same
// bytes. It reports whether the file was written.
func WriteDocument(path string, data []byte) (bool, error) {
	if old, err := os.ReadFile(path); err == nil && len(old) == len(data) {
		if blake3.Sum256(old) == blake3.Sum256(data) {
			return false, nil
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return false, err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return false, err
	}
	return true, nil
}

func stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// ReadText reads a text file as UTF-8, dropping a leading BOM.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	text, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), data)
	if err != nil {
		return "", err
	}
	return string(text), nil
}
