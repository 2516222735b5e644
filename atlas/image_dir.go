package atlas

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	btga "github.com/blezek/tga"
	ftga "github.com/ftrvxmtrx/tga"
	"github.com/oov/psd"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

// ImageDir reads image headers from a directory.
type ImageDir struct {
	Dir   string
	sizes map[string]*imageSize
}

type imageSize struct {
	w, h int
	err  error
}

func NewImageDir(dir string) *ImageDir {
	return &ImageDir{Dir: dir, sizes: map[string]*imageSize{}}
}

func (d *ImageDir) Dimensions(name string) (int, int, error) {
	if d.sizes == nil {
		d.sizes = map[string]*imageSize{}
	}
	if s, ok := d.sizes[name]; ok {
		return s.w, s.h, s.err
	}
	s := &imageSize{}
	s.w, s.h, s.err = readDimensions(filepath.Join(d.Dir, filepath.FromSlash(name)))
	d.sizes[name] = s
	return s.w, s.h, s.err
}

func readDimensions(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(path))
	cfg, err := decodeConfigByExtension(f, ext)
	if err == nil {
		return cfg.Width, cfg.Height, nil
	}
	if ext == ".tga" {
		// retry
		if _, serr := f.Seek(0, io.SeekStart); serr != nil {
			return 0, 0, serr
		}
		img, terr := btga.Decode(f)
		if terr != nil {
			return 0, 0, fmt.Errorf("%v (retry: %v)", err, terr)
		}
		b := img.Bounds()
		return b.Dx(), b.Dy(), nil
	}
	return 0, 0, err
}

// decodeConfigByExtension reads only the header where the format allows it.
func decodeConfigByExtension(r io.Reader, ext string) (image.Config, error) {
	switch ext {
	case ".png":
		return png.DecodeConfig(r)
	case ".jpg", ".jpeg":
		return jpeg.DecodeConfig(r)
	case ".gif":
		return gif.DecodeConfig(r)
	case ".bmp":
		return bmp.DecodeConfig(r)
	case ".webp":
		return webp.DecodeConfig(r)
	case ".tga":
		img, err := ftga.Decode(r)
		if err != nil {
			return image.Config{}, err
		}
		b := img.Bounds()
		return image.Config{ColorModel: img.ColorModel(), Width: b.Dx(), Height: b.Dy()}, nil
	case ".psd":
		cfg, _, err := psd.DecodeConfig(r)
		if err != nil {
			return image.Config{}, err
		}
		return image.Config{Width: cfg.Rect.Dx(), Height: cfg.Rect.Dy()}, nil
	}
	return image.Config{}, fmt.Errorf("unsupported image extension: %q", ext)
}
