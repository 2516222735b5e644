package batch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/binzume/spineconv/atlas"
	"github.com/binzume/spineconv/config"
	"github.com/binzume/spineconv/converter"
	"github.com/binzume/spineconv/spine"
	"github.com/gofrs/flock"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const LockFileName = ".spineconv.lock"

var ErrLocked = errors.New("another conversion is running on this tree")

type documentConverter interface {
	Convert(doc *spine.Object, tc *converter.TemplateContext) (*converter.Result, error)
}

// Summary counts what a run did.
type Summary struct {
	Converted      int // legacy documents written in the target format
	Copied         int // documents already in the target format
	Unchanged      int // outputs identical to the existing file, not rewritten
	Skipped        int // JSON files that are not skeletons
	Failed         int
	AtlasPatched   int
	AtlasUnchanged int
	AtlasFailed    int
	Warnings       int
	BytesWritten   int64
}

type tally struct {
	mu sync.Mutex
	s  Summary
}

func (t *tally) add(f func(s *Summary)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	f(&t.s)
}

// Runner converts every skeleton under a directory tree. Directories are
// processed concurrently, the files of one directory sequentially.
type Runner struct {
	cfg      *config.Config
	logger   *zap.Logger
	conv     documentConverter
	injector *atlas.SizeInjector

	// Template is an explicit reference document preferred over siblings.
	Template string
	template *spine.Object
}

func NewRunner(cfg *config.Config, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		cfg:    cfg,
		logger: logger,
		conv: converter.NewSpineUpgradeConverter(&converter.SpineUpgradeOption{
			TargetVersion:        cfg.TargetVersion,
			KeepDefaultTimelines: !cfg.ElideDefaultTimelines,
			OutputSuffix:         cfg.OutputSuffix,
			Exclude:              cfg.Exclude,
		}),
		injector: &atlas.SizeInjector{ImageExtensions: cfg.ImageExtensions},
	}
}

// Run converts path, which is either a directory tree or a single document.
func (r *Runner) Run(ctx context.Context, path string) (Summary, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Summary{}, err
	}
	if err := r.loadTemplate(); err != nil {
		return Summary{}, err
	}

	root, only := path, ""
	if !info.IsDir() {
		root, only = filepath.Dir(path), filepath.Base(path)
	}
	lock := flock.New(filepath.Join(root, LockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return Summary{}, fmt.Errorf("lock %s: %w", root, err)
	}
	if !locked {
		return Summary{}, fmt.Errorf("%w: %s", ErrLocked, root)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			r.logger.Warn("failed to release lock", zap.Error(err))
		}
		os.Remove(lock.Path())
	}()

	t := &tally{}
	if only != "" {
		r.processDir(root, only, t)
		return t.s, nil
	}

	dirs, err := collectDirs(root)
	if err != nil {
		return Summary{}, err
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers())
	for _, dir := range dirs {
		dir := dir
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r.processDir(dir, "", t)
			return nil
		})
	}
	err = g.Wait()
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.s, err
}

func (r *Runner) workers() int {
	if r.cfg.Workers > 0 {
		return r.cfg.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (r *Runner) loadTemplate() error {
	if r.Template == "" || r.template != nil {
		return nil
	}
	doc, err := ReadDocument(r.Template)
	if err != nil {
		return fmt.Errorf("template: %w", err)
	}
	if v := spine.SkeletonVersion(doc); v != r.cfg.TargetVersion {
		return fmt.Errorf("template %s is version %q, want %q", r.Template, v, r.cfg.TargetVersion)
	}
	r.template = doc
	return nil
}

// collectDirs returns root and all non-hidden directories below it.
func collectDirs(root string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		dirs = append(dirs, path)
		return nil
	})
	return dirs, err
}

// IsOutput reports whether name is a file written by a previous run.
func (r *Runner) IsOutput(name string) bool {
	return strings.Contains(stem(name), r.cfg.OutputSuffix)
}

func (r *Runner) excluded(name string) bool {
	for _, e := range r.cfg.Exclude {
		if e != "" && strings.Contains(name, e) {
			return true
		}
	}
	return false
}

func (r *Runner) outputName(name string) string {
	return stem(name) + r.cfg.OutputSuffix + filepath.Ext(name)
}

// processDir converts the documents of dir, or only the one named only, and
// then patches the atlases. Errors are logged and counted, never returned.
func (r *Runner) processDir(dir, only string, t *tally) {
	log := r.logger.With(zap.String("dir", dir))
	names, err := ListDocuments(dir)
	if err != nil {
		log.Error("failed to list documents", zap.Error(err))
		t.add(func(s *Summary) { s.Failed++ })
		return
	}

	docs := make(map[string]*spine.Object, len(names))
	parseErrs := map[string]error{}
	tc := &converter.TemplateContext{
		PreferredName: filepath.Base(dir) + DocumentExt,
		Override:      r.template,
	}
	for _, name := range names {
		doc, err := ReadDocument(filepath.Join(dir, name))
		if err != nil {
			parseErrs[name] = err
			continue
		}
		docs[name] = doc
		tc.Candidates = append(tc.Candidates, converter.Candidate{Name: name, Document: doc})
	}

	renamed := map[string]string{}
	for _, name := range names {
		if only != "" && name != only {
			continue
		}
		if r.IsOutput(name) || r.excluded(name) {
			log.Debug("skip", zap.String("file", name))
			continue
		}
		if out, ok := r.convertDocument(log, dir, name, docs[name], parseErrs[name], tc, t); ok {
			renamed[stem(name)] = out
		}
	}

	if !r.cfg.InjectAtlasSize && !r.cfg.RewriteAtlasRefs {
		return
	}
	atlases, err := ListAtlases(dir)
	if err != nil {
		log.Error("failed to list atlases", zap.Error(err))
		t.add(func(s *Summary) { s.AtlasFailed++ })
		return
	}
	images := atlas.NewImageDir(dir)
	for _, name := range atlases {
		if r.IsOutput(name) || (only != "" && stem(name) != stem(only)) {
			continue
		}
		r.patchAtlas(log, dir, name, renamed, images, t)
	}
}

func (r *Runner) convertDocument(log *zap.Logger, dir, name string, doc *spine.Object, parseErr error,
	tc *converter.TemplateContext, t *tally) (string, bool) {
	log = log.With(zap.String("file", name))
	if parseErr != nil {
		log.Error("failed to read document", zap.Error(parseErr))
		t.add(func(s *Summary) { s.Failed++ })
		return "", false
	}
	if !spine.IsRig(doc) {
		log.Debug("not a skeleton document")
		t.add(func(s *Summary) { s.Skipped++ })
		return "", false
	}

	res, err := r.conv.Convert(doc, tc)
	if err != nil {
		log.Error("conversion failed", zap.Error(err))
		t.add(func(s *Summary) { s.Failed++ })
		return "", false
	}
	for _, w := range res.Warnings {
		log.Warn("conversion warning", zap.Error(w))
	}

	data, err := spine.Marshal(res.Document, r.cfg.Indent)
	if err != nil {
		log.Error("failed to encode document", zap.Error(err))
		t.add(func(s *Summary) { s.Failed++ })
		return "", false
	}
	out := r.outputName(name)
	written, err := WriteDocument(filepath.Join(dir, out), data)
	if err != nil {
		log.Error("failed to write document", zap.String("output", out), zap.Error(err))
		t.add(func(s *Summary) { s.Failed++ })
		return "", false
	}
	log.Info("converted",
		zap.String("output", out),
		zap.Stringer("state", res.State),
		zap.String("viewport", string(res.Viewport)),
		zap.Bool("written", written))
	t.add(func(s *Summary) {
		if res.State == converter.AlreadyTarget {
			s.Copied++
		} else {
			s.Converted++
		}
		if written {
			s.BytesWritten += int64(len(data))
		} else {
			s.Unchanged++
		}
		s.Warnings += len(res.Warnings)
	})
	return out, true
}

func (r *Runner) patchAtlas(log *zap.Logger, dir, name string, renamed map[string]string, images atlas.DimensionReader, t *tally) {
	log = log.With(zap.String("atlas", name))
	text, err := ReadText(filepath.Join(dir, name))
	if err != nil {
		log.Error("failed to read atlas", zap.Error(err))
		t.add(func(s *Summary) { s.AtlasFailed++ })
		return
	}

	changed := false
	if r.cfg.RewriteAtlasRefs {
		var c bool
		text, c = atlas.RewriteReferences(text, renamed)
		changed = changed || c
	}
	if r.cfg.InjectAtlasSize {
		patched, c, err := r.injector.Inject(text, images)
		if err != nil {
			log.Warn("atlas size not injected", zap.Error(err))
			t.add(func(s *Summary) { s.Warnings++ })
		}
		text, changed = patched, changed || c
	}
	if !changed {
		log.Debug("atlas unchanged")
		t.add(func(s *Summary) { s.AtlasUnchanged++ })
		return
	}

	out := r.outputName(name)
	written, err := WriteDocument(filepath.Join(dir, out), []byte(text))
	if err != nil {
		log.Error("failed to write atlas", zap.String("output", out), zap.Error(err))
		t.add(func(s *Summary) { s.AtlasFailed++ })
		return
	}
	log.Info("atlas patched", zap.String("output", out), zap.Bool("written", written))
	t.add(func(s *Summary) {
		s.AtlasPatched++
		if written {
			s.BytesWritten += int64(len(text))
		}
	})
}
