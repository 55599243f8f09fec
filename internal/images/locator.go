package images

import (
	"context"
	"encoding/csv"
	"fmt"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/adasafety/catops/internal/config"
	"github.com/adasafety/catops/internal/storage"
	"github.com/adasafety/catops/pkg/models"
)

// imageExts are the extensions probed and indexed, in preference order.
var imageExts = []string{"jpg", "jpeg", "png", "webp", "gif"}

// maxProbe bounds how many numbered siblings are probed in flat mode.
const maxProbe = 10

// trailingNumber pulls the sequence number out of filenames like
// "E01830_2.jpg" so siblings sort main-image-first.
var trailingNumber = regexp.MustCompile(`[_-](\d+)$`)

// Locator finds source images for a product in a vendor image drop.
type Locator struct {
	fs      storage.Filesystem
	profile *config.VendorProfile
	log     *logrus.Logger

	basePath string
	index    map[string][]string // key (uppercased) -> relative paths, tree/index modes
	imageMap map[string][]string // style (uppercased) -> filenames, sidecar CSV
}

// NewLocator creates a Locator over a vendor image drop.
func NewLocator(fs storage.Filesystem, profile *config.VendorProfile, log *logrus.Logger) *Locator {
	return &Locator{fs: fs, profile: profile, log: log}
}

// Prepare scans the image drop once for the conventions that need an index
// and loads the sidecar CSV map when the profile uses one.
func (l *Locator) Prepare(ctx context.Context, basePath string) error {
	l.basePath = basePath

	switch l.profile.Images {
	case config.ImagesTree:
		if err := l.buildTreeIndex(ctx); err != nil {
			return err
		}
	case config.ImagesIndex:
		if err := l.buildFlatIndex(ctx); err != nil {
			return err
		}
	}

	if l.profile.ImageMapCSV {
		if err := l.loadImageMap(ctx); err != nil {
			// The sidecar is optional; lookups fall back to the index.
			l.log.WithError(err).Warn("image map csv not loaded")
		}
	}
	return nil
}

// Locate returns the source images for a product, primary first. Explicit
// references from the sheet win; otherwise the vendor's directory
// convention is searched with the SKU, then the style. No match is not an
// error.
func (l *Locator) Locate(ctx context.Context, refs []string, sku, style, color string) ([]models.ImageCandidate, error) {
	if len(refs) > 0 {
		return l.fromRefs(ctx, refs)
	}

	if l.imageMap != nil {
		if files, ok := l.imageMap[strings.ToUpper(style)]; ok {
			return l.fromRefs(ctx, files)
		}
	}

	keys := lookupKeys(sku, style, color, l.profile.BrandPrefix)

	switch l.profile.Images {
	case config.ImagesTree, config.ImagesIndex:
		for _, key := range keys {
			if paths, ok := l.index[strings.ToUpper(key)]; ok {
				return candidates(paths), nil
			}
		}
		return nil, nil
	default:
		for _, key := range keys {
			found, err := l.probe(ctx, key)
			if err != nil {
				return nil, err
			}
			if len(found) > 0 {
				return candidates(found), nil
			}
		}
		return nil, nil
	}
}

// lookupKeys orders the identifiers tried against the drop: full SKU,
// prefix-stripped SKU, style plus color, bare style.
func lookupKeys(sku, style, color, prefix string) []string {
	var keys []string
	add := func(k string) {
		if k == "" {
			return
		}
		for _, seen := range keys {
			if strings.EqualFold(seen, k) {
				return
			}
		}
		keys = append(keys, k)
	}

	add(sku)
	if prefix != "" && strings.HasPrefix(strings.ToUpper(sku), strings.ToUpper(prefix)) {
		add(sku[len(prefix):])
	}
	if style != "" && color != "" {
		add(style + "_" + color)
		add(style + "-" + color)
	}
	add(style)
	return keys
}

func (l *Locator) fromRefs(ctx context.Context, refs []string) ([]models.ImageCandidate, error) {
	var found []string
	for _, ref := range refs {
		p := path.Join(l.basePath, strings.TrimSpace(ref))
		ok, err := l.fs.Exists(ctx, p)
		if err != nil {
			return nil, err
		}
		if ok {
			found = append(found, p)
		}
	}
	return candidates(found), nil
}

// probe checks the flat-layout name templates for one key: the bare name,
// then numbered siblings with underscore and dash separators.
func (l *Locator) probe(ctx context.Context, key string) ([]string, error) {
	var found []string

	tryPath := func(name string) (bool, error) {
		for _, ext := range imageExts {
			p := path.Join(l.basePath, name+"."+ext)
			ok, err := l.fs.Exists(ctx, p)
			if err != nil {
				return false, err
			}
			if ok {
				found = append(found, p)
				return true, nil
			}
		}
		return false, nil
	}

	if _, err := tryPath(key); err != nil {
		return nil, err
	}
	for n := 2; n <= maxProbe; n++ {
		hit, err := tryPath(fmt.Sprintf("%s_%d", key, n))
		if err != nil {
			return nil, err
		}
		if !hit {
			hit, err = tryPath(fmt.Sprintf("%s-%d", key, n))
			if err != nil {
				return nil, err
			}
		}
		if !hit {
			break
		}
	}
	return found, nil
}

// buildFlatIndex indexes a one-directory drop by filename stem and by the
// prefix before the first dash, underscore or space, so partial style codes
// still match.
func (l *Locator) buildFlatIndex(ctx context.Context) error {
	entries, err := l.fs.List(ctx, l.basePath)
	if err != nil {
		return fmt.Errorf("failed to scan image directory: %w", err)
	}

	l.index = make(map[string][]string)
	for _, e := range entries {
		if e.IsDir || !isImage(e.Name) {
			continue
		}
		full := path.Join(l.basePath, e.Name)
		stem := strings.TrimSuffix(e.Name, path.Ext(e.Name))

		// Prefix keys per separator so dashed style codes still match a
		// "34-874 glove.jpg" through its space-delimited prefix.
		keys := map[string]bool{strings.ToUpper(stem): true}
		for _, sep := range []string{"-", "_", " "} {
			if idx := strings.Index(stem, sep); idx > 0 {
				keys[strings.ToUpper(stem[:idx])] = true
			}
		}
		// Numbered siblings index under the unnumbered stem too.
		if base := trailingNumber.ReplaceAllString(stem, ""); base != stem {
			keys[strings.ToUpper(base)] = true
		}
		for k := range keys {
			l.index[k] = append(l.index[k], full)
		}
	}

	for k := range l.index {
		sortByNumber(l.index[k])
	}
	return nil
}

// buildTreeIndex walks a nested drop where each part number is a directory
// holding a JPEG (or JPG) leaf folder with the actual files.
func (l *Locator) buildTreeIndex(ctx context.Context) error {
	l.index = make(map[string][]string)

	err := l.fs.Walk(ctx, l.basePath, func(p string, entry storage.Entry) error {
		if entry.IsDir || !isImage(entry.Name) {
			return nil
		}
		dir := path.Dir(p)
		leaf := path.Base(dir)
		if !strings.EqualFold(leaf, "JPEG") && !strings.EqualFold(leaf, "JPG") {
			return nil
		}
		partNumber := strings.ToUpper(path.Base(path.Dir(dir)))
		l.index[partNumber] = append(l.index[partNumber], p)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to scan image tree: %w", err)
	}

	for k := range l.index {
		sortByNumber(l.index[k])
	}
	return nil
}

// loadImageMap reads the sidecar CSV that maps style codes to image
// filenames. The header row is located by its STYLE column; the file may
// carry preamble rows above it.
func (l *Locator) loadImageMap(ctx context.Context) error {
	data, err := l.fs.ReadFile(ctx, path.Join(l.basePath, "images.csv"))
	if err != nil {
		return err
	}

	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to parse image map: %w", err)
	}

	styleIdx, imageIdx, headerRow := -1, -1, -1
	for i, rec := range records {
		for j, cell := range rec {
			switch strings.ToUpper(strings.TrimSpace(cell)) {
			case "STYLE":
				styleIdx = j
			case "IMAGE":
				imageIdx = j
			}
		}
		if styleIdx >= 0 && imageIdx >= 0 {
			headerRow = i
			break
		}
		styleIdx, imageIdx = -1, -1
	}
	if headerRow < 0 {
		return fmt.Errorf("image map has no STYLE and Image columns")
	}

	l.imageMap = make(map[string][]string)
	for _, rec := range records[headerRow+1:] {
		if styleIdx >= len(rec) || imageIdx >= len(rec) {
			continue
		}
		style := strings.ToUpper(strings.TrimSpace(rec[styleIdx]))
		image := strings.TrimSpace(rec[imageIdx])
		if style == "" || image == "" {
			continue
		}
		l.imageMap[style] = append(l.imageMap[style], image)
	}
	return nil
}

func isImage(name string) bool {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(name)), ".")
	for _, e := range imageExts {
		if ext == e {
			return true
		}
	}
	return false
}

// sortByNumber orders sibling files main-image-first: unnumbered before
// numbered, then by sequence number.
func sortByNumber(paths []string) {
	num := func(p string) int {
		stem := strings.TrimSuffix(path.Base(p), path.Ext(p))
		if m := trailingNumber.FindStringSubmatch(stem); m != nil {
			n, _ := strconv.Atoi(m[1])
			return n
		}
		return 0
	}
	sort.SliceStable(paths, func(i, j int) bool { return num(paths[i]) < num(paths[j]) })
}

func candidates(paths []string) []models.ImageCandidate {
	out := make([]models.ImageCandidate, 0, len(paths))
	for i, p := range paths {
		out = append(out, models.ImageCandidate{Path: p, Position: i})
	}
	return out
}
