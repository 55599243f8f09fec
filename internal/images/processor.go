package images

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"image"
	"path"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"

	"github.com/adasafety/catops/internal/storage"
	"github.com/adasafety/catops/pkg/models"
)

// renditionSpec describes one stored size of a processed image.
type renditionSpec struct {
	name    string
	width   int
	height  int // non-zero means center-crop cover
	quality int
}

// Rendition table: original is stored untouched, the rest re-encode as JPEG
// at decreasing quality.
var renditionSpecs = []renditionSpec{
	{name: "original", quality: 90},
	{name: "large", width: 1200, quality: 85},
	{name: "medium", width: 600, quality: 80},
	{name: "thumb", width: 200, height: 200, quality: 75},
}

// hashLen is how many hex digits of the content digest make the filename
// stem.
const hashLen = 12

// Processor turns source images into stored rendition sets. Source and
// destination filesystems are independent so a local drop can feed object
// storage.
type Processor struct {
	source storage.Filesystem
	dest   storage.Filesystem
	log    *logrus.Logger
}

// NewProcessor creates a Processor reading from source and writing to dest.
func NewProcessor(source, dest storage.Filesystem, log *logrus.Logger) *Processor {
	return &Processor{source: source, dest: dest, log: log}
}

// DestDir returns the storage directory for a product's renditions.
func DestDir(brandSlug, productSlug string) string {
	if brandSlug == "" {
		brandSlug = "unbranded"
	}
	return path.Join("products", brandSlug, productSlug)
}

// Process reads one source image and writes its rendition set under
// destDir. When the original rendition for the same content hash already
// exists the set is returned with Reused set and nothing is rewritten.
func (p *Processor) Process(ctx context.Context, srcPath, destDir string) (*models.RenditionSet, error) {
	data, err := p.source.ReadFile(ctx, srcPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read source image %s: %w", srcPath, err)
	}

	sum := md5.Sum(data)
	hash := hex.EncodeToString(sum[:])[:hashLen]
	ext := strings.ToLower(path.Ext(srcPath))
	if ext == "" {
		ext = ".jpg"
	}

	set := &models.RenditionSet{Hash: hash, SourcePath: srcPath}

	originalPath := path.Join(destDir, fmt.Sprintf("original-%s%s", hash, ext))
	exists, err := p.dest.Exists(ctx, originalPath)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing rendition: %w", err)
	}
	if exists {
		set.Reused = true
		for _, spec := range renditionSpecs {
			set.Renditions = append(set.Renditions, models.Rendition{
				Size: spec.name,
				Path: renditionPath(destDir, spec, hash, ext),
			})
		}
		return set, nil
	}

	src, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", srcPath, err)
	}

	for _, spec := range renditionSpecs {
		rendition, err := p.writeRendition(ctx, src, data, destDir, spec, hash, ext)
		if err != nil {
			return nil, err
		}
		set.Renditions = append(set.Renditions, rendition)
	}

	p.log.WithFields(logrus.Fields{
		"source": srcPath,
		"hash":   hash,
	}).Debug("processed image")
	return set, nil
}

func (p *Processor) writeRendition(ctx context.Context, src image.Image, raw []byte, destDir string, spec renditionSpec, hash, ext string) (models.Rendition, error) {
	destPath := renditionPath(destDir, spec, hash, ext)
	bounds := src.Bounds()

	if spec.name == "original" {
		// Stored as-is; the content hash already identifies it.
		if err := p.dest.WriteFile(ctx, destPath, raw); err != nil {
			return models.Rendition{}, fmt.Errorf("failed to write %s: %w", destPath, err)
		}
		return models.Rendition{
			Size:   spec.name,
			Path:   destPath,
			Width:  bounds.Dx(),
			Height: bounds.Dy(),
			Bytes:  int64(len(raw)),
		}, nil
	}

	var resized image.Image
	switch {
	case spec.height > 0:
		resized = imaging.Fill(src, spec.width, spec.height, imaging.Center, imaging.Lanczos)
	case bounds.Dx() > spec.width:
		resized = imaging.Resize(src, spec.width, 0, imaging.Lanczos)
	default:
		// Never upscale small sources.
		resized = src
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(spec.quality)); err != nil {
		return models.Rendition{}, fmt.Errorf("failed to encode %s: %w", destPath, err)
	}
	if err := p.dest.WriteFile(ctx, destPath, buf.Bytes()); err != nil {
		return models.Rendition{}, fmt.Errorf("failed to write %s: %w", destPath, err)
	}

	rb := resized.Bounds()
	return models.Rendition{
		Size:   spec.name,
		Path:   destPath,
		Width:  rb.Dx(),
		Height: rb.Dy(),
		Bytes:  int64(buf.Len()),
	}, nil
}

// renditionPath builds "{dir}/{size}-{hash}.{ext}"; derived sizes are
// always JPEG regardless of the source format.
func renditionPath(destDir string, spec renditionSpec, hash, ext string) string {
	if spec.name != "original" {
		ext = ".jpg"
	}
	return path.Join(destDir, fmt.Sprintf("%s-%s%s", spec.name, hash, ext))
}

// FormatBytes renders a byte count for report output.
func FormatBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
