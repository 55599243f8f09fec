package images

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
)

func encodeTestImage(t *testing.T, width, height int, format imaging.Format) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 64, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestProcessWritesAllRenditions(t *testing.T) {
	source := newFakeFS()
	source.files["drop/boot.jpg"] = encodeTestImage(t, 1600, 1000, imaging.JPEG)
	dest := newFakeFS()

	p := NewProcessor(source, dest, quietLogger())
	set, err := p.Process(context.Background(), "drop/boot.jpg", "products/carhartt/work-boot")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.Reused {
		t.Fatal("first pass must not be a reuse")
	}
	if len(set.Hash) != hashLen {
		t.Fatalf("hash stem = %q", set.Hash)
	}
	if len(set.Renditions) != 4 {
		t.Fatalf("expected 4 renditions, got %d", len(set.Renditions))
	}

	byName := make(map[string]int)
	for i, r := range set.Renditions {
		byName[r.Size] = i
	}

	original := set.Renditions[byName["original"]]
	if original.Width != 1600 || original.Height != 1000 {
		t.Fatalf("original dimensions = %dx%d", original.Width, original.Height)
	}
	if got := dest.files[original.Path]; !bytes.Equal(got, source.files["drop/boot.jpg"]) {
		t.Fatal("original must be stored byte for byte")
	}

	large := set.Renditions[byName["large"]]
	if large.Width != 1200 {
		t.Fatalf("large width = %d", large.Width)
	}
	if large.Height != 750 {
		t.Fatalf("large must keep aspect ratio, height = %d", large.Height)
	}

	thumb := set.Renditions[byName["thumb"]]
	if thumb.Width != 200 || thumb.Height != 200 {
		t.Fatalf("thumb = %dx%d, want square crop", thumb.Width, thumb.Height)
	}

	for _, r := range set.Renditions {
		if len(dest.files[r.Path]) == 0 {
			t.Fatalf("rendition %s not written to %s", r.Size, r.Path)
		}
	}
}

func TestProcessNeverUpscales(t *testing.T) {
	source := newFakeFS()
	source.files["drop/small.jpg"] = encodeTestImage(t, 400, 300, imaging.JPEG)
	dest := newFakeFS()

	p := NewProcessor(source, dest, quietLogger())
	set, err := p.Process(context.Background(), "drop/small.jpg", "products/x/y")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, r := range set.Renditions {
		if r.Size == "large" || r.Size == "medium" {
			if r.Width != 400 {
				t.Fatalf("%s upscaled to %d", r.Size, r.Width)
			}
		}
	}
}

func TestProcessDeduplicatesByContentHash(t *testing.T) {
	source := newFakeFS()
	data := encodeTestImage(t, 800, 600, imaging.JPEG)
	source.files["drop/a.jpg"] = data
	source.files["other/copy.jpg"] = data
	dest := newFakeFS()

	p := NewProcessor(source, dest, quietLogger())
	first, err := p.Process(context.Background(), "drop/a.jpg", "products/x/y")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	written := len(dest.files)

	second, err := p.Process(context.Background(), "other/copy.jpg", "products/x/y")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !second.Reused {
		t.Fatal("identical content must be reused")
	}
	if second.Hash != first.Hash {
		t.Fatalf("hashes differ: %s vs %s", first.Hash, second.Hash)
	}
	if len(dest.files) != written {
		t.Fatal("reuse must not rewrite renditions")
	}
	if len(second.Renditions) != len(first.Renditions) {
		t.Fatal("reused set must still carry every rendition path")
	}
}

func TestProcessDerivedRenditionsAreJPEG(t *testing.T) {
	source := newFakeFS()
	source.files["drop/logo.png"] = encodeTestImage(t, 640, 480, imaging.PNG)
	dest := newFakeFS()

	p := NewProcessor(source, dest, quietLogger())
	set, err := p.Process(context.Background(), "drop/logo.png", "products/x/y")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, r := range set.Renditions {
		if r.Size == "original" {
			if !strings.HasSuffix(r.Path, ".png") {
				t.Fatalf("original keeps source extension, got %s", r.Path)
			}
			continue
		}
		if !strings.HasSuffix(r.Path, ".jpg") {
			t.Fatalf("derived rendition %s must be jpg, got %s", r.Size, r.Path)
		}
	}
}

func TestDestDir(t *testing.T) {
	if got := DestDir("carhartt", "work-boot"); got != "products/carhartt/work-boot" {
		t.Fatalf("DestDir = %q", got)
	}
	if got := DestDir("", "work-boot"); got != "products/unbranded/work-boot" {
		t.Fatalf("DestDir without brand = %q", got)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{3 << 20, "3.0 MB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.in); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
