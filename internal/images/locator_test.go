package images

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/adasafety/catops/internal/config"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestLocateFlatProbesNumberedSiblings(t *testing.T) {
	fs := newFakeFS(
		"drop/E01830.jpg",
		"drop/E01830_2.jpg",
		"drop/E01830_3.png",
		"drop/OTHER.jpg",
	)
	l := NewLocator(fs, &config.VendorProfile{Images: config.ImagesFlat}, quietLogger())
	if err := l.Prepare(context.Background(), "drop"); err != nil {
		t.Fatalf("prepare: %v", err)
	}

	found, err := l.Locate(context.Background(), nil, "E01830", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(found) != 3 {
		t.Fatalf("expected 3 images, got %d: %v", len(found), found)
	}
	if found[0].Path != "drop/E01830.jpg" || found[0].Position != 0 {
		t.Fatalf("main image must come first: %+v", found[0])
	}
}

func TestLocateFlatFallsBackToStyle(t *testing.T) {
	fs := newFakeFS("drop/W02195.jpg")
	l := NewLocator(fs, &config.VendorProfile{Images: config.ImagesFlat}, quietLogger())
	if err := l.Prepare(context.Background(), "drop"); err != nil {
		t.Fatalf("prepare: %v", err)
	}

	found, err := l.Locate(context.Background(), nil, "W02195-XL", "W02195", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(found) != 1 || found[0].Path != "drop/W02195.jpg" {
		t.Fatalf("style fallback failed: %v", found)
	}
}

func TestLocateIndexMatchesFilenamePrefix(t *testing.T) {
	fs := newFakeFS(
		"drop/34-874 glove.jpg",
		"drop/34-874 glove_2.jpg",
		"drop/99-999.jpg",
	)
	l := NewLocator(fs, &config.VendorProfile{Images: config.ImagesIndex}, quietLogger())
	if err := l.Prepare(context.Background(), "drop"); err != nil {
		t.Fatalf("prepare: %v", err)
	}

	found, err := l.Locate(context.Background(), nil, "34-874", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("expected 2 images, got %v", found)
	}
	if found[0].Path != "drop/34-874 glove.jpg" {
		t.Fatalf("unnumbered image must sort first: %v", found)
	}
}

func TestLocateTreeKeysOnPartNumberDir(t *testing.T) {
	fs := newFakeFS(
		"drop/Footwear/CMW6095/CMW6095-7M/JPEG/CMW6095-7M 1.jpg",
		"drop/Footwear/CMW6095/CMW6095-7M/JPEG/CMW6095-7M 2.jpg",
		"drop/Footwear/CMW6095/CMW6095-7M/thumbs.db",
		"drop/Footwear/CMW6095/notes.txt",
	)
	l := NewLocator(fs, &config.VendorProfile{Images: config.ImagesTree}, quietLogger())
	if err := l.Prepare(context.Background(), "drop"); err != nil {
		t.Fatalf("prepare: %v", err)
	}

	found, err := l.Locate(context.Background(), nil, "CMW6095-7M", "CMW6095", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("expected 2 images, got %v", found)
	}
}

func TestLocateExplicitRefsWin(t *testing.T) {
	fs := newFakeFS(
		"drop/custom-shot.jpg",
		"drop/A100.jpg",
	)
	l := NewLocator(fs, &config.VendorProfile{Images: config.ImagesFlat}, quietLogger())
	if err := l.Prepare(context.Background(), "drop"); err != nil {
		t.Fatalf("prepare: %v", err)
	}

	found, err := l.Locate(context.Background(), []string{"custom-shot.jpg", "missing.jpg"}, "A100", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(found) != 1 || found[0].Path != "drop/custom-shot.jpg" {
		t.Fatalf("refs should win and missing refs drop out: %v", found)
	}
}

func TestLocateUsesImageMapCSV(t *testing.T) {
	fs := newFakeFS("drop/glove-front.jpg")
	fs.files["drop/images.csv"] = []byte(
		"PIP image index\n" +
			"STYLE,Image\n" +
			"34-874,glove-front.jpg\n",
	)
	profile := &config.VendorProfile{Images: config.ImagesFlat, ImageMapCSV: true}
	l := NewLocator(fs, profile, quietLogger())
	if err := l.Prepare(context.Background(), "drop"); err != nil {
		t.Fatalf("prepare: %v", err)
	}

	found, err := l.Locate(context.Background(), nil, "34-874-XL", "34-874", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(found) != 1 || found[0].Path != "drop/glove-front.jpg" {
		t.Fatalf("image map lookup failed: %v", found)
	}
}

func TestLocateMissingImageMapIsNotFatal(t *testing.T) {
	fs := newFakeFS("drop/34-874.jpg")
	profile := &config.VendorProfile{Images: config.ImagesFlat, ImageMapCSV: true}
	l := NewLocator(fs, profile, quietLogger())

	if err := l.Prepare(context.Background(), "drop"); err != nil {
		t.Fatalf("missing sidecar must not fail prepare: %v", err)
	}

	found, err := l.Locate(context.Background(), nil, "34-874", "", "")
	if err != nil || len(found) != 1 {
		t.Fatalf("probe fallback failed: %v, %v", found, err)
	}
}

func TestLocateNoMatchIsNotError(t *testing.T) {
	fs := newFakeFS()
	l := NewLocator(fs, &config.VendorProfile{Images: config.ImagesFlat}, quietLogger())
	if err := l.Prepare(context.Background(), "drop"); err != nil {
		t.Fatalf("prepare: %v", err)
	}

	found, err := l.Locate(context.Background(), nil, "NOPE", "", "")
	if err != nil {
		t.Fatalf("no match must not error: %v", err)
	}
	if found != nil {
		t.Fatalf("expected nil, got %v", found)
	}
}

func TestLookupKeys(t *testing.T) {
	keys := lookupKeys("CHT-CMW6095-7M", "CMW6095", "BK", "CHT-")
	want := []string{"CHT-CMW6095-7M", "CMW6095-7M", "CMW6095_BK", "CMW6095-BK", "CMW6095"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v", keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}
