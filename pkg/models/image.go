package models

// ImageCandidate is a source image found on disk for a product or variant.
type ImageCandidate struct {
	Path     string `json:"path"`
	Position int    `json:"position"`
}

// Rendition is one stored size of a processed image.
type Rendition struct {
	Size   string `json:"size"` // original, large, medium, thumb
	Path   string `json:"path"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Bytes  int64  `json:"bytes"`
}

// RenditionSet is the full output of processing one source image. Hash is the
// truncated content digest the rendition filenames are derived from.
type RenditionSet struct {
	Hash       string      `json:"hash"`
	SourcePath string      `json:"source_path"`
	Renditions []Rendition `json:"renditions"`
	Reused     bool        `json:"reused"`
}

// Primary returns the rendition used as the catalog image URL (the large
// size, falling back to the original).
func (s *RenditionSet) Primary() *Rendition {
	var original *Rendition
	for i := range s.Renditions {
		switch s.Renditions[i].Size {
		case "large":
			return &s.Renditions[i]
		case "original":
			original = &s.Renditions[i]
		}
	}
	return original
}
