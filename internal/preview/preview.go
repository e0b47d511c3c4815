package preview

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"cloudgallery/internal/format"
	"cloudgallery/internal/types"
)

// NoteUnavailable is reported for categories that have no preview strategy.
const NoteUnavailable = "Предпросмотр недоступен"

// Result describes what was produced for a preview request. Exactly one of
// Path and Note is set. When Path is set the caller owns the file and must
// remove it once the preview is no longer needed.
type Result struct {
	Path string
	Note string
}

// Render materializes a preview for a fetched media payload in dir. Images
// are downscaled to fit maxDim on the longest side; video and audio are
// written out as-is for an external player; everything else has no preview.
func Render(media types.Media, data []byte, maxDim int, dir string) (Result, error) {
	switch format.Category(media.MimeType) {
	case types.CategoryImage:
		img, err := imaging.Decode(bytes.NewReader(data))
		if err != nil {
			return Result{}, fmt.Errorf("decode image %s: %w", media.Filename, err)
		}

		thumb := imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
		path := filepath.Join(dir, "preview-"+media.ID+".png")
		if err := imaging.Save(thumb, path); err != nil {
			return Result{}, fmt.Errorf("save preview for %s: %w", media.Filename, err)
		}
		return Result{Path: path}, nil

	case types.CategoryVideo, types.CategoryAudio:
		path := filepath.Join(dir, "preview-"+media.ID+filepath.Ext(media.Filename))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return Result{}, fmt.Errorf("save preview for %s: %w", media.Filename, err)
		}
		return Result{Path: path}, nil

	default:
		return Result{Note: NoteUnavailable}, nil
	}
}
