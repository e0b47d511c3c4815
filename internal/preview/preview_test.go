package preview

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"
	"time"

	"github.com/disintegration/imaging"

	"cloudgallery/internal/types"
)

func testImagePNG(t *testing.T, width, height int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 100, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestRenderImageThumbnail(t *testing.T) {
	media := types.Media{
		ID:        "a1",
		Filename:  "big.png",
		MimeType:  "image/png",
		Size:      1024,
		CreatedAt: time.Now(),
	}
	data := testImagePNG(t, 800, 600)

	result, err := Render(media, data, 128, t.TempDir())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if result.Path == "" {
		t.Fatal("Expected a preview path for an image")
	}

	thumb, err := imaging.Open(result.Path)
	if err != nil {
		t.Fatalf("Failed to open generated thumbnail: %v", err)
	}
	bounds := thumb.Bounds()
	if bounds.Dx() > 128 || bounds.Dy() > 128 {
		t.Errorf("Thumbnail exceeds bound: %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestRenderCorruptImage(t *testing.T) {
	media := types.Media{ID: "a1", Filename: "bad.png", MimeType: "image/png"}

	if _, err := Render(media, []byte("not an image"), 128, t.TempDir()); err == nil {
		t.Fatal("Expected error for corrupt image data")
	}
}

func TestRenderAudioWritesPayload(t *testing.T) {
	media := types.Media{ID: "a2", Filename: "song.mp3", MimeType: "audio/mpeg"}
	payload := []byte("audio-bytes")

	result, err := Render(media, payload, 128, t.TempDir())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if result.Path == "" {
		t.Fatal("Expected a file path for audio")
	}

	data, err := os.ReadFile(result.Path)
	if err != nil {
		t.Fatalf("Failed to read preview file: %v", err)
	}
	if !bytes.Equal(data, payload) {
		t.Errorf("Audio preview should be the raw payload")
	}
}

func TestRenderUnsupportedCategory(t *testing.T) {
	media := types.Media{ID: "a3", Filename: "data.zip", MimeType: "application/zip"}

	result, err := Render(media, []byte("zip-bytes"), 128, t.TempDir())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if result.Path != "" {
		t.Errorf("Archives must not produce a preview file")
	}
	if result.Note != NoteUnavailable {
		t.Errorf("Expected unavailable note, got %q", result.Note)
	}
}
