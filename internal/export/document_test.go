package export

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/rs/zerolog"

	"boardcam/api/internal/models"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for x := 0; x < 2; x++ {
		for y := 0; y < 2; y++ {
			img.Set(x, y, color.RGBA{R: 0x20, G: 0x40, B: 0x80, A: 0xff})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestDocumentOnePagePerItem(t *testing.T) {
	items := []models.ViewItem{viewItem("a.png"), viewItem("b.png")}
	fetcher := &fakeFetcher{content: map[string][]byte{
		items[0].URL: pngBytes(t),
		items[1].URL: pngBytes(t),
	}}
	engine := NewEngine(fetcher, zerolog.Nop())

	data, results, err := engine.Document(context.Background(), items)
	if err != nil {
		t.Fatalf("Document: %v", err)
	}

	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("output is not a PDF")
	}
	if got := Included(results); got != 2 {
		t.Fatalf("included: got %d, want 2", got)
	}
	if len(results) != 2 {
		t.Fatalf("results: got %d, want 2", len(results))
	}
	for i, result := range results {
		if result.Status != StatusIncluded {
			t.Errorf("item %d: expected included, got %+v", i, result)
		}
	}
}

func TestDocumentSkipsFailedFetches(t *testing.T) {
	items := []models.ViewItem{viewItem("a.png"), viewItem("gone.png"), viewItem("c.png")}
	fetcher := &fakeFetcher{content: map[string][]byte{
		items[0].URL: pngBytes(t),
		items[2].URL: pngBytes(t),
	}}
	engine := NewEngine(fetcher, zerolog.Nop())

	data, results, err := engine.Document(context.Background(), items)
	if err != nil {
		t.Fatalf("Document: %v", err)
	}

	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("output is not a PDF")
	}
	if got := Included(results); got != 2 {
		t.Fatalf("included: got %d, want 2", got)
	}
	if results[1].Status != StatusSkipped || results[1].Reason == "" {
		t.Errorf("failed fetch should be skipped with a reason, got %+v", results[1])
	}
	// Order of the survivors is unchanged.
	if results[0].ID != items[0].ID || results[2].ID != items[2].ID {
		t.Errorf("result order changed: %+v", results)
	}
}

func TestDocumentSkipsNonEmbeddablePayloads(t *testing.T) {
	items := []models.ViewItem{viewItem("a.png"), viewItem("notes.txt")}
	fetcher := &fakeFetcher{content: map[string][]byte{
		items[0].URL: pngBytes(t),
		items[1].URL: []byte("plain text, not an image"),
	}}
	engine := NewEngine(fetcher, zerolog.Nop())

	data, results, err := engine.Document(context.Background(), items)
	if err != nil {
		t.Fatalf("Document: %v", err)
	}

	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("output is not a PDF")
	}
	if got := Included(results); got != 1 {
		t.Fatalf("included: got %d, want 1", got)
	}
	if results[1].Status != StatusSkipped {
		t.Errorf("non-image payload must be skipped, got %+v", results[1])
	}
}

func TestDocumentEmptyView(t *testing.T) {
	engine := NewEngine(&fakeFetcher{}, zerolog.Nop())

	data, results, err := engine.Document(context.Background(), nil)
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("empty export must still be a valid PDF buffer")
	}
}
