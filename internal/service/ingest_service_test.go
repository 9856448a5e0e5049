package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"boardcam/api/internal/config"
	"boardcam/api/internal/gallery"
	"boardcam/api/internal/models"
)

type fakeRepo struct {
	uploadErr error

	gotData   []byte
	gotFolder string
	gotName   string
}

func (f *fakeRepo) List(ctx context.Context, prefix string, maxResults int) ([]models.Asset, error) {
	return nil, errors.New("list not supported by fake")
}

func (f *fakeRepo) Fetch(ctx context.Context, url string) ([]byte, error) {
	return nil, errors.New("fetch not supported by fake")
}

func (f *fakeRepo) Upload(ctx context.Context, data []byte, folder, name string) (models.Asset, error) {
	if f.uploadErr != nil {
		return models.Asset{}, f.uploadErr
	}
	f.gotData = data
	f.gotFolder = folder
	f.gotName = name
	key := folder + "/" + name
	return models.Asset{
		ID:          key,
		DisplayName: models.DisplayName(key),
		URL:         "https://store.example/" + key,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		Environment: "test",
		Storage: config.StorageConfig{
			CapturesFolder: "whiteboard_captures",
		},
	}
}

func pngPayload(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func newTestIngest(repo *fakeRepo, unix int64) *IngestService {
	svc := NewIngestService(repo, nil, testConfig(), zerolog.Nop())
	svc.now = func() time.Time { return time.Unix(unix, 0) }
	return svc
}

func TestIngestStoresUnderTimestampedName(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestIngest(repo, 1700000000)

	payload := pngPayload(t)
	asset, err := svc.Ingest(context.Background(), payload, "board.png")
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	if repo.gotFolder != "whiteboard_captures" {
		t.Errorf("folder: got %q", repo.gotFolder)
	}
	if repo.gotName != "1700000000_board.png" {
		t.Errorf("stored name: got %q, want 1700000000_board.png", repo.gotName)
	}
	if !bytes.Equal(repo.gotData, payload) {
		t.Error("stored bytes differ from the payload")
	}
	if asset.ID != "whiteboard_captures/1700000000_board.png" {
		t.Errorf("asset id: got %q", asset.ID)
	}
}

func TestIngestRejectsEmptyFilename(t *testing.T) {
	svc := newTestIngest(&fakeRepo{}, 1700000000)

	_, err := svc.Ingest(context.Background(), pngPayload(t), "")
	if !errors.Is(err, gallery.ErrEmptyFilename) {
		t.Fatalf("expected ErrEmptyFilename, got %v", err)
	}
}

func TestIngestRejectsEmptyContent(t *testing.T) {
	svc := newTestIngest(&fakeRepo{}, 1700000000)

	_, err := svc.Ingest(context.Background(), nil, "board.png")
	if !errors.Is(err, gallery.ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestIngestRejectsNonImagePayload(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestIngest(repo, 1700000000)

	_, err := svc.Ingest(context.Background(), []byte("definitely not an image"), "board.png")
	if !errors.Is(err, gallery.ErrUnsupportedMedia) {
		t.Fatalf("expected ErrUnsupportedMedia, got %v", err)
	}
	if repo.gotName != "" {
		t.Error("rejected payload must not reach the repository")
	}
}

func TestIngestSurfacesRepositoryFailure(t *testing.T) {
	repo := &fakeRepo{uploadErr: errors.New("service unavailable")}
	svc := newTestIngest(repo, 1700000000)

	_, err := svc.Ingest(context.Background(), pngPayload(t), "board.png")
	if !errors.Is(err, gallery.ErrRepositoryUnavailable) {
		t.Fatalf("expected ErrRepositoryUnavailable, got %v", err)
	}
}
