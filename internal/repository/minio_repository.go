package repository

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/rs/zerolog"

	"boardcam/api/internal/models"
	"boardcam/api/internal/storage"
)

// MinioAssetRepository implements AssetRepository against a MinIO (or any
// S3-compatible) bucket. Listing and upload go through the MinIO client;
// fetch is a plain HTTP GET of the asset's public URL.
type MinioAssetRepository struct {
	store  *storage.ObjectStore
	client *http.Client
	log    zerolog.Logger
}

func NewMinioAssetRepository(store *storage.ObjectStore, log zerolog.Logger) *MinioAssetRepository {
	return &MinioAssetRepository{
		store: store,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// List walks the bucket under prefix and returns up to maxResults assets in
// key order, which MinIO guarantees to be stable across identical listings.
func (r *MinioAssetRepository) List(ctx context.Context, prefix string, maxResults int) ([]models.Asset, error) {
	listPrefix := prefix
	if listPrefix != "" && !strings.HasSuffix(listPrefix, "/") {
		listPrefix += "/"
	}

	objects := r.store.Client().ListObjects(ctx, r.store.Bucket(), minio.ListObjectsOptions{
		Prefix:    listPrefix,
		Recursive: true,
	})

	assets := make([]models.Asset, 0, maxResults)
	for object := range objects {
		if object.Err != nil {
			return nil, fmt.Errorf("list objects: %w", object.Err)
		}

		createdAt := ""
		if !object.LastModified.IsZero() {
			createdAt = object.LastModified.UTC().Format(time.RFC3339)
		}

		assets = append(assets, models.Asset{
			ID:          object.Key,
			DisplayName: models.DisplayName(object.Key),
			URL:         r.store.PublicURL(object.Key),
			CreatedAt:   createdAt,
		})

		if len(assets) >= maxResults {
			break
		}
	}

	return assets, nil
}

func (r *MinioAssetRepository) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build fetch request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read fetch body: %w", err)
	}
	return data, nil
}

func (r *MinioAssetRepository) Upload(ctx context.Context, data []byte, folder, name string) (models.Asset, error) {
	objectKey := path.Join(folder, name)

	options := minio.PutObjectOptions{
		ContentType: http.DetectContentType(data),
	}

	info, err := r.store.Client().PutObject(ctx, r.store.Bucket(), objectKey, bytes.NewReader(data), int64(len(data)), options)
	if err != nil {
		return models.Asset{}, fmt.Errorf("put object %s: %w", objectKey, err)
	}

	r.log.Debug().
		Str("object_key", objectKey).
		Int64("size_bytes", info.Size).
		Msg("object stored")

	return models.Asset{
		ID:          objectKey,
		DisplayName: models.DisplayName(objectKey),
		URL:         r.store.PublicURL(objectKey),
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}, nil
}
