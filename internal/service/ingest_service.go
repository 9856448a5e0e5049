package service

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/blake2b"

	"boardcam/api/internal/config"
	"boardcam/api/internal/gallery"
	"boardcam/api/internal/media/sniffer"
	"boardcam/api/internal/models"
	"boardcam/api/internal/repository"
)

const ingestStream = "captures:ingest"

// IngestService accepts new capture uploads and registers them in the asset
// repository under a collision-resistant name. Naming is a unix-timestamp
// prefix on the original file name; two same-second uploads of identically
// named files collide and the later write wins, matching the capture
// device's cadence assumptions.
type IngestService struct {
	repo   repository.AssetRepository
	events *redis.Client
	cfg    *config.AppConfig
	log    zerolog.Logger

	now func() time.Time
}

func NewIngestService(repo repository.AssetRepository, events *redis.Client, cfg *config.AppConfig, log zerolog.Logger) *IngestService {
	return &IngestService{
		repo:   repo,
		events: events,
		cfg:    cfg,
		log:    log,
		now:    time.Now,
	}
}

// Ingest validates and stores one capture. On success the asset is
// immediately visible to every visitor; on repository failure nothing
// becomes visible.
func (s *IngestService) Ingest(ctx context.Context, data []byte, originalName string) (models.Asset, error) {
	if originalName == "" {
		return models.Asset{}, gallery.ErrEmptyFilename
	}
	if len(data) == 0 {
		return models.Asset{}, gallery.ErrEmptyInput
	}

	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	detected, err := sniffer.DetectHead(head)
	if err != nil {
		return models.Asset{}, fmt.Errorf("%w: %v", gallery.ErrUnsupportedMedia, err)
	}

	storedName := fmt.Sprintf("%d_%s", s.now().Unix(), originalName)

	asset, err := s.repo.Upload(ctx, data, s.cfg.Storage.CapturesFolder, storedName)
	if err != nil {
		s.log.Error().Err(err).Str("name", storedName).Msg("capture upload failed")
		return models.Asset{}, fmt.Errorf("%w: %v", gallery.ErrRepositoryUnavailable, err)
	}

	checksum := blake2b.Sum256(data)

	s.log.Info().
		Str("asset_id", asset.ID).
		Str("format", string(detected.Type)).
		Int("size_bytes", len(data)).
		Str("checksum", hex.EncodeToString(checksum[:])).
		Msg("capture ingested")

	if err := s.publishIngestEvent(ctx, asset, detected, len(data), checksum[:]); err != nil {
		s.log.Warn().Err(err).Str("asset_id", asset.ID).Msg("ingest event publish failed")
	}

	return asset, nil
}

// publishIngestEvent emits the new capture onto the ingest stream for any
// downstream consumer. The upload already succeeded; publish failures are
// the caller's to log, never to surface.
func (s *IngestService) publishIngestEvent(ctx context.Context, asset models.Asset, detected sniffer.Result, size int, checksum []byte) error {
	if s.events == nil {
		return nil
	}

	_, err := s.events.XAdd(ctx, &redis.XAddArgs{
		Stream: ingestStream,
		Values: map[string]any{
			"assetId":   asset.ID,
			"url":       asset.URL,
			"format":    string(detected.Type),
			"sizeBytes": size,
			"checksum":  hex.EncodeToString(checksum),
		},
	}).Result()
	return err
}
