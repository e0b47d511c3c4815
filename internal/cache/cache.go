package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/go-redis/redis/v8"

	"cloudgallery/internal/types"
)

// MediaAPI is the remote client the cache wraps.
type MediaAPI interface {
	List(ctx context.Context) ([]types.Media, error)
	Upload(ctx context.Context, filename string, payload io.Reader) (types.Media, error)
	FetchBinary(ctx context.Context, id string) ([]byte, error)
	Delete(ctx context.Context, id string) error
}

// Service wraps the media API with Redis read caching and explicit
// invalidate-by-key semantics. The only guarantee is that the next read
// after a successful mutation reflects server state.
type Service struct {
	api   MediaAPI
	redis *redis.Client

	listTTL   time.Duration
	binaryTTL time.Duration
}

// Cache key patterns
const (
	MediaListKey   = "media:list"
	MediaBinaryKey = "media:binary:%s" // media:binary:mediaID
)

// Default cache durations
const (
	DefaultListTTL   = 45 * time.Second
	DefaultBinaryTTL = 10 * time.Minute
)

// NewService creates a cached view over the media API.
func NewService(api MediaAPI, redisClient *redis.Client, listTTL, binaryTTL time.Duration) *Service {
	if listTTL <= 0 {
		listTTL = DefaultListTTL
	}
	if binaryTTL <= 0 {
		binaryTTL = DefaultBinaryTTL
	}

	return &Service{
		api:       api,
		redis:     redisClient,
		listTTL:   listTTL,
		binaryTTL: binaryTTL,
	}
}

// List returns the cached media list or fetches it from the server.
func (s *Service) List(ctx context.Context) ([]types.Media, error) {
	cached, err := s.redis.Get(ctx, MediaListKey).Result()
	if err == nil {
		var medias []types.Media
		if err := json.Unmarshal([]byte(cached), &medias); err == nil {
			return medias, nil
		}
	}

	medias, err := s.api.List(ctx)
	if err != nil {
		return nil, err
	}

	data, _ := json.Marshal(medias)
	s.redis.Set(ctx, MediaListKey, data, s.listTTL)

	return medias, nil
}

// FetchBinary returns the cached payload of one media record or fetches it
// from the server.
func (s *Service) FetchBinary(ctx context.Context, id string) ([]byte, error) {
	key := fmt.Sprintf(MediaBinaryKey, id)

	cached, err := s.redis.Get(ctx, key).Bytes()
	if err == nil {
		return cached, nil
	}

	data, err := s.api.FetchBinary(ctx, id)
	if err != nil {
		return nil, err
	}

	s.redis.Set(ctx, key, data, s.binaryTTL)

	return data, nil
}

// Upload passes through to the server without touching cached keys. The
// upload queue invalidates the list once per batch rather than per file.
func (s *Service) Upload(ctx context.Context, filename string, payload io.Reader) (types.Media, error) {
	return s.api.Upload(ctx, filename, payload)
}

// Delete removes a media record server-side and invalidates the keys that
// could still serve it.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.api.Delete(ctx, id); err != nil {
		return err
	}

	s.InvalidateList(ctx)
	s.InvalidateBinary(ctx, id)

	return nil
}

// InvalidateList drops the cached media list so the next List hits the
// server.
func (s *Service) InvalidateList(ctx context.Context) error {
	return s.redis.Del(ctx, MediaListKey).Err()
}

// InvalidateBinary drops one cached payload.
func (s *Service) InvalidateBinary(ctx context.Context, id string) error {
	return s.redis.Del(ctx, fmt.Sprintf(MediaBinaryKey, id)).Err()
}
