package lyrics

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodscope/internal/shared"
)

// Service wraps a [Provider] with the persistent [Cache].
//
// Negative lookups are cached too: a track known to have no lyrics resolves
// from the cache as [shared.ErrLyricsNotFound] without touching the provider.
type Service struct {
	provider Provider
	cache    *Cache
	logger   *log.Logger
}

// NewService creates a caching lyrics service. The cache may be nil, in which
// case every call goes to the provider.
func NewService(provider Provider, cache *Cache, logger *log.Logger) *Service {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Service{provider: provider, cache: cache, logger: logger}
}

// FetchLyrics returns raw lyrics for a track, consulting the cache first.
func (s *Service) FetchLyrics(ctx context.Context, title, artist string) (string, error) {
	key := shared.NormalizeTrackKey(title, artist)

	if s.cache != nil {
		if entry, ok := s.cache.Get(key); ok {
			if !entry.Found {
				return "", shared.ErrLyricsNotFound
			}
			s.logger.Debug("lyrics cache hit", "key", key, "source", entry.Source)
			return entry.Lyrics, nil
		}
	}

	text, err := s.provider.FetchLyrics(ctx, title, artist)
	if err != nil {
		if errors.Is(err, shared.ErrLyricsNotFound) && s.cache != nil {
			if cacheErr := s.cache.Set(key, "", "genius", false); cacheErr != nil {
				s.logger.Warn("failed to cache negative lyrics lookup", "error", cacheErr)
			}
		}
		return "", err
	}

	if s.cache != nil {
		if cacheErr := s.cache.Set(key, text, "genius", true); cacheErr != nil {
			s.logger.Warn("failed to cache lyrics", "error", cacheErr)
		}
	}

	return text, nil
}
