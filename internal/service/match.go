package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Ahmedezz570/SkillSwap/internal/domain"
	"github.com/Ahmedezz570/SkillSwap/internal/repository"
	apperrors "github.com/Ahmedezz570/SkillSwap/pkg/errors"
)

// MatchService computes ranked skill-exchange matches. Results are cached
// per requesting user; the cache is advisory and every miss recomputes from
// the full directory.
type MatchService struct {
	users  repository.UserRepository
	cache  repository.MatchCache
	ttl    time.Duration
	logger *slog.Logger
}

// NewMatchService creates a new match service.
func NewMatchService(users repository.UserRepository, cache repository.MatchCache, ttl time.Duration, logger *slog.Logger) *MatchService {
	return &MatchService{
		users:  users,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// GetMatches returns the ranked matches for a user, optionally narrowed by a
// case-insensitive display-name filter. The unfiltered ranking is what gets
// cached; the name filter is applied on the way out so every search term
// shares one cache entry.
func (s *MatchService) GetMatches(ctx context.Context, userID, nameFilter string) ([]domain.Match, error) {
	requester, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get requester: %w", err)
	}

	matches, err := s.cache.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "match cache read failed, recomputing",
				slog.String("user_id", userID),
				slog.String("error", err.Error()),
			)
		}

		matches, err = s.computeMatches(ctx, requester)
		if err != nil {
			return nil, err
		}

		if err := s.cache.Set(ctx, userID, matches, s.ttl); err != nil {
			s.logger.WarnContext(ctx, "failed to cache matches",
				slog.String("user_id", userID),
				slog.String("error", err.Error()),
			)
		}
	}

	return domain.FilterMatchesByName(matches, nameFilter), nil
}

func (s *MatchService) computeMatches(ctx context.Context, requester *domain.User) ([]domain.Match, error) {
	candidates, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	matches := domain.RankMatches(requester, candidates)

	s.logger.DebugContext(ctx, "matches computed",
		slog.String("user_id", requester.ID),
		slog.Int("candidates", len(candidates)),
		slog.Int("matches", len(matches)),
	)

	return matches, nil
}
