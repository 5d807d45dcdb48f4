package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kk-code-lab/skillsearch/internal/config"
	"github.com/kk-code-lab/skillsearch/internal/history"
	"github.com/kk-code-lab/skillsearch/internal/profile"
	"github.com/kk-code-lab/skillsearch/internal/search"
	statepkg "github.com/kk-code-lab/skillsearch/internal/state"
	"github.com/kk-code-lab/skillsearch/internal/suggest"
	"github.com/sirupsen/logrus"
)

// newServices builds the search, history and suggestion components from
// cfg. The returned function releases the history backend.
func newServices(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger) (statepkg.Services, func() error, error) {
	httpClient := &http.Client{Timeout: cfg.RequestTimeout}

	client, err := search.NewHTTPClient(cfg.APIBaseURL, cfg.SearchPath, httpClient)
	if err != nil {
		return statepkg.Services{}, nil, fmt.Errorf("search client: %w", err)
	}
	fetcher, err := profile.NewHTTPFetcher(cfg.APIBaseURL, cfg.ProfilePath, httpClient)
	if err != nil {
		return statepkg.Services{}, nil, fmt.Errorf("profile client: %w", err)
	}
	profiles := profile.NewCache(fetcher, cfg.Profiles.TTL, cfg.Profiles.Cleanup)

	slot, closeSlot, err := openSlot(ctx, cfg.History)
	if err != nil {
		return statepkg.Services{}, nil, err
	}

	store := history.Open(ctx, slot, history.Options{
		Capacity:           cfg.History.Capacity,
		Profiles:           profiles,
		RefreshConcurrency: cfg.RefreshConcurrency,
		Logger:             logger.WithField("component", "history"),
	})
	coordinator := search.NewCoordinator(client, search.NewSessionCache(), store, logger.WithField("component", "search"))
	engine := suggest.NewEngine(client, suggest.Options{
		PerPage: cfg.Suggestions.PerPage,
		Limit:   cfg.Suggestions.Limit,
		Logger:  logger.WithField("component", "suggest"),
	})

	return statepkg.Services{
		Coordinator: coordinator,
		History:     store,
		Suggestions: engine,
		Logger:      logger.WithField("component", "state"),
	}, closeSlot, nil
}

func openSlot(ctx context.Context, cfg config.History) (history.Slot, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Backend {
	case "redis":
		slot, err := history.DialRedisSlot(ctx, cfg.RedisURL, cfg.Key)
		if err != nil {
			return nil, nil, fmt.Errorf("history backend: %w", err)
		}
		return slot, slot.Close, nil
	case "memory":
		return history.NewMemorySlot(nil), noop, nil
	default:
		return history.NewFileSlot(cfg.Path), noop, nil
	}
}
