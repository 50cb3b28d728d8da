package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/draft-roster/internal/domain/claim"
	"github.com/riskibarqy/draft-roster/internal/domain/feed"
	"github.com/riskibarqy/draft-roster/internal/domain/roster"
	"github.com/riskibarqy/draft-roster/internal/platform/cache"
	"github.com/riskibarqy/draft-roster/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

const (
	rosterCacheKey           = "roster:all"
	defaultFeedWorkers       = 8
	defaultRosterPageWorkers = 4
)

type RosterServiceConfig struct {
	Feeds []feed.Descriptor
	// MaxFeedWorkers bounds concurrent feed fetches.
	MaxFeedWorkers int
	// RosterPages maps a team name to its roster page URL.
	RosterPages           map[string]string
	MaxRosterPageRequests int
}

type claimedProfileLister interface {
	List(ctx context.Context) ([]claim.ClaimedProfile, error)
}

// QueryResult is one filtered view of the roster.
type QueryResult struct {
	Players        []roster.Player
	Total          int
	FiltersApplied map[string]string
}

type RosterService struct {
	feeds   feed.Source
	details roster.DetailSource
	claims  claimedProfileLister
	cache   *cache.Store
	logger  *logging.Logger

	descriptors []feed.Descriptor
	feedWorkers int
	pages       map[string]rosterPage
	pageWorkers int
}

type rosterPage struct {
	team string
	url  string
}

func NewRosterService(
	feeds feed.Source,
	details roster.DetailSource,
	claims claimedProfileLister,
	store *cache.Store,
	cfg RosterServiceConfig,
	logger *logging.Logger,
) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}
	if store == nil {
		store = cache.NewStore(0)
	}

	feedWorkers := cfg.MaxFeedWorkers
	if feedWorkers <= 0 {
		feedWorkers = defaultFeedWorkers
	}
	pageWorkers := cfg.MaxRosterPageRequests
	if pageWorkers <= 0 {
		pageWorkers = defaultRosterPageWorkers
	}

	pages := make(map[string]rosterPage, len(cfg.RosterPages))
	for team, url := range cfg.RosterPages {
		team, url = strings.TrimSpace(team), strings.TrimSpace(url)
		if team == "" || url == "" {
			continue
		}
		pages[roster.TeamKey(team)] = rosterPage{team: team, url: url}
	}

	return &RosterService{
		feeds:       feeds,
		details:     details,
		claims:      claims,
		cache:       store,
		logger:      logger.Named("roster"),
		descriptors: append([]feed.Descriptor(nil), cfg.Feeds...),
		feedWorkers: feedWorkers,
		pages:       pages,
		pageWorkers: pageWorkers,
	}
}

// GetRoster returns the aggregated roster, building it on first use or after
// an invalidation. Concurrent cold callers share a single build.
func (s *RosterService) GetRoster(ctx context.Context) ([]roster.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.GetRoster")
	defer span.End()

	value, err := s.cache.GetOrLoad(ctx, rosterCacheKey, func(ctx context.Context) (any, error) {
		return s.build(context.WithoutCancel(ctx))
	})
	if err != nil {
		return nil, err
	}

	players, ok := value.([]roster.Player)
	if !ok {
		return nil, fmt.Errorf("unexpected cached roster type %T", value)
	}
	return append([]roster.Player(nil), players...), nil
}

// Invalidate drops the memoized roster. Builds already running are not
// stored.
func (s *RosterService) Invalidate(ctx context.Context) {
	s.cache.Delete(ctx, rosterCacheKey)
	s.logger.DebugContext(ctx, "roster cache invalidated", "generation", s.cache.Generation())
}

// CachedSize reports the size of the memoized roster without building it.
func (s *RosterService) CachedSize(ctx context.Context) (int, bool) {
	value, ok := s.cache.Get(ctx, rosterCacheKey)
	if !ok {
		return 0, false
	}
	players, ok := value.([]roster.Player)
	if !ok {
		return 0, false
	}
	return len(players), true
}

func (s *RosterService) Query(ctx context.Context, filter roster.Filter) (QueryResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Query")
	defer span.End()

	players, err := s.GetRoster(ctx)
	if err != nil {
		return QueryResult{}, err
	}

	matched := roster.Apply(players, filter)
	return QueryResult{
		Players:        matched,
		Total:          len(matched),
		FiltersApplied: filter.Applied(),
	}, nil
}

func (s *RosterService) build(ctx context.Context) ([]roster.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.build")
	defer span.End()

	unclaimed := s.fetchFeeds(ctx)
	unclaimed = s.enrichFromRosterPages(ctx, unclaimed)

	var profiles []claim.ClaimedProfile
	if s.claims != nil {
		var err error
		profiles, err = s.claims.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list claimed profiles: %w", err)
		}
	}

	claimed := make([]roster.Player, 0, len(profiles))
	for _, profile := range profiles {
		if strings.TrimSpace(profile.OriginalPlayerID) == "" {
			s.logger.WarnContext(ctx, "skip claimed profile without original player id", "profile_id", profile.ID)
			continue
		}
		claimed = append(claimed, profile.Player())
	}

	players, stats := roster.Resolve(claimed, unclaimed)
	if stats.CollapsedDuplicates > 0 || stats.DuplicateClaims > 0 {
		s.logger.DebugContext(ctx, "duplicate identity keys collapsed",
			"collapsed_unclaimed", stats.CollapsedDuplicates,
			"duplicate_claims", stats.DuplicateClaims,
		)
	}
	s.logger.InfoContext(ctx, "roster built",
		"players", len(players),
		"claimed", stats.Claimed,
		"unclaimed", stats.Unclaimed,
		"superseded", stats.SupersededByClaim,
	)

	return players, nil
}

// fetchFeeds pulls every feed in parallel. The merged result keeps
// descriptor order.
func (s *RosterService) fetchFeeds(ctx context.Context) []roster.Player {
	if s.feeds == nil || len(s.descriptors) == 0 {
		return nil
	}

	results := make([][]roster.Player, len(s.descriptors))
	workerCount := min(s.feedWorkers, len(s.descriptors))

	workers, err := ants.NewPool(workerCount)
	if err != nil {
		s.logger.WarnContext(ctx, "create feed worker pool failed, fetching sequentially", "error", err)
		for i, desc := range s.descriptors {
			results[i] = s.loadFeed(ctx, desc)
		}
		return flatten(results)
	}
	defer workers.Release()

	var wg sync.WaitGroup
	for i, desc := range s.descriptors {
		wg.Add(1)
		if err := workers.Submit(func() {
			defer wg.Done()
			results[i] = s.loadFeed(ctx, desc)
		}); err != nil {
			wg.Done()
			s.logger.WarnContext(ctx, "submit feed fetch failed, fetching inline", "feed", desc.Name, "error", err)
			results[i] = s.loadFeed(ctx, desc)
		}
	}
	wg.Wait()

	return flatten(results)
}

func (s *RosterService) loadFeed(ctx context.Context, desc feed.Descriptor) []roster.Player {
	records := s.feeds.Fetch(ctx, desc)
	out := make([]roster.Player, 0, len(records))
	for _, rec := range records {
		p, err := roster.Normalize(desc, rec)
		if err != nil {
			s.logger.WarnContext(ctx, "skip unnormalizable record", "feed", desc.Name, "error", err)
			continue
		}
		out = append(out, p)
	}
	return out
}

// enrichFromRosterPages scrapes the roster page of every team that still has
// players with missing details and merges what it finds. A failing page is
// skipped.
func (s *RosterService) enrichFromRosterPages(ctx context.Context, players []roster.Player) []roster.Player {
	if s.details == nil || len(s.pages) == 0 {
		return players
	}

	targets := make(map[string]rosterPage)
	for _, p := range players {
		if !p.NeedsDetails() {
			continue
		}
		key := roster.TeamKey(p.Team)
		if page, ok := s.pages[key]; ok {
			targets[key] = page
		}
	}
	if len(targets) == 0 {
		return players
	}

	var mu sync.Mutex
	byTeam := make(map[string][]roster.Detail, len(targets))
	p := pool.New().WithMaxGoroutines(s.pageWorkers)
	for key, page := range targets {
		p.Go(func() {
			rows, err := s.details.FetchDetails(ctx, page.team, page.url)
			if err != nil {
				s.logger.WarnContext(ctx, "roster page fetch failed", "team", page.team, "url", page.url, "error", err)
				return
			}
			mu.Lock()
			byTeam[key] = rows
			mu.Unlock()
		})
	}
	p.Wait()

	enriched, matched := roster.ReconcileAll(players, byTeam)
	s.logger.DebugContext(ctx, "roster pages reconciled", "teams", len(byTeam), "matched_players", matched)
	return enriched
}

func flatten(groups [][]roster.Player) []roster.Player {
	total := 0
	for _, g := range groups {
		total += len(g)
	}
	out := make([]roster.Player, 0, total)
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
