package regions

import (
	"context"
	"strings"
	"sync"

	"itrack_admin/models"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Status filter values of the region list
const (
	StatusAll      = "all"
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// RegionLister fetches one server page of regions
type RegionLister interface {
	ListRegions(ctx context.Context, params *models.RegionListParams) (*models.RegionPage, error)
}

// NormalizeListParams fills defaults and clamps the page size
func NormalizeListParams(params *models.RegionListParams) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = DefaultPageSize
	}
	if params.Limit > MaxPageSize {
		params.Limit = MaxPageSize
	}
	params.Search = strings.TrimSpace(params.Search)
	switch params.Status {
	case StatusActive, StatusInactive:
	default:
		params.Status = StatusAll
	}
}

// ListRegions fetches a page from the service and filters it locally by text and status.
// Total stays the server total so pagination keeps working while a filter is applied.
func ListRegions(ctx context.Context, src RegionLister, params models.RegionListParams) (*models.RegionPage, error) {
	NormalizeListParams(&params)

	page, err := src.ListRegions(ctx, &params)
	if err != nil {
		return nil, err
	}

	page.Regions = FilterRegions(page.Regions, params.Search, params.Status)
	return page, nil
}

// FilterRegions keeps the regions whose name fuzzily matches search and whose
// active flag matches status
func FilterRegions(regions []models.Region, search, status string) []models.Region {
	filtered := make([]models.Region, 0, len(regions))
	for _, region := range regions {
		switch status {
		case StatusActive:
			if !bool(region.Active) {
				continue
			}
		case StatusInactive:
			if bool(region.Active) {
				continue
			}
		}
		if search != "" && !fuzzy.MatchNormalizedFold(search, region.RegionName) {
			continue
		}
		filtered = append(filtered, region)
	}
	return filtered
}

// LatestOnly lets only the newest fetch per key run. Starting a fetch cancels
// the one still in flight under the same key.
type LatestOnly struct {
	mu       sync.Mutex
	seq      uint64
	inflight map[string]latestEntry
}

type latestEntry struct {
	seq    uint64
	cancel context.CancelFunc
}

// NewLatestOnly creates an empty registry
func NewLatestOnly() *LatestOnly {
	return &LatestOnly{inflight: make(map[string]latestEntry)}
}

// Begin derives a context for a new fetch under key and cancels the previous one.
// The returned done func must be called when the fetch finishes.
func (l *LatestOnly) Begin(parent context.Context, key string) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)

	l.mu.Lock()
	if prev, ok := l.inflight[key]; ok {
		prev.cancel()
	}
	l.seq++
	seq := l.seq
	l.inflight[key] = latestEntry{seq: seq, cancel: cancel}
	l.mu.Unlock()

	done := func() {
		l.mu.Lock()
		if cur, ok := l.inflight[key]; ok && cur.seq == seq {
			delete(l.inflight, key)
		}
		l.mu.Unlock()
		cancel()
	}
	return ctx, done
}

// inFlight reports how many keys have a fetch running
func (l *LatestOnly) inFlight() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.inflight)
}
