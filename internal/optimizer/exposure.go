package optimizer

import (
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/stitts-dev/lineupgen/internal/types"
)

// ExposureTracker holds per liked player appearance counts against their
// caps. Only liked players are tracked; every other player is unlimited.
type ExposureTracker struct {
	mu           sync.RWMutex
	records      map[string]*types.ExposureRecord // Player ID -> record
	order        []string                         // Player IDs in pool order
	totalLineups int
}

// NewExposureTracker sets max = ceil(liked * requested) and count = 0 for
// every liked player in the pool
func NewExposureTracker(requested int, players []types.Player) *ExposureTracker {
	et := &ExposureTracker{
		records: make(map[string]*types.ExposureRecord),
		order:   make([]string, 0),
	}
	for _, p := range players {
		if !p.IsLiked() {
			continue
		}
		if _, exists := et.records[p.ID]; exists {
			continue
		}
		et.records[p.ID] = &types.ExposureRecord{
			PlayerID: p.ID,
			Name:     p.Name,
			Liked:    p.Liked,
			Max:      ceilShare(p.Liked, requested),
		}
		et.order = append(et.order, p.ID)
	}
	return et
}

// IsSatisfiable is true if the player is not liked or one more appearance
// stays within its max
func (et *ExposureTracker) IsSatisfiable(playerID string) bool {
	et.mu.RLock()
	defer et.mu.RUnlock()

	record, liked := et.records[playerID]
	if !liked {
		return true
	}
	return record.Count+1 <= record.Max
}

// CanAccept checks every liked player of a candidate lineup
func (et *ExposureTracker) CanAccept(lineup types.Lineup) bool {
	for _, p := range lineup.Players {
		if !et.IsSatisfiable(p.ID) {
			logrus.Debugf("Player %s would exceed exposure cap", p.ID)
			return false
		}
	}
	return true
}

// RecordAcceptance bumps the count of every liked player in an accepted
// lineup by exactly one. Call it once per accepted lineup.
func (et *ExposureTracker) RecordAcceptance(lineup types.Lineup) {
	et.mu.Lock()
	defer et.mu.Unlock()

	seen := make(map[string]bool, len(lineup.Players))
	for _, p := range lineup.Players {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		if record, liked := et.records[p.ID]; liked {
			record.Count++
		}
	}
	et.totalLineups++
}

// Record returns a copy of the record for a liked player
func (et *ExposureTracker) Record(playerID string) (types.ExposureRecord, bool) {
	et.mu.RLock()
	defer et.mu.RUnlock()

	record, ok := et.records[playerID]
	if !ok {
		return types.ExposureRecord{}, false
	}
	return *record, true
}

// Records returns copies of all records, highest liked weight first
func (et *ExposureTracker) Records() []types.ExposureRecord {
	et.mu.RLock()
	defer et.mu.RUnlock()

	out := make([]types.ExposureRecord, 0, len(et.order))
	for _, id := range et.order {
		out = append(out, *et.records[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Liked > out[j].Liked
	})
	return out
}

// TotalLineups is the number of acceptances recorded
func (et *ExposureTracker) TotalLineups() int {
	et.mu.RLock()
	defer et.mu.RUnlock()
	return et.totalLineups
}
