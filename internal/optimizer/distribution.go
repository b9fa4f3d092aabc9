package optimizer

import (
	"math"

	"github.com/sirupsen/logrus"
	"github.com/stitts-dev/lineupgen/internal/types"
)

// DistributionSize is the number of weighted picks per position
const DistributionSize = 100

// NoBias is the pick meaning "choose uniformly among players that are not liked"
const NoBias = ""

// shareEpsilon absorbs float noise such as 0.07*100 = 7.000000000000001
const shareEpsilon = 1e-9

// Distribution is the weighted pick list for one slot code. Each liked player
// appears ceil(liked*100) times and the rest is padded with NoBias up to
// DistributionSize. Liked weights summing above 1.0 are not normalized; the
// list is then longer than DistributionSize and carries no padding.
type Distribution struct {
	Code  string
	picks []string
}

// ceilShare returns ceil(weight*n), ignoring float noise below shareEpsilon
func ceilShare(weight float64, n int) int {
	return int(math.Ceil(weight*float64(n) - shareEpsilon))
}

// BuildDistribution derives the pick list for a slot code from the pool
func BuildDistribution(players []types.Player, code string) Distribution {
	picks := make([]string, 0, DistributionSize)
	for _, p := range players {
		if !p.IsLiked() || !p.EligibleFor(code) {
			continue
		}
		for i := ceilShare(p.Liked, DistributionSize); i > 0; i-- {
			picks = append(picks, p.ID)
		}
	}
	for len(picks) < DistributionSize {
		picks = append(picks, NoBias)
	}
	return Distribution{Code: code, picks: picks}
}

// BuildDistributions builds one distribution per distinct code of the template
func BuildDistributions(players []types.Player, template RosterTemplate, log *logrus.Entry) map[string]Distribution {
	dists := make(map[string]Distribution, len(template.Slots))
	for _, code := range template.Codes() {
		dist := BuildDistribution(players, code)
		dists[code] = dist

		if dist.Oversubscribed() && log != nil {
			log.WithFields(logrus.Fields{
				"position":    code,
				"liked_picks": dist.LikedPicks(),
			}).Warn("Liked weights for position exceed 1.0; uniform picks disabled")
		}
	}
	return dists
}

// Len is the number of picks
func (d Distribution) Len() int {
	return len(d.picks)
}

// Draw picks one entry uniformly. ok is false when the pick is NoBias.
func (d Distribution) Draw(rng RandomSource) (playerID string, ok bool) {
	if len(d.picks) == 0 {
		return NoBias, false
	}
	id := pickOne(rng, d.picks)
	return id, id != NoBias
}

// LikedPicks is the number of picks that name a liked player
func (d Distribution) LikedPicks() int {
	n := 0
	for _, id := range d.picks {
		if id != NoBias {
			n++
		}
	}
	return n
}

// HasLiked reports whether any liked player is reachable for the code
func (d Distribution) HasLiked() bool {
	return d.LikedPicks() > 0
}

// Oversubscribed reports whether liked picks reach past DistributionSize
func (d Distribution) Oversubscribed() bool {
	return d.LikedPicks() > DistributionSize
}

// Counts returns the multiset of liked ids with their pick counts
func (d Distribution) Counts() map[string]int {
	counts := make(map[string]int)
	for _, id := range d.picks {
		if id != NoBias {
			counts[id]++
		}
	}
	return counts
}
