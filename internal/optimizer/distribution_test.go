package optimizer

import (
	"testing"

	"github.com/stitts-dev/lineupgen/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestBuildDistribution_PadsWithNoBias(t *testing.T) {
	players := []types.Player{
		player("curry", "PG", 9000, 0.5),
		player("paul", "PG", 6000, 0),
		player("jokic", "C", 11000, 0.3),
	}

	dist := BuildDistribution(players, "PG")

	assert.Equal(t, DistributionSize, dist.Len())
	assert.Equal(t, map[string]int{"curry": 50}, dist.Counts())
	assert.Equal(t, 50, dist.LikedPicks())
	assert.True(t, dist.HasLiked())
	assert.False(t, dist.Oversubscribed())
}

func TestBuildDistribution_RoundsUp(t *testing.T) {
	players := []types.Player{
		player("a", "SG", 5000, 0.333),
		player("b", "SG", 5000, 0.07),
	}

	counts := BuildDistribution(players, "SG").Counts()

	assert.Equal(t, 34, counts["a"])
	assert.Equal(t, 7, counts["b"], "float noise must not add a pick")
}

func TestBuildDistribution_Oversubscribed(t *testing.T) {
	players := []types.Player{
		player("a", "SF", 5000, 0.6),
		player("b", "SF", 5000, 0.6),
	}

	dist := BuildDistribution(players, "SF")

	assert.Equal(t, 120, dist.Len())
	assert.Equal(t, 120, dist.LikedPicks())
	assert.True(t, dist.Oversubscribed())
}

func TestBuildDistribution_NoLikedPlayers(t *testing.T) {
	dist := BuildDistribution(tenPlayerPool(), "C")

	assert.Equal(t, DistributionSize, dist.Len())
	assert.False(t, dist.HasLiked())

	id, ok := dist.Draw(NewRandomSource(7))
	assert.False(t, ok)
	assert.Equal(t, NoBias, id)
}

func TestBuildDistribution_Idempotent(t *testing.T) {
	template, err := GetTemplate("nba-draftkings")
	assert.NoError(t, err)
	players := createTestPlayers(template, []string{"PG", "SG", "SF", "PF", "C"}, 4)
	players[0].Liked = 0.25
	players[5].Liked = 0.4

	for _, code := range template.Codes() {
		first := BuildDistribution(players, code)
		second := BuildDistribution(players, code)
		assert.Equal(t, first.Len(), second.Len(), code)
		assert.Equal(t, first.Counts(), second.Counts(), code)
	}
}

func TestBuildDistributions_FlexCodesCollectAllEligibleLikes(t *testing.T) {
	template, err := GetTemplate("nba-draftkings")
	assert.NoError(t, err)
	players := []types.Player{
		{ID: "pg", Position: "PG", Salary: 5000, Positions: template.EligibleCodes([]string{"PG"}), Liked: 0.6},
		{ID: "sg", Position: "SG", Salary: 5000, Positions: template.EligibleCodes([]string{"SG"}), Liked: 0.6},
	}

	dists := BuildDistributions(players, template, quietLog())

	assert.Len(t, dists, len(template.Codes()))
	assert.Equal(t, map[string]int{"pg": 60}, dists["PG"].Counts())
	assert.True(t, dists["G"].Oversubscribed())
	assert.True(t, dists["UTIL"].Oversubscribed())
	assert.False(t, dists["C"].HasLiked())
}

func TestDistributionDraw_FollowsWeights(t *testing.T) {
	players := []types.Player{player("liked", "PG", 5000, 0.5)}
	dist := BuildDistribution(players, "PG")

	id, ok := dist.Draw(&sequenceSource{values: []int{10}})
	assert.True(t, ok)
	assert.Equal(t, "liked", id)

	id, ok = dist.Draw(&sequenceSource{values: []int{99}})
	assert.False(t, ok)
	assert.Equal(t, NoBias, id)
}

func TestCeilShare(t *testing.T) {
	assert.Equal(t, 2, ceilShare(0.5, 4))
	assert.Equal(t, 2, ceilShare(0.3, 4))
	assert.Equal(t, 3, ceilShare(0.1, 30))
	assert.Equal(t, 1, ceilShare(0.01, 1))
	assert.Equal(t, 100, ceilShare(1.0, 100))
}
