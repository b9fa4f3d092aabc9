package optimizer

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/stitts-dev/lineupgen/internal/types"
)

// LineupBuilder assembles single candidate lineups by random, liked-biased
// slot fills. A builder owns its random source and is not safe for
// concurrent use; the pool, distributions and tracker it reads may be shared.
type LineupBuilder struct {
	template RosterTemplate
	byCode   map[string][]types.Player
	dists    map[string]Distribution
	exposure *ExposureTracker
	rng      RandomSource
	log      *logrus.Entry
}

// NewLineupBuilder creates a builder over a read-only pool
func NewLineupBuilder(
	players []types.Player,
	template RosterTemplate,
	dists map[string]Distribution,
	exposure *ExposureTracker,
	rng RandomSource,
	log *logrus.Entry,
) *LineupBuilder {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &LineupBuilder{
		template: template,
		byCode:   organizeByCode(players, template),
		dists:    dists,
		exposure: exposure,
		rng:      rng,
		log:      log,
	}
}

// organizeByCode indexes the pool by each slot code a player may fill
func organizeByCode(players []types.Player, template RosterTemplate) map[string][]types.Player {
	byCode := make(map[string][]types.Player)
	for _, code := range template.Codes() {
		for _, p := range players {
			if p.EligibleFor(code) {
				byCode[code] = append(byCode[code], p)
			}
		}
	}
	return byCode
}

// FillSlot picks a player for one slot. Candidates must be eligible for the
// code, cost strictly less than remaining, be absent from used and have
// exposure room. A liked draw that is not among the candidates fails the
// slot rather than falling back to a uniform pick.
func (b *LineupBuilder) FillSlot(code string, remaining int, used map[string]bool) (types.Player, error) {
	candidates := make([]types.Player, 0, len(b.byCode[code]))
	for _, p := range b.byCode[code] {
		if p.Salary >= remaining || used[p.ID] {
			continue
		}
		if b.exposure != nil && !b.exposure.IsSatisfiable(p.ID) {
			continue
		}
		candidates = append(candidates, p)
	}
	if len(candidates) == 0 {
		return types.Player{}, fmt.Errorf("%w: %s (remaining salary %d)", ErrSlotFill, code, remaining)
	}

	if likedID, biased := b.dists[code].Draw(b.rng); biased {
		for _, p := range candidates {
			if p.ID == likedID {
				return p, nil
			}
		}
		return types.Player{}, fmt.Errorf("%w: %s (liked player %s unavailable)", ErrSlotFill, code, likedID)
	}

	unliked := candidates[:0:0]
	for _, p := range candidates {
		if !p.IsLiked() {
			unliked = append(unliked, p)
		}
	}
	if len(unliked) == 0 {
		return types.Player{}, fmt.Errorf("%w: %s (only liked players eligible)", ErrSlotFill, code)
	}
	return pickOne(b.rng, unliked), nil
}

// Build fills the template slot by slot. Any failed slot fails the whole
// lineup; partial lineups are never returned.
func (b *LineupBuilder) Build() (types.Lineup, error) {
	players := make([]types.Player, 0, len(b.template.Slots))
	used := make(map[string]bool, len(b.template.Slots))
	spent := 0

	for i, slot := range b.template.Slots {
		player, err := b.FillSlot(slot.Code, b.template.SalaryCap-spent, used)
		if err != nil {
			if b.log.Logger.IsLevelEnabled(logrus.DebugLevel) {
				b.log.WithFields(logrus.Fields{
					"slot_index":  i,
					"slot":        slot.Code,
					"salary_used": spent,
					"error":       err.Error(),
				}).Debug("Slot fill failed")
			}
			return types.Lineup{}, err
		}
		players = append(players, player)
		used[player.ID] = true
		spent += player.Salary
	}

	return types.NewLineup(b.template.SlotCodes(), players), nil
}
