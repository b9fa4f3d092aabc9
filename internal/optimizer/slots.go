package optimizer

import (
	"fmt"
	"sort"
	"strings"
)

// PositionSlot represents a position slot in a lineup
type PositionSlot struct {
	Code             string   // e.g., "PG", "G", "UTIL"
	AllowedPositions []string // e.g., ["PG"] or ["PG", "SG"]
}

// RosterTemplate is the ordered slot layout and salary band for one sport/site
type RosterTemplate struct {
	Name        string
	Slots       []PositionSlot
	SalaryCap   int
	SalaryFloor int
}

// minSalaryUsage is the share of the cap a lineup must spend by default
const minSalaryUsage = 0.95

var presets = map[string]RosterTemplate{
	"nba-fanduel": {
		Name: "nba-fanduel",
		Slots: []PositionSlot{
			{Code: "PG", AllowedPositions: []string{"PG"}},
			{Code: "PG", AllowedPositions: []string{"PG"}},
			{Code: "SG", AllowedPositions: []string{"SG"}},
			{Code: "SG", AllowedPositions: []string{"SG"}},
			{Code: "SF", AllowedPositions: []string{"SF"}},
			{Code: "SF", AllowedPositions: []string{"SF"}},
			{Code: "PF", AllowedPositions: []string{"PF"}},
			{Code: "PF", AllowedPositions: []string{"PF"}},
			{Code: "C", AllowedPositions: []string{"C"}},
		},
		SalaryCap: 60000,
	},
	"nba-draftkings": {
		Name: "nba-draftkings",
		Slots: []PositionSlot{
			{Code: "PG", AllowedPositions: []string{"PG"}},
			{Code: "SG", AllowedPositions: []string{"SG"}},
			{Code: "SF", AllowedPositions: []string{"SF"}},
			{Code: "PF", AllowedPositions: []string{"PF"}},
			{Code: "C", AllowedPositions: []string{"C"}},
			{Code: "G", AllowedPositions: []string{"PG", "SG"}},
			{Code: "F", AllowedPositions: []string{"SF", "PF"}},
			{Code: "UTIL", AllowedPositions: []string{"PG", "SG", "SF", "PF", "C"}},
		},
		SalaryCap: 50000,
	},
	"nfl-draftkings": {
		Name: "nfl-draftkings",
		Slots: []PositionSlot{
			{Code: "QB", AllowedPositions: []string{"QB"}},
			{Code: "RB", AllowedPositions: []string{"RB"}},
			{Code: "RB", AllowedPositions: []string{"RB"}},
			{Code: "WR", AllowedPositions: []string{"WR"}},
			{Code: "WR", AllowedPositions: []string{"WR"}},
			{Code: "WR", AllowedPositions: []string{"WR"}},
			{Code: "TE", AllowedPositions: []string{"TE"}},
			{Code: "FLEX", AllowedPositions: []string{"RB", "WR", "TE"}},
			{Code: "DST", AllowedPositions: []string{"DST"}},
		},
		SalaryCap: 50000,
	},
	"nfl-fanduel": {
		Name: "nfl-fanduel",
		Slots: []PositionSlot{
			{Code: "QB", AllowedPositions: []string{"QB"}},
			{Code: "RB", AllowedPositions: []string{"RB"}},
			{Code: "RB", AllowedPositions: []string{"RB"}},
			{Code: "WR", AllowedPositions: []string{"WR"}},
			{Code: "WR", AllowedPositions: []string{"WR"}},
			{Code: "WR", AllowedPositions: []string{"WR"}},
			{Code: "TE", AllowedPositions: []string{"TE"}},
			{Code: "FLEX", AllowedPositions: []string{"RB", "WR", "TE"}},
			{Code: "D/ST", AllowedPositions: []string{"D/ST", "DST", "D"}},
		},
		SalaryCap: 60000,
	},
	"mlb-draftkings": {
		Name: "mlb-draftkings",
		Slots: []PositionSlot{
			{Code: "P", AllowedPositions: []string{"P", "SP", "RP"}},
			{Code: "P", AllowedPositions: []string{"P", "SP", "RP"}},
			{Code: "C", AllowedPositions: []string{"C"}},
			{Code: "1B", AllowedPositions: []string{"1B"}},
			{Code: "2B", AllowedPositions: []string{"2B"}},
			{Code: "3B", AllowedPositions: []string{"3B"}},
			{Code: "SS", AllowedPositions: []string{"SS"}},
			{Code: "OF", AllowedPositions: []string{"OF", "LF", "CF", "RF"}},
			{Code: "OF", AllowedPositions: []string{"OF", "LF", "CF", "RF"}},
			{Code: "OF", AllowedPositions: []string{"OF", "LF", "CF", "RF"}},
		},
		SalaryCap: 50000,
	},
	"nhl-draftkings": {
		Name: "nhl-draftkings",
		Slots: []PositionSlot{
			{Code: "C", AllowedPositions: []string{"C"}},
			{Code: "C", AllowedPositions: []string{"C"}},
			{Code: "W", AllowedPositions: []string{"W", "LW", "RW"}},
			{Code: "W", AllowedPositions: []string{"W", "LW", "RW"}},
			{Code: "W", AllowedPositions: []string{"W", "LW", "RW"}},
			{Code: "D", AllowedPositions: []string{"D"}},
			{Code: "D", AllowedPositions: []string{"D"}},
			{Code: "G", AllowedPositions: []string{"G"}},
			{Code: "UTIL", AllowedPositions: []string{"C", "W", "LW", "RW", "D"}},
		},
		SalaryCap: 50000,
	},
	"golf-draftkings": {
		Name:      "golf-draftkings",
		Slots:     golfSlots(6),
		SalaryCap: 50000,
	},
}

func golfSlots(n int) []PositionSlot {
	slots := make([]PositionSlot, n)
	for i := range slots {
		slots[i] = PositionSlot{Code: "G", AllowedPositions: []string{"G"}}
	}
	return slots
}

// GetTemplate returns a copy of the named preset with its default salary floor
func GetTemplate(name string) (RosterTemplate, error) {
	preset, ok := presets[strings.ToLower(name)]
	if !ok {
		return RosterTemplate{}, fmt.Errorf("unknown roster preset %q (available: %s)", name, strings.Join(PresetNames(), ", "))
	}

	slots := make([]PositionSlot, len(preset.Slots))
	copy(slots, preset.Slots)
	preset.Slots = slots
	preset.SalaryFloor = DefaultSalaryFloor(preset.SalaryCap)
	return preset, nil
}

// PresetNames lists the available presets in sorted order
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultSalaryFloor is the minimum-spend floor for a cap
func DefaultSalaryFloor(salaryCap int) int {
	return int(float64(salaryCap) * minSalaryUsage)
}

// NewTemplate builds an ad-hoc template where every slot accepts exactly its own code
func NewTemplate(name string, codes []string, salaryFloor, salaryCap int) RosterTemplate {
	slots := make([]PositionSlot, len(codes))
	for i, code := range codes {
		slots[i] = PositionSlot{Code: code, AllowedPositions: []string{code}}
	}
	return RosterTemplate{Name: name, Slots: slots, SalaryCap: salaryCap, SalaryFloor: salaryFloor}
}

// SlotCodes returns the slot codes in roster order
func (t RosterTemplate) SlotCodes() []string {
	codes := make([]string, len(t.Slots))
	for i, slot := range t.Slots {
		codes[i] = slot.Code
	}
	return codes
}

// Codes returns the distinct slot codes in first-seen order
func (t RosterTemplate) Codes() []string {
	seen := make(map[string]bool)
	codes := make([]string, 0, len(t.Slots))
	for _, slot := range t.Slots {
		if !seen[slot.Code] {
			seen[slot.Code] = true
			codes = append(codes, slot.Code)
		}
	}
	return codes
}

// EligibleCodes maps a player's listed positions to the slot codes they may fill
func (t RosterTemplate) EligibleCodes(naturalPositions []string) []string {
	seen := make(map[string]bool)
	codes := make([]string, 0)
	for _, slot := range t.Slots {
		if seen[slot.Code] {
			continue
		}
		if CanFillSlot(naturalPositions, slot) {
			seen[slot.Code] = true
			codes = append(codes, slot.Code)
		}
	}
	return codes
}

// CanFillSlot checks if any of the listed positions is allowed in the slot
func CanFillSlot(naturalPositions []string, slot PositionSlot) bool {
	for _, pos := range naturalPositions {
		for _, allowed := range slot.AllowedPositions {
			if pos == allowed {
				return true
			}
		}
	}
	return false
}

// Validate checks that the template can be searched at all
func (t RosterTemplate) Validate() error {
	if len(t.Slots) == 0 {
		return fmt.Errorf("roster template %q has no slots", t.Name)
	}
	if t.SalaryCap <= 0 {
		return fmt.Errorf("roster template %q: salary cap must be positive", t.Name)
	}
	if t.SalaryFloor < 0 || t.SalaryFloor >= t.SalaryCap {
		return fmt.Errorf("roster template %q: salary floor %d must be in [0, %d)", t.Name, t.SalaryFloor, t.SalaryCap)
	}
	return nil
}
