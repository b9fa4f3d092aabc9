package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/stitts-dev/lineupgen/internal/optimizer"
	"github.com/stitts-dev/lineupgen/internal/types"
)

// Platform identifiers derived from the preset name suffix
const (
	PlatformDraftKings = "draftkings"
	PlatformFanDuel    = "fanduel"
)

// PlatformOf returns the site a preset belongs to, or "" if unknown
func PlatformOf(preset string) string {
	switch {
	case strings.HasSuffix(preset, "-"+PlatformDraftKings):
		return PlatformDraftKings
	case strings.HasSuffix(preset, "-"+PlatformFanDuel):
		return PlatformFanDuel
	default:
		return ""
	}
}

// WriteCSV exports lineups in site upload format: one header row of slot
// codes, then one row per lineup, highest salary first.
func WriteCSV(w io.Writer, result *optimizer.Result) error {
	if len(result.Lineups) == 0 {
		return fmt.Errorf("no lineups to export")
	}

	platform := PlatformOf(result.Template)
	writer := csv.NewWriter(w)

	if err := writer.Write(result.Lineups[0].Slots); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for _, lineup := range SortBySalary(result.Lineups) {
		row := make([]string, len(lineup.Players))
		for i := range lineup.Players {
			row[i] = formatPlayer(lineup.Players[i], platform)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write lineup: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("CSV writer error: %w", err)
	}
	return nil
}

func formatPlayer(player types.Player, platform string) string {
	switch platform {
	case PlatformDraftKings:
		// DraftKings format: "PlayerID:PlayerName"
		return fmt.Sprintf("%s:%s", player.ID, player.Name)
	case PlatformFanDuel:
		// FanDuel format: "PlayerID - PlayerName"
		return fmt.Sprintf("%s - %s", player.ID, player.Name)
	default:
		return player.Name
	}
}
