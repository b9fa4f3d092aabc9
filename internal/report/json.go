package report

import (
	"encoding/json"
	"io"

	"github.com/stitts-dev/lineupgen/internal/optimizer"
)

// Metadata is the machine-readable run document
type Metadata struct {
	Summary   Summary       `json:"summary"`
	Lineups   []LineupDoc   `json:"lineups"`
	Exposures []ExposureDoc `json:"exposures"`
}

// LineupDoc is one lineup in the metadata document
type LineupDoc struct {
	Rank          int         `json:"rank"`
	Key           string      `json:"key"`
	Salary        int         `json:"salary"`
	SalaryDisplay string      `json:"salary_display"`
	Players       []PlayerDoc `json:"players"`
}

// PlayerDoc is one filled slot
type PlayerDoc struct {
	Slot     string  `json:"slot"`
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Team     string  `json:"team,omitempty"`
	Position string  `json:"position"`
	Salary   int     `json:"salary"`
	Liked    float64 `json:"liked,omitempty"`
}

// ExposureDoc reports a liked player's target against what was produced
type ExposureDoc struct {
	PlayerID   string  `json:"player_id"`
	Name       string  `json:"name"`
	Target     float64 `json:"target"`
	Count      int     `json:"count"`
	Max        int     `json:"max"`
	Percentage float64 `json:"percentage"`
}

// BuildMetadata assembles the metadata document for a result
func BuildMetadata(result *optimizer.Result) Metadata {
	meta := Metadata{
		Summary:   Summarize(result),
		Lineups:   make([]LineupDoc, 0, len(result.Lineups)),
		Exposures: make([]ExposureDoc, 0, len(result.Exposures)),
	}

	for i, lineup := range SortBySalary(result.Lineups) {
		doc := LineupDoc{
			Rank:          i + 1,
			Key:           lineup.Key(),
			Salary:        lineup.Salary(),
			SalaryDisplay: FormatSalary(lineup.Salary()),
			Players:       make([]PlayerDoc, len(lineup.Players)),
		}
		for j, p := range lineup.Players {
			doc.Players[j] = PlayerDoc{
				Slot:     lineup.Slots[j],
				ID:       p.ID,
				Name:     p.Name,
				Team:     p.Team,
				Position: p.Position,
				Salary:   p.Salary,
				Liked:    p.Liked,
			}
		}
		meta.Lineups = append(meta.Lineups, doc)
	}

	for _, r := range result.Exposures {
		meta.Exposures = append(meta.Exposures, ExposureDoc{
			PlayerID:   r.PlayerID,
			Name:       r.Name,
			Target:     r.Liked,
			Count:      r.Count,
			Max:        r.Max,
			Percentage: r.Percentage(result.Generated()),
		})
	}
	return meta
}

// WriteJSON writes the metadata document as indented JSON
func WriteJSON(w io.Writer, result *optimizer.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildMetadata(result))
}
