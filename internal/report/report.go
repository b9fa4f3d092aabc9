package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/stitts-dev/lineupgen/internal/optimizer"
	"github.com/stitts-dev/lineupgen/internal/types"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Output formats
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatCSV   = "csv"
)

// Formats lists the supported output formats
var Formats = []string{FormatTable, FormatJSON, FormatCSV}

// FormatSalary renders a salary as US currency, e.g. "$58,000"
func FormatSalary(salary int) string {
	if salary < 0 {
		return "-$" + humanize.Comma(int64(-salary))
	}
	return "$" + humanize.Comma(int64(salary))
}

// Summary is the run-level view shown after the lineups
type Summary struct {
	RunID             string         `json:"run_id"`
	Preset            string         `json:"preset"`
	Requested         int            `json:"requested"`
	Generated         int            `json:"generated"`
	Attempts          int            `json:"attempts"`
	Rejections        map[string]int `json:"rejections"`
	Exhausted         bool           `json:"exhausted"`
	Cancelled         bool           `json:"cancelled"`
	Seed              int64          `json:"seed"`
	ElapsedMs         int64          `json:"elapsed_ms"`
	MeanSalary        float64        `json:"mean_salary"`
	StdDevSalary      float64        `json:"stddev_salary"`
	MinSalary         int            `json:"min_salary"`
	MaxSalary         int            `json:"max_salary"`
	UniquePlayers     int            `json:"unique_players"`
	AttemptsPerLineup float64        `json:"attempts_per_lineup"`
}

// Summarize computes the salary statistics for a finished run
func Summarize(result *optimizer.Result) Summary {
	summary := Summary{
		RunID:      result.RunID,
		Preset:     result.Template,
		Requested:  result.Requested,
		Generated:  result.Generated(),
		Attempts:   result.Attempts,
		Rejections: result.Rejections,
		Exhausted:  result.Exhausted,
		Cancelled:  result.Cancelled,
		Seed:       result.Seed,
		ElapsedMs:  result.Elapsed.Milliseconds(),
	}
	if summary.Generated == 0 {
		return summary
	}

	salaries := make([]float64, len(result.Lineups))
	unique := make(map[string]bool)
	for i, lineup := range result.Lineups {
		salaries[i] = float64(lineup.Salary())
		for _, p := range lineup.Players {
			unique[p.ID] = true
		}
	}

	summary.MeanSalary = stat.Mean(salaries, nil)
	if len(salaries) > 1 {
		summary.StdDevSalary = stat.StdDev(salaries, nil)
	}
	summary.MinSalary = int(floats.Min(salaries))
	summary.MaxSalary = int(floats.Max(salaries))
	summary.UniquePlayers = len(unique)
	summary.AttemptsPerLineup = float64(result.Attempts) / float64(summary.Generated)
	return summary
}

// SortBySalary returns a copy of the lineups ordered by salary, highest first.
// Ties keep acceptance order.
func SortBySalary(lineups []types.Lineup) []types.Lineup {
	sorted := make([]types.Lineup, len(lineups))
	copy(sorted, lineups)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Salary() > sorted[j].Salary()
	})
	return sorted
}

// Write renders the result in the requested format
func Write(w io.Writer, format string, result *optimizer.Result) error {
	switch strings.ToLower(format) {
	case "", FormatTable:
		return WriteTable(w, result)
	case FormatJSON:
		return WriteJSON(w, result)
	case FormatCSV:
		return WriteCSV(w, result)
	default:
		return fmt.Errorf("unsupported output format %q (available: %s)", format, strings.Join(Formats, ", "))
	}
}

func formatElapsed(ms int64) string {
	return (time.Duration(ms) * time.Millisecond).String()
}
