package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/stitts-dev/lineupgen/internal/optimizer"
	"github.com/stitts-dev/lineupgen/internal/types"
)

// WriteTable prints every lineup (highest salary first), the exposure table
// and the run summary.
func WriteTable(w io.Writer, result *optimizer.Result) error {
	for i, lineup := range SortBySalary(result.Lineups) {
		if _, err := fmt.Fprintf(w, "Lineup %d  (%s)\n", i+1, FormatSalary(lineup.Salary())); err != nil {
			return err
		}
		writeLineupTable(w, lineup)
		fmt.Fprintln(w)
	}

	if len(result.Exposures) > 0 {
		fmt.Fprintln(w, "Liked player exposure")
		writeExposureTable(w, result.Exposures, result.Generated())
		fmt.Fprintln(w)
	}

	return writeSummary(w, Summarize(result))
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

func writeLineupTable(w io.Writer, lineup types.Lineup) {
	table := newTable(w, []string{"Slot", "Player", "Team", "Pos", "Salary", "Liked"})
	for i, p := range lineup.Players {
		liked := ""
		if p.IsLiked() {
			liked = formatPercent(p.Liked * 100)
		}
		table.Append([]string{lineup.Slots[i], p.Name, p.Team, p.Position, FormatSalary(p.Salary), liked})
	}
	table.SetFooter([]string{"", "", "", "Total", FormatSalary(lineup.Salary()), ""})
	table.Render()
}

func writeExposureTable(w io.Writer, records []types.ExposureRecord, generated int) {
	table := newTable(w, []string{"Player", "Target", "Count", "Max", "Actual"})
	for _, r := range records {
		table.Append([]string{
			playerLabel(r),
			formatPercent(r.Liked * 100),
			strconv.Itoa(r.Count),
			strconv.Itoa(r.Max),
			formatPercent(r.Percentage(generated)),
		})
	}
	table.Render()
}

func writeSummary(w io.Writer, s Summary) error {
	status := "complete"
	switch {
	case s.Cancelled:
		status = "cancelled"
	case s.Exhausted:
		status = "search exhausted"
	}

	rows := [][]string{
		{"Run", s.RunID},
		{"Preset", s.Preset},
		{"Lineups", fmt.Sprintf("%d of %d requested (%s)", s.Generated, s.Requested, status)},
		{"Attempts", strconv.Itoa(s.Attempts)},
		{"Seed", strconv.FormatInt(s.Seed, 10)},
		{"Elapsed", formatElapsed(s.ElapsedMs)},
	}
	if s.Generated > 0 {
		rows = append(rows,
			[]string{"Mean salary", FormatSalary(int(s.MeanSalary + 0.5))},
			[]string{"Salary std dev", FormatSalary(int(s.StdDevSalary + 0.5))},
			[]string{"Salary range", FormatSalary(s.MinSalary) + " - " + FormatSalary(s.MaxSalary)},
			[]string{"Unique players", strconv.Itoa(s.UniquePlayers)},
		)
	}

	reasons := make([]string, 0, len(s.Rejections))
	for reason := range s.Rejections {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)
	for _, reason := range reasons {
		rows = append(rows, []string{"Rejected: " + reason, strconv.Itoa(s.Rejections[reason])})
	}

	table := tablewriter.NewWriter(w)
	table.SetBorder(false)
	table.SetColumnSeparator("")
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk(rows)
	table.Render()
	return nil
}

func playerLabel(r types.ExposureRecord) string {
	if r.Name == "" {
		return r.PlayerID
	}
	return r.Name
}

func formatPercent(pct float64) string {
	return strconv.FormatFloat(pct, 'f', 1, 64) + "%"
}
