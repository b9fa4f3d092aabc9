package report

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stitts-dev/lineupgen/internal/optimizer"
	"github.com/stitts-dev/lineupgen/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func player(id, name, pos string, salary int, liked float64) types.Player {
	return types.Player{ID: id, Name: name, Team: "BOS", Position: pos, Salary: salary, Positions: []string{pos}, Liked: liked}
}

func sampleResult() *optimizer.Result {
	slots := []string{"PG", "C"}
	curry := player("1", "Stephen Curry", "PG", 30000, 0.5)

	return &optimizer.Result{
		RunID:    "run-1",
		Template: "nba-draftkings",
		Lineups: []types.Lineup{
			types.NewLineup(slots, []types.Player{player("2", "Jrue Holiday", "PG", 26000, 0), player("3", "Al Horford", "C", 30000, 0)}),
			types.NewLineup(slots, []types.Player{curry, player("4", "Nikola Jokic", "C", 29000, 0)}),
			types.NewLineup(slots, []types.Player{curry, player("3", "Al Horford", "C", 28000, 0)}),
		},
		Exposures: []types.ExposureRecord{
			{PlayerID: "1", Name: "Stephen Curry", Liked: 0.5, Count: 2, Max: 2},
		},
		Requested:  4,
		Attempts:   37,
		Rejections: map[string]int{optimizer.ReasonSlotFill: 30, optimizer.ReasonDuplicate: 4},
		Exhausted:  true,
		Seed:       42,
		Elapsed:    120 * time.Millisecond,
	}
}

func TestFormatSalary(t *testing.T) {
	assert.Equal(t, "$58,000", FormatSalary(58000))
	assert.Equal(t, "$0", FormatSalary(0))
	assert.Equal(t, "$950", FormatSalary(950))
	assert.Equal(t, "$1,250,000", FormatSalary(1250000))
	assert.Equal(t, "-$500", FormatSalary(-500))
}

func TestSortBySalary(t *testing.T) {
	result := sampleResult()

	sorted := SortBySalary(result.Lineups)

	require.Len(t, sorted, 3)
	assert.Equal(t, 59000, sorted[0].Salary())
	assert.Equal(t, "1,4", sorted[0].Key())
	assert.Equal(t, 58000, sorted[1].Salary())
	assert.Equal(t, "1,3", sorted[1].Key(), "ties keep acceptance order")
	assert.Equal(t, 56000, sorted[2].Salary())
	assert.Equal(t, "2,3", result.Lineups[0].Key(), "input order is untouched")
}

func TestSummarize(t *testing.T) {
	summary := Summarize(sampleResult())

	assert.Equal(t, 3, summary.Generated)
	assert.Equal(t, 4, summary.Requested)
	assert.InDelta(t, 57666.67, summary.MeanSalary, 0.01)
	assert.InDelta(t, math.Sqrt((1666.67*1666.67+1333.33*1333.33+333.33*333.33)/2), summary.StdDevSalary, 0.5)
	assert.Equal(t, 56000, summary.MinSalary)
	assert.Equal(t, 59000, summary.MaxSalary)
	assert.Equal(t, 4, summary.UniquePlayers)
	assert.InDelta(t, 37.0/3, summary.AttemptsPerLineup, 1e-9)
	assert.Equal(t, int64(120), summary.ElapsedMs)
}

func TestSummarize_EmptyAndSingle(t *testing.T) {
	empty := Summarize(&optimizer.Result{Requested: 5, Exhausted: true})
	assert.Equal(t, 0, empty.Generated)
	assert.Zero(t, empty.MeanSalary)

	result := sampleResult()
	result.Lineups = result.Lineups[:1]
	single := Summarize(result)
	assert.Equal(t, 56000.0, single.MeanSalary)
	assert.Zero(t, single.StdDevSalary)
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, sampleResult()))
	out := buf.String()

	first := strings.Index(out, "Lineup 1  ($59,000)")
	last := strings.Index(out, "Lineup 3  ($56,000)")
	require.GreaterOrEqual(t, first, 0)
	assert.Greater(t, last, first)

	assert.Contains(t, out, "Stephen Curry")
	assert.Contains(t, out, "Liked player exposure")
	assert.Contains(t, out, "66.7%")
	assert.Contains(t, out, "3 of 4 requested (search exhausted)")
	assert.Contains(t, out, "Rejected: slot_fill")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleResult()))

	var meta Metadata
	require.NoError(t, json.Unmarshal(buf.Bytes(), &meta))

	assert.Equal(t, "run-1", meta.Summary.RunID)
	require.Len(t, meta.Lineups, 3)
	assert.Equal(t, 1, meta.Lineups[0].Rank)
	assert.Equal(t, "$59,000", meta.Lineups[0].SalaryDisplay)
	assert.Equal(t, "PG", meta.Lineups[0].Players[0].Slot)
	require.Len(t, meta.Exposures, 1)
	assert.Equal(t, 2, meta.Exposures[0].Count)
	assert.InDelta(t, 66.67, meta.Exposures[0].Percentage, 0.01)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleResult()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "PG,C", lines[0])
	assert.Equal(t, "1:Stephen Curry,4:Nikola Jokic", lines[1])

	result := sampleResult()
	result.Template = "nba-fanduel"
	buf.Reset()
	require.NoError(t, WriteCSV(&buf, result))
	assert.Contains(t, buf.String(), "1 - Stephen Curry")

	assert.Error(t, WriteCSV(&buf, &optimizer.Result{}))
}

func TestWrite_DispatchesByFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "JSON", sampleResult()))
	assert.True(t, json.Valid(buf.Bytes()))

	assert.ErrorContains(t, Write(&buf, "xml", sampleResult()), "unsupported output format")
}

func TestPlatformOf(t *testing.T) {
	assert.Equal(t, PlatformDraftKings, PlatformOf("nfl-draftkings"))
	assert.Equal(t, PlatformFanDuel, PlatformOf("nba-fanduel"))
	assert.Equal(t, "", PlatformOf("custom"))
}
