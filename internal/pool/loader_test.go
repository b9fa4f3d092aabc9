package pool

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stitts-dev/lineupgen/internal/optimizer"
	"github.com/stitts-dev/lineupgen/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePool(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func draftKings(t *testing.T) optimizer.RosterTemplate {
	t.Helper()
	template, err := optimizer.GetTemplate("nba-draftkings")
	require.NoError(t, err)
	return template
}

func TestLoadFile_CSV(t *testing.T) {
	path := writePool(t, "pool.csv", `id,name,team,position,salary,liked
1,Stephen Curry,GSW,PG,"9,800",0.5
2,Jrue Holiday,BOS,PG/SG,6200,
3,Nikola Jokic,DEN,C,11200,0.3
`)

	players, err := LoadFile(path, draftKings(t))
	require.NoError(t, err)
	require.Len(t, players, 3)

	assert.Equal(t, "Stephen Curry", players[0].Name)
	assert.Equal(t, 9800, players[0].Salary)
	assert.Equal(t, 0.5, players[0].Liked)
	assert.Equal(t, []string{"PG", "G", "UTIL"}, players[0].Positions)

	assert.Equal(t, "PG/SG", players[1].Position)
	assert.Equal(t, []string{"PG", "SG", "G", "UTIL"}, players[1].Positions)
	assert.False(t, players[1].IsLiked())

	assert.Equal(t, []string{"C", "UTIL"}, players[2].Positions)
}

func TestLoadFile_CSVWithoutLikedColumn(t *testing.T) {
	path := writePool(t, "pool.csv", "Position,Salary,Name,ID\nSF,7000,Jayson Tatum,10\n")

	players, err := LoadFile(path, draftKings(t))
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "10", players[0].ID)
	assert.Equal(t, []string{"SF", "F", "UTIL"}, players[0].Positions)
}

func TestLoadFile_JSON(t *testing.T) {
	path := writePool(t, "pool.json", `[
  {"id": "a", "name": "A", "team": "LAL", "position": "SF/PF", "salary": 8000, "liked": 0.25},
  {"id": "b", "name": "B", "team": "LAL", "position": "C", "salary": 5000}
]`)

	template, err := optimizer.GetTemplate("nba-fanduel")
	require.NoError(t, err)

	players, err := LoadFile(path, template)
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, []string{"SF", "PF"}, players[0].Positions)
	assert.Equal(t, 0.25, players[0].Liked)
	assert.Equal(t, []string{"C"}, players[1].Positions)
}

func TestLoadFile_Errors(t *testing.T) {
	template := draftKings(t)

	tests := []struct {
		name    string
		file    string
		content string
		errText string
	}{
		{"unsupported extension", "pool.txt", "id", "unsupported pool file format"},
		{"missing column", "pool.csv", "id,name,position\n1,A,PG\n", `missing required column "salary"`},
		{"bad salary", "pool.csv", "id,name,position,salary\n1,A,PG,lots\n", "invalid salary"},
		{"bad liked", "pool.csv", "id,name,position,salary,liked\n1,A,PG,5000,high\n", "invalid liked weight"},
		{"empty", "pool.csv", "id,name,position,salary\n", "player pool is empty"},
		{"zero salary", "pool.csv", "id,name,position,salary\n1,A,PG,0\n", "invalid player"},
		{"no eligible slot", "pool.csv", "id,name,position,salary\n1,A,QB,5000\n", "invalid player"},
		{"liked above one", "pool.json", `[{"id":"1","name":"A","position":"PG","salary":5000,"liked":1.5}]`, "invalid player"},
		{"duplicate id", "pool.csv", "id,name,position,salary\n1,A,PG,5000\n1,B,SG,5000\n", "duplicate player id"},
		{"malformed json", "pool.json", `{"id":`, "failed to decode players"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writePool(t, tt.file, tt.content), template)
			assert.ErrorContains(t, err, tt.errText)
		})
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.csv"), draftKings(t))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApplyLikes(t *testing.T) {
	players := []types.Player{
		{ID: "a", Position: "PG", Salary: 5000, Positions: []string{"PG"}},
		{ID: "b", Position: "SG", Salary: 5000, Positions: []string{"SG"}, Liked: 0.2},
	}

	liked, err := ApplyLikes(players, map[string]float64{"a": 0.4, "b": 1})
	require.NoError(t, err)
	assert.Equal(t, 0.4, liked[0].Liked)
	assert.Equal(t, 1.0, liked[1].Liked)
	assert.Equal(t, 0.0, players[0].Liked, "input pool is not modified")

	_, err = ApplyLikes(players, map[string]float64{"zzz": 0.5})
	assert.ErrorIs(t, err, ErrUnknownPlayer)

	_, err = ApplyLikes(players, map[string]float64{"a": 0})
	assert.Error(t, err)

	_, err = ApplyLikes(players, map[string]float64{"a": 1.2})
	assert.Error(t, err)
}

func TestParseLikes(t *testing.T) {
	likes, err := ParseLikes([]string{"curry=0.5", " jokic = 30% ", ""})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"curry": 0.5, "jokic": 0.3}, likes)

	_, err = ParseLikes([]string{"curry"})
	assert.ErrorContains(t, err, "expected id=weight")

	_, err = ParseLikes([]string{"curry=half"})
	assert.ErrorContains(t, err, "invalid weight")
}
