package pool

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/stitts-dev/lineupgen/internal/optimizer"
	"github.com/stitts-dev/lineupgen/internal/types"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported pool file format")
	ErrEmptyPool         = errors.New("player pool is empty")
	ErrUnknownPlayer     = errors.New("unknown player id")
)

var requiredColumns = []string{"id", "name", "position", "salary"}

// record is one row of a pool file before slot eligibility is resolved
type record struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Team     string  `json:"team"`
	Position string  `json:"position"`
	Salary   int     `json:"salary"`
	Liked    float64 `json:"liked"`
}

// LoadFile reads a .csv or .json player pool and resolves every player's
// eligible slot codes against the template.
func LoadFile(path string, template optimizer.RosterTemplate) ([]types.Player, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pool file: %w", err)
	}
	defer f.Close()

	var records []record
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		records, err = readCSV(f)
	case ".json":
		records, err = readJSON(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read pool file %s: %w", path, err)
	}

	return resolve(records, template)
}

func resolve(records []record, template optimizer.RosterTemplate) ([]types.Player, error) {
	if len(records) == 0 {
		return nil, ErrEmptyPool
	}

	players := make([]types.Player, 0, len(records))
	for _, r := range records {
		p := types.Player{
			ID:       strings.TrimSpace(r.ID),
			Name:     strings.TrimSpace(r.Name),
			Team:     strings.TrimSpace(r.Team),
			Position: strings.TrimSpace(r.Position),
			Salary:   r.Salary,
			Liked:    r.Liked,
		}
		p.Positions = template.EligibleCodes(p.NaturalPositions())
		players = append(players, p)
	}

	if err := Validate(players); err != nil {
		return nil, err
	}
	return players, nil
}

// Validate checks every player and rejects duplicate ids
func Validate(players []types.Player) error {
	validate := validator.New()
	seen := make(map[string]bool, len(players))

	for i, p := range players {
		if err := validate.Struct(p); err != nil {
			return fmt.Errorf("invalid player %q (row %d): %w", p.ID, i+1, err)
		}
		if seen[p.ID] {
			return fmt.Errorf("duplicate player id %q", p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}

// ApplyLikes overlays liked weights onto the pool. Weights must be in (0, 1].
func ApplyLikes(players []types.Player, likes map[string]float64) ([]types.Player, error) {
	index := make(map[string]int, len(players))
	for i, p := range players {
		index[p.ID] = i
	}

	out := make([]types.Player, len(players))
	copy(out, players)

	for id, weight := range likes {
		i, ok := index[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPlayer, id)
		}
		if weight <= 0 || weight > 1 {
			return nil, fmt.Errorf("liked weight for %s must be in (0, 1], got %v", id, weight)
		}
		out[i].Liked = weight
	}
	return out, nil
}

// ParseLikes parses "id=weight" pairs. A weight may be written as a
// fraction (0.3) or a percentage (30%).
func ParseLikes(pairs []string) (map[string]float64, error) {
	likes := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		id, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid like %q, expected id=weight", pair)
		}

		raw = strings.TrimSpace(raw)
		scale := 1.0
		if strings.HasSuffix(raw, "%") {
			raw = strings.TrimSuffix(raw, "%")
			scale = 100
		}
		weight, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight in like %q: %w", pair, err)
		}
		likes[strings.TrimSpace(id)] = weight / scale
	}
	return likes, nil
}

func readJSON(r io.Reader) ([]record, error) {
	var records []record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode players: %w", err)
	}
	return records, nil
}

func readCSV(r io.Reader) ([]record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}

	field := func(row []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var records []record
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		salary, err := strconv.Atoi(strings.ReplaceAll(field(row, "salary"), ",", ""))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid salary %q", line, field(row, "salary"))
		}

		var liked float64
		if raw := field(row, "liked"); raw != "" {
			liked, err = strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid liked weight %q", line, raw)
			}
		}

		records = append(records, record{
			ID:       field(row, "id"),
			Name:     field(row, "name"),
			Team:     field(row, "team"),
			Position: field(row, "position"),
			Salary:   salary,
			Liked:    liked,
		})
	}
	return records, nil
}
