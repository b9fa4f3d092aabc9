package types

import "strings"

// Player is a candidate from the slate's player pool. It is never mutated
// once the pool has been loaded.
type Player struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name"`
	Team     string `json:"team,omitempty"`
	Position string `json:"position" validate:"required"` // as listed by the site, e.g. "PG/SG"
	Salary   int    `json:"salary" validate:"gt=0"`
	// Positions holds the roster slot codes this player may fill ("PG", "G", "UTIL").
	Positions []string `json:"positions" validate:"min=1,dive,required"`
	// Liked is the desired fraction of lineups containing this player. Zero means
	// the player carries no liked bias.
	Liked float64 `json:"liked,omitempty" validate:"gte=0,lte=1"`
}

// IsLiked reports whether the player carries an exposure target
func (p Player) IsLiked() bool {
	return p.Liked > 0
}

// EligibleFor reports whether the player can fill a slot with the given code
func (p Player) EligibleFor(code string) bool {
	for _, pos := range p.Positions {
		if pos == code {
			return true
		}
	}
	return false
}

// NaturalPositions splits the listed position string ("PG/SG") into its parts
func (p Player) NaturalPositions() []string {
	return SplitPositions(p.Position)
}

// SplitPositions splits a site position string on "/" and trims blanks.
func SplitPositions(listed string) []string {
	parts := strings.Split(listed, "/")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.ToUpper(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
