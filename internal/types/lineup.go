package types

import "strings"

// KeySeparator joins player ids in a lineup composition key
const KeySeparator = ","

// Lineup is one player per roster slot, in slot order. Build it with
// NewLineup; the key and salary are computed once and the value is never
// changed afterwards.
type Lineup struct {
	Slots   []string `json:"slots"`
	Players []Player `json:"players"`
	key     string
	salary  int
}

// NewLineup creates a lineup from slot codes and the players filling them.
// slots and players must have the same length.
func NewLineup(slots []string, players []Player) Lineup {
	s := make([]string, len(slots))
	copy(s, slots)
	p := make([]Player, len(players))
	copy(p, players)

	ids := make([]string, len(p))
	salary := 0
	for i, player := range p {
		ids[i] = player.ID
		salary += player.Salary
	}

	return Lineup{
		Slots:   s,
		Players: p,
		key:     strings.Join(ids, KeySeparator),
		salary:  salary,
	}
}

// Key is the composition key: player ids joined in slot order
func (l Lineup) Key() string {
	return l.key
}

// Salary is the summed salary of all players
func (l Lineup) Salary() int {
	return l.salary
}

// Contains reports whether the player with the given id is in the lineup
func (l Lineup) Contains(playerID string) bool {
	for _, p := range l.Players {
		if p.ID == playerID {
			return true
		}
	}
	return false
}

// LikedPlayers returns the liked players in slot order
func (l Lineup) LikedPlayers() []Player {
	liked := make([]Player, 0)
	for _, p := range l.Players {
		if p.IsLiked() {
			liked = append(liked, p)
		}
	}
	return liked
}
