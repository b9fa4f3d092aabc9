package types

// ExposureRecord tracks how many accepted lineups contain a liked player
// against the number allowed for the run.
type ExposureRecord struct {
	PlayerID string  `json:"player_id"`
	Name     string  `json:"name"`
	Liked    float64 `json:"liked"`
	Count    int     `json:"count"`
	Max      int     `json:"max"`
}

// Remaining is how many more lineups may contain the player
func (r ExposureRecord) Remaining() int {
	return r.Max - r.Count
}

// Percentage is the share of generated lineups that contain the player
func (r ExposureRecord) Percentage(generated int) float64 {
	if generated == 0 {
		return 0
	}
	return float64(r.Count) / float64(generated) * 100
}
