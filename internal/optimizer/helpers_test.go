package optimizer

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/stitts-dev/lineupgen/internal/types"
)

// quietLog keeps test output free of run logs
func quietLog() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}

// sequenceSource replays fixed draws, wrapping each into [0, n)
type sequenceSource struct {
	values []int
	next   int
}

func (s *sequenceSource) Intn(n int) int {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v % n
}

func player(id, position string, salary int, liked float64, codes ...string) types.Player {
	if len(codes) == 0 {
		codes = []string{position}
	}
	return types.Player{
		ID:        id,
		Name:      "Player " + id,
		Position:  position,
		Salary:    salary,
		Positions: codes,
		Liked:     liked,
	}
}

// createTestPlayers builds perPosition players for each natural position with
// salaries spread between 3500 and 8999, mapped onto the template's codes
func createTestPlayers(template RosterTemplate, positions []string, perPosition int) []types.Player {
	players := make([]types.Player, 0, len(positions)*perPosition)
	n := 0
	for _, pos := range positions {
		for i := 0; i < perPosition; i++ {
			n++
			players = append(players, types.Player{
				ID:        fmt.Sprintf("%s%d", pos, i+1),
				Name:      fmt.Sprintf("%s Player %d", pos, i+1),
				Position:  pos,
				Salary:    3500 + (n*617)%5500,
				Positions: template.EligibleCodes([]string{pos}),
			})
		}
	}
	return players
}

// tenPlayerPool has two players per NBA position at 10000 each
func tenPlayerPool() []types.Player {
	players := make([]types.Player, 0, 10)
	for _, pos := range []string{"PG", "SG", "SF", "PF", "C"} {
		players = append(players,
			player(pos+"-a", pos, 10000, 0),
			player(pos+"-b", pos, 10000, 0),
		)
	}
	return players
}

func fiveSlotTemplate() RosterTemplate {
	return NewTemplate("test-five", []string{"PG", "SG", "SF", "PF", "C"}, 40000, 60000)
}

type countingObserver struct {
	attempts   int
	accepted   int
	rejections map[string]int
}

func (o *countingObserver) ObserveAttempt()  { o.attempts++ }
func (o *countingObserver) ObserveAccepted() { o.accepted++ }
func (o *countingObserver) ObserveRejected(reason string) {
	if o.rejections == nil {
		o.rejections = make(map[string]int)
	}
	o.rejections[reason]++
}
