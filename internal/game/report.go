package game

import (
	"fmt"
	"sort"
	"strings"
)

// EndReason says why a match finished.
type EndReason int

const (
	ReasonNone EndReason = iota
	ReasonTimeLimit
	ReasonScore
)

func (r EndReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonTimeLimit:
		return "time_limit"
	case ReasonScore:
		return "score"
	default:
		return "unknown"
	}
}

// Standing is one character's line on the scoreboard.
type Standing struct {
	ID     EntityID
	Name   string
	Kind   EntityKind
	Kills  int
	Deaths int
}

// Result summarises a finished match.
type Result struct {
	MatchID   string
	Winner    string // character name, or "Time Limit"
	Reason    EndReason
	Duration  float64 // seconds of simulated play
	Ticks     int
	Standings []Standing
}

// PlayerWon reports whether the winner is the player character.
func (r Result) PlayerWon() bool {
	for _, s := range r.Standings {
		if s.Kind == KindPlayer {
			return r.Reason == ReasonScore && s.Name == r.Winner
		}
	}
	return false
}

// Standings ranks the characters of the running match.
func (e *Engine) Standings() []Standing {
	return e.standings()
}

func (e *Engine) standings() []Standing {
	var chars []*Entity
	for _, ent := range e.entities {
		if ent.IsCharacter() {
			chars = append(chars, ent)
		}
	}
	return rankStandings(chars)
}

// rankStandings orders by kills descending, then deaths ascending. Equal
// records keep collection order.
func rankStandings(chars []*Entity) []Standing {
	out := make([]Standing, 0, len(chars))
	for _, ent := range chars {
		c := ent.Character
		out = append(out, Standing{
			ID:     ent.ID,
			Name:   c.Name,
			Kind:   ent.Kind,
			Kills:  c.Kills,
			Deaths: c.Deaths,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Kills != out[j].Kills {
			return out[i].Kills > out[j].Kills
		}
		return out[i].Deaths < out[j].Deaths
	})
	return out
}

// Scoreboard renders standings as an aligned text table.
func Scoreboard(standings []Standing) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-3s %-12s %5s %6s\n", "#", "NAME", "KILLS", "DEATHS")
	for i, s := range standings {
		fmt.Fprintf(&sb, "%-3d %-12s %5d %6d\n", i+1, s.Name, s.Kills, s.Deaths)
	}
	return sb.String()
}

// Summary formats a one-line description of the result.
func (r Result) Summary() string {
	switch r.Reason {
	case ReasonScore:
		return fmt.Sprintf("%s wins after %.1fs", r.Winner, r.Duration)
	case ReasonTimeLimit:
		leader := "nobody"
		if len(r.Standings) > 0 {
			leader = fmt.Sprintf("%s (%d kills)", r.Standings[0].Name, r.Standings[0].Kills)
		}
		return fmt.Sprintf("Time Limit reached, leader %s", leader)
	default:
		return "match unfinished"
	}
}
