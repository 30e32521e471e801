package game

import (
	"fmt"
	"strings"
)

// Match log categories.
const (
	LogMatch      = "match"      // start, end
	LogFire       = "fire"       // shot
	LogHit        = "hit"        // damage
	LogKill       = "kill"       // death, kill
	LogRespawn    = "respawn"    // placed
	LogProjectile = "projectile" // expired
)

// MatchLogEntry is one recorded simulation event.
type MatchLogEntry struct {
	Tick     int
	Actor    string // character name, or "--" for match-wide events
	Category string
	Key      string
	Value    string
	NumVal   float64 // optional numeric payload for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=0042] Bot-3    kill       death          killed by Hero
func (e MatchLogEntry) String() string {
	return fmt.Sprintf("[T=%04d] %-8s %-10s %-14s %s",
		e.Tick, e.Actor, e.Category, e.Key, e.Value)
}

// MatchLog collects structured events for one match. It is reset by
// Engine.Start and is the machine-readable record used by tests and the
// headless report.
type MatchLog struct {
	entries []MatchLogEntry
}

// NewMatchLog returns an empty log.
func NewMatchLog() *MatchLog {
	return &MatchLog{}
}

// Add records a new entry.
func (ml *MatchLog) Add(tick int, actor, category, key, value string, numVal float64) {
	ml.entries = append(ml.entries, MatchLogEntry{
		Tick:     tick,
		Actor:    actor,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// Reset drops all entries.
func (ml *MatchLog) Reset() {
	ml.entries = ml.entries[:0]
}

func (ml *MatchLog) Len() int { return len(ml.entries) }

// Entries returns all recorded entries.
func (ml *MatchLog) Entries() []MatchLogEntry {
	return ml.entries
}

// Filter returns entries matching category and key. An empty string matches anything.
func (ml *MatchLog) Filter(category, key string) []MatchLogEntry {
	var out []MatchLogEntry
	for _, e := range ml.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterActor returns entries recorded for one character.
func (ml *MatchLog) FilterActor(name string) []MatchLogEntry {
	var out []MatchLogEntry
	for _, e := range ml.entries {
		if e.Actor == name {
			out = append(out, e)
		}
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (ml *MatchLog) FilterTickRange(fromTick, toTick int) []MatchLogEntry {
	var out []MatchLogEntry
	for _, e := range ml.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match category and key.
func (ml *MatchLog) CountCategory(category, key string) int {
	n := 0
	for _, e := range ml.entries {
		if (category == "" || e.Category == category) && (key == "" || e.Key == key) {
			n++
		}
	}
	return n
}

// LastOf returns the most recent entry matching category and key.
func (ml *MatchLog) LastOf(category, key string) (MatchLogEntry, bool) {
	for i := len(ml.entries) - 1; i >= 0; i-- {
		e := ml.entries[i]
		if (category == "" || e.Category == category) && (key == "" || e.Key == key) {
			return e, true
		}
	}
	return MatchLogEntry{}, false
}

// HasEntry reports whether an entry matches category, key and a value substring.
func (ml *MatchLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range ml.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log for t.Log output.
func (ml *MatchLog) Format() string {
	var sb strings.Builder
	for _, e := range ml.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// KillFeed returns the last n kill lines, oldest first.
func (ml *MatchLog) KillFeed(n int) []string {
	if n <= 0 {
		return nil
	}
	kills := ml.Filter(LogKill, "kill")
	if len(kills) > n {
		kills = kills[len(kills)-n:]
	}
	out := make([]string, len(kills))
	for i, e := range kills {
		out[i] = e.Actor + " " + e.Value
	}
	return out
}
