package game

// Snapshot is a read-only copy of the match taken between ticks. Entities
// are deep copies in collection order, so a renderer can hold a snapshot
// while the engine keeps running.
type Snapshot struct {
	MatchID  string
	State    MatchState
	TimeLeft float64 // seconds
	Tick     int
	Entities []Entity
}

// Snapshot copies the current match state.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		MatchID:  e.matchID,
		State:    e.state,
		TimeLeft: e.timeLeft,
		Tick:     e.tick,
		Entities: make([]Entity, len(e.entities)),
	}
	for i, ent := range e.entities {
		s.Entities[i] = ent.clone()
	}
	return s
}

// Characters returns the player and bots of the snapshot, in collection order.
func (s Snapshot) Characters() []Entity {
	var out []Entity
	for _, ent := range s.Entities {
		if ent.IsCharacter() {
			out = append(out, ent)
		}
	}
	return out
}

// Player returns the player entity, if present.
func (s Snapshot) Player() (Entity, bool) {
	for _, ent := range s.Entities {
		if ent.Kind == KindPlayer {
			return ent, true
		}
	}
	return Entity{}, false
}

// CountKind returns how many entities of kind k the snapshot holds.
func (s Snapshot) CountKind(k EntityKind) int {
	n := 0
	for _, ent := range s.Entities {
		if ent.Kind == k {
			n++
		}
	}
	return n
}

// Standings ranks the characters of the snapshot.
func (s Snapshot) Standings() []Standing {
	chars := s.Characters()
	ptrs := make([]*Entity, len(chars))
	for i := range chars {
		ptrs[i] = &chars[i]
	}
	return rankStandings(ptrs)
}
