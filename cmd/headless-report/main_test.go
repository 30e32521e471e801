package main

import (
	"strings"
	"testing"

	"github.com/Garsondee/arena-blitz/internal/game"
)

func TestClassify(t *testing.T) {
	player := []game.Standing{{Name: "Hero", Kind: game.KindPlayer, Kills: 15}}
	bot := []game.Standing{{Name: "Bot-2", Kind: game.KindBot, Kills: 15}}

	tests := []struct {
		name string
		rs   runStats
		want string
	}{
		{"unfinished", runStats{}, "unfinished"},
		{"player wins", runStats{finished: true, result: game.Result{Winner: "Hero", Reason: game.ReasonScore, Standings: player}}, "player_score_win"},
		{"bot wins", runStats{finished: true, result: game.Result{Winner: "Bot-2", Reason: game.ReasonScore, Standings: bot}}, "bot_score_win"},
		{"no kills", runStats{finished: true, result: game.Result{Reason: game.ReasonTimeLimit}}, "stalemate"},
		{"time limit", runStats{finished: true, kills: 3, result: game.Result{Reason: game.ReasonTimeLimit}}, "time_limit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify(tt.rs); got != tt.want {
				t.Fatalf("classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAccuracy(t *testing.T) {
	if got := accuracy(runStats{}); got != 0 {
		t.Fatalf("expected 0 accuracy with no shots, got %.1f", got)
	}
	if got := accuracy(runStats{shots: 8, hits: 2}); got != 25 {
		t.Fatalf("expected 25%% accuracy, got %.1f", got)
	}
}

func TestJoinCounts(t *testing.T) {
	if got := joinCounts(nil); got != "none" {
		t.Fatalf("expected none, got %q", got)
	}
	if got := joinCounts(map[string]int{"b": 2, "a": 1}); got != "a=1 b=2" {
		t.Fatalf("expected sorted pairs, got %q", got)
	}
}

func TestRunMatch_Finishes(t *testing.T) {
	rs := runMatch(1, 7, 5, 3, 15, true, false)
	if !rs.finished {
		t.Fatalf("expected the match to end within its duration, ticks=%d", rs.ticks)
	}
	if rs.ticks < 290 || rs.ticks > 310 {
		t.Fatalf("expected about 300 ticks for 5s at 60Hz, got %d", rs.ticks)
	}
	if rs.hits > rs.shots {
		t.Fatalf("hits (%d) cannot exceed shots (%d)", rs.hits, rs.shots)
	}
	if rs.respawns < 4 {
		t.Fatalf("expected an initial placement per character, got %d", rs.respawns)
	}
}

func TestRunMatch_ActorBreakdownMatchesTotals(t *testing.T) {
	rs := runMatch(1, 11, 20, 3, 50, true, true)
	if len(rs.actors) != 4 {
		t.Fatalf("expected one row per character, got %d", len(rs.actors))
	}
	shots, hits, deaths := 0, 0, 0
	for _, a := range rs.actors {
		shots += a.shots
		hits += a.hits
		deaths += a.deaths
	}
	if shots != rs.shots || hits != rs.hits {
		t.Fatalf("per-actor shots=%d hits=%d, totals shots=%d hits=%d", shots, hits, rs.shots, rs.hits)
	}
	if deaths != rs.kills {
		t.Fatalf("every credited kill has a death row: deaths=%d kills=%d", deaths, rs.kills)
	}
	if rs.firstKillTick >= 0 {
		if rs.lastKillTick < rs.firstKillTick {
			t.Fatalf("last kill %d before first kill %d", rs.lastKillTick, rs.firstKillTick)
		}
		if rs.openingHits == 0 {
			t.Fatalf("a kill needs hits in the ticks before it")
		}
	}
	if !strings.Contains(rs.logText, "match") {
		t.Fatalf("verbose run should carry the formatted log")
	}
}
