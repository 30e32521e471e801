package main

import (
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/Garsondee/arena-blitz/internal/game"
)

const (
	tickDt        = 1.0 / 60.0
	preKillWindow = 60 // ticks before the first kill counted as the opening exchange
)

type actorStats struct {
	name   string
	shots  int
	hits   int // damage taken
	deaths int
}

type runStats struct {
	runIndex int
	seed     int64

	finished bool
	result   game.Result
	ticks    int

	shots          int
	hits           int
	kills          int
	respawns       int
	expired        int
	firstShotTick  int
	firstHitTick   int
	firstKillTick  int
	lastKillTick   int
	openingHits    int
	killsByName    map[string]int
	actors         []actorStats
	standingsTable string
	logText        string
}

func main() {
	var runs int
	var seconds float64
	var seedBase int64
	var seedStep int64
	var bots int
	var score int
	var autopilot bool
	var verbose bool

	flag.IntVar(&runs, "runs", 5, "number of headless matches")
	flag.Float64Var(&seconds, "seconds", 180, "match duration in seconds")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&bots, "bots", 5, "bots per match")
	flag.IntVar(&score, "score", 15, "kills needed to win")
	flag.BoolVar(&autopilot, "autopilot", true, "player runs the bot decision loop")
	flag.BoolVar(&verbose, "verbose", false, "print the full match log of every run")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if seconds <= 0 {
		fmt.Println("error: -seconds must be > 0")
		return
	}
	if bots < 0 || score <= 0 {
		fmt.Println("error: -bots must be >= 0 and -score > 0")
		return
	}

	fmt.Printf("=== Headless Arena Report ===\n")
	fmt.Printf("runs=%d seconds=%.0f bots=%d score=%d autopilot=%v seed_base=%d seed_step=%d\n\n",
		runs, seconds, bots, score, autopilot, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runMatch(i+1, seed, seconds, bots, score, autopilot, verbose)
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

func runMatch(runIndex int, seed int64, seconds float64, bots, score int, autopilot, verbose bool) runStats {
	tm := game.NewTestMatch(
		game.WithMatchSeed(seed),
		game.WithDuration(seconds),
		game.WithBotCount(bots),
		game.WithScoreToWin(score),
		game.WithAutopilot(autopilot),
	)
	// One extra second of ticks absorbs float drift in the timer.
	maxTicks := int(seconds/tickDt) + 60
	tm.RunUntil(func(tm *game.TestMatch) bool {
		return tm.Engine.State() == game.StateGameOver
	}, maxTicks, tickDt)

	return collect(runIndex, seed, tm.Engine, verbose)
}

func collect(runIndex int, seed int64, eng *game.Engine, verbose bool) runStats {
	ml := eng.Log()
	entries := ml.Entries()
	killsByName := map[string]int{}
	for _, e := range ml.Filter(game.LogKill, "kill") {
		killsByName[e.Actor]++
	}
	res, finished := eng.Result()
	standings := eng.Standings()

	actors := make([]actorStats, 0, len(standings))
	for _, s := range standings {
		as := actorStats{name: s.Name}
		for _, e := range ml.FilterActor(s.Name) {
			switch {
			case e.Category == game.LogFire:
				as.shots++
			case e.Category == game.LogHit:
				as.hits++
			case e.Category == game.LogKill && e.Key == "death":
				as.deaths++
			}
		}
		actors = append(actors, as)
	}

	firstKill := firstTick(entries, game.LogKill, "kill")
	lastKill := -1
	if e, ok := ml.LastOf(game.LogKill, "kill"); ok {
		lastKill = e.Tick
	}
	openingHits := 0
	if firstKill >= 0 {
		for _, e := range ml.FilterTickRange(firstKill-preKillWindow, firstKill) {
			if e.Category == game.LogHit {
				openingHits++
			}
		}
	}
	logText := ""
	if verbose {
		logText = ml.Format()
	}

	return runStats{
		runIndex:       runIndex,
		seed:           seed,
		finished:       finished,
		result:         res,
		ticks:          eng.Tick(),
		shots:          ml.CountCategory(game.LogFire, "shot"),
		hits:           ml.CountCategory(game.LogHit, "damage"),
		kills:          ml.CountCategory(game.LogKill, "kill"),
		respawns:       ml.CountCategory(game.LogRespawn, "placed"),
		expired:        ml.CountCategory(game.LogProjectile, "expired"),
		firstShotTick:  firstTick(entries, game.LogFire, "shot"),
		firstHitTick:   firstTick(entries, game.LogHit, "damage"),
		firstKillTick:  firstKill,
		lastKillTick:   lastKill,
		openingHits:    openingHits,
		killsByName:    killsByName,
		actors:         actors,
		standingsTable: game.Scoreboard(standings),
		logText:        logText,
	}
}

func firstTick(entries []game.MatchLogEntry, category, key string) int {
	for _, e := range entries {
		if e.Category == category && e.Key == key {
			return e.Tick
		}
	}
	return -1
}

// classify labels a finished run for the aggregate.
func classify(rs runStats) string {
	switch {
	case !rs.finished:
		return "unfinished"
	case rs.result.Reason == game.ReasonScore && rs.result.PlayerWon():
		return "player_score_win"
	case rs.result.Reason == game.ReasonScore:
		return "bot_score_win"
	case rs.kills == 0:
		return "stalemate"
	default:
		return "time_limit"
	}
}

func accuracy(rs runStats) float64 {
	if rs.shots == 0 {
		return 0
	}
	return float64(rs.hits) / float64(rs.shots) * 100
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	if rs.finished {
		fmt.Printf("outcome: %s winner=%s reason=%s duration=%.1fs ticks=%d\n",
			classify(rs), rs.result.Winner, rs.result.Reason, rs.result.Duration, rs.ticks)
	} else {
		fmt.Printf("outcome: %s ticks=%d\n", classify(rs), rs.ticks)
	}
	fmt.Printf("phase_markers: first_shot=%d first_hit=%d first_kill=%d last_kill=%d opening_hits=%d\n",
		rs.firstShotTick, rs.firstHitTick, rs.firstKillTick, rs.lastKillTick, rs.openingHits)
	fmt.Printf("event_totals: shots=%d hits=%d expired=%d kills=%d respawns=%d accuracy=%.1f%%\n",
		rs.shots, rs.hits, rs.expired, rs.kills, rs.respawns, accuracy(rs))
	fmt.Printf("kills_by: %s\n", joinCounts(rs.killsByName))
	fmt.Print(rs.standingsTable)
	for _, a := range rs.actors {
		fmt.Printf("  %-12s shots=%d hits_taken=%d deaths=%d\n", a.name, a.shots, a.hits, a.deaths)
	}
	if rs.logText != "" {
		fmt.Println("match_log:")
		fmt.Print(rs.logText)
	}
	fmt.Println()
}

func printAggregate(all []runStats) {
	totalShots := 0
	totalHits := 0
	totalKills := 0
	totalDuration := 0.0
	finished := 0
	killTicks := make([]int, 0, len(all))
	outcomes := map[string]int{}
	wins := map[string]int{}

	for _, rs := range all {
		totalShots += rs.shots
		totalHits += rs.hits
		totalKills += rs.kills
		if rs.finished {
			finished++
			totalDuration += rs.result.Duration
			wins[rs.result.Winner]++
		}
		if rs.firstKillTick >= 0 {
			killTicks = append(killTicks, rs.firstKillTick)
		}
		outcomes[classify(rs)]++
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d finished=%d\n", len(all), finished)
	fmt.Printf("avg_events_per_run: shots=%.1f hits=%.1f kills=%.1f\n",
		avg(totalShots, len(all)), avg(totalHits, len(all)), avg(totalKills, len(all)))
	if totalShots > 0 {
		fmt.Printf("overall_accuracy=%.1f%%\n", float64(totalHits)/float64(totalShots)*100)
	}
	if finished > 0 {
		fmt.Printf("avg_duration=%.1fs\n", totalDuration/float64(finished))
	}
	fmt.Printf("first_kill_avg_tick=%s\n", avgTickString(killTicks))
	fmt.Printf("outcomes: %s\n", joinCounts(outcomes))
	fmt.Printf("winners: %s\n", joinCounts(wins))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func joinCounts(m map[string]int) string {
	if len(m) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, m[k])
	}
	return strings.Join(parts, " ")
}
