// Package report renders stats results as plain text for chat agents and
// terminals.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/albapepper/cricket-stats/internal/stats"
)

// Batting renders a batting summary.
func Batting(s stats.BattingSummary) string {
	if s.Status != stats.StatusOK {
		return fmt.Sprintf("No batting data found for %s", s.Query)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Batting Statistics for %s:\n", s.PlayerName)
	fmt.Fprintf(&b, "- Innings: %d\n", s.Innings)
	fmt.Fprintf(&b, "- Total Runs: %d\n", s.TotalRuns)
	fmt.Fprintf(&b, "- Average: %.2f\n", s.Average)
	fmt.Fprintf(&b, "- Highest Score: %d\n", s.HighestScore)
	fmt.Fprintf(&b, "- Strike Rate: %.2f\n", s.StrikeRate)
	fmt.Fprintf(&b, "- Total Fours: %d\n", s.Fours)
	fmt.Fprintf(&b, "- Total Sixes: %d\n", s.Sixes)
	fmt.Fprintf(&b, "- Balls Faced: %d\n", s.BallsFaced)
	writeAlsoMatched(&b, s.PlayerName, s.MatchedPlayers)
	return b.String()
}

// Bowling renders a bowling summary.
func Bowling(s stats.BowlingSummary) string {
	if s.Status != stats.StatusOK {
		return fmt.Sprintf("No bowling data found for %s", s.Query)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Bowling Statistics for %s:\n", s.PlayerName)
	fmt.Fprintf(&b, "- Matches: %d\n", s.Matches)
	fmt.Fprintf(&b, "- Wickets: %d\n", s.Wickets)
	fmt.Fprintf(&b, "- Runs Conceded: %d\n", s.RunsConceded)
	fmt.Fprintf(&b, "- Bowling Average: %.2f\n", s.BowlingAverage)
	fmt.Fprintf(&b, "- Economy Rate: %.2f\n", s.Economy)
	fmt.Fprintf(&b, "- Maidens: %d\n", s.Maidens)
	fmt.Fprintf(&b, "- Dot Balls: %d\n", s.DotBalls)
	fmt.Fprintf(&b, "- Total Balls: %d\n", s.Balls)
	writeAlsoMatched(&b, s.PlayerName, s.MatchedPlayers)
	return b.String()
}

// Comparison renders a player comparison.
func Comparison(c stats.Comparison) string {
	if c.Status != stats.StatusOK {
		return fmt.Sprintf("Could not find data for both %s and %s", c.Player1, c.Player2)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Comparison of %s vs %s:\n", c.Player1, c.Player2)
	for _, p := range c.Players {
		fmt.Fprintf(&b, "\n%s:\n", p.PlayerName)
		if c.Metric == stats.MetricRuns {
			fmt.Fprintf(&b, "  - Total Runs: %d\n", p.TotalRuns)
			fmt.Fprintf(&b, "  - Average: %.2f\n", p.Average)
			fmt.Fprintf(&b, "  - Strike Rate: %.2f\n", p.StrikeRate)
		} else {
			fmt.Fprintf(&b, "  - Total Wickets: %d\n", p.TotalWickets)
			fmt.Fprintf(&b, "  - Economy: %.2f\n", p.Economy)
			fmt.Fprintf(&b, "  - Runs Conceded: %d\n", p.RunsConceded)
		}
	}
	return b.String()
}

// Leaderboard renders a top-performers table.
func Leaderboard(l stats.Leaderboard) string {
	if l.Status != stats.StatusOK {
		return fmt.Sprintf("No data found for %s", l.Category)
	}
	title := "Top Batsmen"
	if l.Category == stats.CategoryBowling {
		title = "Top Bowlers"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (Top %d):\n\n", title, l.Limit)
	for _, e := range l.Entries {
		if l.Category == stats.CategoryBowling {
			fmt.Fprintf(&b, "%d. %s: %d wickets (Eco: %.2f)\n", e.Rank, e.PlayerName, e.TotalWickets, e.Economy)
		} else {
			fmt.Fprintf(&b, "%d. %s: %d runs (Avg: %.2f)\n", e.Rank, e.PlayerName, e.TotalRuns, e.Average)
		}
	}
	return b.String()
}

// Matches renders the match summary.
func Matches(m stats.MatchSummary) string {
	if m.Status != stats.StatusOK {
		return "No match data available"
	}
	var b strings.Builder
	b.WriteString("Match Summary:\n")
	fmt.Fprintf(&b, "- Total Matches: %d\n", m.TotalMatches)
	fmt.Fprintf(&b, "- Average Team Score: %.1f\n", m.AverageRuns)
	fmt.Fprintf(&b, "- Highest Team Score: %d\n", m.HighestScore)
	fmt.Fprintf(&b, "- Lowest Team Score: %d\n", m.LowestScore)
	return b.String()
}

// Form renders a recent-form analysis.
func Form(f stats.RecentForm) string {
	if f.Status != stats.StatusOK {
		return fmt.Sprintf("No recent data found for %s", f.Query)
	}
	scores := make([]string, 0, len(f.Innings))
	for _, s := range f.Scores() {
		scores = append(scores, strconv.Itoa(s))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Recent Form for %s (Last %d innings):\n", f.Query, len(f.Innings))
	fmt.Fprintf(&b, "- Recent Scores: %s\n", strings.Join(scores, ", "))
	fmt.Fprintf(&b, "- Average in Recent Games: %.1f\n", f.Average)
	fmt.Fprintf(&b, "- Form: %s\n", strings.ToUpper(f.Form))
	if len(f.MatchedPlayers) > 1 {
		fmt.Fprintf(&b, "- Players matched: %s\n", strings.Join(f.MatchedPlayers, ", "))
	}
	return b.String()
}

// writeAlsoMatched lists other names the fragment matched.
func writeAlsoMatched(b *strings.Builder, shown string, matched []string) {
	var others []string
	for _, name := range matched {
		if name != shown {
			others = append(others, name)
		}
	}
	if len(others) > 0 {
		fmt.Fprintf(b, "Also matched: %s\n", strings.Join(others, ", "))
	}
}
