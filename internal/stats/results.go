package stats

// Status tells the caller whether a result carries data.
type Status string

const (
	StatusOK               Status = "ok"
	StatusNotFound         Status = "not_found"
	StatusNoData           Status = "no_data"
	StatusInsufficientData Status = "insufficient_data"
)

// Form bands for RecentForm.
const (
	FormHot              = "hot"
	FormGood             = "good"
	FormNeedsImprovement = "needs improvement"
)

// Metric families accepted by ComparePlayers.
const (
	MetricRuns    = "runs"
	MetricWickets = "wickets"
)

// Leaderboard categories accepted by TopPerformers.
const (
	CategoryBatting = "batting"
	CategoryBowling = "bowling"
)

// BattingSummary aggregates every batting row whose player_name matched the
// query. When several names match, the figures belong to PlayerName (the
// first name inserted) and MatchedPlayers lists them all.
type BattingSummary struct {
	Status         Status   `json:"status"`
	Query          string   `json:"query"`
	PlayerName     string   `json:"player_name,omitempty"`
	Innings        int      `json:"innings"`
	TotalRuns      int      `json:"total_runs"`
	Average        float64  `json:"average"`
	HighestScore   int      `json:"highest_score"`
	StrikeRate     float64  `json:"strike_rate"`
	Fours          int      `json:"fours"`
	Sixes          int      `json:"sixes"`
	BallsFaced     int      `json:"balls_faced"`
	MatchedPlayers []string `json:"matched_players,omitempty"`
}

// BowlingSummary aggregates bowling rows for the first matched player.
type BowlingSummary struct {
	Status         Status   `json:"status"`
	Query          string   `json:"query"`
	PlayerName     string   `json:"player_name,omitempty"`
	Matches        int      `json:"matches"`
	Wickets        int      `json:"wickets"`
	RunsConceded   int      `json:"runs_conceded"`
	BowlingAverage float64  `json:"bowling_average"`
	Economy        float64  `json:"economy"`
	Maidens        int      `json:"maidens"`
	DotBalls       int      `json:"dot_balls"`
	Balls          int      `json:"balls"`
	MatchedPlayers []string `json:"matched_players,omitempty"`
}

// PlayerComparison is one grouped player row of a comparison. Only the
// fields of the requested metric family are populated.
type PlayerComparison struct {
	PlayerName   string  `json:"player_name"`
	TotalRuns    int     `json:"total_runs,omitempty"`
	Average      float64 `json:"average,omitempty"`
	StrikeRate   float64 `json:"strike_rate,omitempty"`
	TotalWickets int     `json:"total_wickets,omitempty"`
	Economy      float64 `json:"economy,omitempty"`
	RunsConceded int     `json:"runs_conceded,omitempty"`
}

// Comparison holds every grouped row matching either fragment.
type Comparison struct {
	Status  Status             `json:"status"`
	Player1 string             `json:"player1"`
	Player2 string             `json:"player2"`
	Metric  string             `json:"metric"`
	Players []PlayerComparison `json:"players,omitempty"`
}

// LeaderboardEntry is one ranked player.
type LeaderboardEntry struct {
	Rank         int     `json:"rank"`
	PlayerName   string  `json:"player_name"`
	Appearances  int     `json:"appearances"`
	TotalRuns    int     `json:"total_runs,omitempty"`
	Average      float64 `json:"average,omitempty"`
	TotalWickets int     `json:"total_wickets,omitempty"`
	Economy      float64 `json:"economy,omitempty"`
}

// Leaderboard ranks players with at least two recorded appearances.
type Leaderboard struct {
	Status   Status             `json:"status"`
	Category string             `json:"category"`
	Limit    int                `json:"limit"`
	Entries  []LeaderboardEntry `json:"entries,omitempty"`
}

// MatchSummary aggregates team totals across all matches.
type MatchSummary struct {
	Status       Status  `json:"status"`
	TotalMatches int     `json:"total_matches"`
	AverageRuns  float64 `json:"average_runs"`
	HighestScore int     `json:"highest_score"`
	LowestScore  int     `json:"lowest_score"`
}

// FormInnings is one recent batting row, newest first.
type FormInnings struct {
	PlayerName string  `json:"player_name"`
	Runs       int     `json:"runs"`
	Balls      int     `json:"balls"`
	StrikeRate float64 `json:"strike_rate"`
	Fours      int     `json:"fours"`
	Sixes      int     `json:"sixes"`
}

// RecentForm covers up to the last RecentFormWindow innings.
type RecentForm struct {
	Status         Status        `json:"status"`
	Query          string        `json:"query"`
	Innings        []FormInnings `json:"innings,omitempty"`
	Average        float64       `json:"average"`
	Form           string        `json:"form,omitempty"`
	MatchedPlayers []string      `json:"matched_players,omitempty"`
}

// Scores returns the runs of each innings in the window, newest first.
func (f RecentForm) Scores() []int {
	scores := make([]int, len(f.Innings))
	for i, in := range f.Innings {
		scores[i] = in.Runs
	}
	return scores
}

// FormBand classifies a recent batting average.
func FormBand(avg float64) string {
	switch {
	case avg > 30:
		return FormHot
	case avg > 15:
		return FormGood
	default:
		return FormNeedsImprovement
	}
}
