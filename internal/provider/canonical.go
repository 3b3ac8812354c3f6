// Package provider turns raw match-event JSON into canonical records. These
// structs are the contract between document parsing and the ingest loader:
// parsing outputs them, the loader writes them to the store.
package provider

import "strings"

// UnknownMatchID is used when a document carries no identifier.
const UnknownMatchID = "unknown"

// Document is one parsed match-event document.
type Document struct {
	ID       string
	Batting  []BattingRecord
	Bowling  []BowlingRecord
	Innings  *InningsTotals
	Warnings []string
}

// BattingRecord is one batter's innings as reported by the feed.
type BattingRecord struct {
	PlayerID     string
	FirstName    string
	LastName     string
	BattingStyle string
	Team         string
	MatchID      string // empty when the record carries no match reference
	Runs         int
	Balls        int
	Fours        int
	Sixes        int
	IsOut        bool
	HowOut       string
}

// FullName joins first and last name.
func (r BattingRecord) FullName() string {
	return FullName(r.FirstName, r.LastName)
}

// StrikeRate is runs per 100 balls faced.
func (r BattingRecord) StrikeRate() float64 {
	return StrikeRate(r.Runs, r.Balls)
}

// BowlingRecord is one bowler's spell as reported by the feed.
type BowlingRecord struct {
	PlayerID     string
	FirstName    string
	LastName     string
	BowlingStyle string
	Team         string
	MatchID      string
	Overs        string
	Balls        int
	Runs         int
	Wickets      int
	Maidens      int
	DotBalls     int
	Wides        int
	NoBalls      int
}

// FullName joins first and last name.
func (r BowlingRecord) FullName() string {
	return FullName(r.FirstName, r.LastName)
}

// Economy is runs conceded per six balls.
func (r BowlingRecord) Economy() float64 {
	return Economy(r.Runs, r.Balls)
}

// InningsTotals is the team total block of a document.
type InningsTotals struct {
	TeamName  string
	Runs      int
	Overs     string
	Wickets   int
	MatchDate string
}

// RunRate is runs per over for the innings.
func (i InningsTotals) RunRate() float64 {
	return RunRate(i.Runs, i.Overs)
}

// FullName joins name parts the way player_name snapshots are stored.
func FullName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}
