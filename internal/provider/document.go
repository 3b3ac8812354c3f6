package provider

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Top-level keys of a match document.
const (
	keyID      = "_id"
	keyBatting = "latestBatting"
	keyBowling = "latestBowling"
	keyInnings = "innings1Balls"
)

var errNotObject = errors.New("expected JSON object")

// SplitDocuments reads a single JSON document or a JSON array of documents
// and returns each document's raw bytes.
func SplitDocuments(r io.Reader) ([]json.RawMessage, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read documents: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("decode documents: empty input")
	}

	if data[0] == '[' {
		var docs []json.RawMessage
		if err := json.Unmarshal(data, &docs); err != nil {
			return nil, fmt.Errorf("decode document array: %w", err)
		}
		return docs, nil
	}

	if !json.Valid(data) {
		return nil, fmt.Errorf("decode document: invalid JSON")
	}
	return []json.RawMessage{data}, nil
}

// ParseDocument normalizes one raw match document. Only a document that is not
// a JSON object is an error; missing or malformed substructures are skipped
// and reported in Document.Warnings.
func ParseDocument(raw json.RawMessage) (*Document, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil || top == nil {
		return nil, fmt.Errorf("parse document: %w", errNotObject)
	}

	doc := &Document{ID: documentID(top[keyID])}

	if entries, present, err := orderedEntries(top[keyBatting]); err != nil {
		doc.Warnings = append(doc.Warnings, fmt.Sprintf("%s skipped: %v", keyBatting, err))
	} else if present {
		for _, fields := range entries {
			if rec, ok := battingRecord(fields); ok {
				doc.Batting = append(doc.Batting, rec)
			}
		}
	}

	if entries, present, err := orderedEntries(top[keyBowling]); err != nil {
		doc.Warnings = append(doc.Warnings, fmt.Sprintf("%s skipped: %v", keyBowling, err))
	} else if present {
		for _, fields := range entries {
			if rec, ok := bowlingRecord(fields); ok {
				doc.Bowling = append(doc.Bowling, rec)
			}
		}
	}

	if raw := top[keyInnings]; !isAbsent(raw) {
		fields, err := decodeObject(raw)
		if err != nil {
			doc.Warnings = append(doc.Warnings, fmt.Sprintf("%s skipped: %v", keyInnings, err))
		} else {
			doc.Innings = &InningsTotals{
				TeamName:  ExtractString(fields, "teamName"),
				Runs:      ExtractInt(fields, "runs"),
				Overs:     ExtractString(fields, "overs"),
				Wickets:   ExtractInt(fields, "wickets"),
				MatchDate: ExtractString(fields, "matchDate"),
			}
		}
	}

	return doc, nil
}

func battingRecord(m map[string]interface{}) (BattingRecord, bool) {
	id := ExtractString(m, "playerID")
	if id == "" {
		return BattingRecord{}, false
	}
	// Only the literal marker "1" means dismissed.
	out, _ := m["isOut"].(string)
	return BattingRecord{
		PlayerID:     id,
		FirstName:    ExtractString(m, "firstName"),
		LastName:     ExtractString(m, "lastName"),
		BattingStyle: ExtractString(m, "battingStyle"),
		Team:         ExtractString(m, "teamName"),
		MatchID:      ExtractString(m, "matchID"),
		Runs:         ExtractInt(m, "runsScored"),
		Balls:        ExtractInt(m, "ballsFaced"),
		Fours:        ExtractInt(m, "fours"),
		Sixes:        ExtractInt(m, "sixers"),
		IsOut:        out == "1",
		HowOut:       ExtractString(m, "howOut"),
	}, true
}

func bowlingRecord(m map[string]interface{}) (BowlingRecord, bool) {
	id := ExtractString(m, "playerID")
	if id == "" {
		return BowlingRecord{}, false
	}
	overs := ExtractString(m, "overs")
	if overs == "" {
		overs = "0"
	}
	return BowlingRecord{
		PlayerID:     id,
		FirstName:    ExtractString(m, "firstName"),
		LastName:     ExtractString(m, "lastName"),
		BowlingStyle: ExtractString(m, "bowlingStyle"),
		Team:         ExtractString(m, "teamName"),
		MatchID:      ExtractString(m, "matchID"),
		Overs:        overs,
		Balls:        ExtractInt(m, "balls"),
		Runs:         ExtractInt(m, "runs"),
		Wickets:      ExtractInt(m, "wickets"),
		Maidens:      ExtractInt(m, "maidens"),
		DotBalls:     ExtractInt(m, "dotBalls"),
		Wides:        ExtractInt(m, "wides"),
		NoBalls:      ExtractInt(m, "noBalls"),
	}, true
}

// documentID resolves _id as {"$oid": "..."} or a scalar, else UnknownMatchID.
func documentID(raw json.RawMessage) string {
	if isAbsent(raw) {
		return UnknownMatchID
	}
	if fields, err := decodeObject(raw); err == nil {
		if oid := ExtractString(fields, "$oid"); oid != "" {
			return oid
		}
		return UnknownMatchID
	}

	var scalar interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&scalar); err != nil {
		return UnknownMatchID
	}
	if id := stringOf(scalar); id != "" {
		return id
	}
	return UnknownMatchID
}

// orderedEntries walks a JSON object and returns the values that are objects,
// in source key order. present is false for a missing or null section.
func orderedEntries(raw json.RawMessage) (entries []map[string]interface{}, present bool, err error) {
	if isAbsent(raw) {
		return nil, false, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, true, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, true, errNotObject
	}

	for dec.More() {
		if _, err := dec.Token(); err != nil {
			return nil, true, err
		}
		var value interface{}
		if err := dec.Decode(&value); err != nil {
			return nil, true, err
		}
		// Non-object entries (counters, flags) sit alongside player records.
		if fields, ok := value.(map[string]interface{}); ok {
			entries = append(entries, fields)
		}
	}
	return entries, true, nil
}

func decodeObject(raw json.RawMessage) (map[string]interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var fields map[string]interface{}
	if err := dec.Decode(&fields); err != nil || fields == nil {
		return nil, errNotObject
	}
	return fields, nil
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
