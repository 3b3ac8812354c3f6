package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/albapepper/cricket-stats/internal/config"
	"github.com/albapepper/cricket-stats/internal/db"
	"github.com/albapepper/cricket-stats/internal/metrics"
	"github.com/albapepper/cricket-stats/internal/provider"
)

// Options tunes loader behaviour.
type Options struct {
	// DedupePerformances skips a batting/bowling row when an identical row
	// (same match, player and stat columns) already exists. Off by default:
	// re-ingesting a document appends duplicate performance rows.
	DedupePerformances bool
}

// Loader writes parsed documents into the store.
type Loader struct {
	db      *db.DB
	opts    Options
	metrics *metrics.Collector
	logger  *slog.Logger
}

// NewLoader creates a Loader. m may be nil.
func NewLoader(store *db.DB, opts Options, m *metrics.Collector, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{db: store, opts: opts, metrics: m, logger: logger}
}

// LoadFile ingests a JSON file holding one document or an array of documents.
func (l *Loader) LoadFile(ctx context.Context, path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	result, err := l.LoadJSON(ctx, f)
	if err != nil {
		return result, err
	}
	l.logger.Info("Data loaded", "path", path, "run_id", result.RunID, "summary", result.Summary())
	return result, nil
}

// LoadJSON ingests documents read from r. Only unreadable or invalid JSON is
// an error; per-document failures are recorded in the Result.
func (l *Loader) LoadJSON(ctx context.Context, r io.Reader) (Result, error) {
	docs, err := provider.SplitDocuments(r)
	if err != nil {
		return Result{}, err
	}
	return l.Ingest(ctx, docs), nil
}

// Ingest processes each raw document in order.
func (l *Loader) Ingest(ctx context.Context, docs []json.RawMessage) Result {
	result := Result{RunID: uuid.NewString()}

	for i, raw := range docs {
		if err := ctx.Err(); err != nil {
			result.AddErrorf("run cancelled after %d documents: %v", i, err)
			break
		}

		doc, err := provider.ParseDocument(raw)
		if err != nil {
			result.DocumentsProcessed++
			result.DocumentsFailed++
			result.AddErrorf("document %d: %v", i, err)
			continue
		}

		result.Add(l.IngestDocument(ctx, doc))
	}

	l.logger.Debug("Ingest run finished", "run_id", result.RunID, "summary", result.Summary())
	return result
}

// IngestDocument writes one parsed document in a single transaction. Any
// storage error rolls back every pass of the document.
func (l *Loader) IngestDocument(ctx context.Context, doc *provider.Document) Result {
	var result Result
	result.DocumentsProcessed = 1
	for _, w := range doc.Warnings {
		result.AddWarningf("document %s: %s", doc.ID, w)
	}

	start := time.Now()
	counts, err := l.writeDocument(ctx, doc)
	if err != nil {
		result.DocumentsFailed = 1
		result.AddErrorf("document %s: %v", doc.ID, err)
		l.logger.Error("Document rolled back", "match_id", doc.ID, "error", err)
		l.metrics.DocumentIngested("failed", time.Since(start))
		return result
	}
	l.metrics.DocumentIngested("committed", time.Since(start))

	result.PlayersInserted = counts.players
	result.BattingRows = counts.batting
	result.BowlingRows = counts.bowling
	result.MatchesInserted = counts.matches
	result.DuplicatesSkipped = counts.duplicates

	l.metrics.RowsInserted(config.PlayersTable, counts.players)
	l.metrics.RowsInserted(config.BattingTable, counts.batting)
	l.metrics.RowsInserted(config.BowlingTable, counts.bowling)
	l.metrics.RowsInserted(config.MatchesTable, counts.matches)
	return result
}

type docCounts struct {
	players, batting, bowling, matches, duplicates int
}

func (l *Loader) writeDocument(ctx context.Context, doc *provider.Document) (docCounts, error) {
	var c docCounts

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return c, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	// 1. Batting
	for _, rec := range doc.Batting {
		n, err := l.insertPlayer(ctx, tx, rec.PlayerID, rec.FirstName, rec.LastName, rec.BattingStyle, "", rec.Team)
		if err != nil {
			return c, fmt.Errorf("insert player %s: %w", rec.PlayerID, err)
		}
		c.players += n

		ok, err := l.insertBatting(ctx, tx, rec)
		if err != nil {
			return c, fmt.Errorf("insert batting %s: %w", rec.PlayerID, err)
		}
		if ok {
			c.batting++
		} else {
			c.duplicates++
		}
	}

	// 2. Bowling
	for _, rec := range doc.Bowling {
		n, err := l.insertPlayer(ctx, tx, rec.PlayerID, rec.FirstName, rec.LastName, "", rec.BowlingStyle, rec.Team)
		if err != nil {
			return c, fmt.Errorf("insert player %s: %w", rec.PlayerID, err)
		}
		c.players += n

		ok, err := l.insertBowling(ctx, tx, rec)
		if err != nil {
			return c, fmt.Errorf("insert bowling %s: %w", rec.PlayerID, err)
		}
		if ok {
			c.bowling++
		} else {
			c.duplicates++
		}
	}

	// 3. Match totals
	if doc.Innings != nil {
		n, err := l.insertMatch(ctx, tx, doc.ID, *doc.Innings)
		if err != nil {
			return c, fmt.Errorf("insert match %s: %w", doc.ID, err)
		}
		c.matches += n
	}

	if err := tx.Commit(); err != nil {
		return docCounts{}, fmt.Errorf("commit: %w", err)
	}
	return c, nil
}
