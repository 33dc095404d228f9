package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"phishguard/pkg/domain"
	"phishguard/pkg/storage"
)

const analysesTable = "analyses"

// StoreAnalysis inserts a single analysis record.
func (s *SQLite) StoreAnalysis(ctx context.Context, analysis domain.Analysis) (*domain.Analysis, error) {
	if uuid.UUID(analysis.ID) == uuid.Nil {
		analysis.ID = domain.AnalysisID(uuid.New())
	}
	analysis.CreatedAt = utc(analysis.CreatedAt)

	var row analysisRow
	if err := row.fromDomain(analysis); err != nil {
		return nil, err
	}

	if _, err := s.Builder.Insert(analysesTable).
		Prepared(true).
		Rows(row).
		Executor().ExecContext(ctx); err != nil {
		return nil, fmt.Errorf("could not store analysis into sqlite: %w", err)
	}

	return &analysis, nil
}

// AnalysisByID returns an analysis by its ID, or nil when not found.
func (s *SQLite) AnalysisByID(ctx context.Context, id domain.AnalysisID) (*domain.Analysis, error) {
	var row analysisRow
	found, err := s.Builder.From(analysesTable).
		Prepared(true).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch analysis from sqlite: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.toDomain()
}

// AnalysesByHostname returns analyses of hostname created before cursor,
// newest first.
func (s *SQLite) AnalysesByHostname(ctx context.Context,
	hostname string,
	cursor time.Time,
	limit uint) (storage.Analyses, error) {
	if limit == 0 {
		limit = storage.DefaultPageSize
	}

	w := []goqu.Expression{
		goqu.I("hostname").Eq(hostname),
	}
	if !cursor.IsZero() {
		w = append(w, goqu.I("created_at").Lt(cursor.UTC()))
	}

	var rows []analysisRow
	if err := s.Builder.From(analysesTable).
		Prepared(true).
		Where(w...).
		Order(goqu.I("created_at").Desc(), goqu.I("id").Desc()).
		Limit(limit + 1).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return storage.Analyses{}, fmt.Errorf("could not fetch analyses from sqlite: %w", err)
	}

	var nextCursor *time.Time
	if uint(len(rows)) > limit {
		rows = rows[:limit]
		nextCursor = &rows[len(rows)-1].CreatedAt
	}

	out := make([]domain.Analysis, 0, len(rows))
	for _, row := range rows {
		a, err := row.toDomain()
		if err != nil {
			return storage.Analyses{}, err
		}
		out = append(out, *a)
	}

	return storage.Analyses{Analyses: out, NextCursor: nextCursor}, nil
}
