package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"phishguard/pkg/domain"
	"phishguard/pkg/storage"
)

const (
	analysesTable = "analyses"
)

// StoreAnalysis inserts a single analysis record and returns it as stored.
func (p *PgSQL) StoreAnalysis(ctx context.Context, analysis domain.Analysis) (*domain.Analysis, error) {
	if uuid.UUID(analysis.ID) == uuid.Nil {
		analysis.ID = domain.AnalysisID(uuid.New())
	}
	if analysis.CreatedAt.IsZero() {
		analysis.CreatedAt = time.Now().UTC()
	}

	var row PgAnalysis
	if err := row.FromDomain(analysis); err != nil {
		return nil, err
	}

	var stored PgAnalysis
	if _, err := p.Builder.Insert(analysesTable).
		Rows(row).
		Returning(&PgAnalysis{}).
		Executor().ScanStructContext(ctx, &stored); err != nil {
		return nil, fmt.Errorf("could not store analysis into pg: %w", err)
	}

	return stored.ToDomain()
}

// AnalysisByID returns an analysis by its ID, or nil when not found.
func (p *PgSQL) AnalysisByID(ctx context.Context, id domain.AnalysisID) (*domain.Analysis, error) {
	var row PgAnalysis
	found, err := p.Builder.From(analysesTable).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch analysis from pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// AnalysesByHostname returns analyses of hostname filtered by optional cursor
// and limited by limit. Results are ordered by created_at DESC, id DESC.
func (p *PgSQL) AnalysesByHostname(ctx context.Context,
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
		w = append(w, goqu.I("created_at").Lt(cursor))
	}

	// fetch one extra to determine if there is a next page
	ds := p.Builder.From(analysesTable).
		Where(w...).
		Order(goqu.I("created_at").Desc(), goqu.I("id").Desc()).
		Limit(limit + 1)

	var rows []PgAnalysis
	if err := ds.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return storage.Analyses{}, fmt.Errorf("could not fetch analyses from pg: %w", err)
	}

	var nextCursor *time.Time
	if uint(len(rows)) > limit {
		rows = rows[:limit]
		nextCursor = &rows[len(rows)-1].CreatedAt
	}

	analyses, err := pgAnalysesToDomain(rows)
	if err != nil {
		return storage.Analyses{}, err
	}

	return storage.Analyses{
		Analyses:   analyses,
		NextCursor: nextCursor,
	}, nil
}
