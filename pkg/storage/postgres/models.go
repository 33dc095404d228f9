package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"phishguard/pkg/domain"
)

type PgBlacklistEntry struct {
	Hostname string    `db:"hostname"`
	Source   string    `db:"source"`
	AddedAt  time.Time `db:"added_at"`
}

type PgSyncState struct {
	Source     string    `db:"source"`
	Mode       string    `db:"mode"`
	TotalCount int       `db:"total_count"`
	LastPage   int       `db:"last_page"`
	LastSyncAt time.Time `db:"last_sync_at"`
}

func (p *PgSyncState) ToDomain() *domain.SyncState {
	return &domain.SyncState{
		Source:     p.Source,
		Mode:       domain.SyncMode(p.Mode),
		TotalCount: p.TotalCount,
		LastPage:   p.LastPage,
		LastSyncAt: p.LastSyncAt,
	}
}

type PgAnalysis struct {
	ID        uuid.UUID       `db:"id"`
	URL       string          `db:"url"`
	Hostname  string          `db:"hostname"`
	TotalRisk int             `db:"total_risk"`
	RiskLevel string          `db:"risk_level"`
	Result    json.RawMessage `db:"result"`
	CreatedAt time.Time       `db:"created_at"`
}

func (p *PgAnalysis) ToDomain() (*domain.Analysis, error) {
	var result domain.AggregatedResult
	if err := json.Unmarshal(p.Result, &result); err != nil {
		return nil, fmt.Errorf("could not unmarshal analysis result: %w", err)
	}

	return &domain.Analysis{
		ID:        domain.AnalysisID(p.ID),
		URL:       p.URL,
		Hostname:  p.Hostname,
		Result:    result,
		CreatedAt: p.CreatedAt,
	}, nil
}

func (p *PgAnalysis) FromDomain(analysis domain.Analysis) error {
	result, err := json.Marshal(analysis.Result)
	if err != nil {
		return fmt.Errorf("could not marshal analysis result: %w", err)
	}

	*p = PgAnalysis{
		ID:        uuid.UUID(analysis.ID),
		URL:       analysis.URL,
		Hostname:  analysis.Hostname,
		TotalRisk: analysis.Result.TotalRisk,
		RiskLevel: string(analysis.Result.RiskLevel),
		Result:    result,
		CreatedAt: analysis.CreatedAt,
	}

	return nil
}

func pgAnalysesToDomain(rows []PgAnalysis) ([]domain.Analysis, error) {
	out := make([]domain.Analysis, 0, len(rows))
	for _, row := range rows {
		d, err := row.ToDomain()
		if err != nil {
			return nil, err
		}

		out = append(out, *d)
	}

	return out, nil
}
