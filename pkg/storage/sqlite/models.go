package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"phishguard/pkg/domain"
)

type blacklistRow struct {
	Hostname string    `db:"hostname"`
	Source   string    `db:"source"`
	AddedAt  time.Time `db:"added_at"`
}

type syncStateRow struct {
	Source     string    `db:"source"`
	Mode       string    `db:"mode"`
	TotalCount int       `db:"total_count"`
	LastPage   int       `db:"last_page"`
	LastSyncAt time.Time `db:"last_sync_at"`
}

// analysisRow keeps the result as TEXT; SQLite has no JSON column type.
type analysisRow struct {
	ID        uuid.UUID `db:"id"`
	URL       string    `db:"url"`
	Hostname  string    `db:"hostname"`
	TotalRisk int       `db:"total_risk"`
	RiskLevel string    `db:"risk_level"`
	Result    string    `db:"result"`
	CreatedAt time.Time `db:"created_at"`
}

func (r *analysisRow) toDomain() (*domain.Analysis, error) {
	var result domain.AggregatedResult
	if err := json.Unmarshal([]byte(r.Result), &result); err != nil {
		return nil, fmt.Errorf("could not unmarshal analysis result: %w", err)
	}

	return &domain.Analysis{
		ID:        domain.AnalysisID(r.ID),
		URL:       r.URL,
		Hostname:  r.Hostname,
		Result:    result,
		CreatedAt: r.CreatedAt,
	}, nil
}

func (r *analysisRow) fromDomain(analysis domain.Analysis) error {
	result, err := json.Marshal(analysis.Result)
	if err != nil {
		return fmt.Errorf("could not marshal analysis result: %w", err)
	}

	*r = analysisRow{
		ID:        uuid.UUID(analysis.ID),
		URL:       analysis.URL,
		Hostname:  analysis.Hostname,
		TotalRisk: analysis.Result.TotalRisk,
		RiskLevel: string(analysis.Result.RiskLevel),
		Result:    string(result),
		CreatedAt: analysis.CreatedAt,
	}

	return nil
}
