package queries

import (
	"context"
	"errors"

	"restaurant/internal/core/domain/model/statistics"
	"restaurant/internal/pkg/guard"
)

var ErrGetStatisticsSnapshotQueryIsNotConstructed = errors.New(
	"GetStatisticsSnapshotQuery must be created via NewGetStatisticsSnapshotQuery constructor",
)

type GetStatisticsSnapshotQuery struct {
	guard guard.ConstructorGuard
}

func NewGetStatisticsSnapshotQuery() GetStatisticsSnapshotQuery {
	return GetStatisticsSnapshotQuery{guard: guard.NewConstructorGuard()}
}

func (q GetStatisticsSnapshotQuery) Validate() error {
	return q.guard.Validate(ErrGetStatisticsSnapshotQueryIsNotConstructed)
}

// SnapshotSource computes a fresh statistics snapshot.
type SnapshotSource interface {
	Recompute(ctx context.Context) (statistics.Snapshot, error)
}

// GetStatisticsSnapshotQueryHandler serves the management view. Every call recomputes;
// nothing is cached.
type GetStatisticsSnapshotQueryHandler struct {
	source SnapshotSource
}

func NewGetStatisticsSnapshotQueryHandler(source SnapshotSource) GetStatisticsSnapshotQueryHandler {
	return GetStatisticsSnapshotQueryHandler{source: source}
}

func (h GetStatisticsSnapshotQueryHandler) Handle(
	ctx context.Context,
	query GetStatisticsSnapshotQuery,
) (statistics.Snapshot, error) {
	if err := query.Validate(); err != nil {
		return statistics.Snapshot{}, err
	}
	return h.source.Recompute(ctx)
}
