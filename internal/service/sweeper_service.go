package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/dhouhaelaouni/tunimed/internal/database"
	"github.com/dhouhaelaouni/tunimed/pkg/utils"
)

// SweeperService enforces the invariant that no AVAILABLE proposition
// outlives its medicine's expiration date. It is invoked only by the
// scheduler, never by an actor-facing operation.
type SweeperService struct {
	propositionDAO PropositionDAOInterface
	db             *database.DB
	logger         *logrus.Logger
}

// NewSweeperService creates a new sweeper service instance
func NewSweeperService(propositionDAO PropositionDAOInterface, db *database.DB, logger *logrus.Logger) *SweeperService {
	return &SweeperService{
		propositionDAO: propositionDAO,
		db:             db,
		logger:         logger,
	}
}

// SweepExpiredPropositions expires every active AVAILABLE proposition
// whose medicine expiration date has passed, as one all-or-nothing batch.
// Returns the number of propositions transitioned. Running it again
// immediately transitions nothing, since swept rows no longer match.
func (s *SweeperService) SweepExpiredPropositions(ctx context.Context) (int, error) {
	now := utils.GetCurrentTimeMillis()

	var rows int64
	err := s.db.WithTransaction(ctx, func(tx *database.Transaction) error {
		var sweepErr error
		rows, sweepErr = s.propositionDAO.SweepExpiredWithTx(ctx, tx, now)
		return sweepErr
	})
	if err != nil {
		return 0, fmt.Errorf("failed to sweep expired propositions: %w", err)
	}

	if rows > 0 {
		s.logger.WithField("expired_count", rows).Info("Expired stale propositions")
	} else {
		s.logger.Debug("Sweep found no stale propositions")
	}

	return int(rows), nil
}
