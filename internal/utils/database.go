package utils

import (
	"context"
	"fmt"

	"github.com/toinu/ride-api/internal/config"
	"github.com/toinu/ride-api/internal/logging"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ExecuteWithTransaction runs fn inside a MongoDB multi-document
// transaction. All writes issued through the session context either
// commit together or not at all; no reader observes a partial state.
func ExecuteWithTransaction(ctx context.Context, fn func(sessCtx mongo.SessionContext) error) error {
	logger := logging.Logger.With(zap.String("operation", "database_transaction"))

	session, err := config.MongoDB.Client().StartSession()
	if err != nil {
		logger.Error("failed to start database session", zap.Error(err))
		return fmt.Errorf("failed to start database session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	})
	if err != nil {
		logger.Error("transaction failed", zap.Error(err))
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}
