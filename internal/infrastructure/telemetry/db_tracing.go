package telemetry

import (
	"fmt"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EnableDBTracing registers the otelgorm plugin on the given GORM instance.
// Query variables are excluded from spans so money and customer data never
// leave the process inside trace payloads.
func EnableDBTracing(db *gorm.DB, dbName string, logger *zap.Logger) error {
	if err := db.Use(otelgorm.NewPlugin(
		otelgorm.WithDBName(dbName),
		otelgorm.WithoutQueryVariables(),
	)); err != nil {
		return fmt.Errorf("failed to register otelgorm plugin: %w", err)
	}
	logger.Info("Database tracing enabled", zap.String("db_name", dbName))
	return nil
}
