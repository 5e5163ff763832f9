package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"

	"github.com/lightbnb/backend/internal/infrastructure/observability"
	apperrors "github.com/lightbnb/backend/pkg/errors"
)

// dialect renders postgres SQL with numbered placeholders.
var dialect = goqu.Dialect("postgres")

// instrumentation wraps each statement in a span, a duration sample and an
// error log line.
type instrumentation struct {
	metrics *observability.Metrics
}

func (i instrumentation) observe(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	ctx, span := observability.StartSpan(ctx, "db."+operation)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	i.metrics.RecordQuery(ctx, operation, time.Since(start), err)

	if err != nil {
		observability.RecordError(span, err)
		observability.LoggerFromContext(ctx).Error().
			Err(err).
			Str("operation", operation).
			Msg("database statement failed")
	}

	return err
}

// withLimit renders ds and appends a LIMIT bound to the last parameter slot.
// goqu only takes unsigned limits, so the value is bound as-is and the store
// decides whether it is acceptable.
func withLimit(ds *goqu.SelectDataset, limit int) (string, []interface{}, error) {
	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return "", nil, err
	}

	args = append(args, limit)
	return fmt.Sprintf("%s LIMIT $%d", query, len(args)), args, nil
}

// storeError classifies a failed statement by its SQLSTATE.
func storeError(message string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "unique_violation":
			return apperrors.NewConflictError(message, err)
		case "foreign_key_violation", "not_null_violation", "check_violation":
			return apperrors.NewValidationError(message, err)
		}
	}
	return apperrors.NewInternalError(message, err)
}
