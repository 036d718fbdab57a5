package repo

import (
	"context"
	"fmt"

	"mockupstudio/internal/infra"
	"mockupstudio/internal/sqlinline"
)

// EnsureSchema creates the generation log and token tables when missing.
func EnsureSchema(ctx context.Context, sql infra.SQLExecutor) error {
	if _, err := sql.Exec(ctx, sqlinline.QEnsureSchema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
