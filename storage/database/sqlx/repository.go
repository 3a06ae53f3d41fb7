package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/trezcool/gradebook/core"
)

// trapNoRowsErr maps psql "no rows" err to notFound.
func trapNoRowsErr(err error, notFound error, op string) error {
	if err == sql.ErrNoRows {
		return notFound
	}
	return core.NewOperationError(op, err)
}

// execAffecting runs a write statement and returns notFound when no row was touched.
func execAffecting(ctx context.Context, exec core.DBExecutor, notFound error, op, query string, args ...interface{}) error {
	res, err := exec.ExecContext(ctx, query, args...)
	if err != nil {
		return core.NewOperationError(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return core.NewOperationError(op, err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
