package repository

import (
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/nikolayk812/storefront-cart/internal/domain"
)

// keyDetail matches Postgres' unique violation detail, e.g.
// "Key (owner_id, product_id)=(abc, 42) already exists."
var keyDetail = regexp.MustCompile(`^Key \(([^)]*)\)=`)

func translatePgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	if pgErr.Code == pgerrcode.UniqueViolation {
		return &domain.UniqueConstraintError{Target: uniqueTarget(pgErr), Err: err}
	}

	return err
}

func uniqueTarget(pgErr *pgconn.PgError) []string {
	if pgErr.ColumnName != "" {
		return []string{pgErr.ColumnName}
	}

	m := keyDetail.FindStringSubmatch(pgErr.Detail)
	if m == nil {
		return nil
	}

	var target []string
	for _, col := range strings.Split(m[1], ",") {
		if col = strings.TrimSpace(col); col != "" {
			target = append(target, col)
		}
	}
	return target
}
