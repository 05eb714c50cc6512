package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/workvortex/vortex-api/internal/data/pgxutil"
	apperrors "github.com/workvortex/vortex-api/internal/errors"
)

// getOneQuery describes a single-row lookup.
type getOneQuery struct {
	sql      string
	notFound error
	op       string
}

// getOne runs q and scans exactly one row into T by column name.
func getOne[T any](ctx context.Context, db *sql.DB, q getOneQuery, args ...any) (*T, error) {
	var out T
	err := pgxutil.WithPgxConn(ctx, db, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q.sql, args...)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isMalformedID(err) {
			return nil, q.notFound
		}
		return nil, mapRepoErr(q.op, err)
	}
	return &out, nil
}

// listAll runs q and scans every row into T by column name.
func listAll[T any](ctx context.Context, db *sql.DB, op, query string, args ...any) ([]T, error) {
	var out []T
	err := pgxutil.WithPgxConn(ctx, db, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[T])
		return err
	})
	if err != nil {
		return nil, mapRepoErr(op, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// toPtrs converts a slice of values into a slice of pointers into it.
func toPtrs[T any](in []T) []*T {
	res := make([]*T, len(in))
	for i := range in {
		res[i] = &in[i]
	}
	return res
}

// isMalformedID reports whether err is Postgres rejecting a non-UUID literal for a uuid column.
// Lookups treat such ids as absent.
func isMalformedID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.InvalidTextRepresentation
}

// mapRepoErr passes coded errors through and maps database errors otherwise.
func mapRepoErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return fmt.Errorf("%s: %w", op, apperrors.MapDBError(err))
}
