package errors

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// reKeyField extracts field name from unique violation detail: "Key (field)=(value) already exists.".
	reKeyField = regexp.MustCompile(`Key \(([^)]+)\)=`)
	// reReferencedFrom detects parent deletion: "... is still referenced from table ...".
	reReferencedFrom = regexp.MustCompile(`is still referenced from table "?([^"]+)"?`)
	// reNotPresent detects missing parent: "... is not present in table ...".
	reNotPresent = regexp.MustCompile(`is not present in table "?([^"]+)"?`)
)

// tableDomains maps table names to the nouns used in messages.
var tableDomains = map[string]string{
	"accounts":     "Account",
	"candidates":   "Candidate",
	"employers":    "Employer",
	"experiences":  "Experience",
	"job_postings": "Job Posting",
	"applications": "Application",
}

// MapDBError maps database errors to AppError instances.
//   - context deadline / cancellation → Timeout / Canceled
//   - pgx.ErrNoRows → NotFound
//   - unique violations → Conflict (Field set from the violated key)
//   - foreign key violations → ForeignKey
//   - check / not-null violations → Validation
//   - connection failures, serialization failures, deadlocks → TransientIO
//
// Errors that are not database errors are returned unchanged.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &AppError{Code: ErrCodeTimeout, Message: "Request timed out. Please try again.", Cause: err}
	}
	if errors.Is(err, context.Canceled) {
		return &AppError{Code: ErrCodeCanceled, Message: "Request was canceled.", Cause: err}
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return &AppError{Code: ErrCodeNotFound, Message: "Resource not found", Cause: err}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return mapPgError(pgErr)
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || pgconn.Timeout(err) || pgconn.SafeToRetry(err) {
		return &AppError{Code: ErrCodeTransientIO, Message: "Database temporarily unavailable.", Cause: err}
	}

	return err
}

// IsUniqueViolation reports whether err is a PostgreSQL unique_violation, optionally on a named constraint.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

func mapPgError(pgErr *pgconn.PgError) error {
	switch {
	case pgErr.Code == pgerrcode.UniqueViolation:
		return mapUniqueViolation(pgErr)
	case pgErr.Code == pgerrcode.ForeignKeyViolation:
		return &AppError{Code: ErrCodeForeignKey, Message: foreignKeyMessage(pgErr), Cause: pgErr}
	case pgErr.Code == pgerrcode.CheckViolation:
		return violation(pgErr, "Invalid data. Please check your input.", "This field has an invalid value.")
	case pgErr.Code == pgerrcode.NotNullViolation:
		return violation(pgErr, "Required field is missing. Please check your input.", "This field is required.")
	case pgErr.Code == pgerrcode.SerializationFailure,
		pgErr.Code == pgerrcode.DeadlockDetected,
		pgerrcode.IsConnectionException(pgErr.Code),
		pgerrcode.IsInsufficientResources(pgErr.Code):
		return &AppError{Code: ErrCodeTransientIO, Message: "Database temporarily unavailable.", Cause: pgErr}
	default:
		return &AppError{Code: ErrCodeInternal, Message: "A database error occurred. Please try again.", Cause: pgErr}
	}
}

func mapUniqueViolation(pgErr *pgconn.PgError) error {
	field := pgErr.ColumnName
	if field == "" && pgErr.Detail != "" {
		if m := reKeyField.FindStringSubmatch(pgErr.Detail); len(m) == 2 {
			field = m[1]
		}
	}
	if field == "" {
		field = inferFieldFromConstraint(pgErr.ConstraintName)
	}
	return &AppError{
		Code:    ErrCodeConflict,
		Message: "This value already exists. Please choose a different one.",
		Field:   field,
		Cause:   pgErr,
	}
}

func violation(pgErr *pgconn.PgError, generic, withField string) error {
	if pgErr.ColumnName != "" {
		return &AppError{Code: ErrCodeValidation, Message: withField, Field: pgErr.ColumnName, Cause: pgErr}
	}
	return &AppError{Code: ErrCodeValidation, Message: generic, Cause: pgErr}
}

func foreignKeyMessage(pgErr *pgconn.PgError) string {
	if m := reReferencedFrom.FindStringSubmatch(pgErr.Detail); len(m) == 2 {
		return "Cannot delete because this item is in use by " + domainName(m[1]) + "."
	}
	if m := reNotPresent.FindStringSubmatch(pgErr.Detail); len(m) == 2 {
		return "Cannot complete operation because the referenced " + domainName(m[1]) + " does not exist."
	}
	if pgErr.TableName != "" {
		return "Cannot complete operation because this item is in use by " + domainName(pgErr.TableName) + "."
	}
	return "Cannot complete operation because this item is in use."
}

// inferFieldFromConstraint infers a single column from names like "accounts_email_key".
// Multi-column or expression constraints yield "".
func inferFieldFromConstraint(constraintName string) string {
	parts := strings.Split(constraintName, "_")
	if len(parts) != 3 {
		return ""
	}
	switch strings.ToLower(parts[1]) {
	case "lower", "upper", "trim", "md5":
		return ""
	}
	return parts[1]
}

func domainName(table string) string {
	table = strings.ToLower(strings.TrimSpace(table))
	if name, ok := tableDomains[table]; ok {
		return name
	}
	words := strings.Fields(strings.ReplaceAll(table, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
