package grid

import "context"

// Gateway abstracts the backing spreadsheet store. One surface is one
// user's tracking sheet. Rows and columns are 1-indexed; row 1 is the
// header, column A holds row labels.
//
// Implementations are expected to retry transient failures internally with
// bounded backoff and to report terminal failures as TransientError or
// PermanentError.
type Gateway interface {
	// ReadColumn returns every cell of a column, top to bottom, including
	// the header row. Empty cells inside the used range come back as "".
	ReadColumn(ctx context.Context, surface, column string) ([]string, error)
	// ReadRow returns all populated cells of a row. Trailing columns that
	// were never written are legitimately absent.
	ReadRow(ctx context.Context, surface string, row int) ([]string, error)
	// WriteRow overwrites a full row starting at column A.
	WriteRow(ctx context.Context, surface string, row int, values []string) error
	// WriteHeaderRow overwrites row 1. Semantically the same as
	// WriteRow(ctx, surface, 1, values), kept separate for clarity.
	WriteHeaderRow(ctx context.Context, surface string, values []string) error
	// AppendRows appends rows after the last populated row, one call.
	AppendRows(ctx context.Context, surface string, rows [][]string) error
	// ClearRange wipes a rectangular region, e.g. "A1:Z1000".
	ClearRange(ctx context.Context, surface, rng string) error
}
