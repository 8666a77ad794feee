package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cenkalti/backoff/v4"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"higher-pleasures/internal/grid"
)

const defaultMaxRetries = 4

// Client implements grid.Gateway on top of the Google Sheets API. One
// spreadsheet holds all surfaces; each surface is a named sheet inside it.
// Transient failures (rate limits, 5xx, network) are retried with bounded
// exponential backoff before being surfaced as grid.TransientError.
type Client struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	maxRetries    uint64
}

// New builds an authorized client from service-account credentials JSON.
func New(ctx context.Context, spreadsheetID string, credentialsJSON []byte) (*Client, error) {
	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		maxRetries:    defaultMaxRetries,
	}, nil
}

func (c *Client) ReadColumn(ctx context.Context, surface, column string) ([]string, error) {
	rng := fmt.Sprintf("%s!%s:%s", surface, column, column)

	var out []string
	err := c.retry(ctx, fmt.Sprintf("read column %s of %q", column, surface), func() error {
		resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
		if err != nil {
			return err
		}
		out = out[:0]
		for _, row := range resp.Values {
			if len(row) == 0 {
				out = append(out, "")
				continue
			}
			out = append(out, fmt.Sprint(row[0]))
		}
		return nil
	})
	return out, err
}

func (c *Client) ReadRow(ctx context.Context, surface string, row int) ([]string, error) {
	rng := fmt.Sprintf("%s!%d:%d", surface, row, row)

	var out []string
	err := c.retry(ctx, fmt.Sprintf("read row %d of %q", row, surface), func() error {
		resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
		if err != nil {
			return err
		}
		out = nil
		if len(resp.Values) > 0 {
			out = make([]string, 0, len(resp.Values[0]))
			for _, cell := range resp.Values[0] {
				out = append(out, fmt.Sprint(cell))
			}
		}
		return nil
	})
	return out, err
}

func (c *Client) WriteRow(ctx context.Context, surface string, row int, values []string) error {
	rng := fmt.Sprintf("%s!A%d", surface, row)
	vr := &sheetsapi.ValueRange{Values: [][]interface{}{toCells(values)}}

	return c.retry(ctx, fmt.Sprintf("write row %d of %q", row, surface), func() error {
		_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
			ValueInputOption("USER_ENTERED").
			Context(ctx).Do()
		return err
	})
}

func (c *Client) WriteHeaderRow(ctx context.Context, surface string, values []string) error {
	return c.WriteRow(ctx, surface, 1, values)
}

func (c *Client) AppendRows(ctx context.Context, surface string, rows [][]string) error {
	vr := &sheetsapi.ValueRange{Values: make([][]interface{}, 0, len(rows))}
	for _, row := range rows {
		vr.Values = append(vr.Values, toCells(row))
	}

	return c.retry(ctx, fmt.Sprintf("append %d rows to %q", len(rows), surface), func() error {
		_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, surface+"!A1", vr).
			ValueInputOption("RAW").
			InsertDataOption("INSERT_ROWS").
			Context(ctx).Do()
		return err
	})
}

func (c *Client) ClearRange(ctx context.Context, surface, rng string) error {
	req := &sheetsapi.BatchClearValuesRequest{Ranges: []string{surface + "!" + rng}}

	return c.retry(ctx, fmt.Sprintf("clear %s of %q", rng, surface), func() error {
		_, err := c.svc.Spreadsheets.Values.BatchClear(c.spreadsheetID, req).Context(ctx).Do()
		return err
	})
}

// retry runs one remote call with bounded exponential backoff on transient
// failures and classifies the terminal error for the engine.
func (c *Client) retry(ctx context.Context, op string, call func() error) error {
	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries), ctx)

	err := backoff.Retry(func() error {
		err := call()
		if err == nil {
			return nil
		}
		if isTransient(err) {
			return err
		}
		return backoff.Permanent(err)
	}, bo)

	switch {
	case err == nil:
		return nil
	case isTransient(err):
		return &grid.TransientError{Op: op, Err: err}
	default:
		return &grid.PermanentError{Op: op, Err: err}
	}
}

// isTransient classifies API failures: rate limits, 5xx and plain network
// errors are retryable; canceled contexts and 4xx (authorization, malformed
// range) are not.
func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusTooManyRequests || gerr.Code >= 500
	}
	return true
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
