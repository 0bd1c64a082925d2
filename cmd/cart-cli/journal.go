package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jcmexdev/cart-sync/internal/coordinator/synclog"
)

type journalReader interface {
	ListByOrder(ctx context.Context, orderID string) ([]*synclog.Entry, error)
	GetLatest(ctx context.Context, operationID string) (*synclog.Entry, error)
}

// printJournal writes every transition recorded for orderID followed by the
// final status of each operation run.
func printJournal(ctx context.Context, w io.Writer, r journalReader, orderID string) error {
	entries, err := r.ListByOrder(ctx, orderID)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "journal for order %s\n", orderID)
	var runs []string
	seen := make(map[string]bool)
	for _, e := range entries {
		fmt.Fprintf(w, "  %s %-18s %-12s %s\n", e.UpdatedAt.Format("15:04:05.000"), e.Operation, e.Status, e.CurrentStep)
		if !seen[e.OperationID] {
			seen[e.OperationID] = true
			runs = append(runs, e.OperationID)
		}
	}

	for _, id := range runs {
		latest, err := r.GetLatest(ctx, id)
		if err != nil {
			return err
		}
		line := fmt.Sprintf("  %s %s", latest.Operation, latest.Status)
		if latest.Status == synclog.StatusFailed {
			line += " " + latest.ErrorMessages
		}
		fmt.Fprintln(w, line)
	}
	return nil
}
