// Package worker journals balance change audit events consumed from
// AMQP into the audit log table.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fernandoagad/rasma-sub000/internal/amqp"
	"github.com/fernandoagad/rasma-sub000/internal/storage"
)

// AuditJournal is the slice of the repository the worker needs.
type AuditJournal interface {
	InsertAuditEntry(ctx context.Context, e storage.AuditEntry) (int64, error)
}

type AuditWorker struct {
	journal AuditJournal
}

func NewAuditWorker(journal AuditJournal) *AuditWorker {
	return &AuditWorker{journal: journal}
}

// HandleBalanceChange journals a single balance change message.
// Returning an error requeues the delivery.
func (w *AuditWorker) HandleBalanceChange(ctx context.Context, msg *amqp.BalanceChangeMessage) error {
	slog.InfoContext(ctx, "Processing balance change message",
		"key", msg.Key,
		"old_cents", msg.OldCents,
		"new_cents", msg.NewCents,
		"actor", msg.Actor)

	id, err := w.journal.InsertAuditEntry(ctx, storage.AuditEntry{
		Actor:         msg.Actor,
		SettingKey:    msg.Key,
		OldValueCents: msg.OldCents,
		NewValueCents: msg.NewCents,
		ChangedAt:     msg.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("journal balance change: %w", err)
	}

	slog.InfoContext(ctx, "Balance change journaled", "audit_id", id, "key", msg.Key)
	return nil
}
