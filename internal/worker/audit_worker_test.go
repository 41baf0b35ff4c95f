package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fernandoagad/rasma-sub000/internal/amqp"
	"github.com/fernandoagad/rasma-sub000/internal/storage"
)

type fakeJournal struct {
	entries []storage.AuditEntry
	err     error
}

func (f *fakeJournal) InsertAuditEntry(ctx context.Context, e storage.AuditEntry) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.entries = append(f.entries, e)
	return int64(len(f.entries)), nil
}

func TestHandleBalanceChange(t *testing.T) {
	journal := &fakeJournal{}
	w := NewAuditWorker(journal)

	msg := &amqp.BalanceChangeMessage{
		Key:       "finance.initial_balance_cents",
		OldCents:  0,
		NewCents:  250000,
		Actor:     "admin",
		Timestamp: time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC),
	}
	if err := w.HandleBalanceChange(context.Background(), msg); err != nil {
		t.Fatalf("HandleBalanceChange() error = %v", err)
	}

	if len(journal.entries) != 1 {
		t.Fatalf("journal has %d entries, want 1", len(journal.entries))
	}
	got := journal.entries[0]
	if got.SettingKey != msg.Key || got.OldValueCents != 0 || got.NewValueCents != 250000 || got.Actor != "admin" {
		t.Errorf("journaled entry = %+v, want values from message", got)
	}
	if !got.ChangedAt.Equal(msg.Timestamp) {
		t.Errorf("ChangedAt = %v, want message timestamp %v", got.ChangedAt, msg.Timestamp)
	}
}

func TestHandleBalanceChangeJournalFailure(t *testing.T) {
	wantErr := errors.New("disk full")
	w := NewAuditWorker(&fakeJournal{err: wantErr})

	err := w.HandleBalanceChange(context.Background(), &amqp.BalanceChangeMessage{Key: "k"})
	if !errors.Is(err, wantErr) {
		t.Errorf("HandleBalanceChange() error = %v, want wrapped %v", err, wantErr)
	}
}
