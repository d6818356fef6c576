package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tbourn/go-portfolio-backend/internal/domain"
	"github.com/tbourn/go-portfolio-backend/internal/repo"
)

type fakeNotifier struct {
	mu    sync.Mutex
	got   []domain.ContactMessage
	err   error
	ctxOK bool
}

func (f *fakeNotifier) NotifyContact(ctx context.Context, m domain.ContactMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.got = append(f.got, m)
	_, hasDeadline := ctx.Deadline()
	f.ctxOK = hasDeadline && ctx.Err() == nil
	return f.err
}

func TestContact_Create_ReturnsID(t *testing.T) {
	db := newTestDB(t)
	svc := &ContactService{DB: db}

	id, err := svc.Create(context.Background(), "Ada", "ada@example.com", "Let's talk")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id == "" {
		t.Fatalf("expected id")
	}
	var row domain.ContactMessage
	if err := db.First(&row, "id = ?", id).Error; err != nil {
		t.Fatalf("readback: %v", err)
	}
	if row.Email != "ada@example.com" || row.Message != "Let's talk" {
		t.Fatalf("unexpected row %+v", row)
	}
}

func TestContact_Create_NameTooLong_NoWrite(t *testing.T) {
	db := newTestDB(t)
	svc := &ContactService{DB: db}

	_, err := svc.Create(context.Background(), strings.Repeat("A", 101), "a@b.com", "hi")
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Kind != KindFieldTooLong || ve.Field != "name" {
		t.Fatalf("expected FieldTooLong(name), got %v", err)
	}
	n, _ := repo.CountContactMessages(context.Background(), db)
	if n != 0 {
		t.Fatalf("expected no rows, got %d", n)
	}
}

func TestContact_Create_InvalidEmail(t *testing.T) {
	svc := &ContactService{DB: newTestDB(t)}
	_, err := svc.Create(context.Background(), "Ada", "not-an-email", "hi")
	if !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected InvalidFormat(email), got %v", err)
	}
}

func TestContact_Create_PersistenceError(t *testing.T) {
	svc := &ContactService{DB: brokenDB(t)}
	_, err := svc.Create(context.Background(), "Ada", "a@b.co", "hi")
	var pe *PersistenceError
	if !errors.As(err, &pe) || pe.Op != "create contact message" {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
}

func TestContact_Notifier_CalledAfterPersist(t *testing.T) {
	db := newTestDB(t)
	n := &fakeNotifier{}
	reg := prometheus.NewRegistry()
	svc := &ContactService{DB: db, Notifier: n, Metrics: newMetrics(t, reg), NotifyTimeout: time.Second}

	id, err := svc.Create(context.Background(), "Ada", "ada@example.com", "hi")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(n.got) != 1 || n.got[0].ID != id || n.got[0].Email != "ada@example.com" {
		t.Fatalf("notifier got %+v", n.got)
	}
	if !n.ctxOK {
		t.Fatalf("notifier context should carry a live deadline")
	}
}

func TestContact_NotifierFailure_DoesNotFailCreate(t *testing.T) {
	db := newTestDB(t)
	n := &fakeNotifier{err: errors.New("smtp down")}
	svc := &ContactService{DB: db, Notifier: n}

	id, err := svc.Create(context.Background(), "Ada", "ada@example.com", "hi")
	if err != nil || id == "" {
		t.Fatalf("Create should succeed despite notifier error: id=%q err=%v", id, err)
	}
}

func TestContact_Submit_IdempotentReplay(t *testing.T) {
	db := newTestDB(t)
	n := &fakeNotifier{}
	svc := &ContactService{DB: db, Notifier: n, IdempotencyTTL: time.Hour}
	ctx := context.Background()

	id1, replayed, err := svc.Submit(ctx, "abc", "Ada", "ada@example.com", "hi")
	if err != nil || replayed {
		t.Fatalf("first: %v %v", replayed, err)
	}
	id2, replayed, err := svc.Submit(ctx, "abc", "Ada", "ada@example.com", "hi")
	if err != nil || !replayed || id2 != id1 {
		t.Fatalf("replay: id=%s replayed=%v err=%v", id2, replayed, err)
	}
	if cnt, _ := repo.CountContactMessages(ctx, db); cnt != 1 {
		t.Fatalf("expected one row, got %d", cnt)
	}
	if len(n.got) != 1 {
		t.Fatalf("replay must not notify again, got %d notifications", len(n.got))
	}
}
