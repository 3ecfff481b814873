package redis

import (
	"context"
	"errors"
	"testing"

	"subscription-activation-bot/internal/domain"
	"subscription-activation-bot/internal/domain/model"
)

func TestActivationRepo_SaveAndFind(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cli := newFakeRedis()
	repo := NewActivationRepo(cli)

	rec := &model.ActivationRecord{Code: "ABC123DEF4", Plan: model.PlanMonth}
	if err := repo.Save(ctx, "42", rec); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.Find(ctx, "42")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got.Code != rec.Code || got.Plan != rec.Plan {
		t.Fatalf("got %+v, want %+v", got, rec)
	}

	// Stored under the expected key, as plain JSON.
	if _, ok := cli.data["activation_code:42"]; !ok {
		t.Fatalf("expected key activation_code:42, have %v", cli.data)
	}
}

func TestActivationRepo_FindAbsent(t *testing.T) {
	t.Parallel()

	repo := NewActivationRepo(newFakeRedis())
	_, err := repo.Find(context.Background(), "nobody")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected domain.ErrNotFound, got %v", err)
	}
}

func TestActivationRepo_Overwrite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewActivationRepo(newFakeRedis())

	if err := repo.Save(ctx, "42", &model.ActivationRecord{Code: "OLDCODE000", Plan: model.PlanMonth}); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if err := repo.Save(ctx, "42", &model.ActivationRecord{Code: "NEWCODE111", Plan: model.PlanYear}); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	got, err := repo.Find(ctx, "42")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got.Code != "NEWCODE111" || got.Plan != model.PlanYear {
		t.Fatalf("expected last write to win, got %+v", got)
	}
}

func TestActivationRepo_StoreError(t *testing.T) {
	t.Parallel()

	cli := newFakeRedis()
	cli.getErr = errors.New("connection reset")
	repo := NewActivationRepo(cli)

	_, err := repo.Find(context.Background(), "42")
	if err == nil || errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected a transport error, got %v", err)
	}
}
