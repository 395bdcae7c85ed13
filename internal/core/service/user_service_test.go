package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gestor-confeitaria/assistant-api/internal/core/domain"
)

func TestSetupCreatesProfileOnce(t *testing.T) {
	users := newStubUserRepo()
	svc := NewUserService(users, newStubCache(), zerolog.Nop())
	ctx := context.Background()

	profile, created, err := svc.Setup(ctx, "u1", SetupUserInput{Email: "ana@example.com", DisplayName: "Ana"})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if !created {
		t.Fatal("first Setup must create the profile")
	}
	if profile.Plan != domain.PlanFree {
		t.Fatalf("new profiles start on free, got %q", profile.Plan)
	}
	if profile.Preferences.Language != "pt-BR" {
		t.Fatalf("default language is pt-BR, got %q", profile.Preferences.Language)
	}

	_, created, err = svc.Setup(ctx, "u1", SetupUserInput{Email: "other@example.com"})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if created {
		t.Fatal("second Setup must return the existing profile")
	}
}

func TestGetProfileReadThrough(t *testing.T) {
	users := newStubUserRepo()
	seedUser(users, "u1", domain.PlanPro)
	cache := newStubCache()
	svc := NewUserService(users, cache, zerolog.Nop())
	ctx := context.Background()

	_, cached, err := svc.GetProfile(ctx, "u1")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if cached {
		t.Fatal("first read must come from the store")
	}

	_, cached, err = svc.GetProfile(ctx, "u1")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if !cached {
		t.Fatal("second read must come from the cache")
	}
}

func TestUpdatePlanValidation(t *testing.T) {
	users := newStubUserRepo()
	seedUser(users, "u1", domain.PlanFree)
	cache := newStubCache()
	cache.profiles["u1"] = &domain.UserProfile{UID: "u1", Plan: domain.PlanFree}
	svc := NewUserService(users, cache, zerolog.Nop())
	ctx := context.Background()

	err := svc.UpdatePlan(ctx, "u1", domain.PlanTier("platinum"))
	ce, ok := domain.AsCallError(err)
	if !ok || ce.Kind != domain.KindInvalidArgument {
		t.Fatalf("expected invalid-argument, got %v", err)
	}

	if err := svc.UpdatePlan(ctx, "u1", domain.PlanPro); err != nil {
		t.Fatalf("UpdatePlan: %v", err)
	}
	if users.profiles["u1"].Plan != domain.PlanPro {
		t.Fatal("plan not persisted")
	}
	if _, ok := cache.profiles["u1"]; ok {
		t.Fatal("cached profile survived a plan change")
	}
}

func TestClearCacheScope(t *testing.T) {
	users := newStubUserRepo()
	cache := newStubCache()
	svc := NewUserService(users, cache, zerolog.Nop())
	ctx := context.Background()

	svc.ClearCache(ctx, "u1")
	if len(cache.invalidations) != 1 || cache.invalidations[0] != "u1" {
		t.Fatalf("expected a single invalidation for u1, got %v", cache.invalidations)
	}
	if cache.cleared {
		t.Fatal("scoped clear must not wipe the whole cache")
	}

	svc.ClearCache(ctx, "")
	if !cache.cleared {
		t.Fatal("empty uid must clear everything")
	}
}
