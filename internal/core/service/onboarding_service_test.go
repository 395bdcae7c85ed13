package service

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gestor-confeitaria/assistant-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Stub repository
// ---------------------------------------------------------------------------

type stubOnboardingRepo struct {
	sessions map[string]*domain.OnboardingSession
}

func newStubOnboardingRepo() *stubOnboardingRepo {
	return &stubOnboardingRepo{sessions: make(map[string]*domain.OnboardingSession)}
}

func (r *stubOnboardingRepo) Find(_ context.Context, uid string) (*domain.OnboardingSession, error) {
	s, ok := r.sessions[uid]
	if !ok {
		return nil, domain.ErrOnboardingNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubOnboardingRepo) Save(_ context.Context, s *domain.OnboardingSession) error {
	clone := *s
	r.sessions[s.UserID] = &clone
	return nil
}

func (r *stubOnboardingRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.sessions)), nil
}

func (r *stubOnboardingRepo) CountCompleted(_ context.Context) (int64, error) {
	var n int64
	for _, s := range r.sessions {
		if s.IsCompleted {
			n++
		}
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestOnboardingStartIsIdempotent(t *testing.T) {
	repo := newStubOnboardingRepo()
	users := newStubUserRepo()
	svc := NewOnboardingService(repo, users, zerolog.Nop())
	ctx := context.Background()

	first, err := svc.Start(ctx, "u1")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if first.Step != domain.StepWelcome {
		t.Fatalf("new sessions start at welcome, got %q", first.Step)
	}

	// Answer the first question, then start again: the session resumes.
	if _, err := svc.ProcessResponse(ctx, "u1", "Ana"); err != nil {
		t.Fatalf("ProcessResponse: %v", err)
	}
	resumed, err := svc.Start(ctx, "u1")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if resumed.Step != domain.StepName {
		t.Fatalf("restart reset the session to %q", resumed.Step)
	}
}

func TestOnboardingPersonalizesMessages(t *testing.T) {
	repo := newStubOnboardingRepo()
	svc := NewOnboardingService(repo, newStubUserRepo(), zerolog.Nop())
	ctx := context.Background()

	if _, err := svc.Start(ctx, "u1"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	progress, err := svc.ProcessResponse(ctx, "u1", "Ana")
	if err != nil {
		t.Fatalf("ProcessResponse: %v", err)
	}
	if !strings.Contains(progress.Message, "Ana") {
		t.Fatalf("message not personalized: %q", progress.Message)
	}
}

func TestOnboardingCompletion(t *testing.T) {
	repo := newStubOnboardingRepo()
	users := newStubUserRepo()
	seedUser(users, "u1", domain.PlanFree)
	svc := NewOnboardingService(repo, users, zerolog.Nop())
	ctx := context.Background()

	if _, err := svc.Start(ctx, "u1"); err != nil {
		t.Fatalf("Start: %v", err)
	}

	// One answer per step before completion: identity (3), fixed costs (5),
	// variable costs (2), pricing, monthly goal.
	answers := []string{
		"Ana", "Doces da Ana", "aumentar o lucro",
		"800", "150", "100", "1200", "0",
		"2000", "300",
		"custo + margem", "8000", "combinado",
	}
	var progress *OnboardingProgress
	var err error
	for _, answer := range answers {
		progress, err = svc.ProcessResponse(ctx, "u1", answer)
		if err != nil {
			t.Fatalf("ProcessResponse(%q): %v", answer, err)
		}
	}

	if !progress.IsCompleted {
		t.Fatalf("session not completed after all answers, at step %q", progress.Step)
	}
	if progress.Progress != 100 {
		t.Fatalf("got progress %d, want 100", progress.Progress)
	}
	if users.profiles["u1"].DisplayName != "Ana" {
		t.Fatal("collected name not stored on the profile")
	}

	done, err := repo.CountCompleted(ctx)
	if err != nil || done != 1 {
		t.Fatalf("CountCompleted = %d, %v", done, err)
	}

	// Further responses are a no-op once completed.
	again, err := svc.ProcessResponse(ctx, "u1", "mais uma resposta")
	if err != nil {
		t.Fatalf("ProcessResponse after completion: %v", err)
	}
	if !again.IsCompleted {
		t.Fatal("completed session reopened")
	}
}

func TestOnboardingRejectsEmptyResponse(t *testing.T) {
	repo := newStubOnboardingRepo()
	svc := NewOnboardingService(repo, newStubUserRepo(), zerolog.Nop())
	ctx := context.Background()

	if _, err := svc.Start(ctx, "u1"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	_, err := svc.ProcessResponse(ctx, "u1", "   ")
	ce, ok := domain.AsCallError(err)
	if !ok || ce.Kind != domain.KindInvalidArgument {
		t.Fatalf("expected invalid-argument, got %v", err)
	}
}

func TestOnboardingStatusWithoutSession(t *testing.T) {
	svc := NewOnboardingService(newStubOnboardingRepo(), newStubUserRepo(), zerolog.Nop())

	progress, err := svc.Status(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if progress.IsCompleted || progress.Progress != 0 {
		t.Fatalf("ghost user reported progress: %+v", progress)
	}
}
