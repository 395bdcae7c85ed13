package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/gestor-confeitaria/assistant-api/internal/core/domain"
)

type stubRecorder struct {
	actions []string
	perf    []string
	perfOK  []bool
}

func (r *stubRecorder) RecordUserAction(_ context.Context, _, action string, _ bool, _ time.Duration, _ map[string]any) {
	r.actions = append(r.actions, action)
}

func (r *stubRecorder) RecordPerformance(_ context.Context, functionName string, _ time.Duration, success bool, _ string) {
	r.perf = append(r.perf, functionName)
	r.perfOK = append(r.perfOK, success)
}

type stubToucher struct {
	touched []string
}

func (t *stubToucher) TouchLastLogin(_ context.Context, uid string) {
	t.touched = append(t.touched, uid)
}

func newTestDispatcher() (*Dispatcher, *stubRecorder, *stubToucher) {
	recorder := &stubRecorder{}
	toucher := &stubToucher{}
	return NewDispatcher(recorder, toucher, zerolog.Nop()), recorder, toucher
}

func TestDispatchRequiresAuth(t *testing.T) {
	d, _, _ := newTestDispatcher()
	calls := 0
	d.Register("privado", func(_ context.Context, _ string, _ json.RawMessage) (any, error) {
		calls++
		return "ok", nil
	})

	_, err := d.Dispatch(context.Background(), "", "privado", nil)
	ce, ok := domain.AsCallError(err)
	if !ok || ce.Kind != domain.KindUnauthenticated {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
	if ce.Message != "A operação requer autenticação." {
		t.Fatalf("unexpected message %q", ce.Message)
	}
	if calls != 0 {
		t.Fatal("handler ran for an anonymous caller")
	}
}

func TestDispatchPublicIntentSkipsAuth(t *testing.T) {
	d, _, toucher := newTestDispatcher()
	d.RegisterPublic("aberto", func(_ context.Context, _ string, _ json.RawMessage) (any, error) {
		return "ok", nil
	})

	result, err := d.Dispatch(context.Background(), "", "aberto", nil)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if result != "ok" {
		t.Fatalf("got %v, want ok", result)
	}
	if len(toucher.touched) != 0 {
		t.Fatal("anonymous dispatch must not touch last login")
	}
}

func TestDispatchUnknownIntent(t *testing.T) {
	d, _, toucher := newTestDispatcher()

	result, err := d.Dispatch(context.Background(), "u1", "inexistente", nil)
	if err != nil {
		t.Fatalf("unknown intent must not error: %v", err)
	}
	envelope, ok := result.(map[string]any)
	if !ok {
		t.Fatalf("got %T, want envelope map", result)
	}
	if envelope["success"] != false {
		t.Fatal("unknown intents answer success=false")
	}
	if envelope["message"] != "Intenção 'inexistente' não reconhecida." {
		t.Fatalf("unexpected message %q", envelope["message"])
	}
	if len(toucher.touched) != 1 || toucher.touched[0] != "u1" {
		t.Fatal("authenticated dispatch must touch last login")
	}
}

func TestDispatchPassesCallErrorsThrough(t *testing.T) {
	d, _, _ := newTestDispatcher()
	d.Register("negado", func(_ context.Context, _ string, _ json.RawMessage) (any, error) {
		return nil, domain.PermissionDenied("Acesso negado - apenas administradores")
	})

	_, err := d.Dispatch(context.Background(), "u1", "negado", nil)
	ce, ok := domain.AsCallError(err)
	if !ok || ce.Kind != domain.KindPermissionDenied {
		t.Fatalf("CallError not preserved: %v", err)
	}
}

func TestDispatchMapsSentinelErrors(t *testing.T) {
	d, _, _ := newTestDispatcher()
	d.Register("sumiu", func(_ context.Context, _ string, _ json.RawMessage) (any, error) {
		return nil, domain.ErrExpenseNotFound
	})

	_, err := d.Dispatch(context.Background(), "u1", "sumiu", nil)
	ce, ok := domain.AsCallError(err)
	if !ok || ce.Kind != domain.KindNotFound {
		t.Fatalf("sentinel not mapped to not-found: %v", err)
	}
}

func TestDispatchWrapsUnexpectedErrors(t *testing.T) {
	d, _, _ := newTestDispatcher()
	d.Register("quebrado", func(_ context.Context, _ string, _ json.RawMessage) (any, error) {
		return nil, errors.New("connection reset by peer")
	})

	_, err := d.Dispatch(context.Background(), "u1", "quebrado", nil)
	ce, ok := domain.AsCallError(err)
	if !ok || ce.Kind != domain.KindInternal {
		t.Fatalf("expected internal, got %v", err)
	}
	if ce.Message != "Ocorreu um erro inesperado no servidor." {
		t.Fatalf("raw error leaked into message: %q", ce.Message)
	}
	if ce.Details["error"] != "connection reset by peer" {
		t.Fatal("cause missing from details")
	}
}

func TestDispatchRecordsMetrics(t *testing.T) {
	d, recorder, _ := newTestDispatcher()
	d.Register("ação", func(_ context.Context, _ string, _ json.RawMessage) (any, error) {
		return "ok", nil
	})

	if _, err := d.Dispatch(context.Background(), "u1", "ação", nil); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if len(recorder.actions) != 1 || recorder.actions[0] != "ação" {
		t.Fatalf("user action not recorded: %v", recorder.actions)
	}
	if len(recorder.perf) != 2 || recorder.perf[0] != "ação" || recorder.perf[1] != "assistente" {
		t.Fatalf("expected per-intent and pipeline performance events, got %v", recorder.perf)
	}
}

func TestDispatchTimesEachHandler(t *testing.T) {
	d, recorder, _ := newTestDispatcher()
	d.Register("medido", func(_ context.Context, _ string, _ json.RawMessage) (any, error) {
		return "ok", nil
	})
	d.Register("falho", func(_ context.Context, _ string, _ json.RawMessage) (any, error) {
		return nil, domain.ErrOrderNotFound
	})

	if _, err := d.Dispatch(context.Background(), "u1", "medido", nil); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if len(recorder.perf) == 0 || recorder.perf[0] != "medido" || !recorder.perfOK[0] {
		t.Fatalf("successful handler not timed under its own name: %v %v", recorder.perf, recorder.perfOK)
	}

	if _, err := d.Dispatch(context.Background(), "u1", "falho", nil); err == nil {
		t.Fatal("expected error from falho")
	}
	if len(recorder.perf) < 4 || recorder.perf[2] != "falho" || recorder.perfOK[2] {
		t.Fatalf("failed handler not timed as failure: %v %v", recorder.perf, recorder.perfOK)
	}
}

func TestRegisterPanicsOnDuplicate(t *testing.T) {
	d, _, _ := newTestDispatcher()
	d.Register("x", func(_ context.Context, _ string, _ json.RawMessage) (any, error) { return nil, nil })

	defer func() {
		if recover() == nil {
			t.Fatal("duplicate registration must panic")
		}
	}()
	d.Register("x", func(_ context.Context, _ string, _ json.RawMessage) (any, error) { return nil, nil })
}
