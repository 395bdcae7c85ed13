package dispatch

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/gestor-confeitaria/assistant-api/internal/core/domain"
	"github.com/gestor-confeitaria/assistant-api/internal/core/ports"
)

func TestDecodeExpenseAcceptsStringValor(t *testing.T) {
	payload := json.RawMessage(`{"data":"2024-01-05","tipo":"Ingredientes","valor":"150.50","fornecedor":"Mercado X"}`)
	req, err := decode[registerExpenseRequest](payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if float64(req.Value) != 150.50 {
		t.Fatalf("got valor %v, want 150.50", req.Value)
	}
	if req.Date != "2024-01-05" || req.Type != "Ingredientes" || req.Supplier != "Mercado X" {
		t.Fatalf("unexpected fields: %+v", req)
	}
}

func TestDecodeExpenseAcceptsNumericValor(t *testing.T) {
	payload := json.RawMessage(`{"data":"2024-01-05","tipo":"Embalagens","valor":99.9}`)
	req, err := decode[registerExpenseRequest](payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if float64(req.Value) != 99.9 {
		t.Fatalf("got valor %v, want 99.9", req.Value)
	}
}

func TestDecodeOrderAcceptsStringValor(t *testing.T) {
	payload := json.RawMessage(`{"cliente":"Maria","produtos":"Bolo de chocolate","valor":"320.00"}`)
	req, err := decode[registerOrderRequest](payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if float64(req.Value) != 320 {
		t.Fatalf("got valor %v, want 320", req.Value)
	}
}

func TestDecodeUpdateExpenseAcceptsStringValor(t *testing.T) {
	payload := json.RawMessage(`{"id":"e1","valor":"75.25"}`)
	req, err := decode[updateExpenseRequest](payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if req.Value == nil || float64(*req.Value) != 75.25 {
		t.Fatalf("got valor %v, want 75.25", req.Value)
	}
}

func TestDecodeRejectsNonNumericValor(t *testing.T) {
	payload := json.RawMessage(`{"data":"2024-01-05","tipo":"Ingredientes","valor":"abc"}`)
	_, err := decode[registerExpenseRequest](payload)
	ce, ok := domain.AsCallError(err)
	if !ok || ce.Kind != domain.KindInvalidArgument {
		t.Fatalf("expected invalid-argument, got %v", err)
	}
}

type stubStatsCache struct {
	ports.Cache
	stats ports.CacheStats
}

func (c *stubStatsCache) Stats(context.Context) ports.CacheStats { return c.stats }

func TestHealthCheckReportsCacheStats(t *testing.T) {
	s := Services{Cache: &stubStatsCache{stats: ports.CacheStats{Count: 3, Capacity: 1000, Remote: "not_configured"}}}

	result, err := healthCheck(s)(context.Background(), "", nil)
	if err != nil {
		t.Fatalf("healthCheck: %v", err)
	}
	envelope, ok := result.(map[string]any)
	if !ok {
		t.Fatalf("got %T, want envelope map", result)
	}
	if envelope["success"] != true {
		t.Fatal("health check must answer success=true")
	}
	if envelope["message"] != "O sistema está online e a operar!" {
		t.Fatalf("unexpected message %q", envelope["message"])
	}
	stats, ok := envelope["cache"].(ports.CacheStats)
	if !ok || stats.Count != 3 || stats.Remote != "not_configured" {
		t.Fatalf("cache stats missing from envelope: %v", envelope["cache"])
	}
}
