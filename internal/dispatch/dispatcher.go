// Package dispatch routes assistant intents to their handlers. All business
// operations enter through a single endpoint carrying an intent name and a
// JSON payload; this package owns the registry, the authentication gate, the
// error envelope, and per-intent instrumentation.
package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gestor-confeitaria/assistant-api/internal/api/metrics"
	"github.com/gestor-confeitaria/assistant-api/internal/core/domain"
	"github.com/gestor-confeitaria/assistant-api/internal/core/ports"
)

// performanceFunction names the dispatch pipeline in performance events.
const performanceFunction = "assistente"

// HandlerFunc executes one intent. uid is empty only for public intents.
type HandlerFunc func(ctx context.Context, uid string, payload json.RawMessage) (any, error)

type lastLoginToucher interface {
	TouchLastLogin(ctx context.Context, uid string)
}

// Dispatcher holds the intent registry and runs the shared pipeline around
// every handler: auth gate, execution, error normalization, metrics.
type Dispatcher struct {
	handlers map[string]HandlerFunc
	public   map[string]struct{}
	recorder ports.MetricsRecorder
	users    lastLoginToucher
	logger   zerolog.Logger
}

func NewDispatcher(recorder ports.MetricsRecorder, users lastLoginToucher, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: map[string]HandlerFunc{},
		public:   map[string]struct{}{},
		recorder: recorder,
		users:    users,
		logger:   logger,
	}
}

// Register adds an intent handler. Registering the same intent twice is a
// wiring bug and panics at startup. Every handler is wrapped with withTiming
// so each intent reports its own duration to the collector.
func (d *Dispatcher) Register(intent string, handler HandlerFunc) {
	if _, dup := d.handlers[intent]; dup {
		panic(fmt.Sprintf("dispatch: intent %q registered twice", intent))
	}
	d.handlers[intent] = withTiming(intent, d.recorder, handler)
}

// withTiming wraps a handler with a performance record under the given name,
// measured around the handler alone rather than the whole dispatch pipeline.
func withTiming(name string, recorder ports.MetricsRecorder, fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, uid string, payload json.RawMessage) (any, error) {
		start := time.Now()
		result, err := fn(ctx, uid, payload)
		recorder.RecordPerformance(ctx, name, time.Since(start), err == nil, uid)
		return result, err
	}
}

// RegisterPublic adds an intent that does not require authentication.
func (d *Dispatcher) RegisterPublic(intent string, handler HandlerFunc) {
	d.Register(intent, handler)
	d.public[intent] = struct{}{}
}

// Intents returns the number of registered intents.
func (d *Dispatcher) Intents() int { return len(d.handlers) }

// Dispatch runs one intent end to end. Unknown intents answer with a
// success=false envelope rather than an error, so clients can probe
// capabilities without tripping alerting.
func (d *Dispatcher) Dispatch(ctx context.Context, uid, intent string, payload json.RawMessage) (any, error) {
	start := time.Now()

	if _, isPublic := d.public[intent]; !isPublic && uid == "" {
		d.record(ctx, uid, intent, start, false)
		return nil, domain.Unauthenticated("A operação requer autenticação.")
	}

	if uid != "" {
		d.users.TouchLastLogin(ctx, uid)
	}

	handler, ok := d.handlers[intent]
	if !ok {
		d.logger.Warn().Str("intent", intent).Str("uid", uid).Msg("unknown intent")
		d.record(ctx, uid, "unknown", start, false)
		return map[string]any{
			"success": false,
			"message": fmt.Sprintf("Intenção '%s' não reconhecida.", intent),
		}, nil
	}

	result, err := handler(ctx, uid, payload)
	if err != nil {
		ce := normalize(err)
		if ce.Kind == domain.KindInternal {
			d.logger.Error().Err(err).Str("intent", intent).Str("uid", uid).Msg("intent failed")
		}
		d.record(ctx, uid, intent, start, false)
		return nil, ce
	}

	d.record(ctx, uid, intent, start, true)
	return result, nil
}

func (d *Dispatcher) record(ctx context.Context, uid, intent string, start time.Time, success bool) {
	elapsed := time.Since(start)
	result := "success"
	if !success {
		result = "error"
	}
	metrics.IntentsTotal.WithLabelValues(intent, result).Inc()
	metrics.IntentDuration.WithLabelValues(intent).Observe(elapsed.Seconds())

	if uid != "" {
		d.recorder.RecordUserAction(ctx, uid, intent, success, elapsed, nil)
	}
	d.recorder.RecordPerformance(ctx, performanceFunction, elapsed, success, uid)
}

// normalize maps any handler error onto a CallError. Repository sentinels
// become not-found with a user-facing message; everything unclassified is
// wrapped as an internal error with a generic message.
func normalize(err error) *domain.CallError {
	if ce, ok := domain.AsCallError(err); ok {
		return ce
	}

	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return domain.NotFound("Usuário não encontrado.")
	case errors.Is(err, domain.ErrExpenseNotFound):
		return domain.NotFound("Despesa não encontrada.")
	case errors.Is(err, domain.ErrOrderNotFound):
		return domain.NotFound("Pedido não encontrado.")
	case errors.Is(err, domain.ErrRecipeNotFound):
		return domain.NotFound("Receita não encontrada.")
	case errors.Is(err, domain.ErrInventoryItemNotFound):
		return domain.NotFound("Item de estoque não encontrado.")
	case errors.Is(err, domain.ErrBackupNotFound):
		return domain.NotFound("Backup não encontrado.")
	case errors.Is(err, domain.ErrOnboardingNotFound):
		return domain.NotFound("Cadastro guiado não encontrado.")
	}

	return domain.Internal("Ocorreu um erro inesperado no servidor.", err)
}
