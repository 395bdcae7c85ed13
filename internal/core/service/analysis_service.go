package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gestor-confeitaria/assistant-api/internal/core/domain"
	"github.com/gestor-confeitaria/assistant-api/internal/core/ports"
)

// analysisSampleLimit caps how many records feed the prompt.
const analysisSampleLimit = 100

type AnalysisService struct {
	expenses ports.ExpenseRepository
	orders   ports.OrderRepository
	analyzer ports.Analyzer
	cache    ports.Cache
	logger   zerolog.Logger
}

func NewAnalysisService(expenses ports.ExpenseRepository, orders ports.OrderRepository, analyzer ports.Analyzer, cache ports.Cache, logger zerolog.Logger) *AnalysisService {
	return &AnalysisService{expenses: expenses, orders: orders, analyzer: analyzer, cache: cache, logger: logger}
}

// Generate answers a free-form financial question about the user's data.
// Identical queries within the cache window are served without calling
// the model. The second return reports a cache hit.
func (s *AnalysisService) Generate(ctx context.Context, uid, query string) (*domain.AnalysisResult, bool, error) {
	if strings.TrimSpace(query) == "" {
		return nil, false, domain.InvalidArgument("A consulta de análise não pode ser vazia.")
	}

	if cached, ok := s.cache.GetAnalysis(ctx, uid, query); ok {
		return cached, true, nil
	}

	expenses, _, err := s.listExpenses(ctx, uid)
	if err != nil {
		return nil, false, err
	}
	orders, err := s.listOrders(ctx, uid)
	if err != nil {
		return nil, false, err
	}

	summary := summarize(expenses, orders)
	prompt := buildAnalysisPrompt(query, summary, expenses, orders)

	analysis, err := s.analyzer.Generate(ctx, prompt)
	if err != nil {
		s.logger.Error().Err(err).Str("uid", uid).Msg("analysis generation failed")
		return nil, false, domain.Internal("Erro ao gerar análise", err)
	}

	result := &domain.AnalysisResult{Analysis: analysis, Summary: summary}
	s.cache.SetAnalysis(ctx, uid, query, result)
	return result, false, nil
}

func (s *AnalysisService) listExpenses(ctx context.Context, uid string) ([]domain.Expense, bool, error) {
	if cached, ok := s.cache.GetExpenses(ctx, uid); ok {
		return cached, true, nil
	}
	expenses, err := s.expenses.ListByUser(ctx, uid, analysisSampleLimit)
	if err != nil {
		return nil, false, err
	}
	return expenses, false, nil
}

func (s *AnalysisService) listOrders(ctx context.Context, uid string) ([]domain.Order, error) {
	if cached, ok := s.cache.GetOrders(ctx, uid); ok {
		return cached, nil
	}
	return s.orders.ListByUser(ctx, uid, analysisSampleLimit)
}

func summarize(expenses []domain.Expense, orders []domain.Order) domain.FinancialSummary {
	summary := domain.FinancialSummary{
		ExpenseCount: len(expenses),
		OrderCount:   len(orders),
	}
	for _, e := range expenses {
		summary.TotalExpenses += e.Value
	}
	for _, o := range orders {
		summary.TotalRevenue += o.Value
	}
	summary.Profit = summary.TotalRevenue - summary.TotalExpenses
	return summary
}

func buildAnalysisPrompt(query string, summary domain.FinancialSummary, expenses []domain.Expense, orders []domain.Order) string {
	var b strings.Builder
	b.WriteString("Você é um consultor financeiro especializado em confeitarias. ")
	b.WriteString("Analise os dados do negócio abaixo e responda à pergunta do usuário em português, de forma clara e prática.\n\n")

	fmt.Fprintf(&b, "Resumo financeiro:\n- Total de despesas: R$ %.2f (%d registros)\n- Receita total: R$ %.2f (%d pedidos)\n- Lucro: R$ %.2f\n\n",
		summary.TotalExpenses, summary.ExpenseCount, summary.TotalRevenue, summary.OrderCount, summary.Profit)

	if len(expenses) > 0 {
		b.WriteString("Despesas recentes:\n")
		for _, e := range expenses {
			fmt.Fprintf(&b, "- %s: R$ %.2f (%s)\n", e.Type, e.Value, e.Date)
		}
		b.WriteString("\n")
	}
	if len(orders) > 0 {
		b.WriteString("Pedidos recentes:\n")
		for _, o := range orders {
			fmt.Fprintf(&b, "- %s: R$ %.2f (%s)\n", o.Customer, o.Value, o.Status)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Pergunta: %s", query)
	return b.String()
}
