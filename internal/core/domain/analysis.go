package domain

// FinancialSummary are the aggregates fed into (and returned with) an
// AI-generated analysis.
type FinancialSummary struct {
	TotalExpenses float64 `json:"total_expenses"`
	TotalRevenue  float64 `json:"total_revenue"`
	Profit        float64 `json:"profit"`
	ExpenseCount  int     `json:"expense_count"`
	OrderCount    int     `json:"order_count"`
}

// AnalysisResult is a cached, user-scoped answer to one financial question.
type AnalysisResult struct {
	Analysis string           `json:"analysis"`
	Summary  FinancialSummary `json:"summary"`
}
