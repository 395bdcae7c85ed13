package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/gestor-confeitaria/assistant-api/internal/core/domain"
	"github.com/gestor-confeitaria/assistant-api/internal/core/ports"
	"github.com/gestor-confeitaria/assistant-api/internal/core/service"
)

var validate = validator.New()

// money is a monetary amount sent either as a JSON number or as a numeric
// string; mobile clients use both forms for valor.
type money float64

func (m *money) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("valor %q não é numérico", s)
		}
		*m = money(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*m = money(f)
	return nil
}

// decode unmarshals and validates an intent payload. An absent payload is
// treated as the zero value so intents without parameters stay callable.
func decode[T any](payload json.RawMessage) (*T, error) {
	var req T
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &req); err != nil {
			return nil, domain.InvalidArgument("Payload inválido: " + err.Error())
		}
	}
	if err := validate.Struct(&req); err != nil {
		return nil, domain.InvalidArgument("Dados inválidos: " + err.Error())
	}
	return &req, nil
}

// Services bundles everything the intent handlers call into.
type Services struct {
	Users      *service.UserService
	Expenses   *service.ExpenseService
	Orders     *service.OrderService
	Recipes    *service.RecipeService
	Inventory  *service.InventoryService
	Analysis   *service.AnalysisService
	Onboarding *service.OnboardingService
	Admin      *service.AdminService
	Backups    *service.BackupService
	Monitoring *service.MonitoringService
	Cache      ports.Cache
}

// RegisterAll wires every intent onto the dispatcher. Intent names are kept
// verbatim from the mobile client contract, Portuguese included.
func RegisterAll(d *Dispatcher, s Services) {
	d.RegisterPublic("healthCheck", healthCheck(s))

	// account
	d.Register("setupUser", setupUser(s))
	d.Register("getUserProfileOptimized", getUserProfile(s))
	d.Register("updateUserPlan", updateUserPlan(s))
	d.Register("getUserStats", getUserStats(s))
	d.Register("clearUserCache", clearUserCache(s))

	// expenses
	d.Register("registrarDespesa", registerExpense(s))
	d.Register("listarDespesas", listExpenses(s))
	d.Register("updateExpense", updateExpense(s))
	d.Register("deleteExpense", deleteExpense(s))

	// orders
	d.Register("registrarPedido", registerOrder(s))
	d.Register("listarPedidos", listOrders(s))
	d.Register("updateOrderStatus", updateOrderStatus(s))

	// recipes; criarNovaReceita is the legacy client name
	d.Register("criarReceita", createRecipe(s))
	d.Register("criarNovaReceita", createRecipe(s))
	d.Register("listarReceitas", listRecipes(s))

	// inventory
	d.Register("getInventory", getInventory(s))
	d.Register("addInventoryItem", addInventoryItem(s))
	d.Register("updateInventoryItem", updateInventoryItem(s))
	d.Register("deleteInventoryItem", deleteInventoryItem(s))

	// analysis
	d.Register("gerarAnalise", generateAnalysis(s))

	// cache management (admin)
	d.Register("getCacheStats", getCacheStats(s))
	d.Register("invalidateCache", invalidateCache(s))

	// onboarding
	d.Register("startOnboarding", startOnboarding(s))
	d.Register("processOnboardingResponse", processOnboardingResponse(s))
	d.Register("getOnboardingStatus", getOnboardingStatus(s))

	// admin
	d.Register("setupSuperAdmin", setupSuperAdmin(s))
	d.Register("checkAdminStatus", checkAdminStatus(s))
	d.Register("getAdminDashboard", getAdminDashboard(s))
	d.Register("listAllUsers", listAllUsers(s))
	d.Register("getUserDetails", getUserDetails(s))
	d.Register("adminUpdateUserPlan", adminUpdateUserPlan(s))
	d.Register("getAdminLogs", getAdminLogs(s))

	// monitoring (admin, except own user metrics)
	d.Register("getSystemMetrics", getSystemMetrics(s))
	d.Register("getUserMetrics", getUserMetrics(s))

	// backups (admin)
	d.Register("createBackup", createBackup(s))
	d.Register("listBackups", listBackups(s))
	d.Register("deleteBackup", deleteBackup(s))
	d.Register("getBackupStats", getBackupStats(s))
	d.Register("simulateRestore", simulateRestore(s))
}

func healthCheck(s Services) HandlerFunc {
	return func(ctx context.Context, uid string, payload json.RawMessage) (any, error) {
		return map[string]any{
			"success":   true,
			"message":   "O sistema está online e a operar!",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"cache":     s.Cache.Stats(ctx),
		}, nil
	}
}

// ── account ──────────────────────────────────────────────────────────────────

type setupUserRequest struct {
	Email       string `json:"email" validate:"omitempty,email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL" validate:"omitempty,url"`
}

func setupUser(s Services) HandlerFunc {
	return func(ctx context.Context, uid string, payload json.RawMessage) (any, error) {
		req, err := decode[setupUserRequest](payload)
		if err != nil {
			return nil, err
		}
		profile, created, err := s.Users.Setup(ctx, uid, service.SetupUserInput{
			Email:       req.Email,
			DisplayName: req.DisplayName,
			PhotoURL:    req.PhotoURL,
		})
		if err != nil {
			return nil, err
		}
		return map[string]any{"success": true, "created": created, "profile": profile}, nil
	}
}

func getUserProfile(s Services) HandlerFunc {
	return func(ctx context.Context, uid string, payload json.RawMessage) (any, error) {
		profile, cached, err := s.Users.GetProfile(ctx, uid)
		if err != nil {
			return nil, err
		}
		return map[string]any{"success": true, "profile": profile, "cached": cached}, nil
	}
}

type updatePlanRequest struct {
	Plan string `json:"plan" validate:"required"`
}

func updateUserPlan(s Services) HandlerFunc {
	return func(ctx context.Context, uid string, payload json.RawMessage) (any, error) {
		req, err := decode[updatePlanRequest](payload)
		if err != nil {
			return nil, err
		}
		if err := s.Users.UpdatePlan(ctx, uid, domain.PlanTier(req.Plan)); err != nil {
			return nil, err
		}
		return map[string]any{"success": true, "plan": req.Plan, "message": "Plano atualizado com sucesso!"}, nil
	}
}

func getUserStats(s Services) HandlerFunc {
	return func(ctx context.Context, uid string, payload json.RawMessage) (any, error) {
		stats, err := s.Users.Stats(ctx, uid)
		if err != nil {
			return nil, err
		}
		return map[string]any{"success": true, "stats": stats}, nil
	}
}

func clearUserCache(s Services) HandlerFunc {
	return func(ctx context.Context, uid string, payload json.RawMessage) (any, error) {
		s.Users.ClearCache(ctx, uid)
		return map[string]any{"success": true, "message": "Cache limpo com sucesso!"}, nil
	}
}

// ── expenses ─────────────────────────────────────────────────────────────────

type registerExpenseRequest struct {
	Date        string `json:"data" validate:"required"`
	Type        string `json:"tipo" validate:"required"`
	Value       money  `json:"valor" validate:"required,gt=0"`
	Supplier    string `json:"fornecedor"`
	Description string  `json:"descricao"`
	Category    string  `json:"categoria"`
}

func registerExpense(s Services) HandlerFunc {
	return func(ctx context.Context, uid string, payload json.RawMessage) (any, error) {
		req, err := decode[registerExpenseRequest](payload)
		if err != nil {
			return nil, err
		}
		id, err := s.Expenses.Create(ctx, uid, service.CreateExpenseInput{
			Date:        req.Date,
			Type:        req.Type,
			Value:       float64(req.Value),
			Supplier:    req.Supplier,
			Description: req.Description,
			Category:    req.Category,
		})
		if err != nil {
			return nil, err
		}
		return map[string]any{"success": true, "expenseId": id, "message": "Despesa registrada com sucesso!"}, nil
	}
}

type listRequest struct {
	Limit int `json:"limite" validate:"omitempty,gte=0,lte=500"`
}

func listExpenses(s Services) HandlerFunc {
	return func(ctx context.Context, uid string, payload json.RawMessage) (any, error) {
		req, err := decode[listRequest](payload)
		if err != nil {
			return nil, err
		}
		expenses, cached, err := s.Expenses.List(ctx, uid, req.Limit)
		if err != nil {
			return nil, err
		}
		return map[string]any{"success": true, "despesas": expenses, "total": len(expenses), "cached": cached}, nil
	}
}

type updateExpenseRequest struct {
	ID          string   `json:"id" validate:"required"`
	Date        *string  `json:"data"`
	Type        *string  `json:"tipo"`
	Value       *money   `json:"valor" validate:"omitempty,gt=0"`
	Supplier    *string  `json:"fornecedor"`
	Description *string  `json:"descricao"`
	Category    *string  `json:"categoria"`
}

func updateExpense(s Services) HandlerFunc {
	return func(ctx context.Context, uid string, payload json.RawMessage) (any, error) {
		req, err := decode[updateExpenseRequest](payload)
		if err != nil {
			return nil, err
		}
		update := ports.ExpenseUpdate{
			Date:        req.Date,
			Type:        req.Type,
			Supplier:    req.Supplier,
			Description: req.Description,
			Category:    req.Category,
		}
		if req.Value != nil {
			v := float64(*req.Value)
			update.Value = &v
		}
		if err := s.Expenses.Update(ctx, uid, req.ID, update); err != nil {
			return nil, err
		}
		return map[string]any{"success": true, "message": "Despesa atualizada com sucesso!"}, nil
	}
}

type idRequest struct {
	ID string `json:"id" validate:"required"`
}

func deleteExpense(s Services) HandlerFunc {
	return func(ctx context.Context, uid string, payload json.RawMessage) (any, error) {
		req, err := decode[idRequest](payload)
		if err != nil {
			return nil, err
		}
		if err := s.Expenses.Delete(ctx, uid, req.ID); err != nil {
			return nil, err
		}
		return map[string]any{"success": true, "message": "Despesa removida com sucesso!"}, nil
	}
}

// ── orders ───────────────────────────────────────────────────────────────────

type registerOrderRequest struct {
	Customer     string `json:"cliente" validate:"required"`
	Products     string `json:"produtos" validate:"required"`
	DeliveryDate string `json:"dataEntrega"`
	Value        money  `json:"valor" validate:"required,gt=0"`
	Status       string `json:"status"`
}

func registerOrder(s Services) HandlerFunc {
	return func(ctx context.Context, uid string, payload json.RawMessage) (any, error) {
		req, err := decode[registerOrderRequest](payload)
		if err != nil {
			return nil, err
		}
		id, err := s.Orders.Create(ctx, uid, service.CreateOrderInput{
			Customer:     req.Customer,
			Products:     req.Products,
			DeliveryDate: req.DeliveryDate,
			Value:        float64(req.Value),
			Status:       domain.OrderStatus(req.Status),
		})
		if err != nil {
			return nil, err
		}
		return map[string]any{"success": true, "orderId": id, "message": "Pedido registrado com sucesso!"}, nil
	}
}

func listOrders(s Services) HandlerFunc {
	return func(ctx context.Context, uid string, payload json.RawMessage) (any, error) {
		req, err := decode[listRequest](payload)
		if err != nil {
			return nil, err
		}
		orders, cached, err := s.Orders.List(ctx, uid, req.Limit)
		if err != nil {
			return nil, err
		}
		return map[string]any{"success": true, "pedidos": orders, "total": len(orders), "cached": cached}, nil
	}
}

type updateOrderStatusRequest struct {
	ID     string `json:"id" validate:"required"`
	Status string `json:"status" validate:"required"`
}

func updateOrderStatus(s Services) HandlerFunc {
	return func(ctx context.Context, uid string, payload json.RawMessage) (any, error) {
		req, err := decode[updateOrderStatusRequest](payload)
		if err != nil {
			return nil, err
		}
		if err := s.Orders.UpdateStatus(ctx, uid, req.ID, domain.OrderStatus(req.Status)); err != nil {
			return nil, err
		}
		return map[string]any{"success": true, "message": "Status do pedido atualizado com sucesso!"}, nil
	}
}

// ── recipes ──────────────────────────────────────────────────────────────────

type createRecipeRequest struct {
	Name        string `json:"nome" validate:"required"`
	Ingredients []struct {
		Name     string  `json:"nome" validate:"required"`
		Quantity float64 `json:"quantidade"`
		Unit     string  `json:"unidade"`
	} `json:"ingredientes" validate:"dive"`
}

func createRecipe(s Services) HandlerFunc {
	return func(ctx context.Context, uid string, payload json.RawMessage) (any, error) {
		req, err := decode[createRecipeRequest](payload)
		if err != nil {
			return nil, err
		}
		ingredients := make([]domain.Ingredient, 0, len(req.Ingredients))
		for _, ing := range req.Ingredients {
			ingredients = append(ingredients, domain.Ingredient{
				Name:     ing.Name,
				Quantity: ing.Quantity,
				Unit:     ing.Unit,
			})
		}
		id, err := s.Recipes.Create(ctx, uid, service.CreateRecipeInput{
			Name:        req.Name,
			Ingredients: ingredients,
		})
		if err != nil {
			return nil, err
		}
		return map[string]any{"success": true, "recipeId": id, "message": "Receita criada com sucesso!"}, nil
	}
}

func listRecipes(s Services) HandlerFunc {
	return func(ctx context.Context, uid string, payload json.RawMessage) (any, error) {
		recipes, cached, err := s.Recipes.List(ctx, uid)
		if err != nil {
			return nil, err
		}
		return map[string]any{"success": true, "receitas": recipes, "total": len(recipes), "cached": cached}, nil
	}
}

// ── inventory ────────────────────────────────────────────────────────────────

func getInventory(s Services) HandlerFunc {
	return func(ctx context.Context, uid string, payload json.RawMessage) (any, error) {
		report, err := s.Inventory.List(ctx, uid)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"success":  true,
			"itens":    report.Items,
			"lowStock": report.LowStock,
			"total":    len(report.Items),
		}, nil
	}
}

type addInventoryItemRequest struct {
	Name              string  `json:"nome" validate:"required"`
	Quantity          float64 `json:"quantidade" validate:"gte=0"`
	Unit              string  `json:"unidade"`
	LowStockThreshold float64 `json:"estoqueMinimo" validate:"gte=0"`
}

func addInventoryItem(s Services) HandlerFunc {
	return func(ctx context.Context, uid string, payload json.RawMessage) (any, error) {
		req, err := decode[addInventoryItemRequest](payload)
		if err != nil {
			return nil, err
		}
		id, err := s.Inventory.Add(ctx, uid, service.AddInventoryItemInput{
			Name:              req.Name,
			Quantity:          req.Quantity,
			Unit:              req.Unit,
			LowStockThreshold: req.LowStockThreshold,
		})
		if err != nil {
			return nil, err
		}
		return map[string]any{"success": true, "itemId": id, "message": "Item adicionado ao estoque!"}, nil
	}
}

type updateInventoryItemRequest struct {
	ID                string   `json:"id" validate:"required"`
	Name              *string  `json:"nome"`
	Quantity          *float64 `json:"quantidade" validate:"omitempty,gte=0"`
	Unit              *string  `json:"unidade"`
	LowStockThreshold *float64 `json:"estoqueMinimo" validate:"omitempty,gte=0"`
}

func updateInventoryItem(s Services) HandlerFunc {
	return func(ctx context.Context, uid string, payload json.RawMessage) (any, error) {
		req, err := decode[updateInventoryItemRequest](payload)
		if err != nil {
			return nil, err
		}
		update := ports.InventoryUpdate{
			Name:              req.Name,
			Quantity:          req.Quantity,
			Unit:              req.Unit,
			LowStockThreshold: req.LowStockThreshold,
		}
		if err := s.Inventory.Update(ctx, uid, req.ID, update); err != nil {
			return nil, err
		}
		return map[string]any{"success": true, "message": "Item de estoque atualizado!"}, nil
	}
}

func deleteInventoryItem(s Services) HandlerFunc {
	return func(ctx context.Context, uid string, payload json.RawMessage) (any, error) {
		req, err := decode[idRequest](payload)
		if err != nil {
			return nil, err
		}
		if err := s.Inventory.Delete(ctx, uid, req.ID); err != nil {
			return nil, err
		}
		return map[string]any{"success": true, "message": "Item removido do estoque!"}, nil
	}
}

// ── analysis ─────────────────────────────────────────────────────────────────

type analysisRequest struct {
	Query string `json:"consulta" validate:"required"`
}

func generateAnalysis(s Services) HandlerFunc {
	return func(ctx context.Context, uid string, payload json.RawMessage) (any, error) {
		req, err := decode[analysisRequest](payload)
		if err != nil {
			return nil, err
		}
		result, cached, err := s.Analysis.Generate(ctx, uid, req.Query)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"success": true,
			"analise": result.Analysis,
			"resumo":  result.Summary,
			"cached":  cached,
		}, nil
	}
}

// ── cache management ─────────────────────────────────────────────────────────

func getCacheStats(s Services) HandlerFunc {
	return func(ctx context.Context, uid string, payload json.RawMessage) (any, error) {
		if err := s.Admin.RequireAdmin(ctx, uid); err != nil {
			return nil, err
		}
		return map[string]any{"success": true, "stats": s.Cache.Stats(ctx)}, nil
	}
}

type invalidateCacheRequest struct {
	UID string `json:"uid"`
}

func invalidateCache(s Services) HandlerFunc {
	return func(ctx context.Context, uid string, payload json.RawMessage) (any, error) {
		if err := s.Admin.RequireAdmin(ctx, uid); err != nil {
			return nil, err
		}
		req, err := decode[invalidateCacheRequest](payload)
		if err != nil {
			return nil, err
		}
		s.Users.ClearCache(ctx, req.UID)
		return map[string]any{"success": true, "message": "Cache invalidado com sucesso!"}, nil
	}
}

// ── onboarding ───────────────────────────────────────────────────────────────

func startOnboarding(s Services) HandlerFunc {
	return func(ctx context.Context, uid string, payload json.RawMessage) (any, error) {
		progress, err := s.Onboarding.Start(ctx, uid)
		if err != nil {
			return nil, err
		}
		return map[string]any{"success": true, "onboarding": progress}, nil
	}
}

type onboardingResponseRequest struct {
	Response string `json:"resposta" validate:"required"`
}

func processOnboardingResponse(s Services) HandlerFunc {
	return func(ctx context.Context, uid string, payload json.RawMessage) (any, error) {
		req, err := decode[onboardingResponseRequest](payload)
		if err != nil {
			return nil, err
		}
		progress, err := s.Onboarding.ProcessResponse(ctx, uid, req.Response)
		if err != nil {
			return nil, err
		}
		return map[string]any{"success": true, "onboarding": progress}, nil
	}
}

func getOnboardingStatus(s Services) HandlerFunc {
	return func(ctx context.Context, uid string, payload json.RawMessage) (any, error) {
		progress, err := s.Onboarding.Status(ctx, uid)
		if err != nil {
			return nil, err
		}
		return map[string]any{"success": true, "onboarding": progress}, nil
	}
}

// ── admin ────────────────────────────────────────────────────────────────────

type setupSuperAdminRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func setupSuperAdmin(s Services) HandlerFunc {
	return func(ctx context.Context, uid string, payload json.RawMessage) (any, error) {
		req, err := decode[setupSuperAdminRequest](payload)
		if err != nil {
			return nil, err
		}
		if err := s.Admin.SetupSuperAdmin(ctx, uid, req.Email); err != nil {
			return nil, err
		}
		return map[string]any{"success": true, "message": "Super admin configurado com sucesso!"}, nil
	}
}

func checkAdminStatus(s Services) HandlerFunc {
	return func(ctx context.Context, uid string, payload json.RawMessage) (any, error) {
		isAdmin, err := s.Admin.IsAdmin(ctx, uid)
		if err != nil {
			return nil, err
		}
		return map[string]any{"success": true, "isAdmin": isAdmin}, nil
	}
}

func getAdminDashboard(s Services) HandlerFunc {
	return func(ctx context.Context, uid string, payload json.RawMessage) (any, error) {
		dashboard, err := s.Admin.Dashboard(ctx, uid)
		if err != nil {
			return nil, err
		}
		return map[string]any{"success": true, "dashboard": dashboard}, nil
	}
}

type limitRequest struct {
	Limit int `json:"limite" validate:"omitempty,gte=0,lte=500"`
}

func listAllUsers(s Services) HandlerFunc {
	return func(ctx context.Context, uid string, payload json.RawMessage) (any, error) {
		req, err := decode[limitRequest](payload)
		if err != nil {
			return nil, err
		}
		users, err := s.Admin.ListUsers(ctx, uid, req.Limit)
		if err != nil {
			return nil, err
		}
		return map[string]any{"success": true, "users": users, "total": len(users)}, nil
	}
}

type targetUserRequest struct {
	UID string `json:"uid" validate:"required"`
}

func getUserDetails(s Services) HandlerFunc {
	return func(ctx context.Context, uid string, payload json.RawMessage) (any, error) {
		req, err := decode[targetUserRequest](payload)
		if err != nil {
			return nil, err
		}
		details, err := s.Admin.UserDetails(ctx, uid, req.UID)
		if err != nil {
			return nil, err
		}
		return map[string]any{"success": true, "details": details}, nil
	}
}

type adminUpdatePlanRequest struct {
	UID  string `json:"uid" validate:"required"`
	Plan string `json:"plan" validate:"required"`
}

func adminUpdateUserPlan(s Services) HandlerFunc {
	return func(ctx context.Context, uid string, payload json.RawMessage) (any, error) {
		req, err := decode[adminUpdatePlanRequest](payload)
		if err != nil {
			return nil, err
		}
		if err := s.Admin.UpdateUserPlan(ctx, uid, req.UID, domain.PlanTier(req.Plan)); err != nil {
			return nil, err
		}
		return map[string]any{"success": true, "message": "Plano do usuário atualizado com sucesso!"}, nil
	}
}

func getAdminLogs(s Services) HandlerFunc {
	return func(ctx context.Context, uid string, payload json.RawMessage) (any, error) {
		req, err := decode[limitRequest](payload)
		if err != nil {
			return nil, err
		}
		logs, err := s.Admin.Logs(ctx, uid, req.Limit)
		if err != nil {
			return nil, err
		}
		return map[string]any{"success": true, "logs": logs, "total": len(logs)}, nil
	}
}

// ── monitoring ───────────────────────────────────────────────────────────────

func getSystemMetrics(s Services) HandlerFunc {
	return func(ctx context.Context, uid string, payload json.RawMessage) (any, error) {
		if err := s.Admin.RequireAdmin(ctx, uid); err != nil {
			return nil, err
		}
		health, err := s.Monitoring.CheckHealth(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]any{"success": true, "health": health}, nil
	}
}

type userMetricsRequest struct {
	UID  string `json:"uid"`
	Days int    `json:"dias" validate:"omitempty,gte=1,lte=90"`
}

// getUserMetrics serves a user's own usage; querying someone else requires
// admin.
func getUserMetrics(s Services) HandlerFunc {
	return func(ctx context.Context, uid string, payload json.RawMessage) (any, error) {
		req, err := decode[userMetricsRequest](payload)
		if err != nil {
			return nil, err
		}
		target := req.UID
		if target == "" {
			target = uid
		}
		if target != uid {
			if err := s.Admin.RequireAdmin(ctx, uid); err != nil {
				return nil, err
			}
		}
		metrics, err := s.Monitoring.GetUserMetrics(ctx, target, req.Days)
		if err != nil {
			return nil, err
		}
		return map[string]any{"success": true, "metrics": metrics}, nil
	}
}

// ── backups ──────────────────────────────────────────────────────────────────

type createBackupRequest struct {
	Description string `json:"descricao"`
}

func createBackup(s Services) HandlerFunc {
	return func(ctx context.Context, uid string, payload json.RawMessage) (any, error) {
		req, err := decode[createBackupRequest](payload)
		if err != nil {
			return nil, err
		}
		record, err := s.Backups.Create(ctx, uid, req.Description)
		if err != nil {
			return nil, err
		}
		return map[string]any{"success": true, "backup": record, "message": "Backup registrado com sucesso!"}, nil
	}
}

func listBackups(s Services) HandlerFunc {
	return func(ctx context.Context, uid string, payload json.RawMessage) (any, error) {
		req, err := decode[limitRequest](payload)
		if err != nil {
			return nil, err
		}
		backups, err := s.Backups.List(ctx, uid, req.Limit)
		if err != nil {
			return nil, err
		}
		return map[string]any{"success": true, "backups": backups, "total": len(backups)}, nil
	}
}

type backupIDRequest struct {
	BackupID string `json:"backupId" validate:"required"`
}

func deleteBackup(s Services) HandlerFunc {
	return func(ctx context.Context, uid string, payload json.RawMessage) (any, error) {
		req, err := decode[backupIDRequest](payload)
		if err != nil {
			return nil, err
		}
		if err := s.Backups.Delete(ctx, uid, req.BackupID); err != nil {
			return nil, err
		}
		return map[string]any{"success": true, "message": "Registro de backup removido."}, nil
	}
}

func getBackupStats(s Services) HandlerFunc {
	return func(ctx context.Context, uid string, payload json.RawMessage) (any, error) {
		stats, err := s.Backups.Stats(ctx, uid)
		if err != nil {
			return nil, err
		}
		return map[string]any{"success": true, "stats": stats}, nil
	}
}

func simulateRestore(s Services) HandlerFunc {
	return func(ctx context.Context, uid string, payload json.RawMessage) (any, error) {
		req, err := decode[backupIDRequest](payload)
		if err != nil {
			return nil, err
		}
		return nil, s.Backups.SimulateRestore(ctx, uid, req.BackupID)
	}
}
