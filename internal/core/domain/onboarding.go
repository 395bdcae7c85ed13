package domain

import (
	"errors"
	"time"
)

// OnboardingStep identifies one question of the guided setup conversation.
// The sequence follows the paper spreadsheet most confectioners start from:
// identity, fixed costs, variable costs, pricing, goal.
type OnboardingStep string

const (
	StepWelcome                  OnboardingStep = "welcome"
	StepName                     OnboardingStep = "name"
	StepBusinessName             OnboardingStep = "business_name"
	StepGoals                    OnboardingStep = "goals"
	StepFixedCostsRent           OnboardingStep = "fixed_costs_rent"
	StepFixedCostsUtilities      OnboardingStep = "fixed_costs_utilities"
	StepFixedCostsInternet       OnboardingStep = "fixed_costs_internet"
	StepFixedCostsSalary         OnboardingStep = "fixed_costs_salary"
	StepFixedCostsOther          OnboardingStep = "fixed_costs_other"
	StepVariableCostsIngredients OnboardingStep = "variable_costs_ingredients"
	StepVariableCostsPackaging   OnboardingStep = "variable_costs_packaging"
	StepPricingStrategy          OnboardingStep = "pricing_strategy"
	StepMonthlyGoal              OnboardingStep = "monthly_goal"
	StepCompletion               OnboardingStep = "completion"
)

// StepOrder is the fixed sequence of onboarding steps.
var StepOrder = []OnboardingStep{
	StepWelcome,
	StepName,
	StepBusinessName,
	StepGoals,
	StepFixedCostsRent,
	StepFixedCostsUtilities,
	StepFixedCostsInternet,
	StepFixedCostsSalary,
	StepFixedCostsOther,
	StepVariableCostsIngredients,
	StepVariableCostsPackaging,
	StepPricingStrategy,
	StepMonthlyGoal,
	StepCompletion,
}

// Next returns the step that follows s, or StepCompletion when s is the
// last (or unknown) step.
func (s OnboardingStep) Next() OnboardingStep {
	for i, step := range StepOrder {
		if step == s && i+1 < len(StepOrder) {
			return StepOrder[i+1]
		}
	}
	return StepCompletion
}

var ErrOnboardingNotFound = errors.New("onboarding session not found")

// OnboardingSession is the persisted state of one user's setup conversation.
type OnboardingSession struct {
	UserID          string            `json:"user_id" bson:"_id"`
	CurrentStep     OnboardingStep    `json:"current_step" bson:"current_step"`
	CollectedData   map[string]string `json:"collected_data" bson:"collected_data"`
	StartedAt       time.Time         `json:"started_at" bson:"started_at"`
	LastInteraction time.Time         `json:"last_interaction" bson:"last_interaction"`
	IsCompleted     bool              `json:"is_completed" bson:"is_completed"`
}
