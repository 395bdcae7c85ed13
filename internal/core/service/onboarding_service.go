package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gestor-confeitaria/assistant-api/internal/core/domain"
	"github.com/gestor-confeitaria/assistant-api/internal/core/ports"
)

// stepMessages holds the question asked at each onboarding step. {name}
// is replaced with the name collected earlier.
var stepMessages = map[domain.OnboardingStep]string{
	domain.StepWelcome:                  "Olá! Vou te ajudar a organizar as finanças da sua confeitaria. Vamos começar? Primeiro, como você gostaria de ser chamada(o)?",
	domain.StepName:                     "Prazer, {name}! Qual é o nome da sua confeitaria?",
	domain.StepBusinessName:             "Ótimo! Qual é o seu principal objetivo agora? (ex: aumentar o lucro, organizar custos, precificar melhor)",
	domain.StepGoals:                    "Vamos mapear seus custos fixos. Quanto você paga de aluguel por mês? (digite 0 se não paga)",
	domain.StepFixedCostsRent:           "E quanto gasta por mês com água e luz?",
	domain.StepFixedCostsUtilities:      "Quanto paga de internet e telefone por mês?",
	domain.StepFixedCostsInternet:       "Você paga algum salário ou pró-labore? Quanto por mês?",
	domain.StepFixedCostsSalary:         "Tem algum outro custo fixo mensal? Qual o valor total?",
	domain.StepFixedCostsOther:          "Agora os custos variáveis. Quanto gasta por mês com ingredientes, em média?",
	domain.StepVariableCostsIngredients: "E com embalagens?",
	domain.StepVariableCostsPackaging:   "Como você define seus preços hoje? (ex: olho no mercado, custo + margem, intuição)",
	domain.StepPricingStrategy:          "Para fechar: qual é a sua meta de faturamento mensal?",
	domain.StepMonthlyGoal:              "Perfeito, {name}! Seu cadastro está completo. Agora é só registrar despesas e pedidos que eu cuido dos números. 🎂",
	domain.StepCompletion:               "Seu cadastro já está completo! Pode registrar despesas e pedidos normalmente.",
}

// OnboardingProgress is what the onboarding intents return to the client.
type OnboardingProgress struct {
	Step        domain.OnboardingStep `json:"step"`
	Message     string                `json:"message"`
	IsCompleted bool                  `json:"isCompleted"`
	Progress    int                   `json:"progress"` // percent of steps answered
}

type OnboardingService struct {
	repo   ports.OnboardingRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewOnboardingService(repo ports.OnboardingRepository, users ports.UserRepository, logger zerolog.Logger) *OnboardingService {
	return &OnboardingService{repo: repo, users: users, logger: logger}
}

// Start opens (or resumes) the guided setup conversation.
func (s *OnboardingService) Start(ctx context.Context, uid string) (*OnboardingProgress, error) {
	session, err := s.repo.Find(ctx, uid)
	if err == nil {
		return s.progress(session), nil
	}
	if !errors.Is(err, domain.ErrOnboardingNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	session = &domain.OnboardingSession{
		UserID:          uid,
		CurrentStep:     domain.StepWelcome,
		CollectedData:   map[string]string{},
		StartedAt:       now,
		LastInteraction: now,
	}
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}
	s.logger.Info().Str("uid", uid).Msg("onboarding started")
	return s.progress(session), nil
}

// ProcessResponse records the answer to the current step and advances the
// conversation. Reaching the final step marks the session completed and
// stores the collected name on the user's profile.
func (s *OnboardingService) ProcessResponse(ctx context.Context, uid, response string) (*OnboardingProgress, error) {
	response = strings.TrimSpace(response)
	if response == "" {
		return nil, domain.InvalidArgument("A resposta não pode ser vazia.")
	}

	session, err := s.repo.Find(ctx, uid)
	if err != nil {
		if errors.Is(err, domain.ErrOnboardingNotFound) {
			return nil, domain.NotFound("Nenhum cadastro em andamento. Use startOnboarding primeiro.")
		}
		return nil, err
	}
	if session.IsCompleted {
		return s.progress(session), nil
	}

	if session.CollectedData == nil {
		session.CollectedData = map[string]string{}
	}
	session.CollectedData[string(session.CurrentStep)] = response
	session.CurrentStep = session.CurrentStep.Next()
	session.LastInteraction = time.Now().UTC()

	if session.CurrentStep == domain.StepCompletion {
		session.IsCompleted = true
		if name := session.CollectedData[string(domain.StepWelcome)]; name != "" {
			if err := s.users.Update(ctx, uid, ports.ProfileUpdate{DisplayName: &name}); err != nil {
				s.logger.Warn().Err(err).Str("uid", uid).Msg("failed to store onboarding name on profile")
			}
		}
		s.logger.Info().Str("uid", uid).Msg("onboarding completed")
	}

	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}
	return s.progress(session), nil
}

// Status reports where the user is in the conversation without advancing it.
func (s *OnboardingService) Status(ctx context.Context, uid string) (*OnboardingProgress, error) {
	session, err := s.repo.Find(ctx, uid)
	if err != nil {
		if errors.Is(err, domain.ErrOnboardingNotFound) {
			return &OnboardingProgress{Step: domain.StepWelcome, Message: "Cadastro ainda não iniciado.", Progress: 0}, nil
		}
		return nil, err
	}
	return s.progress(session), nil
}

func (s *OnboardingService) progress(session *domain.OnboardingSession) *OnboardingProgress {
	message := stepMessages[session.CurrentStep]
	if name := session.CollectedData[string(domain.StepWelcome)]; name != "" {
		message = strings.ReplaceAll(message, "{name}", name)
	}

	answered := 0
	for _, step := range domain.StepOrder {
		if _, ok := session.CollectedData[string(step)]; ok {
			answered++
		}
	}
	// StepCompletion is never answered, so the divisor excludes it.
	percent := answered * 100 / (len(domain.StepOrder) - 1)

	return &OnboardingProgress{
		Step:        session.CurrentStep,
		Message:     message,
		IsCompleted: session.IsCompleted,
		Progress:    percent,
	}
}
