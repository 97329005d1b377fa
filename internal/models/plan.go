package models

import "time"

// Ограничения тарифного плана. Месяц считается равным 30 дням.
const (
	DaysPerMonth      = 30
	MinDurationMonths = 1
	MaxDurationMonths = 60
)

// SubscriptionPlan тарифный план абонемента.
type SubscriptionPlan struct {
	ID           int
	Name         string
	DurationDays int
	Price        float64
	Description  string
}

// EndDate возвращает дату окончания абонемента, начатого в start.
func (p *SubscriptionPlan) EndDate(start time.Time) time.Time {
	return start.AddDate(0, 0, p.DurationDays)
}

// CreatePlanRequest входные данные создания тарифного плана.
// Диапазон длительности и положительность цены проверяет сервис.
type CreatePlanRequest struct {
	PlanName       string  `json:"plan_name" validate:"required,max=100"`
	DurationMonths int     `json:"duration_months"`
	Price          float64 `json:"price"`
	Description    string  `json:"description,omitempty"`
}

// PlanResponse представление тарифного плана.
type PlanResponse struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	DurationDays int     `json:"duration_days"`
	Price        float64 `json:"price"`
	Description  string  `json:"description"`
}

// NewPlanResponse формирует PlanResponse из доменной модели.
func NewPlanResponse(p *SubscriptionPlan) PlanResponse {
	return PlanResponse{
		ID:           p.ID,
		Name:         p.Name,
		DurationDays: p.DurationDays,
		Price:        p.Price,
		Description:  p.Description,
	}
}

// NewPlanResponses формирует список PlanResponse.
func NewPlanResponses(plans []*SubscriptionPlan) []PlanResponse {
	res := make([]PlanResponse, 0, len(plans))
	for _, p := range plans {
		res = append(res, NewPlanResponse(p))
	}
	return res
}
