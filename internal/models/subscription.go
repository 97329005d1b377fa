package models

import "time"

// UserSubscription абонемент пользователя по тарифному плану.
type UserSubscription struct {
	ID        int
	UserID    int
	PlanID    int
	PlanName  string
	StartDate time.Time
	EndDate   time.Time
}

// IsActive сообщает, действует ли абонемент в момент now.
func (s *UserSubscription) IsActive(now time.Time) bool {
	return s.EndDate.After(now)
}

// RegisterSubscriptionRequest запрос оформления абонемента.
type RegisterSubscriptionRequest struct {
	PlanID int `json:"plan_id" validate:"required,gt=0"`
}

// UserSubscriptionResponse представление абонемента пользователя.
type UserSubscriptionResponse struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	PlanID    int       `json:"plan_id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// NewUserSubscriptionResponse формирует UserSubscriptionResponse из доменной модели.
func NewUserSubscriptionResponse(s *UserSubscription) UserSubscriptionResponse {
	return UserSubscriptionResponse{
		ID:        s.ID,
		UserID:    s.UserID,
		PlanID:    s.PlanID,
		Name:      s.PlanName,
		StartDate: s.StartDate.UTC(),
		EndDate:   s.EndDate.UTC(),
	}
}

// NewUserSubscriptionResponses формирует список UserSubscriptionResponse.
func NewUserSubscriptionResponses(subs []*UserSubscription) []UserSubscriptionResponse {
	res := make([]UserSubscriptionResponse, 0, len(subs))
	for _, s := range subs {
		res = append(res, NewUserSubscriptionResponse(s))
	}
	return res
}
