package models

// HealthProfile профиль здоровья пользователя, не более одного на пользователя.
// nil в полях означает, что значение ещё не задано.
type HealthProfile struct {
	ID       int
	UserID   int
	WeightKg *float64
	HeightCm *float64
	BMI      *float64
	Goal     *string
}

// HealthProfilePatch частичное обновление профиля: nil-поля не меняются.
type HealthProfilePatch struct {
	WeightKg *float64 `json:"weight_kg,omitempty" validate:"omitempty,gte=0"`
	HeightCm *float64 `json:"height_cm,omitempty" validate:"omitempty,gte=0"`
	Goal     *string  `json:"goal,omitempty"`
}

// Apply применяет patch к профилю и пересчитывает BMI,
// если после обновления и рост, и вес известны и положительны.
// Иначе прежнее значение BMI сохраняется.
func (p *HealthProfile) Apply(patch HealthProfilePatch) {
	if patch.WeightKg != nil {
		w := *patch.WeightKg
		p.WeightKg = &w
	}
	if patch.HeightCm != nil {
		h := *patch.HeightCm
		p.HeightCm = &h
	}
	if patch.Goal != nil {
		g := *patch.Goal
		p.Goal = &g
	}
	if p.WeightKg != nil && p.HeightCm != nil && *p.WeightKg > 0 && *p.HeightCm > 0 {
		bmi := CalculateBMI(*p.WeightKg, *p.HeightCm)
		p.BMI = &bmi
	}
}

// CalculateBMI возвращает индекс массы тела: вес (кг) / рост (м)².
func CalculateBMI(weightKg, heightCm float64) float64 {
	heightM := heightCm / 100
	return weightKg / (heightM * heightM)
}

// HealthProfileResponse представление профиля здоровья.
type HealthProfileResponse struct {
	ID       int      `json:"id"`
	UserID   int      `json:"user_id"`
	WeightKg *float64 `json:"weight_kg"`
	HeightCm *float64 `json:"height_cm"`
	BMI      *float64 `json:"bmi"`
	Goal     *string  `json:"goal"`
}

// NewHealthProfileResponse формирует HealthProfileResponse из доменной модели.
func NewHealthProfileResponse(p *HealthProfile) HealthProfileResponse {
	return HealthProfileResponse{
		ID:       p.ID,
		UserID:   p.UserID,
		WeightKg: p.WeightKg,
		HeightCm: p.HeightCm,
		BMI:      p.BMI,
		Goal:     p.Goal,
	}
}
