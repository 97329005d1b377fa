package models

import "time"

// DefaultMaxCapacity вместимость занятия, если тренер её не указал.
const DefaultMaxCapacity = 10

// WorkoutClass групповое занятие.
// CurrentCapacity число принятых записей, никогда не превышает MaxCapacity.
type WorkoutClass struct {
	ID              int
	Name            string
	DateTime        time.Time
	Description     string
	TrainerID       *int
	MaxCapacity     int
	CurrentCapacity int
}

// HasFreeSpot сообщает, осталось ли свободное место.
func (c *WorkoutClass) HasFreeSpot() bool {
	return c.CurrentCapacity < c.MaxCapacity
}

// ClassRSVP запись пользователя на занятие.
type ClassRSVP struct {
	ID        int
	UserID    int
	ClassID   int
	Attending bool
}

// CreateClassRequest входные данные создания занятия.
type CreateClassRequest struct {
	Name        string    `json:"name" validate:"required,max=100"`
	DateTime    time.Time `json:"date_time" validate:"required"`
	Description string    `json:"description,omitempty"`
	MaxCapacity *int      `json:"max_capacity,omitempty" validate:"omitempty,min=1"`
}

// RSVPRequest запрос записи на занятие.
type RSVPRequest struct {
	ClassID int `json:"class_id" validate:"required,gt=0"`
}

// ClassResponse представление занятия.
type ClassResponse struct {
	ID              int       `json:"id"`
	Name            string    `json:"name"`
	DateTime        time.Time `json:"date_time"`
	Description     string    `json:"description"`
	TrainerID       *int      `json:"trainer_id"`
	MaxCapacity     int       `json:"max_capacity"`
	CurrentCapacity int       `json:"current_capacity"`
}

// NewClassResponse формирует ClassResponse из доменной модели.
func NewClassResponse(c *WorkoutClass) ClassResponse {
	return ClassResponse{
		ID:              c.ID,
		Name:            c.Name,
		DateTime:        c.DateTime.UTC(),
		Description:     c.Description,
		TrainerID:       c.TrainerID,
		MaxCapacity:     c.MaxCapacity,
		CurrentCapacity: c.CurrentCapacity,
	}
}

// NewClassResponses формирует список ClassResponse.
func NewClassResponses(classes []*WorkoutClass) []ClassResponse {
	res := make([]ClassResponse, 0, len(classes))
	for _, c := range classes {
		res = append(res, NewClassResponse(c))
	}
	return res
}

// RSVPResponse представление записи на занятие.
type RSVPResponse struct {
	ID        int  `json:"id"`
	UserID    int  `json:"user_id"`
	ClassID   int  `json:"class_id"`
	Attending bool `json:"attending"`
}

// NewRSVPResponse формирует RSVPResponse из доменной модели.
func NewRSVPResponse(r *ClassRSVP) RSVPResponse {
	return RSVPResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		ClassID:   r.ClassID,
		Attending: r.Attending,
	}
}

// NewRSVPResponses формирует список RSVPResponse.
func NewRSVPResponses(items []*ClassRSVP) []RSVPResponse {
	res := make([]RSVPResponse, 0, len(items))
	for _, r := range items {
		res = append(res, NewRSVPResponse(r))
	}
	return res
}
