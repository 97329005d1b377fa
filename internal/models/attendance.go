package models

import "time"

// DateLayout формат календарной даты в ответах.
const DateLayout = "2006-01-02"

// Attendance отметка посещения за календарный день.
type Attendance struct {
	ID       int
	UserID   int
	Date     time.Time
	Attended bool
}

// AttendanceResponse представление отметки посещения.
type AttendanceResponse struct {
	ID       int    `json:"id"`
	UserID   int    `json:"user_id"`
	Date     string `json:"date"`
	Attended bool   `json:"attended"`
}

// NewAttendanceResponse формирует AttendanceResponse из доменной модели.
func NewAttendanceResponse(a *Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:       a.ID,
		UserID:   a.UserID,
		Date:     a.Date.Format(DateLayout),
		Attended: a.Attended,
	}
}

// NewAttendanceResponses формирует список AttendanceResponse.
func NewAttendanceResponses(items []*Attendance) []AttendanceResponse {
	res := make([]AttendanceResponse, 0, len(items))
	for _, a := range items {
		res = append(res, NewAttendanceResponse(a))
	}
	return res
}
