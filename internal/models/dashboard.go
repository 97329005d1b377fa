package models

// UserDashboard сводка для участника.
type UserDashboard struct {
	User              UserResponse               `json:"user"`
	Subscriptions     []PlanResponse             `json:"subscriptions"`
	UserSubscriptions []UserSubscriptionResponse `json:"user_subscriptions"`
	Attendance        []AttendanceResponse       `json:"attendance"`
	TrainerDetails    *UserResponse              `json:"trainer_details"`
	Classes           []ClassResponse            `json:"classes"`
	RSVPs             []RSVPResponse             `json:"rsvps"`
}

// AdminStats счётчики для панели администратора.
type AdminStats struct {
	UserCount         int `json:"user_count"`
	TrainerCount      int `json:"trainer_count"`
	SubscriptionCount int `json:"subscription_count"`
}

// AdminDashboard сводка для администратора.
type AdminDashboard struct {
	User          UserResponse   `json:"user"`
	Users         []UserResponse `json:"users"`
	Trainers      []UserResponse `json:"trainers"`
	Subscriptions []PlanResponse `json:"subscriptions"`
	Stats         AdminStats     `json:"stats"`
}

// ClassStat статистика занятия: число записавшихся.
type ClassStat struct {
	Name            string `json:"name"`
	AttendanceCount int    `json:"attendance_count"`
}

// TrainerDashboard сводка для тренера.
type TrainerDashboard struct {
	User         UserResponse    `json:"user"`
	Classes      []ClassResponse `json:"classes"`
	TrainedUsers []UserResponse  `json:"trained_users"`
	ClassStats   []ClassStat     `json:"class_stats"`
}
