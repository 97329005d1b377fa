// Package services собирает сводки для панелей участника, тренера и администратора.
package services

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/gym-manager/internal/models"
)

// Repository определяет чтения из хранилища, нужные для сводок.
type Repository interface {
	ListUsers(ctx context.Context) ([]*models.User, error)
	ListUsersByRole(ctx context.Context, role string) ([]*models.User, error)
	ListUserSubscriptions(ctx context.Context, userID int) ([]*models.UserSubscription, error)
	ListAttendance(ctx context.Context, userID int) ([]*models.Attendance, error)
	ListTrainersOf(ctx context.Context, userID int) ([]*models.User, error)
	ListTrainees(ctx context.Context, trainerID int) ([]*models.User, error)
	ListRSVPsByUser(ctx context.Context, userID int) ([]*models.ClassRSVP, error)
	ListClassesByTrainer(ctx context.Context, trainerID int) ([]*models.WorkoutClass, error)
}

// PlanLister отдаёт список тарифных планов (обычно из кеша).
type PlanLister interface {
	ListPlans(ctx context.Context) ([]*models.SubscriptionPlan, error)
}

// ClassLister отдаёт список всех занятий (обычно из кеша).
type ClassLister interface {
	ListClasses(ctx context.Context) ([]*models.WorkoutClass, error)
}

// DashboardService собирает сводки по ролям.
type DashboardService struct {
	repo    Repository
	plans   PlanLister
	classes ClassLister
}

// NewDashboardService создает новый экземпляр DashboardService.
func NewDashboardService(repo Repository, plans PlanLister, classes ClassLister) *DashboardService {
	return &DashboardService{
		repo:    repo,
		plans:   plans,
		classes: classes,
	}
}

// User собирает сводку участника: планы, абонементы, посещения,
// первого назначенного тренера, все занятия и свои записи.
func (s *DashboardService) User(ctx context.Context, user *models.User) (*models.UserDashboard, error) {
	const op = "services.dashboard.User"

	plans, err := s.plans.ListPlans(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	subs, err := s.repo.ListUserSubscriptions(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	attendance, err := s.repo.ListAttendance(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	trainers, err := s.repo.ListTrainersOf(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	classes, err := s.classes.ListClasses(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	rsvps, err := s.repo.ListRSVPsByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var trainer *models.UserResponse
	if len(trainers) > 0 {
		t := models.NewUserResponse(trainers[0])
		trainer = &t
	}

	return &models.UserDashboard{
		User:              models.NewUserResponse(user),
		Subscriptions:     models.NewPlanResponses(plans),
		UserSubscriptions: models.NewUserSubscriptionResponses(subs),
		Attendance:        models.NewAttendanceResponses(attendance),
		TrainerDetails:    trainer,
		Classes:           models.NewClassResponses(classes),
		RSVPs:             models.NewRSVPResponses(rsvps),
	}, nil
}

// Admin собирает сводку администратора со счётчиками.
func (s *DashboardService) Admin(ctx context.Context, user *models.User) (*models.AdminDashboard, error) {
	const op = "services.dashboard.Admin"

	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	trainers, err := s.repo.ListUsersByRole(ctx, models.RoleTrainer)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	plans, err := s.plans.ListPlans(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.AdminDashboard{
		User:          models.NewUserResponse(user),
		Users:         models.NewUserResponses(users),
		Trainers:      models.NewUserResponses(trainers),
		Subscriptions: models.NewPlanResponses(plans),
		Stats: models.AdminStats{
			UserCount:         len(users),
			TrainerCount:      len(trainers),
			SubscriptionCount: len(plans),
		},
	}, nil
}

// Trainer собирает сводку тренера: свои занятия, подопечных и заполненность занятий.
func (s *DashboardService) Trainer(ctx context.Context, user *models.User) (*models.TrainerDashboard, error) {
	const op = "services.dashboard.Trainer"

	classes, err := s.repo.ListClassesByTrainer(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	trainees, err := s.repo.ListTrainees(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	stats := make([]models.ClassStat, 0, len(classes))
	for _, c := range classes {
		stats = append(stats, models.ClassStat{Name: c.Name, AttendanceCount: c.CurrentCapacity})
	}

	return &models.TrainerDashboard{
		User:         models.NewUserResponse(user),
		Classes:      models.NewClassResponses(classes),
		TrainedUsers: models.NewUserResponses(trainees),
		ClassStats:   stats,
	}, nil
}
