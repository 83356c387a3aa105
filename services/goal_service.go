package services

import (
	"context"
	"errors"

	"nutriplan/models"
	"nutriplan/utils"
)

type GoalService struct{ goals GoalStore }

func NewGoalService(goals GoalStore) *GoalService { return &GoalService{goals: goals} }

// Get returns the user's goal, or an empty one if none was set.
func (s *GoalService) Get(ctx context.Context, userID string) (*models.DailyGoal, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	g, err := s.goals.FindGoal(ctx, userID)
	if errors.Is(err, utils.ErrNotFound) {
		return &models.DailyGoal{UserID: userID}, nil
	}
	return g, err
}

func (s *GoalService) Upsert(ctx context.Context, userID string, req models.GoalRequest) (*models.DailyGoal, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if err := utils.ValidateGoal(req); err != nil {
		return nil, err
	}
	g := &models.DailyGoal{
		UserID:   userID,
		Calories: req.Calories,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fat:      req.Fat,
		Fiber:    req.Fiber,
		Sugar:    req.Sugar,
		Sodium:   req.Sodium,
	}
	if err := s.goals.SaveGoal(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}
