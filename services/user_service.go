package services

import (
	"context"
	"strings"

	"nutriplan/models"
	"nutriplan/utils"
)

type Profile struct {
	*models.User
	BMI             *float64 `json:"bmi,omitempty"`
	BMICategory     string   `json:"bmiCategory,omitempty"`
	DailyCalorieEst *float64 `json:"dailyCalorieEstimate,omitempty"`
}

type UserService struct{ users UserStore }

func NewUserService(users UserStore) *UserService { return &UserService{users: users} }

func (s *UserService) Profile(ctx context.Context, userID string) (*Profile, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	u, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return buildProfile(u), nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, req models.ProfileRequest) (*Profile, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if err := utils.ValidateProfile(req); err != nil {
		return nil, err
	}
	u, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.Name = strings.TrimSpace(req.Name)
	u.Age = req.Age
	u.Gender = req.Gender
	u.Height = req.Height
	u.Weight = req.Weight
	u.ActivityLevel = req.ActivityLevel
	if err := s.users.SaveUser(ctx, u); err != nil {
		return nil, err
	}
	return buildProfile(u), nil
}

// buildProfile adds the derived body metrics the stored attributes allow.
func buildProfile(u *models.User) *Profile {
	p := &Profile{User: u}
	if u.Height == nil || u.Weight == nil {
		return p
	}
	if bmi, err := utils.CalculateBMI(*u.Height, *u.Weight); err == nil {
		p.BMI = &bmi
		p.BMICategory = utils.BMICategory(bmi)
	}
	if u.Age != nil && u.Gender != "" && u.ActivityLevel != "" {
		if kcal, err := utils.EstimateDailyCalories(*u.Age, u.Gender, *u.Height, *u.Weight, u.ActivityLevel); err == nil {
			p.DailyCalorieEst = &kcal
		}
	}
	return p
}
