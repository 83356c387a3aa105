package repository

import (
	"context"
	"errors"

	"nutriplan/models"

	"gorm.io/gorm"
)

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	return storageErr("create user", "user", u.ID, s.db.WithContext(ctx).Create(u).Error)
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, storageErr("find user", "user", email, err)
	}
	return &u, nil
}

func (s *Store) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, storageErr("find user", "user", id, err)
	}
	return &u, nil
}

func (s *Store) SaveUser(ctx context.Context, u *models.User) error {
	return storageErr("save user", "user", u.ID, s.db.WithContext(ctx).Save(u).Error)
}

func (s *Store) FindGoal(ctx context.Context, userID string) (*models.DailyGoal, error) {
	var g models.DailyGoal
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&g).Error; err != nil {
		return nil, storageErr("find goal", "daily goal", userID, err)
	}
	return &g, nil
}

// SaveGoal upserts by user.
func (s *Store) SaveGoal(ctx context.Context, g *models.DailyGoal) error {
	var existing models.DailyGoal
	err := s.db.WithContext(ctx).Where("user_id = ?", g.UserID).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return storageErr("create goal", "daily goal", g.UserID, s.db.WithContext(ctx).Create(g).Error)
	case err != nil:
		return storageErr("find goal", "daily goal", g.UserID, err)
	}
	g.ID = existing.ID
	return storageErr("save goal", "daily goal", g.UserID, s.db.WithContext(ctx).Save(g).Error)
}

func (s *Store) FindDevice(ctx context.Context, userID, tokenHash string) (*models.UserDevice, error) {
	var d models.UserDevice
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND token_hash = ?", userID, tokenHash).
		First(&d).Error
	if err != nil {
		return nil, storageErr("find device", "device", "", err)
	}
	return &d, nil
}

func (s *Store) SaveDevice(ctx context.Context, d *models.UserDevice) error {
	return storageErr("save device", "device", "", s.db.WithContext(ctx).Save(d).Error)
}

func (s *Store) ListEnabledDevices(ctx context.Context, userID string) ([]models.UserDevice, error) {
	var devices []models.UserDevice
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND enabled = ?", userID, true).
		Find(&devices).Error
	if err != nil {
		return nil, storageErr("list devices", "device", "", err)
	}
	return devices, nil
}

func (s *Store) SetDevicesEnabled(ctx context.Context, userID string, enabled bool) error {
	err := s.db.WithContext(ctx).Model(&models.UserDevice{}).
		Where("user_id = ?", userID).
		Update("enabled", enabled).Error
	return storageErr("toggle devices", "device", "", err)
}
