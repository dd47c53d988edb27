package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"iqr-control-backend/models"
	"iqr-control-backend/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const minPasswordLength = 6

type UserInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
}

// ProfileInput changes only the fields that are non-empty
type ProfileInput struct {
	FirstName       string
	LastName        string
	Email           string
	ProfileImageURL string
	Password        string
}

type UserService struct {
	db     *gorm.DB
	logger *zap.Logger
	now    func() time.Time
}

func NewUserService(db *gorm.DB, logger *zap.Logger) *UserService {
	return &UserService{
		db:     db,
		logger: logger.Named("users"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Authenticate checks the credentials and stamps the last login time
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	if err := s.db.WithContext(ctx).Model(&user).Update("last_login_at", now).Error; err != nil {
		s.logger.Warn("failed to update last login", zap.String("user_id", user.ID.String()), zap.Error(err))
	}
	user.LastLoginAt = &now
	return &user, nil
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error
	return users, err
}

func (s *UserService) Create(ctx context.Context, in UserInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" || len(in.Password) < minPasswordLength {
		return nil, invalid(utils.MsgUserInvalid)
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username:  in.Username,
		Password:  hash,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrUsernameTaken
		}
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		return RecordActivity(tx, models.ActivityUserCreated,
			fmt.Sprintf("تم إنشاء مستخدم جديد: %s", user.Username), ptr(user.ID))
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, in ProfileInput) (*models.User, error) {
	if in.Password != "" && len(in.Password) < minPasswordLength {
		return nil, invalid(utils.MsgUserInvalid)
	}

	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, "id = ?", id).Error; err != nil {
			return notFound(err)
		}

		if v := strings.TrimSpace(in.FirstName); v != "" {
			user.FirstName = v
		}
		if v := strings.TrimSpace(in.LastName); v != "" {
			user.LastName = v
		}
		if v := strings.TrimSpace(in.Email); v != "" {
			user.Email = v
		}
		if v := strings.TrimSpace(in.ProfileImageURL); v != "" {
			user.ProfileImageURL = v
		}
		if strings.TrimSpace(in.Password) != "" {
			hash, err := utils.HashPassword(in.Password)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			user.Password = hash
		}

		if err := tx.Save(&user).Error; err != nil {
			return fmt.Errorf("update profile: %w", err)
		}
		return RecordActivity(tx, models.ActivityProfileUpdated,
			fmt.Sprintf("تم تحديث الملف الشخصي للمستخدم: %s", user.Username), ptr(user.ID))
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SeedAdmin creates the first user when the table is empty. It reports whether a user was created.
func (s *UserService) SeedAdmin(ctx context.Context, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, nil
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	if _, err := s.Create(ctx, UserInput{Username: username, Password: password}); err != nil {
		return false, err
	}
	s.logger.Info("seeded initial admin user", zap.String("username", username))
	return true, nil
}
