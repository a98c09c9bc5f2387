package service

import (
	"context"
	"errors"
	"school_quiz_backend/internal/config"
	"school_quiz_backend/internal/model"
	"school_quiz_backend/internal/util"
	"school_quiz_backend/pkg/logger"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// RegisterRequest 学生自助注册
// swagger:model RegisterRequest
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	SchoolID *uint  `json:"schoolId"`
	Grade    string `json:"grade"`
}

type AuthService struct {
	Users   UserStore
	Schools SchoolStore
	JWT     config.JWTConfig
	Now     func() time.Time
}

func NewAuthService(users UserStore, schools SchoolStore, jwtCfg config.JWTConfig) *AuthService {
	return &AuthService{
		Users:   users,
		Schools: schools,
		JWT:     jwtCfg,
		Now:     time.Now,
	}
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	if req.SchoolID != nil {
		if _, err := s.Schools.FindByID(ctx, *req.SchoolID); err != nil {
			return nil, err
		}
	}

	user := &model.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: req.Password,
		Role:     model.Student,
		SchoolID: req.SchoolID,
		Grade:    req.Grade,
	}
	if err := s.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUser 校验邮箱唯一并加密密码后入库；user.Password 传入明文
func (s *AuthService) CreateUser(ctx context.Context, user *model.User) error {
	_, err := s.Users.FindByEmail(ctx, user.Email)
	if err == nil {
		return util.ErrEmailRegistered
	} else if !errors.Is(err, util.ErrUserNotFound) {
		return err
	}

	hashed, err := HashPassword(user.Password)
	if err != nil {
		return err
	}
	user.Password = hashed
	return s.Users.Create(ctx, user)
}

// Login 校验账号密码并签发 JWT
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.Users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			return "", nil, util.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}
	if user.Disabled {
		return "", nil, util.ErrAccountDisabled
	}

	token, err := util.GenerateJWT(user, s.JWT.Secret, s.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}

	if err := s.Users.TouchLastLogin(ctx, user.ID, s.Now()); err != nil {
		logger.Log.Warn("update last login failed", zap.Uint("userID", user.ID), zap.Error(err))
	}
	return token, user, nil
}

func (s *AuthService) GetCurrentUser(ctx context.Context, userID uint) (*model.User, error) {
	return s.Users.FindByID(ctx, userID)
}
