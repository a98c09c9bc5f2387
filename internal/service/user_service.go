package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"school_quiz_backend/internal/model"
	"school_quiz_backend/internal/util"
	"strings"
)

// CreateUserRequest 教师/管理员创建账号
// swagger:model CreateUserRequest
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password"`
	Role     string `json:"role" binding:"omitempty,oneof=student faculty admin"`
	SchoolID *uint  `json:"schoolId"`
	Grade    string `json:"grade"`
	Phone    string `json:"phone"`
}

// UpdateUserRequest 修改学生资料
// swagger:model UpdateUserRequest
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	SchoolID *uint   `json:"schoolId"`
	Grade    *string `json:"grade"`
	Phone    *string `json:"phone"`
	Disabled *bool   `json:"disabled"`
}

// UserService 处理学生名册相关的业务逻辑
type UserService struct {
	Users   UserStore
	Schools SchoolStore
	Auth    *AuthService
}

func NewUserService(users UserStore, schools SchoolStore, auth *AuthService) *UserService {
	return &UserService{Users: users, Schools: schools, Auth: auth}
}

// ListUsers 分页查询用户
func (s *UserService) ListUsers(ctx context.Context, filter UserFilter) ([]model.User, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 200 {
		filter.Limit = 20
	}
	return s.Users.List(ctx, filter)
}

// CreateUser 创建账号；未提供密码时生成临时密码并返回
func (s *UserService) CreateUser(ctx context.Context, actorRole model.UserRole, req CreateUserRequest) (*model.User, string, error) {
	role := model.UserRole(req.Role)
	if role == "" {
		role = model.Student
	}
	// 教师只能创建学生
	if actorRole != model.Admin && role != model.Student {
		return nil, "", util.ErrPermissionDenied
	}
	if req.SchoolID != nil {
		if _, err := s.Schools.FindByID(ctx, *req.SchoolID); err != nil {
			return nil, "", err
		}
	}

	tempPassword := ""
	password := req.Password
	if password == "" {
		tempPassword = generateTempPassword()
		password = tempPassword
	} else if len(password) < 8 {
		return nil, "", util.Validationf("password must be at least 8 characters")
	}

	user := &model.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: password,
		Role:     role,
		SchoolID: req.SchoolID,
		Grade:    req.Grade,
		Phone:    req.Phone,
	}
	if err := s.Auth.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}
	return user, tempPassword, nil
}

// UpdateUser 更新资料；scopeSchoolID 非空时只能修改本校学生
func (s *UserService) UpdateUser(ctx context.Context, id uint, scopeSchoolID *uint, req UpdateUserRequest) (*model.User, error) {
	user, err := s.Users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if scopeSchoolID != nil && (user.SchoolID == nil || *user.SchoolID != *scopeSchoolID) {
		return nil, util.ErrUserNotFound
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.SchoolID != nil {
		if _, err := s.Schools.FindByID(ctx, *req.SchoolID); err != nil {
			return nil, err
		}
		user.SchoolID = req.SchoolID
	}
	if req.Grade != nil {
		user.Grade = *req.Grade
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Disabled != nil {
		user.Disabled = *req.Disabled
	}

	if err := s.Users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ResetPassword 重置为临时密码；scopeSchoolID 含义同 UpdateUser
func (s *UserService) ResetPassword(ctx context.Context, id uint, scopeSchoolID *uint) (string, error) {
	user, err := s.Users.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	if scopeSchoolID != nil && (user.SchoolID == nil || *user.SchoolID != *scopeSchoolID) {
		return "", util.ErrUserNotFound
	}

	tempPassword := generateTempPassword()
	hashed, err := HashPassword(tempPassword)
	if err != nil {
		return "", err
	}
	user.Password = hashed
	if err := s.Users.Update(ctx, user); err != nil {
		return "", err
	}
	return tempPassword, nil
}

// generateTempPassword 生成 12 位随机临时密码
func generateTempPassword() string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
