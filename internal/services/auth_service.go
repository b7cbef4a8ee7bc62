package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mazingira/donations-backend/internal/apperr"
	"github.com/mazingira/donations-backend/internal/config"
	"github.com/mazingira/donations-backend/internal/dto"
	"github.com/mazingira/donations-backend/internal/identity"
	"github.com/mazingira/donations-backend/internal/models"
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

// Register creates a new donor account. Username and email are globally
// unique: a duplicate fails with a conflict whether it is caught by the
// pre-check or by the database constraint when two writers race.
func (s *AuthService) Register(req *dto.SignupRequest) (*dto.UserResponse, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, apperr.Validation("username, email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Storage("failed to hash password", err)
	}

	user := models.User{
		ID:       uuid.New(),
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
		Role:     models.RoleDonor,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.User
		if err := tx.Where("username = ? OR email = ?", req.Username, req.Email).First(&existing).Error; err == nil {
			return apperr.Conflict("username or email already registered")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Storage("failed to check existing user", err)
		}
		if err := tx.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflict("username or email already registered")
			}
			return apperr.Storage("failed to create user", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return userResponse(&user), nil
}

// Login verifies the credentials and issues a signed, time-limited token
// binding {id, role}.
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, apperr.Validation("email and password are required")
	}

	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Auth("invalid email or password")
		}
		return nil, apperr.Storage("failed to load user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperr.Auth("invalid email or password")
	}

	token, err := s.signToken(&user)
	if err != nil {
		return nil, apperr.Storage("failed to sign token", err)
	}

	return &dto.AuthResponse{
		AccessToken: token,
		User:        *userResponse(&user),
	}, nil
}

// ChangePassword replaces the stored hash after re-verifying the old
// password.
func (s *AuthService) ChangePassword(id identity.Identity, req *dto.ChangePasswordRequest) error {
	if req.OldPassword == "" || req.NewPassword == "" {
		return apperr.Validation("old and new passwords are required")
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", id.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("user not found")
		}
		return apperr.Storage("failed to load user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		return apperr.Auth("old password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Storage("failed to hash password", err)
	}

	if err := s.db.Model(&user).Update("password", string(hash)).Error; err != nil {
		return apperr.Storage("failed to update password", err)
	}
	return nil
}

// Resolve loads the full record behind an identity descriptor.
func (s *AuthService) Resolve(id identity.Identity) (*dto.UserResponse, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Storage("failed to load user", err)
	}
	return userResponse(&user), nil
}

func (s *AuthService) signToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.ID.String(),
		"role":     user.Role,
		"username": user.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(s.cfg.JWTExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func userResponse(user *models.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}
