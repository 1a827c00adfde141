package services

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"strconv"
	"time"

	"time-tracker-api/middleware"
	"time-tracker-api/models"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// AuthService owns the credential lifecycle: registration, login, password
// updates and JWT issuance. Token settings come from the environment when the
// service is constructed.
type AuthService struct {
	db         *gorm.DB
	secret     []byte
	issuer     string
	audience   string
	expiryDays int
}

// NewAuthService builds an AuthService from JWT_* environment settings.
// JWT_EXPIRY_DAYS falls back to 3 days, matching the session cookie lifetime.
func NewAuthService(db *gorm.DB) *AuthService {
	expiryDays, err := strconv.Atoi(os.Getenv("JWT_EXPIRY_DAYS"))
	if err != nil || expiryDays <= 0 {
		expiryDays = 3
	}

	return &AuthService{
		db:         db,
		secret:     []byte(os.Getenv("JWT_SECRET")),
		issuer:     os.Getenv("JWT_ISSUER"),
		audience:   os.Getenv("JWT_AUDIENCE"),
		expiryDays: expiryDays,
	}
}

// RegisterInput carries the fields accepted at registration time.
type RegisterInput struct {
	NetID     string
	Password  string
	FirstName string
	LastName  string
	Role      string
	Group     int
}

// AuthResult is returned on successful login.
type AuthResult struct {
	Token                  string
	RequiresPasswordChange bool
	User                   models.User
}

// HashPassword digests a password as SHA-256 hex. The digest is deterministic
// and unsalted, which the same-as-old-password check depends on; see the
// security note in DESIGN.md before reusing this outside the API.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// UserByNetID resolves a NetID to its user row, ErrNotFound when absent.
func (s *AuthService) UserByNetID(netID string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("net_id = ?", netID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Register creates a new account with a hashed password and the default-
// password flag set. The role defaults to Student when unspecified.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	var existing models.User
	err := s.db.Where("net_id = ?", input.NetID).First(&existing).Error
	if err == nil {
		return nil, ErrNetIDTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = models.RoleStudent
	}

	user := models.User{
		NetID:             input.NetID,
		Password:          HashPassword(input.Password),
		IsDefaultPassword: true,
		Role:              role,
		Group:             input.Group,
		FirstName:         input.FirstName,
		LastName:          input.LastName,
		CreatedAt:         time.Now(),
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate verifies a NetID/password pair and issues a signed token.
// Unknown NetID and wrong password return the same ErrInvalidCredentials so
// callers cannot enumerate accounts.
func (s *AuthService) Authenticate(netID, password string) (*AuthResult, error) {
	var user models.User
	if err := s.db.Where("net_id = ?", netID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.Password != HashPassword(password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		Token:                  token,
		RequiresPasswordChange: user.IsDefaultPassword,
		User:                   user,
	}, nil
}

// UpdatePassword replaces the stored digest and clears the default-password
// flag. Re-submitting the current password is rejected with ErrSamePassword.
func (s *AuthService) UpdatePassword(netID, newPassword string) error {
	var user models.User
	if err := s.db.Where("net_id = ?", netID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	newHash := HashPassword(newPassword)
	if user.Password == newHash {
		return ErrSamePassword
	}

	return s.db.Model(&models.User{}).
		Where("net_id = ?", netID).
		Updates(map[string]interface{}{
			"password":            newHash,
			"is_default_password": false,
		}).Error
}

// TokenExpiry returns how long issued tokens stay valid.
func (s *AuthService) TokenExpiry() time.Duration {
	return time.Duration(s.expiryDays) * 24 * time.Hour
}

func (s *AuthService) generateToken(user models.User) (string, error) {
	now := time.Now()
	claims := middleware.Claims{
		NetID: user.NetID,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TokenExpiry())),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
