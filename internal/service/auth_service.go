package service

import (
	"context"
	"errors"
	"strconv"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"fittrack/backoffice/internal/domain"
	"fittrack/backoffice/internal/repository"
)

// --- Error Definitions ---
var (
	ErrCoachAlreadyExists   = errors.New("coach with this email already exists")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrWeakPassword         = errors.New("password must be at least 8 characters and contain upper case, lower case and a digit")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
)

// AuthService handles coach registration, login and JWT issuing.
type AuthService interface {
	Register(ctx context.Context, nombre, email, password string) (*domain.Coach, error)
	Login(ctx context.Context, email, password string) (token string, coach *domain.Coach, err error)
	GetJWTSecret() string
}

// authService implements the AuthService interface.
type authService struct {
	coachRepo     repository.CoachRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(coachRepo repository.CoachRepository, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour * 24
	}
	return &authService{
		coachRepo:     coachRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// validatePasswordStrength enforces the minimum password policy: at least
// 8 characters with an upper case letter, a lower case letter and a digit.
func validatePasswordStrength(password string) error {
	if len(password) < 8 {
		return ErrWeakPassword
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return ErrWeakPassword
	}
	return nil
}

// Register handles new coach registration.
func (s *authService) Register(ctx context.Context, nombre, email, password string) (*domain.Coach, error) {
	if nombre == "" || email == "" || password == "" {
		return nil, errors.New("nombre, email and password cannot be empty")
	}
	if err := validatePasswordStrength(password); err != nil {
		return nil, err
	}

	// Check if the email is already taken before hashing.
	_, err := s.coachRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrCoachAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	coach := &domain.Coach{
		Nombre:       nombre,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	coachID, err := s.coachRepo.Create(ctx, coach)
	if err != nil {
		// The unique index catches the race between GetByEmail and Create.
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, ErrCoachAlreadyExists
		}
		return nil, err
	}
	coach.ID = coachID

	coach.PasswordHash = ""
	return coach, nil
}

// Login handles coach authentication and JWT generation.
func (s *authService) Login(ctx context.Context, email, password string) (token string, coach *domain.Coach, err error) {
	if email == "" || password == "" {
		err = errors.New("email and password cannot be empty")
		return
	}

	coach, err = s.coachRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			err = ErrAuthenticationFailed
			return
		}
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(coach.PasswordHash), []byte(password))
	if err != nil {
		err = ErrAuthenticationFailed
		coach = nil
		return
	}

	token, err = s.generateJWT(coach)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	coach.PasswordHash = ""
	return token, coach, nil
}

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	CoachID int64 `json:"coach_id"`
	jwt.RegisteredClaims
}

// generateJWT creates a new JWT token for the given coach.
func (s *authService) generateJWT(coach *domain.Coach) (string, error) {
	expirationTime := time.Now().Add(s.jwtExpiration)
	claims := &jwtClaims{
		CoachID: coach.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(coach.ID, 10),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "fittrack-backoffice",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}
	return signedToken, nil
}

// GetJWTSecret returns the JWT secret for middleware authentication.
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
