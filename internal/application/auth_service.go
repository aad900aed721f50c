package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/securetask/internal/domain/entity"
	repo "github.com/oksasatya/securetask/internal/domain/repository"
	"github.com/oksasatya/securetask/pkg/helpers"
	"github.com/oksasatya/securetask/pkg/mailer"
	mailtpl "github.com/oksasatya/securetask/pkg/mailer/templates"
	"github.com/oksasatya/securetask/pkg/validation"
)

// PasswordHasher is satisfied by helpers.BcryptHasher.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(hash, plain string) bool
}

// TokenIssuer is satisfied by helpers.JWTManager.
type TokenIssuer interface {
	GenerateAccessToken(userID string, role entity.Role) (string, time.Time, error)
}

// JobPublisher is satisfied by helpers.RabbitPublisher.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// UserIndex keeps a searchable copy of user summaries.
type UserIndex interface {
	IndexUser(ctx context.Context, u entity.UserSummary) error
	SearchUsers(ctx context.Context, q string, size int) ([]entity.UserSummary, error)
}

// AuthService is the credential store: registration, lookup and login.
type AuthService struct {
	Users  repo.UserRepository
	Hasher PasswordHasher
	Tokens TokenIssuer
	Logger *logrus.Logger

	// AllowAdminSignup lets a registration request ask for the admin role.
	AllowAdminSignup bool

	Index    UserIndex
	Mail     JobPublisher
	Branding mailtpl.Branding

	// compared against when the email is unknown so both login failures cost one bcrypt run
	dummyHash string
}

func NewAuthService(users repo.UserRepository, hasher PasswordHasher, tokens TokenIssuer, logger *logrus.Logger, allowAdminSignup bool) *AuthService {
	if logger == nil {
		logger = helpers.NewNopLogger()
	}
	s := &AuthService{
		Users:            users,
		Hasher:           hasher,
		Tokens:           tokens,
		Logger:           logger,
		AllowAdminSignup: allowAdminSignup,
	}
	if h, err := hasher.Hash("timing-equalizer-not-a-password"); err == nil {
		s.dummyHash = h
	} else {
		logger.WithError(err).Warn("could not prepare dummy password hash")
	}
	return s
}

// WithIndex enables search indexing of newly registered users.
func (s *AuthService) WithIndex(ix UserIndex) *AuthService {
	s.Index = ix
	return s
}

// WithWelcomeMail enables the welcome email job on registration.
func (s *AuthService) WithWelcomeMail(pub JobPublisher, b mailtpl.Branding) *AuthService {
	s.Mail = pub
	s.Branding = b
	return s
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string // optional; defaults to entity.DefaultRole
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *entity.User
}

// NormalizeEmail makes email uniqueness case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) validateRegister(in RegisterInput) (name, email string, role entity.Role, err error) {
	verr := newValidationError()

	name = strings.TrimSpace(in.Name)
	if name == "" {
		verr.add("name", "is required")
	}

	email = NormalizeEmail(in.Email)
	switch {
	case email == "":
		verr.add("email", "is required")
	case !validation.IsEmail(email):
		verr.add("email", "must be a valid email")
	}

	switch n := len(in.Password); {
	case n == 0:
		verr.add("password", "is required")
	case n < validation.PasswordMinLen || n > validation.PasswordMaxLen:
		verr.add("password", fmt.Sprintf("must be between %d and %d characters long", validation.PasswordMinLen, validation.PasswordMaxLen))
	}

	role, ok := entity.ParseRole(strings.TrimSpace(in.Role))
	switch {
	case !ok:
		verr.add("role", "must be one of: user, admin")
	case role == entity.RoleAdmin && !s.AllowAdminSignup:
		verr.add("role", "admin registration is disabled")
	}

	return name, email, role, verr.orNil()
}

// Register validates the input, rejects a taken email and stores a new user
// with a hashed password.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	name, email, role, err := s.validateRegister(in)
	if err != nil {
		return nil, err
	}

	existing, err := s.Users.GetByEmail(ctx, email)
	switch {
	case err == nil && existing != nil:
		return nil, ErrEmailTaken
	case err != nil && !errors.Is(err, repo.ErrNotFound):
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &entity.User{Name: name, Email: email, PasswordHash: hash, Role: role}
	if err := s.Users.Create(ctx, u); err != nil {
		// the store's unique constraint settles concurrent registrations
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "role": u.Role}).Info("user registered")
	s.afterRegister(ctx, u)
	return u, nil
}

// afterRegister runs best-effort side effects; failures are logged only.
func (s *AuthService) afterRegister(ctx context.Context, u *entity.User) {
	if s.Index != nil {
		if err := s.Index.IndexUser(ctx, u.Summary()); err != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("index user failed")
		}
	}
	if s.Mail != nil {
		job := mailer.WelcomeJob(u.Email, mailtpl.NewWelcomeData(s.Branding, u.Name, u.Email, u.CreatedAt))
		if err := s.Mail.PublishJSON(ctx, job); err != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("publish welcome email failed")
		}
	}
}

// FindByEmail returns ErrUserNotFound when no user has the email.
func (s *AuthService) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	return u, nil
}

// Login checks credentials and issues an access token. Unknown email and
// wrong password are both ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			return nil, err
		}
		s.Hasher.Verify(s.dummyHash, password)
		return nil, ErrInvalidCredentials
	}
	if !s.Hasher.Verify(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.Tokens.GenerateAccessToken(u.ID, u.Role)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &LoginResult{Token: token, ExpiresAt: exp, User: u}, nil
}
