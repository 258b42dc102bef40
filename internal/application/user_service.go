package application

import (
	"context"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/property-marketplace/internal/domain/entity"
	"github.com/oksasatya/property-marketplace/internal/domain/errs"
	repo "github.com/oksasatya/property-marketplace/internal/domain/repository"
	"github.com/oksasatya/property-marketplace/pkg/helpers"
	"github.com/oksasatya/property-marketplace/pkg/mailer"
)

var emailPattern = regexp.MustCompile("^[A-Za-z0-9_!#$%&'*+/=?`{|}~^.-]+@[A-Za-z0-9.-]+$")

// UserRegistration is the transient registration payload. Empty strings
// and a zero age count as missing.
type UserRegistration struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
	Age       int
}

// UserService registers users and resolves credentials. Passwords are
// handled through the injected comparer; the service never interprets the
// stored representation itself.
type UserService struct {
	Repo      repo.UserRepository
	JWT       *helpers.JWTManager
	Passwords helpers.PasswordComparer
	Redis     *redis.Client
	Logger    *logrus.Logger
	Pub       *helpers.RabbitPublisher
}

func NewUserService(repo repo.UserRepository, jwt *helpers.JWTManager, pw helpers.PasswordComparer, rdb *redis.Client, logger *logrus.Logger, pub *helpers.RabbitPublisher) *UserService {
	return &UserService{Repo: repo, JWT: jwt, Passwords: pw, Redis: rdb, Logger: logger, Pub: pub}
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

func sessionKey(userID string) string {
	return "user:session:" + userID
}

// Register validates the payload, persists the user with the USER role,
// and returns the principal view of the saved record.
func (s *UserService) Register(ctx context.Context, in UserRegistration) (entity.UserClaims, error) {
	if err := validateRegistration(in); err != nil {
		return entity.UserClaims{}, err
	}

	stored, err := s.Passwords.Hash(in.Password)
	if err != nil {
		return entity.UserClaims{}, err
	}

	u := &entity.User{
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Age:       in.Age,
		Password:  stored,
		Role:      entity.RoleUser,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return entity.UserClaims{}, err
	}

	if s.Pub != nil {
		job := mailer.WelcomeJob(u.Email, u.FirstName)
		if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("email", u.Email).Warn("welcome email enqueue failed")
		}
	}

	return u.Claims(), nil
}

// validateRegistration applies the registration rules in order: email,
// then first name, then age. The first violated rule is the one reported.
func validateRegistration(in UserRegistration) error {
	if in.Email == "" || !emailPattern.MatchString(in.Email) {
		return errs.BadRequest("Bad email")
	}
	if in.FirstName == "" {
		return errs.NullData("First name must not be null")
	}
	if in.Age < 1 {
		return errs.BadRequest("Bad age")
	}
	return nil
}

// Authenticate resolves email/secret to a principal. The secret is
// compared against the stored representation through the opaque comparer.
func (s *UserService) Authenticate(ctx context.Context, email, secret string) (entity.UserClaims, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errs.IsKind(err, errs.KindNotFound) {
			return entity.UserClaims{}, errs.NotFound("no user registered with email " + email)
		}
		return entity.UserClaims{}, err
	}
	if !s.Passwords.Compare(u.Password, secret) {
		return entity.UserClaims{}, errs.Unauthorized("Bad credentials")
	}
	return u.Claims(), nil
}

// FindByID returns the principal view of a stored user.
func (s *UserService) FindByID(ctx context.Context, id uuid.UUID) (entity.UserClaims, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errs.IsKind(err, errs.KindNotFound) {
			return entity.UserClaims{}, errs.NotFound("no user with id " + id.String())
		}
		return entity.UserClaims{}, err
	}
	return u.Claims(), nil
}

// Login authenticates and issues a token pair, recording a session hash
// in redis as a convenience for ops tooling. Token verification itself
// never consults the session.
func (s *UserService) Login(ctx context.Context, email, secret string) (entity.UserClaims, TokenPair, error) {
	claims, err := s.Authenticate(ctx, email, secret)
	if err != nil {
		return entity.UserClaims{}, TokenPair{}, err
	}

	access, aexp, err := s.JWT.GenerateAccessToken(claims)
	if err != nil {
		return entity.UserClaims{}, TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(claims)
	if err != nil {
		return entity.UserClaims{}, TokenPair{}, err
	}

	if s.Redis != nil {
		key := sessionKey(claims.ID.String())
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"user_id":   claims.ID.String(),
			"email":     claims.Email,
			"role":      string(claims.Role),
			"logged_in": true,
			"at":        time.Now().UTC().Format(time.RFC3339Nano),
		})
		pipe.Expire(ctx, key, 24*time.Hour)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return claims, TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}
