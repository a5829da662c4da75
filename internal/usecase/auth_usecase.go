package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"docscript/internal/converter"
	"docscript/internal/delivery/dto"
	"docscript/internal/domain/entity"
	"docscript/internal/domain/repository"
	"docscript/internal/infrastructure/cache"
	"docscript/pkg/jwt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
}

type authUsecase struct {
	log            *logrus.Logger
	userRepo       repository.UserRepository
	sessions       *sessionIssuer
	denylist       cache.TokenDenylist
	initAdminEmail string
}

func NewAuthUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	jwtService *jwt.JWTService,
	denylist cache.TokenDenylist,
	clinicID uuid.UUID,
	initAdminEmail string,
) AuthUsecase {
	return &authUsecase{
		log:            log,
		userRepo:       userRepo,
		sessions:       &sessionIssuer{jwtService: jwtService, clinicID: clinicID},
		denylist:       denylist,
		initAdminEmail: initAdminEmail,
	}
}

func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	existing, err := u.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := hashPassword(req.Password)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	// The very first account becomes an approved admin when it matches the bootstrap address.
	role := entity.RoleUser
	approved := false
	count, err := u.userRepo.Count(ctx)
	if err != nil {
		u.log.Warnf("Failed to count users: %+v", err)
		return nil, err
	}
	if count == 0 && u.initAdminEmail != "" && u.initAdminEmail == req.Email {
		role = entity.RoleAdmin
		approved = true
	}

	user := &entity.User{
		Email:    req.Email,
		Password: hashedPassword,
		Name:     req.Name,
		Role:     role,
		Approved: approved,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	return u.sessions.issue(user, u.log)
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := u.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Unapproved users still get a token; the approved flag lets the client gate features.
	return u.sessions.issue(user, u.log)
}

func (u *authUsecase) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if err := u.denylist.Revoke(ctx, tokenID, expiresAt); err != nil {
		u.log.Warnf("Failed to revoke token: %+v", err)
		return err
	}
	return nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

// sessionIssuer signs tokens bound to the clinic resolved at startup.
type sessionIssuer struct {
	jwtService *jwt.JWTService
	clinicID   uuid.UUID
}

func (s *sessionIssuer) issue(user *entity.User, log *logrus.Logger) (*dto.AuthResponse, error) {
	token, _, err := s.jwtService.GenerateToken(user.ID, user.Role.String(), s.clinicID)
	if err != nil {
		log.Warnf("Failed to generate token: %+v", err)
		return nil, err
	}

	return &dto.AuthResponse{
		User:  converter.UserToResponse(user),
		Token: token,
	}, nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique violation
// containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
