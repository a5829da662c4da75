package usecase

import (
	"context"
	"errors"

	"docscript/internal/converter"
	"docscript/internal/delivery/dto"
	"docscript/internal/domain/entity"
	"docscript/internal/domain/repository"
	"docscript/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// PromoteOutcome reports what PromoteByEmail changed.
type PromoteOutcome int

const (
	PromoteUnchanged PromoteOutcome = iota
	PromoteApproved
	PromotePromoted
)

type UserUsecase interface {
	ListUsers(ctx context.Context) ([]*dto.UserResponse, error)
	DeleteUser(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
	MakeAdmin(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
	ApproveUser(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
	CreateAdmin(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	PromoteByEmail(ctx context.Context, email string) (PromoteOutcome, *dto.UserResponse, error)
}

type userUsecase struct {
	log      *logrus.Logger
	userRepo repository.UserRepository
	sessions *sessionIssuer
}

func NewUserUsecase(log *logrus.Logger, userRepo repository.UserRepository, jwtService *jwt.JWTService, clinicID uuid.UUID) UserUsecase {
	return &userUsecase{
		log:      log,
		userRepo: userRepo,
		sessions: &sessionIssuer{jwtService: jwtService, clinicID: clinicID},
	}
}

func (u *userUsecase) ListUsers(ctx context.Context) ([]*dto.UserResponse, error) {
	users, err := u.userRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to list users: %+v", err)
		return nil, err
	}
	return converter.UsersToResponse(users), nil
}

func (u *userUsecase) findUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := u.userRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// updateError reports a user removed since it was loaded as not found.
func (u *userUsecase) updateError(err error, msg string) error {
	if errors.Is(err, repository.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	u.log.Warnf("%s: %+v", msg, err)
	return err
}

// DeleteUser allows an admin to remove any account, their own included.
func (u *userUsecase) DeleteUser(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := u.userRepo.Delete(ctx, id); err != nil {
		u.log.Warnf("Failed to delete user: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

func (u *userUsecase) MakeAdmin(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Role = entity.RoleAdmin
	user.Approved = true
	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, u.updateError(err, "Failed to promote user")
	}

	return converter.UserToResponse(user), nil
}

func (u *userUsecase) ApproveUser(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Approved = true
	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, u.updateError(err, "Failed to approve user")
	}

	return converter.UserToResponse(user), nil
}

func (u *userUsecase) CreateAdmin(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
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

	user := &entity.User{
		Email:    req.Email,
		Password: hashedPassword,
		Name:     req.Name,
		Role:     entity.RoleAdmin,
		Approved: true,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create admin: %+v", err)
		return nil, err
	}

	return u.sessions.issue(user, u.log)
}

// PromoteByEmail backs the promote-admin command. An admin that is not yet
// approved only gets approved; anyone else is made an approved admin.
func (u *userUsecase) PromoteByEmail(ctx context.Context, email string) (PromoteOutcome, *dto.UserResponse, error) {
	user, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return PromoteUnchanged, nil, err
	}
	if user == nil {
		return PromoteUnchanged, nil, ErrUserNotFound
	}

	outcome := PromotePromoted
	if user.IsAdmin() {
		if user.Approved {
			return PromoteUnchanged, converter.UserToResponse(user), nil
		}
		outcome = PromoteApproved
	}

	user.Role = entity.RoleAdmin
	user.Approved = true
	if err := u.userRepo.Update(ctx, user); err != nil {
		return PromoteUnchanged, nil, u.updateError(err, "Failed to promote user")
	}

	return outcome, converter.UserToResponse(user), nil
}
