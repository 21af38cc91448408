package service

import (
	"context"

	"qubeia/internal/authz"
	"qubeia/internal/models"
	"qubeia/internal/repository"
	"qubeia/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// MembershipVerifier answers whether a username belongs to the community
// guild. Checked once, at signup.
type MembershipVerifier interface {
	IsMember(ctx context.Context, username string) (bool, error)
}

// UserService handles registration, login credentials and role management.
type UserService struct {
	userRepo repository.UserRepository
	verifier MembershipVerifier
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

func NewUserService(userRepo repository.UserRepository, verifier MembershipVerifier) *UserService {
	return &UserService{
		userRepo: userRepo,
		verifier: verifier,
	}
}

// Register creates a new account with the base user role. The guild
// membership check runs once here and never again.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if s.verifier != nil {
		member, err := s.verifier.IsMember(ctx, in.Username)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		if !member {
			return nil, models.NewAuthorizationError("Guild membership is required to sign up")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: string(hash),
		Role:     models.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks email and password, returning the user on success.
// The error is identical for unknown email and wrong password.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewAuthenticationError("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewAuthenticationError("Invalid email or password")
	}
	return user, nil
}

// Profile returns a user with the badge computed from their counters.
func (s *UserService) Profile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Badge = BadgeForActivity(user.PostsCount, user.MessagesCount)
	return user, nil
}

// SetRole promotes or demotes a user. Admin rank or above is required;
// granting or removing the owner role takes an owner.
func (s *UserService) SetRole(ctx context.Context, actor Actor, targetID uint, role models.Role) (*models.User, error) {
	if !actor.RankAtLeast(models.RoleAdmin) {
		return nil, models.NewAuthorizationError("Changing roles requires admin rank")
	}
	if !authz.KnownRole(role) {
		return nil, models.NewValidationError("Unknown role")
	}
	if targetID == actor.ID {
		return nil, models.NewValidationError("You cannot change your own role")
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if (role == models.RoleOwner || target.Role == models.RoleOwner) && actor.Role != models.RoleOwner {
		return nil, models.NewAuthorizationError("Only an owner can grant or revoke the owner role")
	}

	if err := s.userRepo.UpdateRole(ctx, targetID, role); err != nil {
		return nil, err
	}
	target.Role = role
	return target, nil
}

// ListUsers returns users for moderation overviews. Moderator rank or above.
func (s *UserService) ListUsers(ctx context.Context, actor Actor, limit, offset int) ([]models.User, error) {
	if !actor.RankAtLeast(models.RoleModerator) {
		return nil, models.NewAuthorizationError("Listing users requires moderator rank")
	}
	users, err := s.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Badge = BadgeForActivity(users[i].PostsCount, users[i].MessagesCount)
	}
	return users, nil
}
