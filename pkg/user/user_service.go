package user

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/utils"
	"Foodgram-Backend/internal/utils/mailing"
	"Foodgram-Backend/pkg/jwt"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Me(ctx context.Context, userID string) (domain.UserResponse, error)
		UpdatePassword(ctx context.Context, req domain.UpdatePasswordRequest, userID string) error
		ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error
		ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error

		Subscribe(ctx context.Context, authorID, subscriberID string, recipesLimit int) (domain.SubscriptionResponse, error)
		Unsubscribe(ctx context.Context, authorID, subscriberID string) error
		GetSubscriptions(ctx context.Context, subscriberID string, page, limit, recipesLimit int) ([]domain.SubscriptionResponse, int64, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error) {
	if _, err := s.userRepository.GetUserByEmail(ctx, req.Email); err == nil {
		return domain.UserResponse{}, domain.ErrEmailAlreadyUsed
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.UserResponse{}, err
	}
	if _, err := s.userRepository.GetUserByUsername(ctx, req.Username); err == nil {
		return domain.UserResponse{}, domain.ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.UserResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.UserResponse{}, err
	}

	user := &entities.User{
		ID:        uuid.New(),
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  string(hashed),
	}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.UserResponse{}, domain.ErrEmailAlreadyUsed
		}
		return domain.UserResponse{}, err
	}

	return userResponse(user, false), nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrCredentialsInvalid
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrCredentialsInvalid
	}

	token := s.jwtService.GenerateTokenUser(user.ID.String(), domain.RoleUser)
	return domain.LoginResponse{Token: token}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}
	return userResponse(user, false), nil
}

func (s *userService) UpdatePassword(ctx context.Context, req domain.UpdatePasswordRequest, userID string) error {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return domain.ErrWrongPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	return s.userRepository.UpdateUser(ctx, user)
}

func (s *userService) ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	token, err := s.jwtService.GenerateTokenForgetPassword(
		map[string]any{"user_id": user.ID.String()},
		30*time.Minute,
	)
	if err != nil {
		return err
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", utils.GetConfig("APP_URL"), token)
	body := fmt.Sprintf(
		"<p>Hello %s,</p><p>Follow the link below to reset your password. The link expires in 30 minutes.</p><p><a href=\"%s\">Reset password</a></p>",
		user.FirstName,
		resetLink,
	)
	return mailing.SendMail(user.Email, "Password reset", body)
}

func (s *userService) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	claims, err := s.jwtService.ValidateTokenForgetPassword(req.Token)
	if err != nil {
		return err
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return domain.ErrTokenInvalid
	}

	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	return s.userRepository.UpdateUser(ctx, user)
}

func (s *userService) Subscribe(ctx context.Context, authorID, subscriberID string, recipesLimit int) (domain.SubscriptionResponse, error) {
	// the self-subscription guard runs before any existence check
	if authorID == subscriberID {
		return domain.SubscriptionResponse{}, domain.ErrSelfSubscribe
	}

	author, err := s.userRepository.GetUserByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.SubscriptionResponse{}, domain.ErrUserNotFound
		}
		return domain.SubscriptionResponse{}, err
	}

	exists, err := s.userRepository.IsSubscribed(ctx, subscriberID, authorID)
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}
	if exists {
		return domain.SubscriptionResponse{}, domain.ErrAlreadySubscribed
	}

	if err := s.userRepository.AddSubscribe(ctx, subscriberID, authorID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.SubscriptionResponse{}, domain.ErrAlreadySubscribed
		}
		return domain.SubscriptionResponse{}, err
	}

	return s.subscriptionResponse(ctx, author, recipesLimit)
}

func (s *userService) Unsubscribe(ctx context.Context, authorID, subscriberID string) error {
	if _, err := s.userRepository.GetUserByID(ctx, authorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	removed, err := s.userRepository.RemoveSubscribe(ctx, subscriberID, authorID)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrNotSubscribed
	}
	return nil
}

func (s *userService) GetSubscriptions(ctx context.Context, subscriberID string, page, limit, recipesLimit int) ([]domain.SubscriptionResponse, int64, error) {
	authors, count, err := s.userRepository.GetSubscribedAuthors(ctx, subscriberID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]domain.SubscriptionResponse, 0, len(authors))
	for _, author := range authors {
		sub, err := s.subscriptionResponse(ctx, author, recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		res = append(res, sub)
	}
	return res, count, nil
}

func (s *userService) subscriptionResponse(ctx context.Context, author *entities.User, recipesLimit int) (domain.SubscriptionResponse, error) {
	recipes, recipesCount, err := s.userRepository.GetAuthorRecipes(ctx, author.ID.String(), recipesLimit)
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}

	previews := make([]domain.PartialRecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		previews = append(previews, domain.PartialRecipeResponse{
			ID:          recipe.ID.String(),
			Name:        recipe.Name,
			Image:       recipe.ImageURL,
			CookingTime: recipe.CookingTime,
		})
	}

	return domain.SubscriptionResponse{
		UserResponse: userResponse(author, true),
		Recipes:      previews,
		RecipesCount: recipesCount,
	}, nil
}

func userResponse(user *entities.User, isSubscribed bool) domain.UserResponse {
	return domain.UserResponse{
		ID:           user.ID.String(),
		Email:        user.Email,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: isSubscribed,
	}
}
