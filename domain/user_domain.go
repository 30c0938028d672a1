package domain

import (
	"errors"
)

var (
	MessageSuccessRegister         = "register successful"
	MessageSuccessLogin            = "login successful"
	MessageSuccessGetMe            = "success get current user"
	MessageSuccessUpdatePassword   = "password updated successfully"
	MessageSuccessSubscribe        = "subscribed successfully"
	MessageSuccessUnsubscribe      = "unsubscribed successfully"
	MessageSuccessGetSubscriptions = "success get subscriptions"
	MessageSuccessSendMail         = "email sent successfully"

	MessageFailedRegister         = "failed to register"
	MessageFailedLogin            = "failed to login"
	MessageFailedGetMe            = "failed to get current user"
	MessageFailedUpdatePassword   = "failed to update password"
	MessageFailedSubscribe        = "failed to subscribe"
	MessageFailedUnsubscribe      = "failed to unsubscribe"
	MessageFailedGetSubscriptions = "failed to get subscriptions"
	MessageFailedSendMail         = "failed to send email"

	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyUsed   = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrCredentialsInvalid = errors.New("invalid email or password")
	ErrWrongPassword      = errors.New("wrong password")
	ErrSelfSubscribe      = errors.New("subscribing to yourself is not allowed")
	ErrAlreadySubscribed  = errors.New("already subscribed")
	ErrNotSubscribed      = errors.New("not subscribed")
)

type (
	RegisterRequest struct {
		Email     string `json:"email" validate:"required,email"`
		Username  string `json:"username" validate:"required,max=150"`
		FirstName string `json:"first_name" validate:"required,max=150"`
		LastName  string `json:"last_name" validate:"required,max=150"`
		Password  string `json:"password" validate:"required,min=8"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"auth_token"`
	}

	UpdatePasswordRequest struct {
		CurrentPassword string `json:"current_password" validate:"required"`
		NewPassword     string `json:"new_password" validate:"required,min=8"`
	}

	ForgotPasswordRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	ResetPasswordRequest struct {
		Token       string `json:"token" validate:"required"`
		NewPassword string `json:"new_password" validate:"required,min=8"`
	}

	UserResponse struct {
		ID           string `json:"id"`
		Email        string `json:"email"`
		Username     string `json:"username"`
		FirstName    string `json:"first_name"`
		LastName     string `json:"last_name"`
		IsSubscribed bool   `json:"is_subscribed"`
	}

	// SubscriptionResponse embeds a short preview of the author's recipes,
	// capped by the recipes_limit query parameter.
	SubscriptionResponse struct {
		UserResponse
		Recipes      []PartialRecipeResponse `json:"recipes"`
		RecipesCount int64                   `json:"recipes_count"`
	}
)
