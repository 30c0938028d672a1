package user

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"context"
	"errors"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeUserRepository struct {
	users         map[string]*entities.User
	subscriptions map[string]bool
	recipes       map[string][]entities.Recipe
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		users:         map[string]*entities.User{},
		subscriptions: map[string]bool{},
		recipes:       map[string][]entities.Recipe{},
	}
}

func subKey(subscriberID, authorID string) string { return subscriberID + "/" + authorID }

func (f *fakeUserRepository) CreateUser(ctx context.Context, user *entities.User) error {
	f.users[user.ID.String()] = user
	return nil
}

func (f *fakeUserRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) GetUserByUsername(ctx context.Context, username string) (*entities.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) UpdateUser(ctx context.Context, user *entities.User) error {
	f.users[user.ID.String()] = user
	return nil
}

func (f *fakeUserRepository) AddSubscribe(ctx context.Context, subscriberID, authorID string) error {
	key := subKey(subscriberID, authorID)
	if f.subscriptions[key] {
		return gorm.ErrDuplicatedKey
	}
	f.subscriptions[key] = true
	return nil
}

func (f *fakeUserRepository) RemoveSubscribe(ctx context.Context, subscriberID, authorID string) (bool, error) {
	key := subKey(subscriberID, authorID)
	if !f.subscriptions[key] {
		return false, nil
	}
	delete(f.subscriptions, key)
	return true, nil
}

func (f *fakeUserRepository) IsSubscribed(ctx context.Context, subscriberID, authorID string) (bool, error) {
	return f.subscriptions[subKey(subscriberID, authorID)], nil
}

func (f *fakeUserRepository) GetSubscribedAuthors(ctx context.Context, subscriberID string, page, limit int) ([]*entities.User, int64, error) {
	var res []*entities.User
	for key := range f.subscriptions {
		for id, user := range f.users {
			if key == subKey(subscriberID, id) {
				res = append(res, user)
			}
		}
	}
	return res, int64(len(res)), nil
}

func (f *fakeUserRepository) GetSubscribedAuthorIDs(ctx context.Context, subscriberID string) ([]uuid.UUID, error) {
	return nil, nil
}

func (f *fakeUserRepository) GetAuthorRecipes(ctx context.Context, authorID string, limit int) ([]entities.Recipe, int64, error) {
	recipes := f.recipes[authorID]
	total := int64(len(recipes))
	if limit < len(recipes) {
		recipes = recipes[:limit]
	}
	return recipes, total, nil
}

type fakeJWTService struct{}

func (fakeJWTService) GenerateTokenUser(userId string, role string) string { return "token-" + userId }

func (fakeJWTService) ValidateTokenUser(token string) (*jwtlib.Token, error) {
	return nil, errors.New("not implemented")
}

func (fakeJWTService) GetUserIDByToken(token string) (string, string, error) {
	return "", "", errors.New("not implemented")
}

func (fakeJWTService) GenerateTokenForgetPassword(data map[string]any, duration time.Duration) (string, error) {
	return "reset-token", nil
}

func (fakeJWTService) ValidateTokenForgetPassword(token string) (jwtlib.MapClaims, error) {
	return jwtlib.MapClaims{}, nil
}

func seedUser(repo *fakeUserRepository, email, username string) *entities.User {
	user := &entities.User{
		ID:       uuid.New(),
		Email:    email,
		Username: username,
	}
	repo.users[user.ID.String()] = user
	return user
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepository()
	service := NewUserService(repo, fakeJWTService{})
	seedUser(repo, "ann@example.com", "ann")

	_, err := service.Register(context.Background(), domain.RegisterRequest{
		Email:     "ann@example.com",
		Username:  "other",
		FirstName: "Ann",
		LastName:  "Lee",
		Password:  "password123",
	})
	if !errors.Is(err, domain.ErrEmailAlreadyUsed) {
		t.Fatalf("expected ErrEmailAlreadyUsed, got %v", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := newFakeUserRepository()
	service := NewUserService(repo, fakeJWTService{})
	seedUser(repo, "ann@example.com", "ann")

	_, err := service.Register(context.Background(), domain.RegisterRequest{
		Email:     "other@example.com",
		Username:  "ann",
		FirstName: "Ann",
		LastName:  "Lee",
		Password:  "password123",
	})
	if !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeUserRepository()
	service := NewUserService(repo, fakeJWTService{})

	res, err := service.Register(context.Background(), domain.RegisterRequest{
		Email:     "ann@example.com",
		Username:  "ann",
		FirstName: "Ann",
		LastName:  "Lee",
		Password:  "password123",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if res.Email != "ann@example.com" {
		t.Fatalf("unexpected response: %+v", res)
	}

	login, err := service.Login(context.Background(), domain.LoginRequest{
		Email:    "ann@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if login.Token == "" {
		t.Fatal("expected a token")
	}

	_, err = service.Login(context.Background(), domain.LoginRequest{
		Email:    "ann@example.com",
		Password: "wrong-password",
	})
	if !errors.Is(err, domain.ErrCredentialsInvalid) {
		t.Fatalf("expected ErrCredentialsInvalid, got %v", err)
	}
}

func TestSubscribeToSelf(t *testing.T) {
	repo := newFakeUserRepository()
	service := NewUserService(repo, fakeJWTService{})
	user := seedUser(repo, "ann@example.com", "ann")

	_, err := service.Subscribe(context.Background(), user.ID.String(), user.ID.String(), 3)
	if !errors.Is(err, domain.ErrSelfSubscribe) {
		t.Fatalf("expected ErrSelfSubscribe, got %v", err)
	}

	// the guard applies even when no subscription exists either way
	if len(repo.subscriptions) != 0 {
		t.Fatal("no subscription should be created")
	}
}

func TestSubscribeTwice(t *testing.T) {
	repo := newFakeUserRepository()
	service := NewUserService(repo, fakeJWTService{})
	author := seedUser(repo, "ann@example.com", "ann")
	subscriber := seedUser(repo, "bob@example.com", "bob")

	res, err := service.Subscribe(context.Background(), author.ID.String(), subscriber.ID.String(), 3)
	if err != nil {
		t.Fatalf("first subscribe failed: %v", err)
	}
	if res.ID != author.ID.String() {
		t.Fatalf("expected author %s in response, got %s", author.ID, res.ID)
	}
	if !res.IsSubscribed {
		t.Fatal("response should report the new subscription")
	}

	_, err = service.Subscribe(context.Background(), author.ID.String(), subscriber.ID.String(), 3)
	if !errors.Is(err, domain.ErrAlreadySubscribed) {
		t.Fatalf("expected ErrAlreadySubscribed, got %v", err)
	}
}

func TestSubscribeUnknownAuthor(t *testing.T) {
	repo := newFakeUserRepository()
	service := NewUserService(repo, fakeJWTService{})
	subscriber := seedUser(repo, "bob@example.com", "bob")

	_, err := service.Subscribe(context.Background(), uuid.New().String(), subscriber.ID.String(), 3)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUnsubscribeWithoutSubscription(t *testing.T) {
	repo := newFakeUserRepository()
	service := NewUserService(repo, fakeJWTService{})
	author := seedUser(repo, "ann@example.com", "ann")
	subscriber := seedUser(repo, "bob@example.com", "bob")

	err := service.Unsubscribe(context.Background(), author.ID.String(), subscriber.ID.String())
	if !errors.Is(err, domain.ErrNotSubscribed) {
		t.Fatalf("expected ErrNotSubscribed, got %v", err)
	}
}

func TestSubscriptionRecipePreviewLimit(t *testing.T) {
	repo := newFakeUserRepository()
	service := NewUserService(repo, fakeJWTService{})
	author := seedUser(repo, "ann@example.com", "ann")
	subscriber := seedUser(repo, "bob@example.com", "bob")

	for i := 0; i < 5; i++ {
		repo.recipes[author.ID.String()] = append(repo.recipes[author.ID.String()], entities.Recipe{
			ID:          uuid.New(),
			AuthorID:    author.ID,
			Name:        "recipe",
			CookingTime: 10,
		})
	}

	res, err := service.Subscribe(context.Background(), author.ID.String(), subscriber.ID.String(), 3)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	if len(res.Recipes) != 3 {
		t.Fatalf("expected 3 recipe previews, got %d", len(res.Recipes))
	}
	if res.RecipesCount != 5 {
		t.Fatalf("expected total count 5, got %d", res.RecipesCount)
	}
}
