package user

import (
	"Foodgram-Backend/entities"
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	UserRepository interface {
		CreateUser(ctx context.Context, user *entities.User) error
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
		GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
		GetUserByUsername(ctx context.Context, username string) (*entities.User, error)
		UpdateUser(ctx context.Context, user *entities.User) error

		AddSubscribe(ctx context.Context, subscriberID, authorID string) error
		RemoveSubscribe(ctx context.Context, subscriberID, authorID string) (bool, error)
		IsSubscribed(ctx context.Context, subscriberID, authorID string) (bool, error)
		GetSubscribedAuthors(ctx context.Context, subscriberID string, page, limit int) ([]*entities.User, int64, error)
		GetSubscribedAuthorIDs(ctx context.Context, subscriberID string) ([]uuid.UUID, error)

		GetAuthorRecipes(ctx context.Context, authorID string, limit int) ([]entities.Recipe, int64, error)
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) AddSubscribe(ctx context.Context, subscriberID, authorID string) error {
	subscriberUUID, err := uuid.Parse(subscriberID)
	if err != nil {
		return err
	}
	authorUUID, err := uuid.Parse(authorID)
	if err != nil {
		return err
	}

	subscribe := entities.Subscribe{
		ID:           uuid.New(),
		SubscriberID: subscriberUUID,
		AuthorID:     authorUUID,
		CreatedAt:    time.Now(),
	}
	return r.db.WithContext(ctx).Create(&subscribe).Error
}

func (r *userRepository) RemoveSubscribe(ctx context.Context, subscriberID, authorID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("subscriber_id = ? AND author_id = ?", subscriberID, authorID).
		Delete(&entities.Subscribe{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *userRepository) IsSubscribed(ctx context.Context, subscriberID, authorID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Subscribe{}).
		Where("subscriber_id = ? AND author_id = ?", subscriberID, authorID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) GetSubscribedAuthors(ctx context.Context, subscriberID string, page, limit int) ([]*entities.User, int64, error) {
	var users []*entities.User
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Joins("JOIN subscribes ON subscribes.author_id = users.id").
		Where("subscribes.subscriber_id = ?", subscriberID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Joins("JOIN subscribes ON subscribes.author_id = users.id").
		Where("subscribes.subscriber_id = ?", subscriberID).
		Offset(offset).
		Limit(limit).
		Order("subscribes.created_at desc").
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, count, nil
}

func (r *userRepository) GetSubscribedAuthorIDs(ctx context.Context, subscriberID string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&entities.Subscribe{}).
		Where("subscriber_id = ?", subscriberID).
		Pluck("author_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *userRepository) GetAuthorRecipes(ctx context.Context, authorID string, limit int) ([]entities.Recipe, int64, error) {
	var recipes []entities.Recipe
	var count int64

	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("author_id = ?", authorID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Limit(limit).
		Order("created_at desc").
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}
