package entities

import (
	"time"

	"github.com/google/uuid"
)

type Timestamp struct {
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updated_at"`
}

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Email     string    `gorm:"uniqueIndex;size:254" json:"email"`
	Username  string    `gorm:"uniqueIndex;size:150" json:"username"`
	FirstName string    `gorm:"size:150" json:"first_name"`
	LastName  string    `gorm:"size:150" json:"last_name"`
	Password  string    `json:"-"`

	Recipes []Recipe `gorm:"foreignKey:AuthorID" json:"-"`
	Timestamp
}

type Subscribe struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	SubscriberID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_subscriber_author" json:"subscriber_id"`
	AuthorID     uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_subscriber_author" json:"author_id"`
	CreatedAt    time.Time `gorm:"type:timestamp" json:"created_at"`

	Subscriber *User `gorm:"foreignKey:SubscriberID;constraint:OnDelete:CASCADE"`
	Author     *User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}
