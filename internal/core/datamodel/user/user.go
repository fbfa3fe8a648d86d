package user

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the document stored in the users collection. Field names match the
// collection schema (camelCase keys).
type User struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	FirstName   string               `bson:"firstName"`
	LastName    string               `bson:"lastName"`
	Username    string               `bson:"username"`
	Email       string               `bson:"email"`
	Password    string               `bson:"password,omitempty"`
	Status      bool                 `bson:"status"`
	Permissions []primitive.ObjectID `bson:"permissions"`
	CreatedAt   time.Time            `bson:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt"`
}
