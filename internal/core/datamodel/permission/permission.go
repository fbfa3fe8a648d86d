package permission

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Permission is the document stored in the permissions collection.
type Permission struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Code        string             `bson:"code"`
	Description string             `bson:"description"`
	CreatedAt   time.Time          `bson:"createdAt"`
}
