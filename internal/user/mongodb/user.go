// Package mongodb implements the user repository on top of the users and
// permissions collections.
package mongodb

import (
	"context"
	"errors"
	"time"

	permissionDatamodel "github.com/frahmantamala/employee-admin/internal/core/datamodel/permission"
	userDatamodel "github.com/frahmantamala/employee-admin/internal/core/datamodel/user"
	"github.com/frahmantamala/employee-admin/internal/user"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	UsersCollection       = "users"
	PermissionsCollection = "permissions"
)

type UserRepository struct {
	users       *mongo.Collection
	permissions *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		users:       db.Collection(UsersCollection),
		permissions: db.Collection(PermissionsCollection),
	}
}

// BuildFilter translates the semantic list filter into the query document:
// a case-insensitive substring match over the four name-ish fields, AND-ed
// with the status equality when requested.
func BuildFilter(f user.ListFilter) bson.M {
	var and []bson.M

	if f.Name != "" {
		pattern := primitive.Regex{Pattern: f.Name, Options: "i"}
		and = append(and, bson.M{"$or": []bson.M{
			{"firstName": pattern},
			{"lastName": pattern},
			{"username": pattern},
			{"email": pattern},
		}})
	}

	if f.Status != nil {
		and = append(and, bson.M{"status": *f.Status})
	}

	if len(and) == 0 {
		return bson.M{}
	}
	return bson.M{"$and": and}
}

func (r *UserRepository) Find(ctx context.Context, filter user.ListFilter, skip, limit int64) ([]*user.User, error) {
	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetProjection(bson.M{"password": 0})

	cur, err := r.users.Find(ctx, BuildFilter(filter), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	results := make([]*user.User, 0)
	for cur.Next(ctx) {
		var dm userDatamodel.User
		if err := cur.Decode(&dm); err != nil {
			return nil, err
		}
		results = append(results, user.FromDataModel(&dm))
	}
	return results, cur.Err()
}

func (r *UserRepository) Count(ctx context.Context, filter user.ListFilter) (int64, error) {
	return r.users.CountDocuments(ctx, BuildFilter(filter))
}

// FindByID loads the user without the password field and expands the
// permissions relation to full permission entities.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var dm userDatamodel.User
	opts := options.FindOne().SetProjection(bson.M{"password": 0})
	if err := r.users.FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&dm); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	u := user.FromDataModel(&dm)
	if err := r.expandPermissions(ctx, u, dm.Permissions); err != nil {
		return nil, err
	}
	return u, nil
}

// Get loads the full document, password included, for read-modify-write.
func (r *UserRepository) Get(ctx context.Context, id string) (*user.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var dm userDatamodel.User
	if err := r.users.FindOne(ctx, bson.M{"_id": oid}).Decode(&dm); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return user.FromDataModel(&dm), nil
}

func (r *UserRepository) FindOneByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindOneByUsername(ctx context.Context, username string) (*user.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

// GetByIdentifier matches the login identifier against email or username and
// returns the full document, password hash included.
func (r *UserRepository) GetByIdentifier(ctx context.Context, identifier string) (*user.User, error) {
	return r.findOne(ctx, bson.M{"$or": []bson.M{
		{"email": identifier},
		{"username": identifier},
	}})
}

// GetUserWithPermissions is the auth middleware lookup: password stripped,
// permissions expanded.
func (r *UserRepository) GetUserWithPermissions(ctx context.Context, id string) (*user.User, error) {
	return r.FindByID(ctx, id)
}

func (r *UserRepository) Insert(ctx context.Context, u *user.User) (*user.User, error) {
	dm, err := user.ToDataModel(u)
	if err != nil {
		return nil, err
	}
	if dm.CreatedAt.IsZero() {
		dm.CreatedAt = time.Now().UTC()
	}
	dm.UpdatedAt = dm.CreatedAt

	res, err := r.users.InsertOne(ctx, dm)
	if err != nil {
		return nil, err
	}

	dm.ID = res.InsertedID.(primitive.ObjectID)
	return user.FromDataModel(dm), nil
}

func (r *UserRepository) Save(ctx context.Context, u *user.User) (*user.User, error) {
	dm, err := user.ToDataModel(u)
	if err != nil {
		return nil, err
	}

	if _, err := r.users.ReplaceOne(ctx, bson.M{"_id": dm.ID}, dm); err != nil {
		return nil, err
	}
	return user.FromDataModel(dm), nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	res, err := r.users.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*user.User, error) {
	var dm userDatamodel.User
	if err := r.users.FindOne(ctx, filter).Decode(&dm); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return user.FromDataModel(&dm), nil
}

func (r *UserRepository) expandPermissions(ctx context.Context, u *user.User, ids []primitive.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}

	cur, err := r.permissions.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	byID := make(map[string]permissionDatamodel.Permission, len(ids))
	for cur.Next(ctx) {
		var dm permissionDatamodel.Permission
		if err := cur.Decode(&dm); err != nil {
			return err
		}
		byID[dm.ID.Hex()] = dm
	}
	if err := cur.Err(); err != nil {
		return err
	}

	// preserve the order of the stored reference list; dangling
	// references stay as id-only entries
	expanded := make([]user.Permission, 0, len(ids))
	for _, oid := range ids {
		if dm, ok := byID[oid.Hex()]; ok {
			expanded = append(expanded, user.Permission{
				ID:          dm.ID.Hex(),
				Code:        dm.Code,
				Description: dm.Description,
			})
		} else {
			expanded = append(expanded, user.Permission{ID: oid.Hex()})
		}
	}
	u.Permissions = expanded
	return nil
}
