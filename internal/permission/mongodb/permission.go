// Package mongodb implements the permission repository on the permissions
// collection.
package mongodb

import (
	"context"
	"errors"
	"time"

	permissionDatamodel "github.com/frahmantamala/employee-admin/internal/core/datamodel/permission"
	"github.com/frahmantamala/employee-admin/internal/permission"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const PermissionsCollection = "permissions"

type PermissionRepository struct {
	permissions *mongo.Collection
}

func NewPermissionRepository(db *mongo.Database) *PermissionRepository {
	return &PermissionRepository{
		permissions: db.Collection(PermissionsCollection),
	}
}

func (r *PermissionRepository) FindAll(ctx context.Context) ([]*permission.Permission, error) {
	cur, err := r.permissions.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	results := make([]*permission.Permission, 0)
	for cur.Next(ctx) {
		var dm permissionDatamodel.Permission
		if err := cur.Decode(&dm); err != nil {
			return nil, err
		}
		results = append(results, permission.FromDataModel(&dm))
	}
	return results, cur.Err()
}

func (r *PermissionRepository) FindByID(ctx context.Context, id string) (*permission.Permission, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *PermissionRepository) FindOneByCode(ctx context.Context, code string) (*permission.Permission, error) {
	return r.findOne(ctx, bson.M{"code": code})
}

func (r *PermissionRepository) Insert(ctx context.Context, p *permission.Permission) (*permission.Permission, error) {
	dm, err := permission.ToDataModel(p)
	if err != nil {
		return nil, err
	}
	if dm.CreatedAt.IsZero() {
		dm.CreatedAt = time.Now().UTC()
	}

	res, err := r.permissions.InsertOne(ctx, dm)
	if err != nil {
		return nil, err
	}

	dm.ID = res.InsertedID.(primitive.ObjectID)
	return permission.FromDataModel(dm), nil
}

func (r *PermissionRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	res, err := r.permissions.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *PermissionRepository) findOne(ctx context.Context, filter bson.M) (*permission.Permission, error) {
	var dm permissionDatamodel.Permission
	if err := r.permissions.FindOne(ctx, filter).Decode(&dm); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return permission.FromDataModel(&dm), nil
}
