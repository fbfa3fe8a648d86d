package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	permissionDatamodel "github.com/frahmantamala/employee-admin/internal/core/datamodel/permission"
	userDatamodel "github.com/frahmantamala/employee-admin/internal/core/datamodel/user"
	userMongo "github.com/frahmantamala/employee-admin/internal/user/mongodb"
	"github.com/frahmantamala/employee-admin/pkg/hasher"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		ctx := context.Background()
		client, err := initMongo(cfg.Database)
		if err != nil {
			log.Fatalf("failed to connect: %v", err)
		}
		defer func() { _ = client.Disconnect(ctx) }()

		db := client.Database(cfg.Database.Name)
		users := db.Collection(userMongo.UsersCollection)
		permissions := db.Collection(userMongo.PermissionsCollection)

		if clearData {
			if _, err := users.DeleteMany(ctx, bson.M{}); err != nil {
				log.Fatalf("failed to clear users: %v", err)
			}
			if _, err := permissions.DeleteMany(ctx, bson.M{}); err != nil {
				log.Fatalf("failed to clear permissions: %v", err)
			}
			fmt.Println("Cleared existing data")
		}

		seedPermissions := []struct {
			Code string
			Desc string
		}{
			{"admin", "full administrator"},
			{"view_employees", "Can view employees"},
			{"create_employees", "Can create employees"},
			{"edit_employees", "Can edit employees"},
			{"delete_employees", "Can delete employees"},
			{"manage_permissions", "Can manage permissions"},
		}

		permissionIDs := make([]primitive.ObjectID, 0, len(seedPermissions))
		for _, p := range seedPermissions {
			id, err := ensurePermission(ctx, permissions, p.Code, p.Desc)
			if err != nil {
				log.Fatalf("failed to seed permission %s: %v", p.Code, err)
			}
			permissionIDs = append(permissionIDs, id)
		}
		fmt.Println("Seeded permissions")

		passwordHasher := hasher.NewArgon2Hasher(argon2Params(cfg.Security))
		hash, err := passwordHasher.Hash("password")
		if err != nil {
			log.Fatalf("failed to hash seed password: %v", err)
		}

		adminEmail := "admin@mail.com"
		var existing userDatamodel.User
		err = users.FindOne(ctx, bson.M{"email": adminEmail}).Decode(&existing)
		if err == nil {
			fmt.Println("admin user already exists; ensuring permissions")
			if _, err := users.UpdateOne(ctx,
				bson.M{"_id": existing.ID},
				bson.M{"$set": bson.M{"permissions": permissionIDs}},
			); err != nil {
				log.Fatalf("failed to update admin permissions: %v", err)
			}
			return
		}
		if err != mongo.ErrNoDocuments {
			log.Fatalf("failed to look up admin user: %v", err)
		}

		now := time.Now().UTC()
		admin := userDatamodel.User{
			FirstName:   "Admin",
			LastName:    "User",
			Username:    "admin",
			Email:       adminEmail,
			Password:    hash,
			Status:      true,
			Permissions: permissionIDs,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if _, err := users.InsertOne(ctx, admin); err != nil {
			log.Fatalf("failed to insert admin user: %v", err)
		}
		fmt.Println("Seeded admin user:", adminEmail)
	},
}

func ensurePermission(ctx context.Context, col *mongo.Collection, code, description string) (primitive.ObjectID, error) {
	var existing permissionDatamodel.Permission
	err := col.FindOne(ctx, bson.M{"code": code}).Decode(&existing)
	if err == nil {
		return existing.ID, nil
	}
	if err != mongo.ErrNoDocuments {
		return primitive.NilObjectID, err
	}

	res, err := col.InsertOne(ctx, permissionDatamodel.Permission{
		Code:        code,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}
