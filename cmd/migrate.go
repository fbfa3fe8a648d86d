package cmd

import (
	"context"
	"log"

	userMongo "github.com/frahmantamala/employee-admin/internal/user/mongodb"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var migrateCmd = &cobra.Command{
	RunE:  runMigration,
	Use:   "migrate",
	Short: "to ensure the unique indexes the duplicate checks rely on",
}

// runMigration creates the unique indexes on users.email, users.username and
// permissions.code. The check-then-insert duplicate logic races under
// concurrent creates; these indexes are the backstop.
func runMigration(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	cfg, err := loadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	client, err := initMongo(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect: %v", err)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	db := client.Database(cfg.Database.Name)

	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_username"),
		},
	}
	if _, err := db.Collection(userMongo.UsersCollection).Indexes().CreateMany(ctx, userIndexes); err != nil {
		log.Fatalf("failed to create user indexes: %v", err)
	}

	permissionIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_code"),
	}
	if _, err := db.Collection(userMongo.PermissionsCollection).Indexes().CreateOne(ctx, permissionIndex); err != nil {
		log.Fatalf("failed to create permission index: %v", err)
	}

	log.Println("indexes ensured")
	return nil
}
