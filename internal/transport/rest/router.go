package rest

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/employee-admin/internal/auth"
	"github.com/frahmantamala/employee-admin/internal/permission"
	"github.com/frahmantamala/employee-admin/internal/transport/middleware"
	"github.com/frahmantamala/employee-admin/internal/transport/swagger"
	"github.com/frahmantamala/employee-admin/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"go.mongodb.org/mongo-driver/mongo"
)

// RegisterAllRoutes wires every handler under /api/v1. Mutating user and
// permission routes require the admin permission; reads require a valid
// token.
func RegisterAllRoutes(
	router *chi.Mux,
	client *mongo.Client,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	permissionHandler *permission.Handler,
	allowedOrigins string,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(client)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// OpenAPI spec at root, Swagger UI alongside
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if authHandler != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", authHandler.Login)
				sr.Post("/refresh", authHandler.RefreshToken)
				sr.Post("/logout", authHandler.Logout)
			})
		}

		if authHandler != nil {
			r.Group(func(pr chi.Router) {
				pr.Use(authHandler.AuthMiddleware)

				if userHandler != nil {
					pr.Get("/users/me", userHandler.GetCurrentUser)

					pr.Route("/users", func(ur chi.Router) {
						ur.Get("/", userHandler.ListUsers)
						ur.Get("/{id}", userHandler.GetUser)

						ur.Group(func(ar chi.Router) {
							ar.Use(middleware.RequirePermissions("admin"))
							ar.Post("/", userHandler.CreateUser)
							ar.Patch("/{id}", userHandler.UpdateUser)
							ar.Delete("/{id}", userHandler.DeleteUser)
						})
					})
				}

				if permissionHandler != nil {
					pr.Route("/permissions", func(pmr chi.Router) {
						pmr.Get("/", permissionHandler.ListPermissions)
						pmr.Get("/{id}", permissionHandler.GetPermission)

						pmr.Group(func(ar chi.Router) {
							ar.Use(middleware.RequirePermissions("admin"))
							ar.Post("/", permissionHandler.CreatePermission)
							ar.Delete("/{id}", permissionHandler.DeletePermission)
						})
					})
				}
			})
		}
	})
}
