package main

import (
	"database/sql"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/GZL-hub/ims-sub000/internal/modules/auth"
	"github.com/GZL-hub/ims-sub000/internal/modules/customer"
	"github.com/GZL-hub/ims-sub000/internal/modules/inventory"
	"github.com/GZL-hub/ims-sub000/internal/modules/order"
	"github.com/GZL-hub/ims-sub000/internal/modules/reports"
	"github.com/GZL-hub/ims-sub000/internal/modules/user"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using process environment")
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}
	slog.Info("connected to database")

	jwtKey := []byte(os.Getenv("JWT_SECRET"))
	if len(jwtKey) == 0 {
		log.Fatal("JWT_SECRET is required")
	}

	imageDir := os.Getenv("IMAGE_DIR")
	if imageDir == "" {
		imageDir = "./uploads"
	}

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	// ── Identity ────────────────────────────────────────────
	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)

	authService := auth.NewService(userRepo, jwtKey)
	auth.NewHandler(authService).RegisterRoutes(router)
	authMW := auth.NewMiddleware(jwtKey)

	// ── Domain services ─────────────────────────────────────
	images := inventory.NewDiskImageStore(imageDir)
	inventoryRepo := inventory.NewPostgresRepository(db)
	inventoryService := inventory.NewService(inventoryRepo, images)

	customerRepo := customer.NewPostgresRepository(db)
	customerService := customer.NewService(customerRepo)

	orderRepo := order.NewPostgresRepository(db)
	orderService := order.NewService(orderRepo)

	reportsRepo := reports.NewPostgresRepository(db)
	reportsService := reports.NewService(reportsRepo)

	// ── Protected routes ────────────────────────────────────
	router.Group(func(r chi.Router) {
		r.Use(authMW.Authenticate)

		r.Group(func(r chi.Router) {
			r.Use(authMW.Require(user.PermManageUsers))
			user.NewHandler(userService).RegisterRoutes(r)
		})
		r.Group(func(r chi.Router) {
			r.Use(authMW.Require(user.PermViewInventory))
			inventory.NewHandler(inventoryService, images).
				RegisterRoutes(r, authMW.Require(user.PermManageInventory))
		})
		r.Group(func(r chi.Router) {
			r.Use(authMW.Require(user.PermViewCustomers))
			customer.NewHandler(customerService).
				RegisterRoutes(r, authMW.Require(user.PermManageCustomers))
		})
		r.Group(func(r chi.Router) {
			r.Use(authMW.Require(user.PermViewOrders))
			order.NewHandler(orderService).
				RegisterRoutes(r, authMW.Require(user.PermManageOrders))
		})
		r.Group(func(r chi.Router) {
			r.Use(authMW.Require(user.PermViewReports))
			reports.NewHandler(reportsService).RegisterRoutes(r)
		})
	})

	// Uploaded item images are served statically.
	router.Handle("/uploads/*", http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(imageDir))))

	// ── Start Server ─────────────────────────────────────────
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	slog.Info("inventory API server starting", "port", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
