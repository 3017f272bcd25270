package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/brandberg-skola/absence-backend-go/internal/config"
	"github.com/brandberg-skola/absence-backend-go/internal/fixtures"
	appHTTP "github.com/brandberg-skola/absence-backend-go/internal/handler/http"
	"github.com/brandberg-skola/absence-backend-go/internal/pkg/database"
	"github.com/brandberg-skola/absence-backend-go/internal/pkg/jwt"
	"github.com/brandberg-skola/absence-backend-go/internal/pkg/oauth"
	"github.com/brandberg-skola/absence-backend-go/internal/pkg/storage"
	"github.com/brandberg-skola/absence-backend-go/internal/repository/postgresql"
	absenceService "github.com/brandberg-skola/absence-backend-go/internal/service/absence"
	authService "github.com/brandberg-skola/absence-backend-go/internal/service/auth"
	fileService "github.com/brandberg-skola/absence-backend-go/internal/service/file"
	userService "github.com/brandberg-skola/absence-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), cfg.Database.AutoMigrate)
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	absenceRepo := postgresql.NewAbsenceRequestRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleSvc := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	fileStorage, err := storage.NewLocalStorage(cfg.Upload.BasePath)
	if err != nil {
		log.Fatal("Failed to initialize local storage: ", err)
	}

	fileSvc := fileService.NewService(fileStorage, cfg.Upload)
	absenceSvc := absenceService.NewService(absenceRepo, fileSvc)
	authSvc := authService.NewAuthService(db, userRepo, jwtSvc, refreshTokenRepo)
	userSvc := userService.NewUserService(userRepo, absenceRepo, fileSvc)

	if cfg.App.SeedDemo {
		if err := fixtures.SeedDemoData(context.Background(), userRepo, absenceRepo); err != nil {
			log.Fatal("Failed to seed demo data: ", err)
		}
	}

	authHandler := appHTTP.NewAuthHandler(jwtSvc, authSvc, googleSvc, cfg.App.FrontendURL)
	absenceHandler := appHTTP.NewAbsenceHandler(absenceSvc)
	userHandler := appHTTP.NewUserHandler(userSvc)

	router := appHTTP.NewRouter(cfg, jwtSvc, authHandler, absenceHandler, userHandler)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server error: ", err)
	}
}
