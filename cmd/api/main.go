package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"sharesphere/internal/adapter/api"
	"sharesphere/internal/adapter/api/handler"
	apimiddleware "sharesphere/internal/adapter/api/middleware"
	"sharesphere/internal/adapter/api/router"
	"sharesphere/internal/adapter/repository"
	"sharesphere/internal/infrastructure/firebase"
	"sharesphere/internal/infrastructure/storage"
	"sharesphere/internal/usecase"
	"sharesphere/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption
	serviceAccountPath := ""

	// Service account JSON from the environment in production, file path
	// fallback for local development.
	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		serviceAccountPath = os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if serviceAccountPath == "" {
			serviceAccountPath = "./serviceAccountKey.json"
		}

		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}

		opt = option.WithCredentialsFile(serviceAccountPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, serviceAccountPath)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	fileRepo := repository.NewFirestoreFileRepository(firestoreClient)
	ledgerRepo := repository.NewFirestoreLedgerRepository(firestoreClient)
	downloadRepo := repository.NewFirestoreDownloadRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient)

	userUseCase := usecase.NewUserUseCase(userRepo, fileRepo, ledgerRepo)
	fileUseCase := usecase.NewFileUseCase(fileRepo, userRepo, ledgerRepo, storageClient)
	downloadUseCase := usecase.NewDownloadUseCase(userRepo, fileRepo, downloadRepo, storageClient)

	handler.Setup(fileUseCase, downloadUseCase, userUseCase, cfg.MaxUploadSize)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(firebaseAuthClient)
	userMiddleware := apimiddleware.NewUserMiddleware(userUseCase)

	router.Setup(e, authMiddleware, userMiddleware)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
