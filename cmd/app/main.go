package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"fieldservice/cmd"
	adapterhttp "fieldservice/internal/adapters/in/http"
	"fieldservice/internal/adapters/out/gcs"
	"fieldservice/internal/adapters/out/postgres/orderrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)

	blobs, err := gcs.NewBucketStorage(context.Background(), gcs.Config{
		Bucket:        configs.GCSBucket,
		PublicBaseURL: configs.GCSPublicBaseURL,
		EmulatorHost:  configs.GCSEmulatorHost,
	})
	if err != nil {
		log.Fatalf("Failed to create blob storage: %v", err)
	}
	defer blobs.Close()

	app := cmd.NewCompositionRoot(configs, gormDB, blobs, logger)

	jobManager := app.CreateJobManager(logger)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded: %v", err)
	}

	quietMs, err := strconv.Atoi(os.Getenv("AUTOSAVE_QUIET_MS"))
	if err != nil {
		quietMs = 1000
	}

	return cmd.Config{
		HTTPPort:          os.Getenv("HTTP_PORT"),
		DBHost:            os.Getenv("DB_HOST"),
		DBPort:            os.Getenv("DB_PORT"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            os.Getenv("DB_NAME"),
		DBSslMode:         os.Getenv("DB_SSLMODE"),
		GCSBucket:         os.Getenv("GCS_BUCKET"),
		GCSPublicBaseURL:  os.Getenv("GCS_PUBLIC_BASE_URL"),
		GCSEmulatorHost:   os.Getenv("GCS_EMULATOR_HOST"),
		GeoTrackerBaseURL: os.Getenv("GEO_TRACKER_BASE_URL"),
		AutoSaveQuietMs:   quietMs,
	}
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}

	if err = gormDB.AutoMigrate(&orderrepo.OrderDTO{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := adapterhttp.NewServer(
		app.CreateStartOrderCommandHandler(),
		app.CreateCompleteOrderCommandHandler(),
		app.CreateAddPhotoCommandHandler(),
		app.CreateCaptureSignatureCommandHandler(),
		app.CreateStageSignatureCommandHandler(),
		app.CreateDiscardSignatureCommandHandler(),
		app.CreateStageServiceNotesCommandHandler(),
		app.CreateAddLineItemCommandHandler(),
		app.CreateChangeLineItemCommandHandler(),
		app.CreateRemoveLineItemCommandHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateGetUncompletedOrdersQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
