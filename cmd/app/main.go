package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"freight/cmd"
	"freight/internal/adapters/in/http"
	"freight/internal/adapters/out/postgres/auditrepo"
	"freight/internal/adapters/out/postgres/shipmentrepo"
	"freight/internal/adapters/out/postgres/stagingrepo"
	"freight/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// defaultStuckThreshold is used when STAGING_SWEEP_STUCK_BY is not set.
// Long enough that a live materialization can never be mistaken for a
// crashed one.
const defaultStuckThreshold = time.Hour

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustOpenDatabase(configs)
	mustPrepareSchema(gormDB)

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	if err := app.CodeGenerator().EnsureSequence(context.Background()); err != nil {
		log.Fatalf("Failed to create parcel code sequence: %v", err)
	}

	jobManager := jobs.NewJobManager(
		app.CreateResetStuckStagingCommandHandler(),
		stuckThreshold(configs),
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:            goDotEnvVariable("HTTP_PORT"),
		DBHost:              goDotEnvVariable("DB_HOST"),
		DBPort:              goDotEnvVariable("DB_PORT"),
		DBUser:              goDotEnvVariable("DB_USER"),
		DBPassword:          goDotEnvVariable("DB_PASSWORD"),
		DBName:              goDotEnvVariable("DB_NAME"),
		DBSslMode:           goDotEnvVariable("DB_SSLMODE"),
		StagingSweepStuckBy: os.Getenv("STAGING_SWEEP_STUCK_BY"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func stuckThreshold(configs cmd.Config) time.Duration {
	if configs.StagingSweepStuckBy == "" {
		return defaultStuckThreshold
	}

	threshold, err := time.ParseDuration(configs.StagingSweepStuckBy)
	if err != nil {
		log.Fatalf("Invalid STAGING_SWEEP_STUCK_BY value %q: %v", configs.StagingSweepStuckBy, err)
	}
	return threshold
}

func mustOpenDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func mustPrepareSchema(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&shipmentrepo.ShipmentDTO{},
		&shipmentrepo.VolumeDTO{},
		&stagingrepo.StagingRecordDTO{},
		&stagingrepo.VolumeDraftDTO{},
		&auditrepo.EntryDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()

	server := http.NewServer(
		app.CreateConfirmPaymentCommandHandler(),
		app.CreateAcceptCollectionCommandHandler(),
		app.CreateFinalizeCollectionCommandHandler(),
		app.CreateRegisterDepotArrivalCommandHandler(),
		app.CreateClaimVolumeCommandHandler(),
		app.CreateAcceptDeliveryCommandHandler(),
		app.CreateFinalizeDeliveryCommandHandler(),
		app.CreateRecordOccurrenceCommandHandler(),
		app.CreateGetShipmentQueryHandler(),
		app.CreateGetShipmentTimelineQueryHandler(),
		app.CreateSearchAvailableVolumesQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
