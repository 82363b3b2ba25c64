package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/roomhunt/room_rental_system/backend/cache"
	"github.com/roomhunt/room_rental_system/backend/config"
	"github.com/roomhunt/room_rental_system/backend/controllers"
	"github.com/roomhunt/room_rental_system/backend/middleware"
	"github.com/roomhunt/room_rental_system/backend/routes"
	"github.com/roomhunt/room_rental_system/backend/storage"
	"github.com/roomhunt/room_rental_system/backend/store"
)

func main() {
	envErr := godotenv.Load()

	logger := config.NewLogger()
	if envErr != nil {
		// Fine in production where the environment is set directly.
		logger.Debug().Msg("no .env file loaded")
	}

	client, err := config.ConnectDB()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to the database")
	}
	defer func() {
		if err := config.CloseDBConnection(client); err != nil {
			logger.Error().Err(err).Msg("error closing MongoDB connection")
			return
		}
		logger.Info().Msg("MongoDB connection closed")
	}()
	logger.Info().Msg("connected to MongoDB")

	collections := config.InitCollections(client)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := config.EnsureIndexes(ctx, collections); err != nil {
		cancel()
		logger.Fatal().Err(err).Msg("failed to create indexes")
	}
	cancel()

	users := store.NewMongoUserStore(collections.Users)
	rooms := store.NewMongoRoomStore(collections.Rooms)
	sessions := store.NewMongoSessionStore(collections.Sessions)

	var roomCache cache.RoomCache = cache.Noop{}
	redisClient, err := config.InitRedis()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	if redisClient != nil {
		roomCache = cache.NewRedisRoomCache(redisClient, logger)
		logger.Info().Msg("connected to Redis")
	}

	var assets storage.AssetCleaner = storage.NoopCleaner{}
	objectStore, bucket, err := config.InitObjectStore()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to object storage")
	}
	if objectStore != nil {
		assets = storage.NewMinioCleaner(objectStore, bucket)
		logger.Info().Str("bucket", bucket).Msg("connected to object storage")
	}

	auth := &controllers.AuthController{Users: users, Sessions: sessions, Logger: logger}
	roomsController := &controllers.RoomsController{Rooms: rooms, Users: users, Assets: assets, Cache: roomCache, Logger: logger}
	profile := &controllers.ProfileController{Users: users, Rooms: rooms, Logger: logger}
	guards := &middleware.Auth{Sessions: sessions, Logger: logger}

	router := mux.NewRouter()
	routes.Routes(router, auth, roomsController, profile, guards)

	corsOptions := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})
	handler := corsOptions.Handler(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:           ":" + port,
		Handler:        handler,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		logger.Info().Str("port", port).Msg("server running")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("error starting server")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	<-sigCh

	logger.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("error during server shutdown")
	}
	logger.Info().Msg("server gracefully stopped")
}
