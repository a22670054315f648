package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/keremaydin/acadport/internal/pkg/logger"
	"github.com/keremaydin/acadport/internal/server"
)

// @title AcadPort API
// @version 1.0
// @description API for the AcadPort academic portal: signin, roll number provisioning and user management

// @contact.name API Support
// @contact.email support@acadport.edu

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	// Load .env if present; real environments set variables directly.
	_ = godotenv.Load()

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
