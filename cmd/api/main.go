package main

import (
	"os"

	"github.com/campushelp/helpdesk/internal/pkg/logger"
	"github.com/campushelp/helpdesk/internal/server"
)

// @title College Helpdesk API
// @version 1.0
// @description Rule-based helpdesk chatbot with an AI fallback and an admin-managed knowledge document

// @host localhost:8080
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for admin authorization

func main() {
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
