// Package main starts the bank back-office API server.
package main

import (
	"github.com/rs/zerolog/log"

	"github.com/monteverde/bank-backoffice/cmd/httpserver"
	"github.com/monteverde/bank-backoffice/internal/middleware"
	"github.com/monteverde/bank-backoffice/pkg/configpkg"
	"github.com/monteverde/bank-backoffice/pkg/dbpkg"

	_ "github.com/lib/pq"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to database")
	}

	server, err := httpserver.New(db, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	logger.Info().Msg("BANK BACK-OFFICE API SERVER HAS STARTED")

	err = server.Engine.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
