// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/monteverde/bank-backoffice/internal/accountdelivery"
	"github.com/monteverde/bank-backoffice/internal/accountrepo"
	"github.com/monteverde/bank-backoffice/internal/accountservice"
	"github.com/monteverde/bank-backoffice/internal/customerdelivery"
	"github.com/monteverde/bank-backoffice/internal/customerrepo"
	"github.com/monteverde/bank-backoffice/internal/customerservice"
	"github.com/monteverde/bank-backoffice/internal/middleware"
	"github.com/monteverde/bank-backoffice/internal/userdelivery"
	"github.com/monteverde/bank-backoffice/internal/userrepo"
	"github.com/monteverde/bank-backoffice/internal/userservice"
	"github.com/monteverde/bank-backoffice/pkg/configpkg"
	"github.com/monteverde/bank-backoffice/pkg/tokenpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

func newTokenMaker(config configpkg.Config) (tokenpkg.Maker, error) {
	switch config.TokenMaker {
	case "", "jwt":
		return tokenpkg.NewJWTMaker(config.TokenSymmetricKey)
	case "paseto":
		return tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	}

	return nil, fmt.Errorf("unsupported token maker %q", config.TokenMaker)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	customerRepo := customerrepo.NewRepoPGS(conn)
	accountRepo := accountrepo.NewRepoPGS(conn)
	userRepo := userrepo.NewRepoPGS(conn)

	tokenMaker, err := newTokenMaker(config)
	if err != nil {
		return nil, fmt.Errorf("cannot create token maker: %w", err)
	}

	customerService := customerservice.New(customerRepo)
	accountService := accountservice.New(accountRepo, customerService)
	userService := userservice.New(userRepo)

	customerHandler := customerdelivery.NewHandler(customerService)
	accountHandler := accountdelivery.NewHandler(accountService)
	userHandler := userdelivery.NewHandler(userService, tokenMaker, config.AccessTokenDuration)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/users", userHandler.Create)
	engine.POST("/users/login", userHandler.Login)

	authRoutes := engine.Group("/").Use(middleware.AuthMiddleware(tokenMaker))

	authRoutes.GET("/users", userHandler.List)
	authRoutes.PUT("/users/:username", userHandler.Update)
	authRoutes.DELETE("/users/:username", userHandler.Delete)

	authRoutes.GET("/customers", customerHandler.List)
	authRoutes.POST("/customers", customerHandler.Create)
	authRoutes.PUT("/customers/:document", customerHandler.Update)
	authRoutes.DELETE("/customers/:document", customerHandler.Delete)

	authRoutes.GET("/accounts", accountHandler.List)
	authRoutes.GET("/accounts/:number", accountHandler.Get)
	authRoutes.POST("/accounts", accountHandler.Create)
	authRoutes.POST("/accounts/deposit", accountHandler.Deposit)
	authRoutes.POST("/accounts/withdraw", accountHandler.Withdraw)
	authRoutes.PUT("/accounts/:number/secret", accountHandler.UpdateSecret)
	authRoutes.DELETE("/accounts/:number", accountHandler.Close)

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
