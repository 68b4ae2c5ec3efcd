// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/go-petr/bitlease/internal/authdelivery"
	"github.com/go-petr/bitlease/internal/authservice"
	"github.com/go-petr/bitlease/internal/lendingdelivery"
	"github.com/go-petr/bitlease/internal/lendingrepo"
	"github.com/go-petr/bitlease/internal/lendingservice"
	"github.com/go-petr/bitlease/internal/middleware"
	"github.com/go-petr/bitlease/internal/transferrepo"
	"github.com/go-petr/bitlease/internal/userrepo"
	"github.com/go-petr/bitlease/pkg/amountpkg"
	"github.com/go-petr/bitlease/pkg/configpkg"
	"github.com/go-petr/bitlease/pkg/currencypkg"
	"github.com/go-petr/bitlease/pkg/interestpkg"
	"github.com/go-petr/bitlease/pkg/tokenpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB       *sql.DB
	Engine   *gin.Engine
	Config   configpkg.Config
	Registry *prometheus.Registry
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

type repos struct {
	ledger    lendingservice.Repo
	transfers lendingservice.TransferRepo
	users     authservice.Repo
}

// newRepos picks the storage selected by LEDGER_BACKEND.
func newRepos(conn *sql.DB, config configpkg.Config) (repos, error) {
	switch config.LedgerBackend {
	case configpkg.BackendMemory:
		return repos{
			ledger:    lendingrepo.NewRepoMem(),
			transfers: transferrepo.NewRepoMem(),
			users:     userrepo.NewRepoMem(),
		}, nil
	case configpkg.BackendPostgres:
		if conn == nil {
			return repos{}, errors.New("postgres ledger requires a database connection")
		}

		return repos{
			ledger:    lendingrepo.NewRepoPGS(conn),
			transfers: transferrepo.NewRepoPGS(conn),
			users:     userrepo.NewRepoPGS(conn),
		}, nil
	}

	return repos{}, fmt.Errorf("unknown ledger backend %q", config.LedgerBackend)
}

func registerValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	if err := v.RegisterValidation("currency", currencypkg.ValidCurrency); err != nil {
		return errors.New("cannot register currency validator")
	}

	if err := v.RegisterValidation("amount", amountpkg.ValidAmount); err != nil {
		return errors.New("cannot register amount validator")
	}

	return nil
}

// New creates Server type with instantiated domains and routes.
//
// conn may be nil when the memory backend is configured.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	r, err := newRepos(conn, config)
	if err != nil {
		return nil, err
	}

	tokenMaker, err := tokenpkg.New(config.TokenType, config.TokenSymmetricKey)
	if err != nil {
		return nil, fmt.Errorf("cannot create token maker: %w", err)
	}

	policy, err := interestpkg.NewFixed(config.InterestRatePercent)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	ledgerMetrics, err := lendingservice.NewMetrics(registry)
	if err != nil {
		return nil, err
	}

	httpMetrics, err := middleware.NewHTTPMetrics(registry)
	if err != nil {
		return nil, err
	}

	authService := authservice.New(r.users, tokenMaker, config.AccessTokenDuration, config.RefreshTokenDuration)
	lendingService := lendingservice.New(r.ledger, r.transfers, policy, lendingservice.WithMetrics(ledgerMetrics))

	authHandler := authdelivery.NewHandler(authService, authService)
	lendingHandler := lendingdelivery.NewHandler(lendingService)

	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(httpMetrics.Handler())

	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	engine.POST("/users", authHandler.Register)
	engine.POST("/users/login", authHandler.Login)
	engine.POST("/sessions", authHandler.RenewAccessToken)

	authRoutes := engine.Group("/").Use(middleware.AuthMiddleware(tokenMaker))

	authRoutes.POST("/lend", lendingHandler.Lend)
	authRoutes.POST("/borrow", lendingHandler.Borrow)
	authRoutes.POST("/withdraw", lendingHandler.Withdraw)
	authRoutes.POST("/interest", lendingHandler.PayInterest)

	authRoutes.GET("/positions/:currency", lendingHandler.GetPosition)
	authRoutes.GET("/positions/:currency/interest", lendingHandler.InterestDue)
	authRoutes.GET("/lenders/:currency", lendingHandler.GetLenderPosition)
	authRoutes.GET("/borrowers/:currency", lendingHandler.GetBorrowerPosition)
	authRoutes.GET("/reserves", lendingHandler.GetReserves)
	authRoutes.GET("/entries", lendingHandler.ListEntries)
	authRoutes.GET("/transfers", lendingHandler.ListTransfers)
	authRoutes.GET("/transfers/:id", lendingHandler.GetTransfer)

	if err := registerValidators(); err != nil {
		return nil, err
	}

	server := &Server{
		DB:       conn,
		Engine:   engine,
		Config:   config,
		Registry: registry,
	}

	return server, nil
}
