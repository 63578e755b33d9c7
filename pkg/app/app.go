// Package app assembles the services from their dependencies.
package app

import (
	"log/slog"

	"github.com/zenbank/banking/pkg/config"
	"github.com/zenbank/banking/pkg/repository"
	accountsvc "github.com/zenbank/banking/pkg/service/account"
	authsvc "github.com/zenbank/banking/pkg/service/auth"
	banksvc "github.com/zenbank/banking/pkg/service/bank"
	transactionsvc "github.com/zenbank/banking/pkg/service/transaction"
)

// Deps are the infrastructure dependencies the services are built from.
type Deps struct {
	Uow    repository.UnitOfWork
	Config *config.App
	Logger *slog.Logger
}

// App holds the assembled services and the configuration they share.
type App struct {
	Config             *config.App
	AuthService        *authsvc.Service
	AccountService     *accountsvc.Service
	BankService        *banksvc.Service
	TransactionService *transactionsvc.Service
}

// New builds all services from deps.
func New(deps Deps) *App {
	return &App{
		Config:             deps.Config,
		AuthService:        authsvc.New(deps.Uow, deps.Config.Jwt, deps.Logger),
		AccountService:     accountsvc.New(deps.Uow, deps.Logger),
		BankService:        banksvc.New(deps.Uow, deps.Logger),
		TransactionService: transactionsvc.New(deps.Uow, deps.Logger),
	}
}
