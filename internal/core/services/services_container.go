package services

import (
	portsrepo "github.com/finvault/finvault_backend/internal/core/ports/repositories"
	portssvc "github.com/finvault/finvault_backend/internal/core/ports/services"
	"github.com/finvault/finvault_backend/pkg/config"
)

// NewServicesProvider wires the repository layer into the service layer.
func NewServicesProvider(repos *portsrepo.RepositoryProvider, cfg *config.Config) *portssvc.ServicesProvider {
	return &portssvc.ServicesProvider{
		AccountSvc:     NewAccountService(repos.AccountRepo, repos.AccountTypeRepo),
		TransactionSvc: NewTransactionService(repos.TransactionRepo, repos.AccountRepo),
		SyncSvc:        NewSyncService(repos.AccountRepo, repos.AccountTypeRepo, repos.TransactionRepo),
		UserSvc:        NewUserService(repos.UserRepo, repos.AccountRepo, repos.AccountTypeRepo),
		TokenSvc:       NewTokenService(cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer),
	}
}
