package services

// ServicesProvider bundles all service implementations for injection into the
// handler layer.
type ServicesProvider struct {
	AccountSvc     AccountSvcFacade
	TransactionSvc TransactionSvcFacade
	SyncSvc        SyncSvcFacade
	UserSvc        UserSvcFacade
	TokenSvc       TokenSvcFacade
}
