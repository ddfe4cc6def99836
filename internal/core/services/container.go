package services

import (
	portsrepo "github.com/zhurnal-erp/zhurnal_backend/internal/core/ports/repositories"
	portssvc "github.com/zhurnal-erp/zhurnal_backend/internal/core/ports/services"
	"github.com/zhurnal-erp/zhurnal_backend/internal/platform/config"
)

// NewContainer creates the service container with properly wired
// dependencies.
func NewContainer(repos *portsrepo.RepositoryProvider, cfg *config.Config) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Company service first: it is the authorizer every other service
	// depends on.
	container.Company = NewCompanyService(repos.CompanyRepo)
	authorizer := portssvc.CompanyAuthorizerSvc(container.Company)

	container.User = NewUserService(repos.UserRepo, repos.JournalRepo, authorizer)
	container.Token = NewTokenService(cfg, container.User)

	container.Journal = NewJournalService(repos.JournalRepo, repos.LinkRepo, authorizer)
	container.Link = NewLinkService(repos.LinkRepo, repos.JournalRepo, repos.PartnerRepo, repos.GoodRepo, authorizer)
	container.Approval = NewApprovalService(repos.ApprovalRepo, repos.UserRepo, repos.JournalRepo, authorizer)
	container.Loop = NewLoopService(repos.LoopRepo, repos.JournalRepo, authorizer)

	container.Partner = NewPartnerService(repos.PartnerRepo, repos.JournalRepo, authorizer)
	container.Good = NewGoodService(repos.GoodRepo, repos.JournalRepo, authorizer)
	container.Document = NewDocumentService(repos.DocumentRepo, repos.PartnerRepo, repos.JournalRepo, authorizer)

	return container
}
