package services

import (
	"context"

	"github.com/zhurnal-erp/zhurnal_backend/internal/core/domain"
	"github.com/zhurnal-erp/zhurnal_backend/internal/dto"
)

// LinkSvcFacade guards creation of cross-entity links against the
// hierarchical integrity invariant and serves link queries.
type LinkSvcFacade interface {
	CreatePartnerLink(ctx context.Context, companyID string, req dto.CreatePartnerLinkRequest, creatorUserID string) (*domain.JournalPartnerLink, error)
	CreateGoodLink(ctx context.Context, companyID string, req dto.CreateGoodLinkRequest, creatorUserID string) (*domain.JournalGoodLink, error)
	CreatePartnerGoodLink(ctx context.Context, companyID string, req dto.CreatePartnerGoodLinkRequest, creatorUserID string) (*domain.JournalPartnerGoodLink, error)

	DeletePartnerLink(ctx context.Context, companyID, linkID string, requestingUserID string) error
	DeleteGoodLink(ctx context.Context, companyID, linkID string, requestingUserID string) error
	DeletePartnerGoodLink(ctx context.Context, companyID, linkID string, requestingUserID string) error

	ListPartnerLinks(ctx context.Context, companyID string, params dto.ListLinksParams, requestingUserID string) ([]domain.JournalPartnerLink, error)
	ListGoodLinks(ctx context.Context, companyID string, params dto.ListLinksParams, requestingUserID string) ([]domain.JournalGoodLink, error)
	ListPartnerGoodLinks(ctx context.Context, companyID string, params dto.ListLinksParams, requestingUserID string) ([]domain.JournalPartnerGoodLink, error)
}
