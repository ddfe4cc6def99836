package services

import (
	"context"

	"github.com/zhurnal-erp/zhurnal_backend/internal/core/domain"
	"github.com/zhurnal-erp/zhurnal_backend/internal/dto"
)

// PartnerSvcFacade manages partner records.
type PartnerSvcFacade interface {
	CreatePartner(ctx context.Context, companyID string, req dto.CreatePartnerRequest, creatorUserID string) (*domain.Partner, error)
	GetPartnerByID(ctx context.Context, companyID, partnerID string, requestingUserID string) (*domain.Partner, error)
	UpdatePartner(ctx context.Context, companyID, partnerID string, req dto.UpdatePartnerRequest, requestingUserID string) (*domain.Partner, error)
	ListPartners(ctx context.Context, companyID string, params dto.ListEntitiesParams, requestingUserID string) ([]domain.Partner, error)
}

// GoodSvcFacade manages good records.
type GoodSvcFacade interface {
	CreateGood(ctx context.Context, companyID string, req dto.CreateGoodRequest, creatorUserID string) (*domain.Good, error)
	GetGoodByID(ctx context.Context, companyID, goodID string, requestingUserID string) (*domain.Good, error)
	UpdateGood(ctx context.Context, companyID, goodID string, req dto.UpdateGoodRequest, requestingUserID string) (*domain.Good, error)
	ListGoods(ctx context.Context, companyID string, params dto.ListEntitiesParams, requestingUserID string) ([]domain.Good, error)
}

// DocumentSvcFacade manages document records.
type DocumentSvcFacade interface {
	CreateDocument(ctx context.Context, companyID string, req dto.CreateDocumentRequest, creatorUserID string) (*domain.Document, error)
	GetDocumentByID(ctx context.Context, companyID, documentID string, requestingUserID string) (*domain.Document, error)
	UpdateDocument(ctx context.Context, companyID, documentID string, req dto.UpdateDocumentRequest, requestingUserID string) (*domain.Document, error)
	ListDocuments(ctx context.Context, companyID string, params dto.ListEntitiesParams, requestingUserID string) ([]domain.Document, error)
}
