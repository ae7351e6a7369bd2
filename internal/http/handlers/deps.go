package handlers

import (
	"streetsupply/internal/repos"
	"streetsupply/internal/services"
	"streetsupply/internal/store"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	Auth            *services.AuthService
	AuthHandler     *AuthHandler
	VendorHandler   *VendorHandler
	SupplierHandler *SupplierHandler
}

// NewDeps wires repositories, services and handlers over one database and hub.
func NewDeps(db *sqlx.DB, hub *store.Hub, clock services.Clock) *Deps {
	userRepo := repos.NewUserRepo(db)
	profileRepo := repos.NewProfileRepo(db)
	needRepo := repos.NewNeedRepo(db)
	invRepo := repos.NewInventoryRepo(db)
	offerRepo := repos.NewOfferRepo(db)

	authSvc := &services.AuthService{Users: userRepo}
	profileSvc := services.NewProfileService(profileRepo, hub, clock)
	needSvc := services.NewNeedService(needRepo, profileRepo, offerRepo, hub, clock)
	invSvc := services.NewInventoryService(invRepo, hub, clock)
	offerSvc := services.NewOfferService(offerRepo, needRepo, hub, clock)
	feedSvc := &services.FeedService{Hub: hub, NeedSvc: needSvc, OfferSvc: offerSvc, InvSvc: invSvc}

	return &Deps{
		Auth:        authSvc,
		AuthHandler: &AuthHandler{Auth: authSvc},
		VendorHandler: &VendorHandler{
			Profiles: profileSvc, Needs: needSvc, OfferSvc: offerSvc, Feed: feedSvc,
		},
		SupplierHandler: &SupplierHandler{
			Profiles: profileSvc, InvSvc: invSvc, NeedSvc: needSvc, OfferSvc: offerSvc, Feed: feedSvc,
		},
	}
}
