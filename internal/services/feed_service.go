package services

import (
	"context"

	"streetsupply/internal/domain"
	applog "streetsupply/internal/log"
	"streetsupply/internal/store"
)

// FeedService turns store change notifications into streams of full derived
// snapshots. A stream delivers the current snapshot at once, then a fresh one
// after each relevant change, and closes when ctx is done.
type FeedService struct {
	Hub      *store.Hub
	NeedSvc  *NeedService
	OfferSvc *OfferService
	InvSvc   *InventoryService
}

// Needs streams the vendor needs visible to a supplier.
func (s *FeedService) Needs(ctx context.Context, id domain.Identity) (<-chan []VisibleNeed, error) {
	if err := requireRole(id, domain.RoleSupplier); err != nil {
		return nil, err
	}
	ownProfile := func(ev store.Event) bool { return ev.Owner == id.UserID }
	subs := []*store.Subscription{
		s.Hub.Subscribe(store.VendorNeeds, nil),
		s.Hub.Subscribe(store.VendorProfiles, nil),
		s.Hub.Subscribe(store.SupplierProfiles, ownProfile),
		s.Hub.Subscribe(store.SupplierOffers, nil),
	}
	return stream(ctx, "feed.needs", id, subs, func() ([]VisibleNeed, error) {
		return s.NeedSvc.VisibleNeeds(id)
	}), nil
}

// Offers streams the offers on a vendor's need, partitioned by status.
func (s *FeedService) Offers(ctx context.Context, id domain.Identity) (<-chan VendorOffers, error) {
	if err := requireRole(id, domain.RoleVendor); err != nil {
		return nil, err
	}
	onMyNeed := func(ev store.Event) bool { return ev.Owner == id.UserID }
	subs := []*store.Subscription{
		s.Hub.Subscribe(store.SupplierOffers, onMyNeed),
		s.Hub.Subscribe(store.SupplierProfiles, nil),
	}
	return stream(ctx, "feed.offers", id, subs, func() (VendorOffers, error) {
		return s.OfferSvc.ForVendor(id)
	}), nil
}

// Inventory streams a supplier's items with derived status and summary.
func (s *FeedService) Inventory(ctx context.Context, id domain.Identity) (<-chan InventoryView, error) {
	if err := requireRole(id, domain.RoleSupplier); err != nil {
		return nil, err
	}
	mine := func(ev store.Event) bool { return ev.Owner == id.UserID }
	subs := []*store.Subscription{s.Hub.Subscribe(store.Inventory, mine)}
	return stream(ctx, "feed.inventory", id, subs, func() (InventoryView, error) {
		return s.InvSvc.List(id)
	}), nil
}

func stream[T any](ctx context.Context, action string, id domain.Identity, subs []*store.Subscription, load func() (T, error)) <-chan T {
	out := make(chan T)
	wake := make(chan struct{}, 1)
	for _, sub := range subs {
		go func(sub *store.Subscription) {
			for range sub.C {
				select {
				case wake <- struct{}{}:
				default:
				}
			}
		}(sub)
	}

	go func() {
		defer close(out)
		defer func() {
			for _, sub := range subs {
				sub.Unsubscribe()
			}
		}()
		for {
			snap, err := load()
			if err != nil {
				// Keep the stream open; the next change retries the read.
				applog.Error(nil, action+".load", err, map[string]any{"user_id": id.UserID})
			} else {
				select {
				case out <- snap:
				case <-ctx.Done():
					return
				}
			}
			select {
			case <-wake:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
