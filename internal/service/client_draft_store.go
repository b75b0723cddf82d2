package service

import (
	"sync"
	"time"

	"github.com/MKhiriev/go-cart-keeper/internal/utils"
	"github.com/MKhiriev/go-cart-keeper/models"
)

// defaultTotaler sums the payload's own denormalized fields. The real
// pricing engine lives outside this module and can be injected instead.
type defaultTotaler struct{}

func (defaultTotaler) Totals(p models.DraftPayload) (int, int64) {
	itemCount, totalCents, _ := p.Summary()
	return itemCount, totalCents
}

// draftStore holds the live working cart of the register. It owns no
// persistence: every mutation calls the injected dirty hook and the sync
// manager decides when the state becomes durable. The hook runs outside
// the store lock, so it may call back into the store.
type draftStore struct {
	totaler Totaler
	dirty   func()
	uuid    *utils.UUIDGenerator

	mu      sync.Mutex
	payload models.DraftPayload
}

// NewDraftStore creates an empty working cart. A nil totaler falls back to
// naive summation; a nil dirty hook disables change notification.
func NewDraftStore(totaler Totaler, dirty func()) DraftStore {
	if totaler == nil {
		totaler = defaultTotaler{}
	}
	if dirty == nil {
		dirty = func() {}
	}

	return &draftStore{
		totaler: totaler,
		dirty:   dirty,
		uuid:    utils.NewUUIDGenerator(),
	}
}

// AddItem implements DraftStore. Adding a SKU already in the cart merges
// quantities instead of creating a second line.
func (s *draftStore) AddItem(item models.LineItem) {
	s.mu.Lock()
	merged := false
	for i := range s.payload.Items {
		if s.payload.Items[i].SKU == item.SKU {
			s.payload.Items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		s.payload.Items = append(s.payload.Items, item)
	}
	s.mu.Unlock()

	s.dirty()
}

// UpdateItemQuantity implements DraftStore.
func (s *draftStore) UpdateItemQuantity(sku string, quantity int) bool {
	s.mu.Lock()
	found := false
	for i := range s.payload.Items {
		if s.payload.Items[i].SKU != sku {
			continue
		}
		found = true
		if quantity <= 0 {
			s.payload.Items = append(s.payload.Items[:i], s.payload.Items[i+1:]...)
		} else {
			s.payload.Items[i].Quantity = quantity
		}
		break
	}
	s.mu.Unlock()

	if found {
		s.dirty()
	}

	return found
}

// RemoveItem implements DraftStore.
func (s *draftStore) RemoveItem(sku string) bool {
	return s.UpdateItemQuantity(sku, 0)
}

// SetCustomer implements DraftStore.
func (s *draftStore) SetCustomer(customer models.Customer) {
	s.mu.Lock()
	s.payload.Customer = &customer
	s.mu.Unlock()

	s.dirty()
}

// ClearCustomer implements DraftStore.
func (s *draftStore) ClearCustomer() {
	s.mu.Lock()
	s.payload.Customer = nil
	s.mu.Unlock()

	s.dirty()
}

// AddDiscount implements DraftStore. A discount with an already applied
// code replaces the previous one.
func (s *draftStore) AddDiscount(discount models.Discount) {
	s.mu.Lock()
	replaced := false
	for i := range s.payload.Discounts {
		if s.payload.Discounts[i].Code == discount.Code {
			s.payload.Discounts[i] = discount
			replaced = true
			break
		}
	}
	if !replaced {
		s.payload.Discounts = append(s.payload.Discounts, discount)
	}
	s.mu.Unlock()

	s.dirty()
}

// RemoveDiscount implements DraftStore.
func (s *draftStore) RemoveDiscount(code string) bool {
	s.mu.Lock()
	found := false
	for i := range s.payload.Discounts {
		if s.payload.Discounts[i].Code == code {
			s.payload.Discounts = append(s.payload.Discounts[:i], s.payload.Discounts[i+1:]...)
			found = true
			break
		}
	}
	s.mu.Unlock()

	if found {
		s.dirty()
	}

	return found
}

// SetTaxSettings implements DraftStore.
func (s *draftStore) SetTaxSettings(tax models.TaxSettings) {
	s.mu.Lock()
	s.payload.Tax = tax
	s.mu.Unlock()

	s.dirty()
}

// SetSalesperson implements DraftStore.
func (s *draftStore) SetSalesperson(salespersonID int64) {
	s.mu.Lock()
	s.payload.SalespersonID = salespersonID
	s.mu.Unlock()

	s.dirty()
}

// SetNotes implements DraftStore.
func (s *draftStore) SetNotes(notes string) {
	s.mu.Lock()
	s.payload.Notes = notes
	s.mu.Unlock()

	s.dirty()
}

// HoldTransaction implements DraftStore. The working fields are parked as
// a held transaction and cleared so the register can serve the next
// customer. Held transactions ride along inside the draft payload, so they
// are persisted and synchronized like the rest of the cart.
func (s *draftStore) HoldTransaction(label string) (string, error) {
	s.mu.Lock()
	if len(s.payload.Items) == 0 && s.payload.Customer == nil {
		s.mu.Unlock()
		return "", ErrEmptyCart
	}

	held := models.HeldTransaction{
		HoldID:  s.uuid.Generate(),
		Label:   label,
		Payload: s.workingCopy(),
		HeldAt:  time.Now(),
	}
	s.payload.Held = append(s.payload.Held, held)
	s.clearWorking()
	s.mu.Unlock()

	s.dirty()

	return held.HoldID, nil
}

// ReleaseHold implements DraftStore.
func (s *draftStore) ReleaseHold(holdID string) error {
	s.mu.Lock()
	if len(s.payload.Items) > 0 || s.payload.Customer != nil {
		s.mu.Unlock()
		return ErrCartNotEmpty
	}

	idx := -1
	for i := range s.payload.Held {
		if s.payload.Held[i].HoldID == holdID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return ErrHoldNotFound
	}

	held := s.payload.Held[idx]
	s.payload.Held = append(s.payload.Held[:idx], s.payload.Held[idx+1:]...)
	s.restoreWorking(held.Payload)
	s.mu.Unlock()

	s.dirty()

	return nil
}

// Snapshot implements DraftSource.
func (s *draftStore) Snapshot() models.DraftPayload {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.payload.Clone()
}

// IsEmpty implements DraftSource. A cart holding only parked transactions
// is not empty: the holds are worth persisting.
func (s *draftStore) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.payload.IsEmpty()
}

// Restore implements DraftStore. It does not mark the store dirty: the
// snapshot comes from durable state, there is nothing new to persist.
func (s *draftStore) Restore(snapshot models.DraftPayload) {
	s.mu.Lock()
	s.payload = snapshot.Clone()
	s.mu.Unlock()
}

// Reset implements DraftStore. Unlike Restore it marks the store dirty:
// clearing the cart is a clerk action that must reach durable storage.
func (s *draftStore) Reset() {
	s.mu.Lock()
	s.payload = models.DraftPayload{}
	s.mu.Unlock()

	s.dirty()
}

// Totals implements DraftStore.
func (s *draftStore) Totals() (int, int64) {
	s.mu.Lock()
	p := s.payload.Clone()
	s.mu.Unlock()

	return s.totaler.Totals(p)
}

// workingCopy deep-copies the working fields, leaving the hold stack out.
// Caller holds s.mu.
func (s *draftStore) workingCopy() models.DraftPayload {
	p := s.payload
	p.Held = nil

	return p.Clone()
}

// clearWorking resets the working fields, keeping the hold stack. Caller
// holds s.mu.
func (s *draftStore) clearWorking() {
	held := s.payload.Held
	s.payload = models.DraftPayload{Held: held}
}

// restoreWorking copies snapshot's working fields into the cart, keeping
// the hold stack. Caller holds s.mu.
func (s *draftStore) restoreWorking(snapshot models.DraftPayload) {
	held := s.payload.Held
	s.payload = snapshot.Clone()
	s.payload.Held = held
}
