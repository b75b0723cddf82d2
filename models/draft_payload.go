package models

import "time"

// DraftPayload is the full serializable state of the working cart.
// The sync engine never inspects it beyond computing the denormalized
// summary fields; pricing and tax calculation happen outside this module.
type DraftPayload struct {
	// Items is the ordered list of cart line items.
	Items []LineItem `json:"items,omitempty"`

	// Customer is the attached customer, nil when the sale is anonymous.
	Customer *Customer `json:"customer,omitempty"`

	// Discounts holds cart-level discounts applied by the clerk.
	Discounts []Discount `json:"discounts,omitempty"`

	// Tax carries the register's tax settings for this cart.
	Tax TaxSettings `json:"tax"`

	// SalespersonID attributes the sale to a clerk for commission.
	// Zero when unattributed.
	SalespersonID int64 `json:"salesperson_id,omitempty"`

	// Notes contains free-form clerk notes attached to the cart.
	Notes string `json:"notes,omitempty"`

	// Held contains transactions parked mid-sale ("hold" button) so the
	// register can serve another customer and resume later.
	Held []HeldTransaction `json:"held,omitempty"`
}

// LineItem is a single product line in the cart.
type LineItem struct {
	// SKU is the product identifier scanned or looked up at the register.
	SKU string `json:"sku"`

	// Name is the display name captured at scan time, kept so the draft
	// renders correctly even if the catalog changes afterwards.
	Name string `json:"name"`

	// Quantity is the number of units, always positive.
	Quantity int `json:"quantity"`

	// UnitCents is the per-unit price in cents at the time the line was
	// added.
	UnitCents int64 `json:"unit_cents"`

	// DiscountCents is the per-line discount in cents already applied.
	DiscountCents int64 `json:"discount_cents,omitempty"`
}

// Customer identifies the customer attached to the cart.
type Customer struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// DiscountKind distinguishes flat from percentage discounts.
type DiscountKind string

const (
	DiscountFlat    DiscountKind = "flat"
	DiscountPercent DiscountKind = "percent"
)

// Discount is a cart-level discount.
type Discount struct {
	// Code is the promotion or override code the clerk entered.
	Code string `json:"code"`

	// Kind selects how Amount is interpreted.
	Kind DiscountKind `json:"kind"`

	// AmountCents is the flat discount in cents (Kind == "flat").
	AmountCents int64 `json:"amount_cents,omitempty"`

	// Percent is the percentage discount (Kind == "percent"), 0-100.
	Percent float64 `json:"percent,omitempty"`
}

// TaxSettings carries the tax treatment the clerk selected for this cart.
// The actual tax math lives in the external pricing service.
type TaxSettings struct {
	// Exempt marks the whole cart tax-exempt.
	Exempt bool `json:"exempt,omitempty"`

	// ExemptReason is required by policy when Exempt is set.
	ExemptReason string `json:"exempt_reason,omitempty"`

	// RateBps is the applied tax rate in basis points (825 = 8.25%).
	RateBps int `json:"rate_bps,omitempty"`
}

// HeldTransaction is a cart parked mid-sale so the register can serve the
// next customer. The held payload is a full nested cart state.
type HeldTransaction struct {
	// HoldID identifies the parked transaction on this device.
	HoldID string `json:"hold_id"`

	// Label is the clerk-entered tag ("blue jacket guy").
	Label string `json:"label,omitempty"`

	// Payload is the parked cart state.
	Payload DraftPayload `json:"payload"`

	// HeldAt is when the transaction was parked.
	HeldAt time.Time `json:"held_at"`
}

// IsEmpty reports whether the payload carries nothing worth persisting:
// no items, no customer, and no held transactions. Auto-save skips empty
// payloads.
func (p DraftPayload) IsEmpty() bool {
	return len(p.Items) == 0 && p.Customer == nil && len(p.Held) == 0
}

// Clone returns a deep copy of the payload. Held payloads are cloned
// recursively, so mutating the copy never leaks into the original.
func (p DraftPayload) Clone() DraftPayload {
	out := p
	out.Items = append([]LineItem(nil), p.Items...)
	out.Discounts = append([]Discount(nil), p.Discounts...)

	if p.Customer != nil {
		c := *p.Customer
		out.Customer = &c
	}

	if len(p.Held) > 0 {
		out.Held = make([]HeldTransaction, len(p.Held))
		for i, h := range p.Held {
			h.Payload = h.Payload.Clone()
			out.Held[i] = h
		}
	}

	return out
}

// Summary computes the denormalized listing fields stored alongside the
// opaque payload blob: total item count, cart total in cents, and the
// customer display name.
func (p DraftPayload) Summary() (itemCount int, totalCents int64, customerName string) {
	for _, it := range p.Items {
		itemCount += it.Quantity
		totalCents += int64(it.Quantity)*it.UnitCents - it.DiscountCents
	}

	for _, d := range p.Discounts {
		switch d.Kind {
		case DiscountFlat:
			totalCents -= d.AmountCents
		case DiscountPercent:
			totalCents -= int64(float64(totalCents) * d.Percent / 100)
		}
	}

	if totalCents < 0 {
		totalCents = 0
	}

	if p.Customer != nil {
		customerName = p.Customer.Name
	}

	return itemCount, totalCents, customerName
}
