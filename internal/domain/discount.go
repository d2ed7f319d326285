package domain

// Discount lowers a service price by Percentage once a party reaches
// GuestCount guests. A service has at most one discount.
type Discount struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	ServiceID  uint   `json:"serviceId"`
	GuestCount int    `json:"guestCount"`
	Percentage int    `json:"percentage"`
}

// Apply returns the per-guest price for a party of partySize. The result is
// floored to whole currency units.
func (d Discount) Apply(price, partySize int) int {
	if partySize < d.GuestCount || d.Percentage <= 0 {
		return price
	}
	pct := d.Percentage
	if pct > 100 {
		pct = 100
	}

	return price * (100 - pct) / 100
}
