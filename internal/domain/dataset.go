package domain

import "fmt"

// Dataset is a self-contained set of records inserted in one go. Reference
// fields (ProviderID, ServiceIDs, GuestID, ...) hold 1-based positions into
// the dataset's own slices; the store rewrites them to the ids it assigns.
type Dataset struct {
	Users       []User
	Profiles    []Profile
	Providers   []Provider
	Services    []Service
	Guests      []Guest
	Experiences []SharedExperience
	Discounts   []Discount
	Billings    []Billing
}

// ResolveRef maps a 1-based dataset position to the id assigned on insert.
func ResolveRef(assigned []uint, pos uint) (uint, error) {
	if pos < 1 || int(pos) > len(assigned) {
		return 0, fmt.Errorf("reference %d out of range 1..%d", pos, len(assigned))
	}

	return assigned[pos-1], nil
}

func ResolveRefs(assigned []uint, positions []uint) ([]uint, error) {
	out := make([]uint, 0, len(positions))
	for _, pos := range positions {
		id, err := ResolveRef(assigned, pos)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}

	return out, nil
}
