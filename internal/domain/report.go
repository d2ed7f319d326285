package domain

import "time"

// Snapshot is every input the reports need, read at one point in time.
// Link lists on services and experiences are sorted by id.
type Snapshot struct {
	Providers   []Provider
	Services    []Service
	Guests      []Guest
	Experiences []SharedExperience
	Billings    []Billing
}

type ProviderRow struct {
	Name                    string `json:"name"`
	Address                 string `json:"address"`
	Number                  string `json:"number"`
	TouristicOperatorPermit string `json:"touristicOperatorPermit"`
}

type ServiceRow struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
}

type ExperienceRow struct {
	Name string    `json:"name"`
	Date time.Time `json:"date"`
}

type GuestNameRow struct {
	GuestName string `json:"guestName"`
}

type ServiceNameRow struct {
	ServiceName string `json:"serviceName"`
}

type GuestServiceRow struct {
	GuestName   string `json:"guestName"`
	ServiceName string `json:"serviceName"`
}

type PriceStats struct {
	MinPrice int     `json:"minPrice"`
	AvgPrice float64 `json:"avgPrice"`
	MaxPrice int     `json:"maxPrice"`
}

type ServiceSalesRow struct {
	ServiceName string `json:"serviceName"`
	GuestCount  int    `json:"guestCount"`
	TotalSales  int    `json:"totalSales"`
}

type GuestBillingRow struct {
	GuestName         string `json:"guestName"`
	TotalAmountBilled int    `json:"totalAmountBilled"`
}
