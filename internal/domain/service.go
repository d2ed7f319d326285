package domain

import "time"

type Service struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int       `json:"price"`
	Date        time.Time `json:"date"`
	ProviderID  uint      `json:"providerId"`
	GuestIDs    []uint    `json:"guestIds"`
}

type SharedExperience struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	ServiceIDs  []uint    `json:"serviceIds"`
	GuestIDs    []uint    `json:"guestIds"`
}

type Billing struct {
	ID         uint      `json:"id"`
	Amount     int       `json:"amount"`
	Date       time.Time `json:"date"`
	GuestID    uint      `json:"guestId"`
	ProviderID uint      `json:"providerId"`
	ServiceID  *uint     `json:"serviceId,omitempty"`
}
