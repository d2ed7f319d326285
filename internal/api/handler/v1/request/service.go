package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

type ServiceRequest struct {
	ID          uint      `json:"id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int       `json:"price"`
	Date        time.Time `json:"date"`
	ProviderID  uint      `json:"providerId"`
	GuestIDs    []uint    `json:"guestIds,omitempty"`
}

func (req *ServiceRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Description, validation.Required, validation.Length(1, 500)),
		validation.Field(&req.Price, validation.Min(0)),
		validation.Field(&req.ProviderID, validation.Required),
	)
}

func (req *ServiceRequest) ToDomain(id uint) domain.Service {
	return domain.Service{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Date:        req.Date,
		ProviderID:  req.ProviderID,
		GuestIDs:    req.GuestIDs,
	}
}

type SharedExperienceRequest struct {
	ID          uint      `json:"id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	ServiceIDs  []uint    `json:"serviceIds,omitempty"`
	GuestIDs    []uint    `json:"guestIds,omitempty"`
}

func (req *SharedExperienceRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Description, validation.Length(0, 500)),
	)
}

func (req *SharedExperienceRequest) ToDomain(id uint) domain.SharedExperience {
	return domain.SharedExperience{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Date:        req.Date,
		ServiceIDs:  req.ServiceIDs,
		GuestIDs:    req.GuestIDs,
	}
}

type DiscountRequest struct {
	ID         uint   `json:"id,omitempty"`
	Name       string `json:"name"`
	ServiceID  uint   `json:"serviceId"`
	GuestCount int    `json:"guestCount"`
	Percentage int    `json:"percentage"`
}

func (req *DiscountRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Length(0, 100)),
		validation.Field(&req.ServiceID, validation.Required),
		validation.Field(&req.GuestCount, validation.Required, validation.Min(1)),
		validation.Field(&req.Percentage, validation.Min(0), validation.Max(100)),
	)
}

func (req *DiscountRequest) ToDomain(id uint) domain.Discount {
	return domain.Discount{
		ID:         id,
		Name:       req.Name,
		ServiceID:  req.ServiceID,
		GuestCount: req.GuestCount,
		Percentage: req.Percentage,
	}
}

type BillingRequest struct {
	ID         uint      `json:"id,omitempty"`
	Amount     int       `json:"amount"`
	Date       time.Time `json:"date"`
	GuestID    uint      `json:"guestId"`
	ProviderID uint      `json:"providerId"`
	ServiceID  *uint     `json:"serviceId,omitempty"`
	// PartySize selects the discount tier when the amount is derived from
	// the service. Defaults to 1.
	PartySize int `json:"partySize,omitempty"`
}

func (req *BillingRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Amount, validation.Min(0)),
		validation.Field(&req.GuestID, validation.Required),
		validation.Field(&req.ProviderID, requiredIf(req.ServiceID == nil)...),
		validation.Field(&req.PartySize, validation.Min(0)),
	)
}

func (req *BillingRequest) ToDomain(id uint) domain.Billing {
	date := req.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	return domain.Billing{
		ID:         id,
		Amount:     req.Amount,
		Date:       date,
		GuestID:    req.GuestID,
		ProviderID: req.ProviderID,
		ServiceID:  req.ServiceID,
	}
}

func requiredIf(cond bool) []validation.Rule {
	if cond {
		return []validation.Rule{validation.Required}
	}

	return nil
}
