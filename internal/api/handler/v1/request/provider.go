package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

type ProviderRequest struct {
	ID                      uint   `json:"id,omitempty"`
	Name                    string `json:"name"`
	Address                 string `json:"address"`
	Number                  string `json:"number"`
	TouristicOperatorPermit string `json:"touristicOperatorPermit"`
}

func (req *ProviderRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Address, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Number, validation.Required, validation.Length(1, 20)),
		validation.Field(&req.TouristicOperatorPermit, validation.Length(0, 100)),
	)
}

func (req *ProviderRequest) ToDomain(id uint) domain.Provider {
	return domain.Provider{
		ID:                      id,
		Name:                    req.Name,
		Address:                 req.Address,
		Number:                  req.Number,
		TouristicOperatorPermit: req.TouristicOperatorPermit,
	}
}

type GuestRequest struct {
	ID     uint   `json:"id,omitempty"`
	Name   string `json:"name"`
	Number string `json:"number"`
	Age    int    `json:"age"`
}

func (req *GuestRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Number, validation.Required, validation.Length(1, 20)),
		validation.Field(&req.Age, validation.Min(0), validation.Max(150)),
	)
}

func (req *GuestRequest) ToDomain(id uint) domain.Guest {
	return domain.Guest{
		ID:     id,
		Name:   req.Name,
		Number: req.Number,
		Age:    req.Age,
	}
}
