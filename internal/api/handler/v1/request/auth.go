package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

var errConfirmPasswordMismatch = errors.New("confirm password doesn't match the password")

type RegisterRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	PhoneNumber     string `json:"phoneNumber"`
	Role            string `json:"role,omitempty"`
}

// Validate checks shape only; the password policy is enforced by the auth
// service from configuration.
func (req *RegisterRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email, validation.Length(1, 255)),
		validation.Field(&req.Password, validation.Required),
		validation.Field(&req.ConfirmPassword, validation.Required),
		validation.Field(&req.FirstName, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.LastName, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.PhoneNumber, validation.Length(0, 20)),
	)
	if err != nil {
		return err
	}

	if req.Password != req.ConfirmPassword {
		return errConfirmPasswordMismatch
	}

	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req *LoginRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
	)
}
