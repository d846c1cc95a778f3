package services

import (
	"fmt"
	"greeter-proxy/errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"
)

var validate = validator.New()

// DefaultRegion is used to read phone numbers written without a country code.
const DefaultRegion = "US"

type AddUserRequest struct {
	PhoneNumber string `validate:"required,e164"`
	Role        string `validate:"required,oneof=greeter evaluator"`
	Name        string `validate:"required"`
}

func ValidateAddUser(req AddUserRequest) error {
	return validate.Struct(req)
}

// NormalizePhone parses a phone number and returns its E.164 form.
// Numbers that libphonenumber does not consider valid are rejected.
func NormalizePhone(raw, region string) (string, error) {
	if region == "" {
		region = DefaultRegion
	}
	number, err := phonenumbers.Parse(strings.TrimSpace(raw), region)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", errors.ErrInvalidPhoneNumber, raw, err)
	}
	if !phonenumbers.IsValidNumber(number) {
		return "", fmt.Errorf("%w: %s", errors.ErrInvalidPhoneNumber, raw)
	}
	return phonenumbers.Format(number, phonenumbers.E164), nil
}
