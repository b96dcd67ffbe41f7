package coinbase

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/coinfolio"
	"github.com/go-playground/validator/v10"
)

// Credentials are the API key triple created on the exchange.
type Credentials struct {
	Key        string `json:"key" validate:"required"`
	Secret     string `json:"secret" validate:"required,base64"` // base64 encoded
	Passphrase string `json:"pass" validate:"required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that every field is set and that the secret is base64.
func (c Credentials) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		var problems []string
		for _, fe := range verrs {
			switch fe.Tag() {
			case "required":
				problems = append(problems, fmt.Sprintf("missing %q", jsonName(fe.StructField())))
			case "base64":
				problems = append(problems, fmt.Sprintf("%q is not base64", jsonName(fe.StructField())))
			default:
				problems = append(problems, fe.Error())
			}
		}
		err = errors.New(strings.Join(problems, ", "))
	}
	return coinfolio.E(coinfolio.KindConfiguration, "credentials", err)
}

func jsonName(field string) string {
	switch field {
	case "Key":
		return "key"
	case "Secret":
		return "secret"
	case "Passphrase":
		return "pass"
	}
	return field
}

// LoadCredentials reads credentials from a JSON file with the keys "key",
// "secret" and "pass".
func LoadCredentials(path string) (Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Credentials{}, coinfolio.E(coinfolio.KindConfiguration, "credentials", fmt.Errorf("cannot read %q: %w", path, err))
	}
	var c Credentials
	if err := json.Unmarshal(data, &c); err != nil {
		return Credentials{}, coinfolio.E(coinfolio.KindConfiguration, "credentials", fmt.Errorf("cannot decode %q: %w", path, err))
	}
	if err := c.Validate(); err != nil {
		return Credentials{}, err
	}
	return c, nil
}
