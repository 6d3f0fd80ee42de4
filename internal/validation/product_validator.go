// Package validation is the parse-and-validate boundary between raw client input
// and the product store. Every function here is pure.
package validation

import (
	"encoding/json"
	"errors"
	"math"
	"regexp"
	"strings"

	"inventory/internal/apperrors"
	"inventory/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cast"
)

const (
	priceReason    = "must be a valid non-negative number"
	quantityReason = "must be a valid non-negative integer"
)

var (
	validate = validator.New()
	// decimal is plain base-ten notation with an optional exponent. Hex
	// floats, digit separators and named values such as "Inf" do not match.
	decimal = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
)

// ValidateForCreate checks a create payload and fills in defaults for the
// optional text fields.
func ValidateForCreate(payload models.ProductPayload) (*models.Product, error) {
	product, err := parseRequired(payload)
	if err != nil {
		return nil, err
	}

	product.Description = valueOr(payload.Description, "")
	product.Category = valueOr(payload.Category, models.DefaultCategory)
	product.ImageURL = valueOr(payload.ImageURL, models.DefaultImageURL)

	if err := checkStruct(product); err != nil {
		return nil, err
	}
	return product, nil
}

// ValidateForUpdate checks an update payload. Every field must be supplied and
// text fields are taken verbatim.
func ValidateForUpdate(payload models.ProductPayload) (*models.Product, error) {
	product, err := parseRequired(payload)
	if err != nil {
		return nil, err
	}

	if payload.Description == nil {
		return nil, apperrors.MissingField("description")
	}
	if payload.Category == nil {
		return nil, apperrors.MissingField("category")
	}
	if payload.ImageURL == nil {
		return nil, apperrors.MissingField("image_url")
	}
	product.Description = *payload.Description
	product.Category = *payload.Category
	product.ImageURL = *payload.ImageURL

	if err := checkStruct(product); err != nil {
		return nil, err
	}
	return product, nil
}

// ParsePrice converts v into a finite, non-negative price.
func ParsePrice(v any) (float64, error) {
	f, ok := toFloat(v)
	if !ok || f < 0 {
		return 0, apperrors.InvalidField("price", priceReason)
	}
	return f, nil
}

// ParseQuantity converts v into a non-negative whole number.
func ParseQuantity(v any) (int, error) {
	f, ok := toFloat(v)
	if !ok || f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, apperrors.InvalidField("quantity", quantityReason)
	}
	return int(f), nil
}

// parseRequired applies the name, price and quantity rules in that order.
func parseRequired(payload models.ProductPayload) (*models.Product, error) {
	if payload.Name == nil || strings.TrimSpace(*payload.Name) == "" {
		return nil, apperrors.MissingField("name")
	}
	price, err := ParsePrice(payload.Price)
	if err != nil {
		return nil, err
	}
	quantity, err := ParseQuantity(payload.Quantity)
	if err != nil {
		return nil, err
	}
	return &models.Product{
		Name:     *payload.Name,
		Price:    price,
		Quantity: quantity,
	}, nil
}

// toFloat accepts numbers and decimal text. Booleans, null, blank or
// non-decimal text and non-finite values are rejected.
func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case nil, bool:
		return 0, false
	case string:
		t = strings.TrimSpace(t)
		if !decimal.MatchString(t) {
			return 0, false
		}
		v = t
	case json.Number:
		if !decimal.MatchString(strings.TrimSpace(string(t))) {
			return 0, false
		}
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func valueOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}

// checkStruct re-checks the normalized record against the model's tags.
func checkStruct(product *models.Product) error {
	err := validate.Struct(product)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err
	}
	switch fe := validationErrors[0]; fe.Field() {
	case "Name":
		return apperrors.MissingField("name")
	case "Price":
		return apperrors.InvalidField("price", priceReason)
	case "Quantity":
		return apperrors.InvalidField("quantity", quantityReason)
	default:
		return apperrors.InvalidField(strings.ToLower(fe.Field()), "failed on the '"+fe.Tag()+"' tag")
	}
}
