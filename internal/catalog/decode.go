package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

type productRecord struct {
	ID    ProductID        `json:"id"`
	Name  string           `json:"name" validate:"required"`
	Price *decimal.Decimal `json:"price" validate:"required"`
	Image string           `json:"image"`
}

// LoadFile reads a JSON catalog from disk.
func LoadFile(path string) ([]Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "open catalog file")
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses a JSON array of {id, name, price, image} records. Every record
// needs a name and a non-negative price; a missing id is allowed and leaves the
// product unaddressable.
func Decode(r io.Reader) ([]Product, error) {
	var records []productRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid catalog json")
	}

	details := map[string]string{}
	products := make([]Product, 0, len(records))
	for i, rec := range records {
		if err := validate.Struct(rec); err != nil {
			details[recordKey(i, rec)] = describe(err)
			continue
		}
		if rec.Price.IsNegative() {
			details[recordKey(i, rec)] = "price must not be negative"
			continue
		}
		products = append(products, Product{
			ID:    rec.ID,
			Name:  strings.TrimSpace(rec.Name),
			Price: *rec.Price,
			Image: rec.Image,
		})
	}

	if len(details) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid catalog records").WithDetails(details)
	}
	return products, nil
}

func recordKey(i int, rec productRecord) string {
	if rec.ID != "" {
		return fmt.Sprintf("[%d] id=%s", i, rec.ID)
	}
	return fmt.Sprintf("[%d]", i)
}

func describe(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		parts = append(parts, fmt.Sprintf("%s %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, ", ")
}
