package validator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type priceRequest struct {
	Name  string          `json:"name" validate:"required,max=5"`
	Price decimal.Decimal `json:"price" validate:"gt=0"`
	Items []itemRequest   `json:"items" validate:"required,min=1,dive"`
}

type itemRequest struct {
	Quantity int `json:"quantity" validate:"min=1"`
}

func TestValidate_Passes(t *testing.T) {
	v := New()

	err := v.Validate(&priceRequest{
		Name:  "kupa",
		Price: decimal.RequireFromString("250.00"),
		Items: []itemRequest{{Quantity: 1}},
	})
	assert.NoError(t, err)
}

func TestValidate_ReportsJSONFieldPaths(t *testing.T) {
	v := New()

	err := v.Validate(&priceRequest{
		Name:  "uzun isim",
		Price: decimal.Zero,
		Items: []itemRequest{{Quantity: 0}},
	})
	require.Error(t, err)

	var fieldErrs ValidationErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.ElementsMatch(t, ValidationErrors{
		{Field: "name", Rule: "max", Param: "5"},
		{Field: "price", Rule: "gt", Param: "0"},
		{Field: "items[0].quantity", Rule: "min", Param: "1"},
	}, fieldErrs)
	assert.Contains(t, err.Error(), "price: gt=0")
}

func TestValidate_NegativeDecimal(t *testing.T) {
	v := New()

	err := v.Validate(&priceRequest{
		Name:  "kupa",
		Price: decimal.RequireFromString("-1"),
		Items: []itemRequest{{Quantity: 2}},
	})
	assert.Error(t, err)
}
