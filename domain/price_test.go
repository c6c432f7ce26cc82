package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidatePrice(t *testing.T) {
	testCases := []struct {
		name    string
		price   string
		wantErr bool
	}{
		{name: "two decimals", price: "19.99"},
		{name: "integer", price: "5"},
		{name: "zero", price: "0.00"},
		{name: "largest allowed", price: "99999999.99"},
		{name: "trailing zeros beyond scale", price: "1.2300"},
		{name: "three decimals", price: "1.999", wantErr: true},
		{name: "nine integer digits", price: "100000000", wantErr: true},
		{name: "negative too large", price: "-100000000.00", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePrice(decimal.RequireFromString(tc.price))
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
