package models_test

import (
	"testing"

	"skytrip/models"

	"github.com/stretchr/testify/assert"
)

func TestDetectCardNetwork(t *testing.T) {
	cases := []struct {
		number string
		want   models.CardNetwork
	}{
		{"4111 1111 1111 1111", models.CardNetworkVisa},
		{"5500 0000 0000 0004", models.CardNetworkMastercard},
		{"2221 0000 0000 0009", models.CardNetworkMastercard},
		{"3400 000000 00009", models.CardNetworkAmex},
		{"3700 000000 00002", models.CardNetworkAmex},
		{"3056 930009 02004", models.CardNetworkOther}, // diners
		{"6011 0000 0000 0004", models.CardNetworkOther},
		{"", models.CardNetworkOther},
		{"****", models.CardNetworkOther},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, models.DetectCardNetwork(tc.number), "number %q", tc.number)
	}
}

func TestCardLast4(t *testing.T) {
	assert.Equal(t, "1111", models.CardLast4("4111 1111 1111 1111"))
	assert.Equal(t, "0004", models.CardLast4("5500-0000-0000-0004"))
	assert.Equal(t, "123", models.CardLast4("123"))
	assert.Equal(t, "", models.CardLast4("no digits"))
}
