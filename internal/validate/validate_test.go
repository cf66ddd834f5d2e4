package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmtech/internal/domain"
)

func goodListing() domain.ListingInput {
	return domain.ListingInput{
		Name:          "  Kubota L3901 Tractor ",
		Description:   "Compact tractor",
		Location:      "Pune",
		Type:          domain.TypeRent,
		Category:      "Tractor",
		Condition:     "Good",
		RentalPrice:   1800,
		DiscountPrice: 1500,
		DepositAmount: 10000,
		Offer:         true,
		ImageURLs:     []string{"/media/agricultural-equipment/a.jpg"},
	}
}

func TestListingAcceptsAndTrims(t *testing.T) {
	in := goodListing()
	require.NoError(t, Listing(&in))
	assert.Equal(t, "Kubota L3901 Tractor", in.Name)
}

func TestListingRejects(t *testing.T) {
	cases := map[string]func(*domain.ListingInput){
		"name":          func(in *domain.ListingInput) { in.Name = "Plow" },
		"type":          func(in *domain.ListingInput) { in.Type = "lease" },
		"category":      func(in *domain.ListingInput) { in.Category = "Drone" },
		"condition":     func(in *domain.ListingInput) { in.Condition = "Mint" },
		"rentalPrice":   func(in *domain.ListingInput) { in.RentalPrice = 0 },
		"depositAmount": func(in *domain.ListingInput) { in.DepositAmount = -1 },
		"discountPrice": func(in *domain.ListingInput) { in.DiscountPrice = 1800 },
		"imageUrls":     func(in *domain.ListingInput) { in.ImageURLs = nil },
	}
	for field, mutate := range cases {
		in := goodListing()
		mutate(&in)
		err := Listing(&in)
		var verr *Error
		require.True(t, errors.As(err, &verr), field)
		assert.Equal(t, field, verr.Field)
	}
}

func TestDiscountIgnoredWithoutOffer(t *testing.T) {
	in := goodListing()
	in.Offer = false
	in.DiscountPrice = 5000
	assert.NoError(t, Listing(&in))
}

func TestTooManyImages(t *testing.T) {
	in := goodListing()
	in.ImageURLs = []string{"1", "2", "3", "4", "5", "6", "7"}
	assert.Error(t, Listing(&in))
}

func TestScalars(t *testing.T) {
	_, ok := Email("ravi@farmtech.test")
	assert.True(t, ok)
	_, ok = Email("ravi@")
	assert.False(t, ok)

	_, ok = Username("ra")
	assert.False(t, ok)
	u, ok := Username(" meera ")
	assert.True(t, ok)
	assert.Equal(t, "meera", u)

	assert.True(t, Password("Passw0rd!"))
	assert.False(t, Password("password"))

	_, ok = ID("eq-001")
	assert.True(t, ok)
	_, ok = ID("../etc")
	assert.False(t, ok)
}
