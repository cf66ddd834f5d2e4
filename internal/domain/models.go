package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// Listing types.
const (
	TypeRent = "rent"
	TypeSale = "sale"
)

var Categories = []string{"Tractor", "Harvester", "Plow", "Seeder", "Irrigation System", "Other"}

var Conditions = []string{"New", "Good", "Average", "Needs Repair"}

// MaxImages bounds the image gallery of a single listing.
const MaxImages = 6

// StringList stores a []string as a JSON array in a TEXT column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return errors.New("StringList: unsupported column type")
	}
	if len(raw) == 0 {
		*l = StringList{}
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*l = out
	return nil
}

type Listing struct {
	ID            string     `db:"id" json:"_id"`
	Name          string     `db:"name" json:"name"`
	Description   string     `db:"description" json:"description"`
	Location      string     `db:"location" json:"location"`
	Type          string     `db:"type" json:"type"` // rent | sale
	Category      string     `db:"category" json:"category"`
	Condition     string     `db:"condition" json:"condition"`
	RentalPrice   float64    `db:"rental_price" json:"rentalPrice"`
	DiscountPrice float64    `db:"discount_price" json:"discountPrice"`
	DepositAmount float64    `db:"deposit_amount" json:"depositAmount"`
	Offer         bool       `db:"offer" json:"offer"`
	ImageURLs     StringList `db:"image_urls" json:"imageUrls"`
	UserRef       string     `db:"user_ref" json:"userRef"`
	CreatedAt     string     `db:"created_at" json:"createdAt"`
	UpdatedAt     string     `db:"updated_at" json:"updatedAt"`
}

// ListingInput is the client-writable part of a listing.
type ListingInput struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Location      string   `json:"location"`
	Type          string   `json:"type"`
	Category      string   `json:"category"`
	Condition     string   `json:"condition"`
	RentalPrice   float64  `json:"rentalPrice"`
	DiscountPrice float64  `json:"discountPrice"`
	DepositAmount float64  `json:"depositAmount"`
	Offer         bool     `json:"offer"`
	ImageURLs     []string `json:"imageUrls"`
}

// Cover is the first image, shown on cards.
func (l Listing) Cover() string {
	if len(l.ImageURLs) == 0 {
		return ""
	}
	return l.ImageURLs[0]
}

// Price is what a renter pays per day.
func (l Listing) Price() float64 {
	if l.Offer && l.DiscountPrice > 0 {
		return l.DiscountPrice
	}
	return l.RentalPrice
}
