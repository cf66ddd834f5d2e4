package validate

import (
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"farmtech/internal/domain"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reUser  = regexp.MustCompile(`^[A-Za-z0-9_.-]{3,20}$`)
)

// Error describes the first invalid field of a payload.
type Error struct {
	Field string
	Msg   string
}

func (e *Error) Error() string { return e.Field + ": " + e.Msg }

func fail(field, msg string) error { return &Error{Field: field, Msg: msg} }

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 50 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// ID validates a simple resource identifier (listing/user ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

func Username(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reUser.MatchString(s)
}

// Password enforces a length window and one of each character class.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 20 {
		return false
	}
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	return hasLower && hasUpper && hasDigit && hasSymbol
}

// Listing trims the text fields of in and checks it against the listing
// model's constraints.
func Listing(in *domain.ListingInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Location = strings.TrimSpace(in.Location)

	if n := utf8.RuneCountInString(in.Name); n < 5 || n > 62 {
		return fail("name", "must be 5 to 62 characters")
	}
	if in.Description == "" || len(in.Description) > 2000 {
		return fail("description", "is required")
	}
	if in.Location == "" || len(in.Location) > 200 {
		return fail("location", "is required")
	}
	if in.Type != domain.TypeRent && in.Type != domain.TypeSale {
		return fail("type", "must be rent or sale")
	}
	if !slices.Contains(domain.Categories, in.Category) {
		return fail("category", "is not a known category")
	}
	if !slices.Contains(domain.Conditions, in.Condition) {
		return fail("condition", "is not a known condition")
	}
	if in.RentalPrice < 1 {
		return fail("rentalPrice", "must be at least 1")
	}
	if in.DepositAmount < 0 {
		return fail("depositAmount", "must not be negative")
	}
	if in.DiscountPrice < 0 {
		return fail("discountPrice", "must not be negative")
	}
	if in.Offer && in.DiscountPrice >= in.RentalPrice {
		return fail("discountPrice", "must be lower than the regular price")
	}
	if len(in.ImageURLs) < 1 || len(in.ImageURLs) > domain.MaxImages {
		return fail("imageUrls", "must hold 1 to 6 images")
	}
	for _, u := range in.ImageURLs {
		if strings.TrimSpace(u) == "" {
			return fail("imageUrls", "must not contain blanks")
		}
	}
	return nil
}
