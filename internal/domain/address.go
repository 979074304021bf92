package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrStreetRequired = errors.New("street is required")
	ErrHouseRequired  = errors.New("house is required")
)

// Address is a free-form delivery address owned by the server; the client
// only reads existing addresses and appends new ones.
type Address struct {
	ID      int64  `json:"id"`
	Address string `json:"address"`
}

// ComposeAddress builds the free-form delivery string from its sub-fields.
// Street and house are required; apartment is optional.
func ComposeAddress(street, house, apartment string) (string, error) {
	street = strings.TrimSpace(street)
	house = strings.TrimSpace(house)
	apartment = strings.TrimSpace(apartment)

	if street == "" {
		return "", ErrStreetRequired
	}
	if house == "" {
		return "", ErrHouseRequired
	}

	composed := fmt.Sprintf("%s, %s", street, house)
	if apartment != "" {
		composed = fmt.Sprintf("%s, apt. %s", composed, apartment)
	}
	return composed, nil
}
