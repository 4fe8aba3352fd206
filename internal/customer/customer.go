package customer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrMalformedRecord indicates a persisted customer record missing required fields.
var ErrMalformedRecord = errors.New("malformed customer record")

// Customer holds a client and their boat. All fields are stored verbatim;
// presence checks (e.g. name required) are the caller's job. ID is immutable
// once assigned.
type Customer struct {
	ID         string
	Name       string
	Phone      string
	Email      string
	Address    string
	BoatMake   string
	BoatModel  string
	BoatLength float64 // feet; 0 when unknown
	BoatName   string
}

// New returns a Customer with a generated id when none is supplied.
func New(c Customer) *Customer {
	if strings.TrimSpace(c.ID) == "" {
		c.ID = uuid.NewString()
	}
	return &c
}

// Record is the flat persisted form of a Customer. Field names are part of
// the on-disk compatibility surface.
type Record struct {
	ID         string  `json:"customer_id"`
	Name       string  `json:"name"`
	Phone      string  `json:"phone"`
	Email      string  `json:"email"`
	Address    string  `json:"address"`
	BoatMake   string  `json:"boat_make"`
	BoatModel  string  `json:"boat_model"`
	BoatLength float64 `json:"boat_length,omitempty"`
	BoatName   string  `json:"boat_name,omitempty"`
}

// Record returns the persisted form of c.
func (c *Customer) Record() Record {
	return Record{
		ID:         c.ID,
		Name:       c.Name,
		Phone:      c.Phone,
		Email:      c.Email,
		Address:    c.Address,
		BoatMake:   c.BoatMake,
		BoatModel:  c.BoatModel,
		BoatLength: c.BoatLength,
		BoatName:   c.BoatName,
	}
}

// FromRecord rebuilds a Customer from its persisted form.
func FromRecord(r Record) (*Customer, error) {
	if strings.TrimSpace(r.ID) == "" {
		return nil, fmt.Errorf("%w: missing customer_id", ErrMalformedRecord)
	}
	if strings.TrimSpace(r.Name) == "" {
		return nil, fmt.Errorf("%w: customer %s missing name", ErrMalformedRecord, r.ID)
	}
	return &Customer{
		ID:         r.ID,
		Name:       r.Name,
		Phone:      r.Phone,
		Email:      r.Email,
		Address:    r.Address,
		BoatMake:   r.BoatMake,
		BoatModel:  r.BoatModel,
		BoatLength: r.BoatLength,
		BoatName:   r.BoatName,
	}, nil
}

// Matches reports whether term occurs in the customer's name, phone or
// email, case-insensitively. An empty term never matches.
func (c *Customer) Matches(term string) bool {
	t := strings.ToLower(strings.TrimSpace(term))
	if t == "" {
		return false
	}
	return strings.Contains(strings.ToLower(c.Name), t) ||
		strings.Contains(strings.ToLower(c.Phone), t) ||
		strings.Contains(strings.ToLower(c.Email), t)
}

func (c *Customer) String() string {
	boatName := c.BoatName
	if boatName == "" {
		boatName = "N/A"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "ID: %s\n", c.ID)
	fmt.Fprintf(&b, "  Name: %s\n", c.Name)
	fmt.Fprintf(&b, "  Phone: %s\n", c.Phone)
	fmt.Fprintf(&b, "  Email: %s\n", c.Email)
	fmt.Fprintf(&b, "  Address: %s\n", c.Address)
	if c.BoatLength > 0 {
		fmt.Fprintf(&b, "  Boat: %gft %s %s (Name: %s)", c.BoatLength, c.BoatMake, c.BoatModel, boatName)
	} else {
		fmt.Fprintf(&b, "  Boat: %s %s (Name: %s)", c.BoatMake, c.BoatModel, boatName)
	}
	return b.String()
}
