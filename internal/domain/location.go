package domain

// PlaceholderCountry is written whenever a location is rebuilt from its
// presentation form, which carries no country.
const PlaceholderCountry = "TODO:  Put country in both objects"

type Location struct {
	ID         int
	Address1   string
	Address2   string
	City       string
	State      string
	PostalCode string
	Country    string
}
