package eventview

import "github.com/baechuer/real-time-ressys/services/volunteer-service/internal/domain"

func ToLocationView(l *domain.Location) *LocationView {
	if l == nil {
		return nil
	}
	return &LocationView{
		Address1:   l.Address1,
		Address2:   l.Address2,
		City:       l.City,
		State:      l.State,
		PostalCode: l.PostalCode,
	}
}

// ToLocation rebuilds a domain location. The view has no country, so the
// placeholder is written instead.
func ToLocation(v *LocationView) *domain.Location {
	if v == nil {
		return nil
	}
	return &domain.Location{
		Address1:   v.Address1,
		Address2:   v.Address2,
		City:       v.City,
		State:      v.State,
		PostalCode: v.PostalCode,
		Country:    domain.PlaceholderCountry,
	}
}
