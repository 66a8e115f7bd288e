package record

// Registry is an in-memory snapshot of the client and partner registries.
//
// Includes names further registry files to merge in, relative to the file that
// lists them. It is cleared once the includes have been resolved.
type Registry struct {
	Includes    []string     `json:"includes,omitempty" yaml:"includes,omitempty"`
	Companies   []Company    `json:"empresas" yaml:"empresas"`
	Individuals []Individual `json:"pessoas_fisicas" yaml:"pessoas_fisicas"`
	Partners    []Partner    `json:"socios" yaml:"socios"`
}

// Merge appends the records of other to r.
func (r *Registry) Merge(other *Registry) {
	if other == nil {
		return
	}
	r.Companies = append(r.Companies, other.Companies...)
	r.Individuals = append(r.Individuals, other.Individuals...)
	r.Partners = append(r.Partners, other.Partners...)
}

// Company returns the company with the given id.
func (r *Registry) Company(id int) (*Company, bool) {
	if r == nil {
		return nil, false
	}
	for i := range r.Companies {
		if r.Companies[i].ID == id {
			return &r.Companies[i], true
		}
	}
	return nil, false
}

// Individual returns the individual with the given id.
func (r *Registry) Individual(id int) (*Individual, bool) {
	if r == nil {
		return nil, false
	}
	for i := range r.Individuals {
		if r.Individuals[i].ID == id {
			return &r.Individuals[i], true
		}
	}
	return nil, false
}

// PartnersOf returns the partner associations of a company in registry order.
func (r *Registry) PartnersOf(companyID int) []Partner {
	if r == nil {
		return nil
	}
	var partners []Partner
	for _, p := range r.Partners {
		if p.CompanyID == companyID {
			partners = append(partners, p)
		}
	}
	return partners
}
