package model

// StateEntry is one element of the states endpoint response.
type StateEntry struct {
	Code string `json:"state_code"`
	Name string `json:"state_name"`
}

// Catalog maps a country code to what is known about it so far. It is
// filled in as the user drills down and never persisted.
type Catalog map[string]*Country

type Country struct {
	Name   string
	States map[string]*State
}

type State struct {
	Name   string
	Cities []string
}

// Country returns the entry for code, creating it with name if absent.
func (c Catalog) Country(code, name string) *Country {
	if country, ok := c[code]; ok {
		return country
	}
	country := &Country{Name: name, States: map[string]*State{}}
	c[code] = country
	return country
}

// StateName resolves a state code to its display name, falling back to the code.
func (c Catalog) StateName(country, code string) string {
	if ct, ok := c[country]; ok {
		if st, ok := ct.States[code]; ok && st.Name != "" {
			return st.Name
		}
	}
	return code
}

// CountryName resolves a country code to its display name, falling back to the code.
func (c Catalog) CountryName(code string) string {
	if ct, ok := c[code]; ok && ct.Name != "" {
		return ct.Name
	}
	return code
}
