package entity

// Region reference data: a fixed province -> district -> sub-district
// hierarchy loaded once per session from a published dataset. Listings carry
// plain strings for these fields; the hierarchy is only authoritative for
// filter options and address forms, never enforced on stored listings.

type SubDistrict struct {
	Name    string `json:"name"`
	ZipCode string `json:"zipCode"`
}

type District struct {
	Name         string        `json:"name"`
	SubDistricts []SubDistrict `json:"subDistricts"`
}

type Province struct {
	Name      string     `json:"name"`
	Districts []District `json:"districts"`
}
