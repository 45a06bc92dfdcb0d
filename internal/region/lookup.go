// Package region answers option-list and cascade questions over the static
// province/district/sub-district hierarchy. All lookups are pure reads over
// the dataset slice; while the dataset has not loaded yet they return empty
// results so the UI simply shows no options.
package region

import (
	"github.com/renohome/listing-service/internal/entity"
)

// DistrictOption pairs a district with its owning province. District names
// are not unique across provinces, so the pair is the display identity.
type DistrictOption struct {
	Name     string `json:"name"`
	Province string `json:"province"`
}

// ProvinceNames lists provinces in dataset order, for the province picker.
func ProvinceNames(data []entity.Province) []string {
	names := make([]string, 0, len(data))
	for _, p := range data {
		names = append(names, p.Name)
	}
	return names
}

// DistrictsFor returns the districts of every selected province, in dataset
// order, each tagged with its province. An empty selection yields no options:
// the district picker only opens once at least one province is chosen.
func DistrictsFor(selectedProvinces []string, data []entity.Province) []DistrictOption {
	if len(selectedProvinces) == 0 {
		return nil
	}
	var opts []DistrictOption
	for _, p := range data {
		if !contains(selectedProvinces, p.Name) {
			continue
		}
		for _, d := range p.Districts {
			opts = append(opts, DistrictOption{Name: d.Name, Province: p.Name})
		}
	}
	return opts
}

// SubDistrictsFor lists the sub-districts of one district, for address forms.
func SubDistrictsFor(province, district string, data []entity.Province) []entity.SubDistrict {
	for _, p := range data {
		if p.Name != province {
			continue
		}
		for _, d := range p.Districts {
			if d.Name == district {
				return d.SubDistricts
			}
		}
	}
	return nil
}

// ZipCodeFor resolves the zip code of a sub-district. The second return is
// false when any level of the path is unknown.
func ZipCodeFor(province, district, subDistrict string, data []entity.Province) (string, bool) {
	for _, sd := range SubDistrictsFor(province, district, data) {
		if sd.Name == subDistrict {
			return sd.ZipCode, true
		}
	}
	return "", false
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
