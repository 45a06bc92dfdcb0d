package region

import (
	"github.com/renohome/listing-service/internal/entity"
	"github.com/renohome/listing-service/internal/search"
)

// DeselectProvince removes a province from the criteria along with every
// selected district that belongs to it, keeping the invariant that a selected
// district is always reachable from a selected province. Districts are
// matched by name against the deselected province's district list. Returns a
// new Criteria; the input is untouched.
func DeselectProvince(province string, c search.Criteria, data []entity.Province) search.Criteria {
	out := c.Clone()

	kept := out.Provinces[:0]
	for _, p := range out.Provinces {
		if p != province {
			kept = append(kept, p)
		}
	}
	out.Provinces = kept

	owned := districtNames(province, data)
	if len(owned) == 0 {
		return out
	}

	keptDistricts := out.Districts[:0]
	for _, d := range out.Districts {
		if !contains(owned, d) {
			keptDistricts = append(keptDistricts, d)
		}
	}
	out.Districts = keptDistricts
	return out
}

func districtNames(province string, data []entity.Province) []string {
	for _, p := range data {
		if p.Name != province {
			continue
		}
		names := make([]string, 0, len(p.Districts))
		for _, d := range p.Districts {
			names = append(names, d.Name)
		}
		return names
	}
	return nil
}
