package region

import (
	"testing"

	"github.com/renohome/listing-service/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func regionFixture() []entity.Province {
	return []entity.Province{
		{
			Name: "Bangkok",
			Districts: []entity.District{
				{Name: "Suan Luang", SubDistricts: []entity.SubDistrict{
					{Name: "Suan Luang", ZipCode: "10250"},
				}},
				{Name: "Lat Phrao", SubDistricts: []entity.SubDistrict{
					{Name: "Lat Phrao", ZipCode: "10230"},
					{Name: "Chorakhe Bua", ZipCode: "10230"},
				}},
			},
		},
		{
			Name: "Chonburi",
			Districts: []entity.District{
				{Name: "Bang Lamung", SubDistricts: []entity.SubDistrict{
					{Name: "Nong Prue", ZipCode: "20150"},
				}},
				{Name: "Si Racha"},
			},
		},
	}
}

func TestProvinceNames(t *testing.T) {
	assert.Equal(t, []string{"Bangkok", "Chonburi"}, ProvinceNames(regionFixture()))
	assert.Empty(t, ProvinceNames(nil))
}

func TestDistrictsFor_SingleProvince(t *testing.T) {
	got := DistrictsFor([]string{"Chonburi"}, regionFixture())

	require.Len(t, got, 2)
	assert.Equal(t, DistrictOption{Name: "Bang Lamung", Province: "Chonburi"}, got[0])
	assert.Equal(t, DistrictOption{Name: "Si Racha", Province: "Chonburi"}, got[1])
}

func TestDistrictsFor_UnionAcrossProvinces(t *testing.T) {
	got := DistrictsFor([]string{"Bangkok", "Chonburi"}, regionFixture())

	require.Len(t, got, 4)
	// Dataset order: every Bangkok district, then every Chonburi district.
	assert.Equal(t, "Bangkok", got[0].Province)
	assert.Equal(t, "Bangkok", got[1].Province)
	assert.Equal(t, "Chonburi", got[2].Province)
	assert.Equal(t, "Chonburi", got[3].Province)
}

func TestDistrictsFor_EmptySelection(t *testing.T) {
	assert.Empty(t, DistrictsFor(nil, regionFixture()))
	assert.Empty(t, DistrictsFor([]string{}, regionFixture()))
}

func TestDistrictsFor_NotYetLoadedData(t *testing.T) {
	assert.Empty(t, DistrictsFor([]string{"Bangkok"}, nil))
}

func TestSubDistrictsFor(t *testing.T) {
	got := SubDistrictsFor("Bangkok", "Lat Phrao", regionFixture())

	require.Len(t, got, 2)
	assert.Equal(t, "Lat Phrao", got[0].Name)
	assert.Equal(t, "Chorakhe Bua", got[1].Name)

	assert.Empty(t, SubDistrictsFor("Bangkok", "Nowhere", regionFixture()))
	assert.Empty(t, SubDistrictsFor("Nowhere", "Lat Phrao", regionFixture()))
	assert.Empty(t, SubDistrictsFor("Bangkok", "Lat Phrao", nil))
}

func TestZipCodeFor(t *testing.T) {
	zip, ok := ZipCodeFor("Chonburi", "Bang Lamung", "Nong Prue", regionFixture())
	assert.True(t, ok)
	assert.Equal(t, "20150", zip)

	_, ok = ZipCodeFor("Chonburi", "Bang Lamung", "Nowhere", regionFixture())
	assert.False(t, ok)

	_, ok = ZipCodeFor("Chonburi", "Si Racha", "Anything", regionFixture())
	assert.False(t, ok, "district without sub-district data resolves nothing")
}
