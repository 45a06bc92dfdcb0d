package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromMapURL_RequiresBothPinParts(t *testing.T) {
	// An embed URL with !3d but no !4d pin (the !2d value is viewport, not
	// pin) must yield nothing rather than a half coordinate.
	url := "https://www.google.com/maps/embed?pb=!1m13!1m8!1m3!1d2299.4191556235287!2d100.6965079!3d13.6603789!3m2!1i1024!2i768!4f13.1"

	_, ok := FromMapURL(url)

	assert.False(t, ok)
}

func TestFromMapURL_EmbedPin(t *testing.T) {
	url := "https://www.google.com/maps/embed?pb=!1m14!3d13.6603789!4d100.6965079!5e0"

	coord, ok := FromMapURL(url)

	require.True(t, ok)
	assert.InDelta(t, 13.6603789, coord.Lat, 1e-9)
	assert.InDelta(t, 100.6965079, coord.Lng, 1e-9)
}

func TestFromMapURL_AtFallback(t *testing.T) {
	url := "https://www.google.com/maps/@13.7563,100.5018,12z"

	coord, ok := FromMapURL(url)

	require.True(t, ok)
	assert.InDelta(t, 13.7563, coord.Lat, 1e-9)
	assert.InDelta(t, 100.5018, coord.Lng, 1e-9)
}

func TestFromMapURL_NoCoordinates(t *testing.T) {
	for _, url := range []string{
		"",
		"https://maps.google.com/?q=Ram+Inthra",
		"not a url at all",
	} {
		_, ok := FromMapURL(url)
		assert.False(t, ok, "url %q should yield no coordinates", url)
	}
}
