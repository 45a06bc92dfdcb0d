// Package geo extracts coordinates from Google Maps links pasted into the
// listing form. Best-effort presentation helper: a link the patterns do not
// cover just yields no marker.
package geo

import (
	"regexp"
	"strconv"
)

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

var (
	// Embed-style URLs carry the pin as !3d<lat>!4d<lng>.
	latRe = regexp.MustCompile(`!3d([\d.]+)`)
	lngRe = regexp.MustCompile(`!4d([\d.]+)`)
	// Share links carry the viewport as @<lat>,<lng>.
	atRe = regexp.MustCompile(`@([\d.]+),([\d.]+)`)
)

// FromMapURL pulls a lat/lng pair out of a map link. The second return is
// false when the URL is empty or holds no recognizable coordinates.
func FromMapURL(url string) (Coordinate, bool) {
	if url == "" {
		return Coordinate{}, false
	}

	if lat, lng, ok := matchPin(url); ok {
		return Coordinate{Lat: lat, Lng: lng}, true
	}

	if m := atRe.FindStringSubmatch(url); m != nil {
		lat, errLat := strconv.ParseFloat(m[1], 64)
		lng, errLng := strconv.ParseFloat(m[2], 64)
		if errLat == nil && errLng == nil {
			return Coordinate{Lat: lat, Lng: lng}, true
		}
	}
	return Coordinate{}, false
}

func matchPin(url string) (lat, lng float64, ok bool) {
	latM := latRe.FindStringSubmatch(url)
	lngM := lngRe.FindStringSubmatch(url)
	if latM == nil || lngM == nil {
		return 0, 0, false
	}
	lat, errLat := strconv.ParseFloat(latM[1], 64)
	lng, errLng := strconv.ParseFloat(lngM[1], 64)
	if errLat != nil || errLng != nil {
		return 0, 0, false
	}
	return lat, lng, true
}
