package widget

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// bboxPad is the half-width, in degrees, of the embedded map around the marker.
const bboxPad = 0.01

// Location is the map widget value.
type Location struct {
	Lat      float64 `json:"lat" yaml:"lat"`
	Lon      float64 `json:"lon" yaml:"lon"`
	EmbedURL string  `json:"embed_url" yaml:"embed_url"`
	LinkURL  string  `json:"link_url" yaml:"link_url"`
	Source   string  `json:"source" yaml:"source"`
}

// NewLocation derives the OpenStreetMap URLs for a coordinate.
func NewLocation(lat, lon float64, source string) Location {
	return Location{
		Lat:      lat,
		Lon:      lon,
		EmbedURL: EmbedURL(lat, lon),
		LinkURL:  LinkURL(lat, lon),
		Source:   source,
	}
}

// ftoa formats a coordinate with at most six decimals, which is finer than
// the map can show and hides float noise from the bbox arithmetic.
func ftoa(f float64) string {
	s := strconv.FormatFloat(f, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// EmbedURL is the OpenStreetMap embed for a small box around lat/lon.
func EmbedURL(lat, lon float64) string {
	return fmt.Sprintf("https://www.openstreetmap.org/export/embed.html?bbox=%s,%s,%s,%s&layer=mapnik&marker=%s,%s",
		ftoa(lon-bboxPad), ftoa(lat-bboxPad), ftoa(lon+bboxPad), ftoa(lat+bboxPad),
		ftoa(lat), ftoa(lon))
}

// LinkURL is the full-size OpenStreetMap page for lat/lon.
func LinkURL(lat, lon float64) string {
	return fmt.Sprintf("https://www.openstreetmap.org/#map=16/%s/%s", ftoa(lat), ftoa(lon))
}

// LocationFetcher resolves the user's position. Fixed coordinates win;
// otherwise the position is looked up from the caller's IP address.
type LocationFetcher struct {
	Client    *http.Client
	LookupURL string
	Lat, Lon  *float64
}

// Fetch resolves the location.
func (f LocationFetcher) Fetch(ctx context.Context) (Location, error) {
	if f.Lat != nil && f.Lon != nil {
		return NewLocation(*f.Lat, *f.Lon, "config"), nil
	}
	if f.LookupURL == "" {
		return Location{}, fmt.Errorf("locate: %w: no coordinates and no lookup url", ErrNoData)
	}

	body, err := getBody(ctx, f.Client, f.LookupURL)
	if err != nil {
		return Location{}, fmt.Errorf("locate: %w", err)
	}
	var resp struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return Location{}, fmt.Errorf("decode location: %w", err)
	}
	if resp.Latitude == nil || resp.Longitude == nil {
		return Location{}, fmt.Errorf("locate: %w", ErrNoData)
	}
	return NewLocation(*resp.Latitude, *resp.Longitude, "ip"), nil
}
