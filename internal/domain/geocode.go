package domain

// GeocodeResult is one match returned by the geocoding provider.
type GeocodeResult struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	FormattedAddress string  `json:"formattedAddress"`
	StreetName       string  `json:"streetName,omitempty"`
	City             string  `json:"city,omitempty"`
	StateCode        string  `json:"stateCode,omitempty"`
	Zipcode          string  `json:"zipcode,omitempty"`
	CountryCode      string  `json:"countryCode,omitempty"`
}

// Coordinate is a WGS84 point.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}
