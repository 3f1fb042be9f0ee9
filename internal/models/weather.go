package models

type WeatherAlertsRequest struct {
	State *string `json:"state,omitempty"` // two-letter US state code
}

// WeatherForecastRequest uses pointers so a missing coordinate can be told
// apart from 0.
type WeatherForecastRequest struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// RawResponse is shared by both weather routes; the shim returns
// preformatted text.
type RawResponse struct {
	Raw string `json:"raw"`
}
