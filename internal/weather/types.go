package weather

// CitySuggestion is one autocomplete result. ID is derived from the entry's
// coordinates plus its position in the list, so it stays unique even when
// the provider returns the same city twice under different admin boundaries.
type CitySuggestion struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Country string  `json:"country"`
	State   string  `json:"state,omitempty"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// WeatherSnapshot is current conditions at one location, Celsius throughout.
// Lat/Lon are carried whenever derivable so a follow-up forecast fetch can
// use exact coordinates instead of re-resolving the city name.
type WeatherSnapshot struct {
	City        string   `json:"city"`
	Temperature float64  `json:"temperature"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Humidity    int      `json:"humidity"`
	WindSpeed   float64  `json:"windSpeed"`
	FeelsLike   float64  `json:"feelsLike"`
	Pressure    int      `json:"pressure"`
	Lat         *float64 `json:"lat,omitempty"`
	Lon         *float64 `json:"lon,omitempty"`
}

// TempRange is the min/max temperature of one forecast day.
type TempRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DailyForecast is one calendar day's representative sample, taken at the
// provider's midday slot. Dt is unix seconds.
type DailyForecast struct {
	Dt          int64     `json:"dt"`
	Temp        TempRange `json:"temp"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
}
