package openweather

// GeoCity is a single entry of the geocoding direct response.
type GeoCity struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	State   string  `json:"state"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Coord is the coordinate block carried by current-weather responses.
type Coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Condition is one entry of the "weather" array the provider attaches to
// current and forecast samples.
type Condition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// CurrentResponse is the raw current-weather payload.
// Coord is a pointer so its absence is distinguishable from (0, 0).
type CurrentResponse struct {
	Coord *Coord `json:"coord"`
	Main  struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
		Pressure  int     `json:"pressure"`
	} `json:"main"`
	Weather []Condition `json:"weather"`
	Wind    struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Name string `json:"name"`
}

// ForecastItem is one 3-hour sample of the 5-day forecast list.
// DtTxt is the provider's local-time-rendered timestamp string; the midday
// slot is selected by matching on it.
type ForecastItem struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp    float64 `json:"temp"`
		TempMin float64 `json:"temp_min"`
		TempMax float64 `json:"temp_max"`
	} `json:"main"`
	Weather []Condition `json:"weather"`
	DtTxt   string      `json:"dt_txt"`
}

// ForecastResponse is the raw 5-day/3-hour forecast payload.
type ForecastResponse struct {
	List []ForecastItem `json:"list"`
}
