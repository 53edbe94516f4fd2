package domain

// WeatherSnapshot represents current conditions for a city as returned to clients
type WeatherSnapshot struct {
	City         string  `json:"city"`
	Country      string  `json:"country"`
	Temperature  int     `json:"temperature"`
	FeelsLike    int     `json:"feels_like"`
	Humidity     int     `json:"humidity"`
	Pressure     int     `json:"pressure"`
	Description  string  `json:"description"`
	Icon         string  `json:"icon"`
	WindSpeed    float64 `json:"wind_speed"`
	VisibilityKM float64 `json:"visibility"`
	Sunrise      string  `json:"sunrise"`
	Sunset       string  `json:"sunset"`
}

// OpenWeatherResponse represents the OpenWeatherMap current weather payload
type OpenWeatherResponse struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
		Pressure  int     `json:"pressure"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Visibility int    `json:"visibility"`
	Name       string `json:"name"`
	Sys        struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
}
