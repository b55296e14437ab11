package models

type Measurement struct {
	Value float64 `json:"Value"`
	Unit  string  `json:"Unit"`
}

type Temperature struct {
	Metric Measurement `json:"Metric"`
}

type Condition struct {
	WeatherIcon int         `json:"WeatherIcon"`
	WeatherText string      `json:"WeatherText"`
	Temperature Temperature `json:"Temperature"`
}

type Conditions []Condition
