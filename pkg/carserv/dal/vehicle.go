package dal

import "strconv"

// Vehicle defines a single reviewed vehicle. Values are never mutated once a
// catalog has been built.
type Vehicle struct {
	ID          int     `json:"id"`
	Make        string  `json:"make"`
	Model       string  `json:"model"`
	Year        int     `json:"year"`
	Price       int     `json:"price"`
	FuelEconomy string  `json:"fuel_economy"`
	Horsepower  int     `json:"horsepower"`
	Image       string  `json:"image"`
	Rating      float64 `json:"rating"`
}

// YearText returns the model year as it is matched by search.
func (v Vehicle) YearText() string {
	return strconv.Itoa(v.Year)
}
