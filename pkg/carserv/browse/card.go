package browse

import (
	"fmt"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/nekruzvatanshoev/easydrive/pkg/carserv/dal"
)

var printer = message.NewPrinter(language.English)

// Card is the display form of one visible vehicle.
type Card struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Rating      string `json:"rating"`
	Price       string `json:"price"`
	FuelEconomy string `json:"fuel_economy"`
	Link        string `json:"link"`
	Image       string `json:"image"`
	Fallback    string `json:"fallback_image"`
}

// ReviewPath is the detail route for a vehicle.
func ReviewPath(id int) string {
	return "/review/" + strconv.Itoa(id)
}

// NewCard renders v.
func NewCard(v dal.Vehicle) Card {
	return Card{
		ID:          v.ID,
		Title:       fmt.Sprintf("%d %s %s", v.Year, v.Make, v.Model),
		Rating:      strconv.FormatFloat(v.Rating, 'f', 1, 64),
		Price:       printer.Sprintf("%d", v.Price),
		FuelEconomy: v.FuelEconomy,
		Link:        ReviewPath(v.ID),
		Image:       v.Image,
		Fallback:    dal.FallbackImageURL,
	}
}

// Cards renders every vehicle of the view.
func (v View) Cards() []Card {
	cards := make([]Card, len(v.Vehicles))
	for i, vehicle := range v.Vehicles {
		cards[i] = NewCard(vehicle)
	}
	return cards
}
