package dal

import (
	"fmt"
	"math/rand"
	"sort"
)

// DefaultCatalogSize is the number of vehicles generated at startup.
const DefaultCatalogSize = 100

var (
	// Makes lists the manufacturers a generated vehicle can have.
	Makes = []string{"Toyota", "Honda", "Ford", "Chevrolet", "Nissan", "Hyundai", "Kia", "Volkswagen", "BMW", "Mercedes-Benz"}

	// Categories are the body styles used as model names.
	Categories = []string{"Sedan", "SUV", "Truck", "Hatchback", "Coupe", "Minivan", "Crossover", "Wagon", "Convertible", "Electric"}
)

const (
	firstYear = 2020
	yearSpan  = 5
	minPrice  = 20000
	priceSpan = 60000
	minHP     = 150
	hpSpan    = 300
)

// Catalog is the read-only collection of vehicles for one process.
type Catalog struct {
	vehicles []Vehicle
	byID     map[int]int
	makes    []string
}

// NewCatalog wraps a fixed set of vehicles. The slice is copied.
func NewCatalog(vehicles []Vehicle) *Catalog {
	c := &Catalog{
		vehicles: make([]Vehicle, len(vehicles)),
		byID:     make(map[int]int, len(vehicles)),
	}
	copy(c.vehicles, vehicles)

	seen := make(map[string]struct{})
	for i, v := range c.vehicles {
		c.byID[v.ID] = i
		if _, ok := seen[v.Make]; !ok {
			seen[v.Make] = struct{}{}
			c.makes = append(c.makes, v.Make)
		}
	}
	sort.Strings(c.makes)
	return c
}

// Generate builds a catalog of count random vehicles with ids 1..count.
func Generate(count int) *Catalog {
	if count < 0 {
		count = 0
	}
	vehicles := make([]Vehicle, count)
	for i := range vehicles {
		vehicles[i] = randomVehicle(i + 1)
	}
	return NewCatalog(vehicles)
}

func randomVehicle(id int) Vehicle {
	return Vehicle{
		ID:          id,
		Make:        pick(Makes),
		Model:       fmt.Sprintf("%s %c", pick(Categories), 'A'+rand.Intn(26)),
		Year:        firstYear + rand.Intn(yearSpan),
		Price:       minPrice + rand.Intn(priceSpan),
		FuelEconomy: fmt.Sprintf("%d/%d", 20+rand.Intn(20), 25+rand.Intn(20)),
		Horsepower:  minHP + rand.Intn(hpSpan),
		// the image keyword is drawn on its own and may differ from Make
		Image:  ImageURL(pick(Makes)),
		Rating: 3 + rand.Float64()*2,
	}
}

func pick(values []string) string {
	return values[rand.Intn(len(values))]
}

// All returns the vehicles in catalog order.
func (c *Catalog) All() []Vehicle {
	out := make([]Vehicle, len(c.vehicles))
	copy(out, c.vehicles)
	return out
}

// Len returns the number of vehicles.
func (c *Catalog) Len() int {
	return len(c.vehicles)
}

// Get looks up a vehicle by id.
func (c *Catalog) Get(id int) (Vehicle, error) {
	i, ok := c.byID[id]
	if !ok {
		return Vehicle{}, &NotFoundError{ID: id}
	}
	return c.vehicles[i], nil
}

// Makes returns the distinct makes present in the catalog, sorted.
func (c *Catalog) Makes() []string {
	out := make([]string, len(c.makes))
	copy(out, c.makes)
	return out
}

// HasMake reports whether any vehicle in the catalog has the given make.
func (c *Catalog) HasMake(name string) bool {
	i := sort.SearchStrings(c.makes, name)
	return i < len(c.makes) && c.makes[i] == name
}
