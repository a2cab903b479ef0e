package catalog

import (
	"sort"
	"strings"
)

// MaxResults caps how many records a search returns.
const MaxResults = 20

// Catalog is the read-only in-memory record set the dialogue queries. Row
// order is the table's insertion order and is preserved by every operation.
type Catalog struct {
	cars []Car
}

// New builds a Catalog over the given records. The slice is not copied; the
// caller must not mutate it afterwards.
func New(cars []Car) *Catalog {
	return &Catalog{cars: cars}
}

// Len returns the number of loaded records.
func (c *Catalog) Len() int {
	return len(c.cars)
}

// Brands returns the distinct brands in alphabetical order.
func (c *Catalog) Brands() []string {
	return distinctSorted(c.cars, func(car Car) string { return car.Marca })
}

// ModelsForBrand returns the distinct models of a brand in alphabetical
// order. Brand matching is case-insensitive containment, like the search.
func (c *Catalog) ModelsForBrand(brand string) []string {
	seen := make(map[string]bool)
	var models []string
	for _, car := range c.cars {
		if !containsFold(car.Marca, brand) {
			continue
		}
		if !seen[car.Modelo] {
			seen[car.Modelo] = true
			models = append(models, car.Modelo)
		}
	}
	sort.Strings(models)
	return models
}

// Colors returns the distinct colors in dataset order.
func (c *Catalog) Colors() []string {
	return distinct(c.cars, func(car Car) string { return car.Cor })
}

// Fuels returns the distinct fuel types in dataset order.
func (c *Catalog) Fuels() []string {
	return distinct(c.cars, func(car Car) string { return car.Combustivel })
}

// Transmissions returns the distinct transmission types in dataset order.
func (c *Catalog) Transmissions() []string {
	return distinct(c.cars, func(car Car) string { return car.Transmissao })
}

// HasBrand reports whether any record's brand contains the given value.
func (c *Catalog) HasBrand(brand string) bool {
	for _, car := range c.cars {
		if containsFold(car.Marca, brand) {
			return true
		}
	}
	return false
}

// HasModel reports whether the brand has any record whose model contains the
// given value.
func (c *Catalog) HasModel(model, brand string) bool {
	for _, car := range c.cars {
		if containsFold(car.Marca, brand) && containsFold(car.Modelo, model) {
			return true
		}
	}
	return false
}

// Search applies the accumulated filters as a conjunction and returns the
// matches in dataset order, truncated to MaxResults. String slots use
// case-insensitive substring containment; the price range is inclusive and
// only applied once both bounds were collected. Absent slots impose no
// constraint.
func (c *Catalog) Search(spec FilterSpec) []Car {
	var out []Car
	for _, car := range c.cars {
		if !matches(car, spec) {
			continue
		}
		out = append(out, car)
		if len(out) == MaxResults {
			break
		}
	}
	return out
}

func matches(car Car, spec FilterSpec) bool {
	if spec.Marca != "" && !containsFold(car.Marca, spec.Marca) {
		return false
	}
	if spec.Modelo != "" && !containsFold(car.Modelo, spec.Modelo) {
		return false
	}
	if spec.HasPreco && (car.Preco < spec.PrecoMin || car.Preco > spec.PrecoMax) {
		return false
	}
	if spec.Cor != "" && !containsFold(car.Cor, spec.Cor) {
		return false
	}
	if spec.Combustivel != "" && !containsFold(car.Combustivel, spec.Combustivel) {
		return false
	}
	if spec.Transmissao != "" && !containsFold(car.Transmissao, spec.Transmissao) {
		return false
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func distinct(cars []Car, field func(Car) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, car := range cars {
		v := field(car)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func distinctSorted(cars []Car, field func(Car) string) []string {
	out := distinct(cars, field)
	sort.Strings(out)
	return out
}
