package domain

import "time"

// Category classifies a business.
type Category string

const (
	CategoryFoodDrinks      Category = "FOOD_DRINKS"
	CategoryBeautyCare      Category = "BEAUTY_CARE"
	CategoryHealth          Category = "HEALTH"
	CategoryConstruction    Category = "CONSTRUCTION"
	CategoryTransport       Category = "TRANSPORT"
	CategoryRentals         Category = "RENTALS"
	CategoryServicesGeneral Category = "SERVICES_GENERAL"
	CategoryOthers          Category = "OTHERS"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryFoodDrinks,
	CategoryBeautyCare,
	CategoryHealth,
	CategoryConstruction,
	CategoryTransport,
	CategoryRentals,
	CategoryServicesGeneral,
	CategoryOthers,
}

var categoryNames = map[Category]string{
	CategoryFoodDrinks:      "Alimentos e Bebidas",
	CategoryBeautyCare:      "Beleza e Cuidados Pessoais",
	CategoryHealth:          "Saúde e Bem-estar",
	CategoryConstruction:    "Construção e Reformas",
	CategoryTransport:       "Transporte e Logística",
	CategoryRentals:         "Aluguéis e Imóveis",
	CategoryServicesGeneral: "Serviços Gerais e Aulas",
	CategoryOthers:          "Outros",
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

// DisplayName returns the human-readable label of c.
func (c Category) DisplayName() string {
	return categoryNames[c]
}

// Business is a storefront owned by a single seller.
type Business struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Address     string    `json:"address,omitempty"`
	Category    Category  `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OwnedBy implements OwnedResource.
func (b *Business) OwnedBy() string {
	return b.OwnerID
}
