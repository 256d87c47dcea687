package entitlement

// Mode distinguishes one-time purchases from recurring subscriptions.
type Mode string

const (
	ModePayment      Mode = "payment"
	ModeSubscription Mode = "subscription"
)

// Product is one purchasable item. The catalog is fixed and version
// controlled; there is no dynamic catalog management.
type Product struct {
	ID          string `json:"id"`
	PriceID     string `json:"price_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Mode        Mode   `json:"mode"`
}

var Catalog = []Product{
	{
		ID:          "prod_SjnDuBut536HjC",
		PriceID:     "price_1RoJchRnZtvMGvfNpOAo3JfQ",
		Name:        "BBQ",
		Description: "Food supplies for the upcoming BBQ",
		Mode:        ModePayment,
	},
}

func ProductByID(id string) (Product, bool) {
	for _, p := range Catalog {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

func ProductByPriceID(priceID string) (Product, bool) {
	for _, p := range Catalog {
		if p.PriceID == priceID {
			return p, true
		}
	}
	return Product{}, false
}
