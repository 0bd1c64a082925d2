package domain

// Product is a catalog entry owned by the backend.
type Product struct {
	ID    ID     `json:"id"`
	Name  string `json:"nombre"`
	Price Money  `json:"precio"`
}

// PlaceholderCatalog is shown when the catalog cannot be fetched.
func PlaceholderCatalog() []Product {
	return []Product{
		{ID: 1, Name: "Product 1", Price: NewMoney(100)},
		{ID: 2, Name: "Product 2", Price: NewMoney(200)},
		{ID: 3, Name: "Product 3", Price: NewMoney(300)},
	}
}
