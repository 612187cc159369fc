package state

// User is the authenticated profile held by the container.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Product is a read-only snapshot of a catalog entry fetched from the
// backend. The container caches it but never mutates it.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int    `json:"price_cents"`
	Category    string `json:"category"`
	Brand       string `json:"brand"`
	Image       string `json:"image"`
	Featured    bool   `json:"featured"`
	Bestseller  bool   `json:"bestseller"`
	Sales       int    `json:"sales"`
}

// Review is a customer review entry shown on the storefront.
type Review struct {
	ID      string `json:"id"`
	Author  string `json:"author"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// CartLine is one product entry in the shopping cart. Product fields are
// snapshotted at first add; later adds only bump the quantity.
type CartLine struct {
	ProductID   string `json:"product_id"`
	Name        string `json:"name"`
	PriceCents  int    `json:"price_cents"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Quantity    int    `json:"quantity"`
}

// State is the single source of truth for client-side session and cart
// state. Values are plain data; all mutation goes through the reducer.
type State struct {
	User            *User
	IsAuthenticated bool
	UserRole        string

	Cart []CartLine

	Loading bool
	Err     string

	Products         []Product
	FeaturedProducts []Product
	BestSeller       *Product
	Reviews          []Review
}

// NewState returns the all-empty starting state.
func NewState() State {
	return State{}
}

// CartQuantity returns the quantity for the given product id, or 0 when
// the cart has no such line.
func (s State) CartQuantity(productID string) int {
	for _, line := range s.Cart {
		if line.ProductID == productID {
			return line.Quantity
		}
	}
	return 0
}

// clone deep-copies the state so callers can never alias the store's
// internal slices.
func (s State) clone() State {
	out := s
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	if s.BestSeller != nil {
		p := *s.BestSeller
		out.BestSeller = &p
	}
	out.Cart = append([]CartLine(nil), s.Cart...)
	out.Products = append([]Product(nil), s.Products...)
	out.FeaturedProducts = append([]Product(nil), s.FeaturedProducts...)
	out.Reviews = append([]Review(nil), s.Reviews...)
	return out
}
