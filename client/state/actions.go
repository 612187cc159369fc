package state

// Action is the closed set of state transitions. The marker method keeps
// the set sealed to this package; the reducer's type switch covers every
// variant and fails loudly on anything else.
type Action interface {
	isAction()
}

// SetLoading replaces the loading flag.
type SetLoading struct {
	Loading bool
}

// SetError replaces the error message and forces loading off.
type SetError struct {
	Message string
}

// SetUser marks the session authenticated with the given profile.
type SetUser struct {
	User User
}

// Logout clears the session and the cart.
type Logout struct{}

// SetProducts replaces the catalog cache. Generation is the fetch token
// issued by Store.BeginFetch; zero means unconditional.
type SetProducts struct {
	Products   []Product
	Generation uint64
}

// SetFeaturedProducts replaces the featured cache.
type SetFeaturedProducts struct {
	Products   []Product
	Generation uint64
}

// SetBestSeller replaces the best-seller snapshot.
type SetBestSeller struct {
	Product    *Product
	Generation uint64
}

// SetReviews replaces the review cache.
type SetReviews struct {
	Reviews []Review
}

// AddToCart appends a line for the product, or bumps the quantity when a
// line already exists. Rejected (error field set) when unauthenticated.
type AddToCart struct {
	Product Product
}

// UpdateCartQuantity sets a line's quantity to max(0, Quantity); a line
// reaching zero is removed.
type UpdateCartQuantity struct {
	ProductID string
	Quantity  int
}

// RemoveFromCart drops the matching line unconditionally.
type RemoveFromCart struct {
	ProductID string
}

// ClearCart empties the cart. Used by logout and successful checkout.
type ClearCart struct{}

func (SetLoading) isAction()          {}
func (SetError) isAction()            {}
func (SetUser) isAction()             {}
func (Logout) isAction()              {}
func (SetProducts) isAction()         {}
func (SetFeaturedProducts) isAction() {}
func (SetBestSeller) isAction()       {}
func (SetReviews) isAction()          {}
func (AddToCart) isAction()           {}
func (UpdateCartQuantity) isAction()  {}
func (RemoveFromCart) isAction()      {}
func (ClearCart) isAction()           {}
