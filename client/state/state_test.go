package state

import (
	"sync"
	"testing"
)

func authenticatedStore(t *testing.T) *Store {
	t.Helper()
	st := NewStore()
	if _, err := st.Dispatch(SetUser{User: User{ID: "u1", Name: "A", Email: "a@example.com"}}); err != nil {
		t.Fatalf("set user: %v", err)
	}
	return st
}

func sampleProduct(id string) Product {
	return Product{
		ID:         id,
		Name:       "Rose Serum " + id,
		PriceCents: 1000,
		Category:   "skincare",
	}
}

func TestSetUserDefaultsRole(t *testing.T) {
	st := NewStore()
	s, err := st.Dispatch(SetUser{User: User{ID: "u1", Name: "A"}})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if !s.IsAuthenticated {
		t.Fatal("expected authenticated")
	}
	if s.UserRole != "user" {
		t.Fatalf("expected role to default to user, got %q", s.UserRole)
	}
	if s.User == nil || s.User.Role != "user" {
		t.Fatalf("profile role not defaulted: %+v", s.User)
	}
}

func TestAuthInvariantHolds(t *testing.T) {
	st := NewStore()
	if s := st.State(); s.IsAuthenticated != (s.User != nil) {
		t.Fatal("invariant broken on empty state")
	}
	s, _ := st.Dispatch(SetUser{User: User{ID: "u1"}})
	if s.IsAuthenticated != (s.User != nil) {
		t.Fatal("invariant broken after login")
	}
	s, _ = st.Dispatch(Logout{})
	if s.IsAuthenticated != (s.User != nil) {
		t.Fatal("invariant broken after logout")
	}
}

func TestAddToCartAggregatesByProductID(t *testing.T) {
	st := authenticatedStore(t)

	for i := 0; i < 3; i++ {
		if _, err := st.Dispatch(AddToCart{Product: sampleProduct("p1")}); err != nil {
			t.Fatalf("add to cart: %v", err)
		}
	}
	st.Dispatch(AddToCart{Product: sampleProduct("p2")})

	s := st.State()
	if len(s.Cart) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(s.Cart))
	}
	if q := s.CartQuantity("p1"); q != 3 {
		t.Fatalf("expected quantity 3 for p1, got %d", q)
	}
	if q := s.CartQuantity("p2"); q != 1 {
		t.Fatalf("expected quantity 1 for p2, got %d", q)
	}
}

func TestAddToCartKeepsFirstSnapshot(t *testing.T) {
	st := authenticatedStore(t)

	first := sampleProduct("p1")
	first.PriceCents = 1000
	st.Dispatch(AddToCart{Product: first})

	repriced := sampleProduct("p1")
	repriced.PriceCents = 9999
	repriced.Name = "Renamed"
	st.Dispatch(AddToCart{Product: repriced})

	s := st.State()
	if len(s.Cart) != 1 {
		t.Fatalf("expected single line, got %d", len(s.Cart))
	}
	if s.Cart[0].PriceCents != 1000 {
		t.Fatalf("first-add price snapshot must win, got %d", s.Cart[0].PriceCents)
	}
	if s.Cart[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", s.Cart[0].Quantity)
	}
}

func TestAddToCartRejectedWhenLoggedOut(t *testing.T) {
	st := NewStore()

	s, err := st.Dispatch(AddToCart{Product: sampleProduct("p1")})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if len(s.Cart) != 0 {
		t.Fatal("cart must not change when unauthenticated")
	}
	if s.Err == "" {
		t.Fatal("expected error message to be set")
	}
}

func TestUpdateCartQuantityClampsAndRemoves(t *testing.T) {
	st := authenticatedStore(t)
	st.Dispatch(AddToCart{Product: sampleProduct("p1")})
	st.Dispatch(AddToCart{Product: sampleProduct("p2")})

	s, _ := st.Dispatch(UpdateCartQuantity{ProductID: "p1", Quantity: 5})
	if q := s.CartQuantity("p1"); q != 5 {
		t.Fatalf("expected quantity 5, got %d", q)
	}

	for _, q := range []int{0, -3} {
		st2 := authenticatedStore(t)
		st2.Dispatch(AddToCart{Product: sampleProduct("p1")})
		s, _ := st2.Dispatch(UpdateCartQuantity{ProductID: "p1", Quantity: q})
		if s.CartQuantity("p1") != 0 {
			t.Fatalf("quantity %d: expected line removed", q)
		}
		for _, line := range s.Cart {
			if line.ProductID == "p1" {
				t.Fatal("zero-quantity line retained")
			}
		}
	}
}

func TestRemoveFromCart(t *testing.T) {
	st := authenticatedStore(t)
	st.Dispatch(AddToCart{Product: sampleProduct("p1")})
	st.Dispatch(AddToCart{Product: sampleProduct("p2")})

	s, _ := st.Dispatch(RemoveFromCart{ProductID: "p1"})
	if len(s.Cart) != 1 || s.Cart[0].ProductID != "p2" {
		t.Fatalf("unexpected cart: %+v", s.Cart)
	}
}

func TestLogoutClearsCartAndSession(t *testing.T) {
	st := authenticatedStore(t)
	st.Dispatch(AddToCart{Product: sampleProduct("p1")})

	s, _ := st.Dispatch(Logout{})
	if len(s.Cart) != 0 {
		t.Fatal("cart must be cleared on logout")
	}
	if s.IsAuthenticated || s.User != nil || s.UserRole != "" {
		t.Fatalf("session not cleared: %+v", s)
	}
}

func TestClearCartIdempotent(t *testing.T) {
	st := authenticatedStore(t)
	st.Dispatch(AddToCart{Product: sampleProduct("p1")})

	once, _ := st.Dispatch(ClearCart{})
	twice, _ := st.Dispatch(ClearCart{})
	if len(once.Cart) != 0 || len(twice.Cart) != 0 {
		t.Fatal("clear cart must empty the cart")
	}
}

func TestSetErrorForcesLoadingOff(t *testing.T) {
	st := NewStore()
	st.Dispatch(SetLoading{Loading: true})

	s, _ := st.Dispatch(SetError{Message: "network down"})
	if s.Loading {
		t.Fatal("loading must be forced off by an error")
	}
	if s.Err != "network down" {
		t.Fatalf("unexpected error message %q", s.Err)
	}
}

func TestSetReviewsReplacesCache(t *testing.T) {
	st := NewStore()
	st.Dispatch(SetReviews{Reviews: []Review{{ID: "r1", Author: "A", Rating: 5}}})

	s, _ := st.Dispatch(SetReviews{Reviews: []Review{
		{ID: "r2", Author: "B", Rating: 4, Comment: "lovely"},
		{ID: "r3", Author: "C", Rating: 3},
	}})
	if len(s.Reviews) != 2 || s.Reviews[0].ID != "r2" {
		t.Fatalf("reviews not replaced: %+v", s.Reviews)
	}
}

func TestStaleProductResponseDropped(t *testing.T) {
	st := NewStore()

	genA := st.BeginFetch(CacheProducts)
	genB := st.BeginFetch(CacheProducts)

	// Newer fetch resolves first.
	s, _ := st.Dispatch(SetProducts{Products: []Product{sampleProduct("new")}, Generation: genB})
	if len(s.Products) != 1 || s.Products[0].ID != "new" {
		t.Fatalf("fresh response not applied: %+v", s.Products)
	}

	// The superseded response lands late and must be dropped.
	s, _ = st.Dispatch(SetProducts{Products: []Product{sampleProduct("old")}, Generation: genA})
	if len(s.Products) != 1 || s.Products[0].ID != "new" {
		t.Fatalf("stale response clobbered fresh data: %+v", s.Products)
	}
}

func TestGenerationZeroAlwaysApplies(t *testing.T) {
	st := NewStore()
	st.BeginFetch(CacheProducts)

	s, _ := st.Dispatch(SetProducts{Products: []Product{sampleProduct("direct")}})
	if len(s.Products) != 1 {
		t.Fatal("ungenerated dispatch must always apply")
	}
}

func TestUnknownActionReturnsError(t *testing.T) {
	st := NewStore()
	if _, err := st.Dispatch(nil); err == nil {
		t.Fatal("expected error for unknown action")
	}
}

func TestStateCopiesDoNotAlias(t *testing.T) {
	st := authenticatedStore(t)
	st.Dispatch(AddToCart{Product: sampleProduct("p1")})
	st.Dispatch(SetReviews{Reviews: []Review{{ID: "r1", Author: "A", Rating: 5}}})

	s := st.State()
	s.Cart[0].Quantity = 99
	s.User.Name = "mutated"
	s.Reviews[0].Rating = 1

	fresh := st.State()
	if fresh.Cart[0].Quantity != 1 {
		t.Fatal("external mutation leaked into store cart")
	}
	if fresh.User.Name != "A" {
		t.Fatal("external mutation leaked into store user")
	}
	if fresh.Reviews[0].Rating != 5 {
		t.Fatal("external mutation leaked into store reviews")
	}
}

func TestConcurrentDispatchSerializes(t *testing.T) {
	st := authenticatedStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			st.Dispatch(AddToCart{Product: sampleProduct("p1")})
		}()
	}
	wg.Wait()

	if q := st.State().CartQuantity("p1"); q != 50 {
		t.Fatalf("expected quantity 50, got %d", q)
	}
}
