package state

import "fmt"

// ErrCartRequiresLogin is the message surfaced on the error field when a
// cart mutation is attempted without an authenticated session.
const ErrCartRequiresLogin = "please log in to add items to your cart"

const defaultUserRole = "user"

// Reduce applies one action to the state and returns the next state. It
// is pure: no I/O, no mutation of the input. An action outside the
// closed set returns an error.
func Reduce(s State, action Action) (State, error) {
	switch a := action.(type) {
	case SetLoading:
		s.Loading = a.Loading
		return s, nil

	case SetError:
		s.Err = a.Message
		s.Loading = false
		return s, nil

	case SetUser:
		user := a.User
		if user.Role == "" {
			user.Role = defaultUserRole
		}
		s.User = &user
		s.IsAuthenticated = true
		s.UserRole = user.Role
		s.Err = ""
		return s, nil

	case Logout:
		s.User = nil
		s.IsAuthenticated = false
		s.UserRole = ""
		s.Cart = nil
		return s, nil

	case SetProducts:
		s.Products = append([]Product(nil), a.Products...)
		s.Loading = false
		s.Err = ""
		return s, nil

	case SetFeaturedProducts:
		s.FeaturedProducts = append([]Product(nil), a.Products...)
		s.Loading = false
		s.Err = ""
		return s, nil

	case SetBestSeller:
		if a.Product != nil {
			p := *a.Product
			s.BestSeller = &p
		} else {
			s.BestSeller = nil
		}
		s.Loading = false
		s.Err = ""
		return s, nil

	case SetReviews:
		s.Reviews = append([]Review(nil), a.Reviews...)
		return s, nil

	case AddToCart:
		if !s.IsAuthenticated {
			s.Err = ErrCartRequiresLogin
			return s, nil
		}
		cart := append([]CartLine(nil), s.Cart...)
		for i := range cart {
			if cart[i].ProductID == a.Product.ID {
				cart[i].Quantity++
				s.Cart = cart
				return s, nil
			}
		}
		s.Cart = append(cart, CartLine{
			ProductID:   a.Product.ID,
			Name:        a.Product.Name,
			PriceCents:  a.Product.PriceCents,
			Image:       a.Product.Image,
			Description: a.Product.Description,
			Category:    a.Product.Category,
			Quantity:    1,
		})
		return s, nil

	case UpdateCartQuantity:
		quantity := a.Quantity
		if quantity < 0 {
			quantity = 0
		}
		cart := make([]CartLine, 0, len(s.Cart))
		for _, line := range s.Cart {
			if line.ProductID == a.ProductID {
				line.Quantity = quantity
			}
			if line.Quantity > 0 {
				cart = append(cart, line)
			}
		}
		s.Cart = cart
		return s, nil

	case RemoveFromCart:
		cart := make([]CartLine, 0, len(s.Cart))
		for _, line := range s.Cart {
			if line.ProductID != a.ProductID {
				cart = append(cart, line)
			}
		}
		s.Cart = cart
		return s, nil

	case ClearCart:
		s.Cart = nil
		return s, nil

	default:
		return s, fmt.Errorf("unknown action %T", action)
	}
}
