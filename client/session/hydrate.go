package session

import (
	"encoding/json"
	"fmt"

	"github.com/kasmetics/storefront/client/state"
)

// Dispatcher is the slice of the state container hydration needs.
type Dispatcher interface {
	Dispatch(action state.Action) (state.State, error)
}

// Persist writes the session pair after a successful login.
func Persist(store Store, token string, user state.User) error {
	profile, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := store.Set(KeyToken, token); err != nil {
		return err
	}
	return store.Set(KeyUser, string(profile))
}

// Clear removes both persisted values.
func Clear(store Store) error {
	return store.Delete(KeyToken, KeyUser)
}

// Token returns the persisted access token, if any.
func Token(store Store) (string, bool, error) {
	return store.Get(KeyToken)
}

// Hydrate restores the session once at startup. A complete, parseable
// pair dispatches the user into the container and reports true. Anything
// else fails closed: partial or corrupt values are deleted, nothing is
// dispatched, and the container stays logged out.
func Hydrate(store Store, container Dispatcher) (bool, error) {
	token, hasToken, err := store.Get(KeyToken)
	if err != nil {
		return false, err
	}
	raw, hasUser, err := store.Get(KeyUser)
	if err != nil {
		return false, err
	}

	if !hasToken || !hasUser || token == "" {
		if hasToken || hasUser {
			if err := Clear(store); err != nil {
				return false, err
			}
		}
		return false, nil
	}

	var user state.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil || user.ID == "" {
		if err := Clear(store); err != nil {
			return false, err
		}
		return false, nil
	}

	if _, err := container.Dispatch(state.SetUser{User: user}); err != nil {
		return false, err
	}
	return true, nil
}
