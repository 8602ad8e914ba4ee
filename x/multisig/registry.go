package multisig

import (
	"github.com/iov-one/safelite"
	"github.com/iov-one/safelite/errors"
	"github.com/iov-one/safelite/orm"
)

// Registry holds the owner set and the signature threshold.
//
// Mutations are unexported: they are reachable only through the governance
// path of an authorized call.
type Registry struct {
	store orm.Singleton
}

// NewRegistry returns a registry persisted under the "owners" key.
func NewRegistry() Registry {
	return Registry{store: orm.NewSingleton(ownersKey)}
}

// Load returns the current owner set.
func (r Registry) Load(db safelite.ReadOnlyKVStore) (*OwnerSet, error) {
	var set OwnerSet
	if err := r.store.Load(db, &set); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, errors.Wrap(errors.ErrState, "wallet not initialized")
		}
		return nil, err
	}
	return &set, nil
}

// IsOwner returns true if addr is a current owner.
func (r Registry) IsOwner(db safelite.ReadOnlyKVStore, addr safelite.Address) (bool, error) {
	set, err := r.Load(db)
	if err != nil {
		return false, err
	}
	return set.Has(addr), nil
}

// initialize stores the initial owner set. Owners keep the given order.
func (r Registry) initialize(db safelite.KVStore, owners []safelite.Address, threshold uint64) ([]Event, error) {
	set := &OwnerSet{SignaturesRequired: threshold}
	events := make([]Event, 0, len(owners))
	for i, o := range owners {
		if err := o.Validate(); err != nil {
			return nil, errors.Wrapf(err, "owner %d", i)
		}
		if o.IsZero() {
			return nil, errors.Wrapf(errors.ErrInput, "owner %d is the zero address", i)
		}
		if set.Has(o) {
			return nil, errors.Wrapf(ErrAlreadyOwner, "owner %s", o)
		}
		set.Owners = append(set.Owners, o.Clone())
		events = append(events, OwnerChanged{Owner: o.Clone(), Added: true})
	}
	if err := validateThreshold(threshold, len(set.Owners)); err != nil {
		return nil, err
	}
	if err := r.store.Save(db, set); err != nil {
		return nil, err
	}
	return events, nil
}

func (r Registry) addOwner(db safelite.KVStore, owner safelite.Address, threshold uint64) (Event, error) {
	set, err := r.Load(db)
	if err != nil {
		return nil, err
	}
	if err := owner.Validate(); err != nil {
		return nil, err
	}
	if owner.IsZero() {
		return nil, errors.Wrap(errors.ErrInput, "zero address cannot be an owner")
	}
	if set.Has(owner) {
		return nil, errors.Wrapf(ErrAlreadyOwner, "owner %s", owner)
	}
	if err := validateThreshold(threshold, len(set.Owners)+1); err != nil {
		return nil, err
	}
	set.Owners = append(set.Owners, owner.Clone())
	set.SignaturesRequired = threshold
	if err := r.store.Save(db, set); err != nil {
		return nil, err
	}
	return OwnerChanged{Owner: owner.Clone(), Added: true}, nil
}

func (r Registry) removeOwner(db safelite.KVStore, owner safelite.Address, threshold uint64) (Event, error) {
	set, err := r.Load(db)
	if err != nil {
		return nil, err
	}
	i := set.index(owner)
	if i < 0 {
		return nil, errors.Wrapf(ErrNotOwner, "owner %s", owner)
	}
	if err := validateThreshold(threshold, len(set.Owners)-1); err != nil {
		return nil, err
	}
	set.Owners = append(set.Owners[:i], set.Owners[i+1:]...)
	set.SignaturesRequired = threshold
	if err := r.store.Save(db, set); err != nil {
		return nil, err
	}
	return OwnerChanged{Owner: owner.Clone(), Added: false}, nil
}

func (r Registry) updateThreshold(db safelite.KVStore, threshold uint64) error {
	set, err := r.Load(db)
	if err != nil {
		return err
	}
	if err := validateThreshold(threshold, len(set.Owners)); err != nil {
		return err
	}
	set.SignaturesRequired = threshold
	return r.store.Save(db, set)
}
