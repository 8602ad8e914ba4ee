package cash

import (
	"github.com/iov-one/safelite"
	"github.com/iov-one/safelite/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file. Amount is a
// decimal string, for example "12.5".
type GenesisAccount struct {
	Address safelite.Address `json:"address"`
	Amount  string           `json:"amount"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ safelite.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(ctx safelite.Context, opts safelite.Options, kv safelite.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	ctrl := NewController(NewBucket())
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		amount, err := ParseAmount(acct.Amount)
		if err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		if err := ctrl.IssueCoins(kv, acct.Address, amount); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	safelite.GetLogger(ctx).Info("cash genesis loaded", "accounts", len(accts))
	return nil
}
