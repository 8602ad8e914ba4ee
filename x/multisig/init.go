package multisig

import (
	"encoding/json"
	"math/big"

	"github.com/iov-one/safelite"
	"github.com/iov-one/safelite/errors"
)

const optKey = "multisig"

// GenesisWallet is used to parse the json from genesis file. When Address
// is omitted it is derived with DeriveAddress.
type GenesisWallet struct {
	ChainID            json.Number        `json:"chain_id"`
	Address            safelite.Address   `json:"address"`
	Owners             []safelite.Address `json:"owners"`
	SignaturesRequired uint64             `json:"signatures_required"`
}

// Initializer fulfils the Initializer interface to load a wallet from the
// genesis file.
type Initializer struct {
	Router *Router
}

var _ safelite.Initializer = Initializer{}

// FromGenesis will parse the wallet definition from genesis and initialize
// it in the database. A genesis without a multisig section is a noop.
func (i Initializer) FromGenesis(ctx safelite.Context, opts safelite.Options, kv safelite.KVStore) error {
	if _, ok := opts[optKey]; !ok {
		return nil
	}
	var g GenesisWallet
	if err := opts.ReadOptions(optKey, &g); err != nil {
		return err
	}
	chainID, ok := new(big.Int).SetString(g.ChainID.String(), 10)
	if !ok {
		return errors.Wrapf(errors.ErrInput, "invalid chain id %q", g.ChainID)
	}
	addr := g.Address
	if len(addr) == 0 {
		addr = DeriveAddress(chainID, g.Owners, g.SignaturesRequired)
	}
	w, err := NewWallet(chainID, addr, i.Router)
	if err != nil {
		return err
	}
	if _, err := w.Initialize(ctx, kv, g.Owners, g.SignaturesRequired); err != nil {
		return errors.Wrap(err, "multisig genesis")
	}
	return nil
}
