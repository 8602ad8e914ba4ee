package multisig

import (
	"math/big"

	"github.com/iov-one/safelite"
	"github.com/iov-one/safelite/crypto"
	"github.com/iov-one/safelite/errors"
	"github.com/iov-one/safelite/orm"
	"github.com/iov-one/safelite/x/cash"
)

// Wallet is the execution engine of a single wallet instance. It holds no
// mutable state itself: owners, threshold, nonce and pending records live in
// the store passed to every call.
type Wallet struct {
	chainID *big.Int
	address safelite.Address
	router  *Router

	cash     cash.Controller
	registry Registry
	nonce    NonceSequencer
	pending  PendingStore
	sigs     SignatureIndex
	config   orm.Singleton
}

// NewWallet returns the engine of a wallet deployed at address on the chain
// with given id. Outbound calls are routed through router, which may be nil
// when no destination executes code.
func NewWallet(chainID *big.Int, address safelite.Address, router *Router) (*Wallet, error) {
	if err := cash.ValidateAmount(chainID); err != nil {
		return nil, errors.Wrap(errors.ErrInput, "chain id must be a uint256")
	}
	if err := address.Validate(); err != nil {
		return nil, errors.Wrap(err, "wallet address")
	}
	return &Wallet{
		chainID:  new(big.Int).Set(chainID),
		address:  address.Clone(),
		router:   router,
		cash:     cash.NewController(cash.NewBucket()),
		registry: NewRegistry(),
		nonce:    NewNonceSequencer(),
		pending:  NewPendingStore(),
		sigs:     NewSignatureIndex(),
		config:   orm.NewSingleton(walletCfgKey),
	}, nil
}

// LoadWallet returns the engine of the wallet persisted in db.
func LoadWallet(db safelite.ReadOnlyKVStore, router *Router) (*Wallet, error) {
	var cfg WalletConfig
	if err := orm.NewSingleton(walletCfgKey).Load(db, &cfg); err != nil {
		return nil, errors.Wrap(err, "wallet config")
	}
	return NewWallet(new(big.Int).SetBytes(cfg.ChainID), cfg.Address, router)
}

// DeriveAddress returns a wallet address for a genesis that does not
// declare one: the last 20 bytes of
//
//	keccak256(chainID[32] || owner1[20] || ... || ownerN[20] || threshold[32])
func DeriveAddress(chainID *big.Int, owners []safelite.Address, threshold uint64) safelite.Address {
	parts := [][]byte{uint256Word(chainID)}
	for _, o := range owners {
		parts = append(parts, o)
	}
	parts = append(parts, uint64Word(threshold))
	return safelite.Address(crypto.Keccak256(parts...)[12:])
}

// Address returns the address of the wallet.
func (w *Wallet) Address() safelite.Address {
	return w.address.Clone()
}

// ChainID returns the chain id of the replay domain.
func (w *Wallet) ChainID() *big.Int {
	return new(big.Int).Set(w.chainID)
}

// Initialize stores the replay domain and the initial owner set. It can be
// done only once per store.
func (w *Wallet) Initialize(ctx safelite.Context, db safelite.KVStore, owners []safelite.Address, threshold uint64) (*Result, error) {
	var res Result
	err := commit(ctx, db, func(ctx safelite.Context, db safelite.KVStore) (func(), error) {
		switch ok, err := w.config.Exists(db); {
		case err != nil:
			return nil, err
		case ok:
			return nil, errors.Wrap(errors.ErrState, "wallet already initialized")
		}
		cfg := &WalletConfig{ChainID: uint256Word(w.chainID), Address: w.address}
		if err := w.config.Save(db, cfg); err != nil {
			return nil, err
		}
		events, err := w.registry.initialize(db, owners, threshold)
		if err != nil {
			return nil, err
		}
		res.Events = events
		return func() { w.report(ctx, events) }, nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// GetTransactionDigest returns the digest owners sign to authorize c under
// nonce.
func (w *Wallet) GetTransactionDigest(nonce uint64, c Call) (safelite.Hash, error) {
	if err := c.Validate(); err != nil {
		return safelite.Hash{}, err
	}
	return BuildDigest(w.address, w.chainID, nonce, c), nil
}

// Recover returns the signer of digest. No ownership check is done.
func (w *Wallet) Recover(digest safelite.Hash, sig []byte) (safelite.Address, error) {
	return crypto.Recover(digest, sig)
}

// IsOwner returns true if addr is a current owner.
func (w *Wallet) IsOwner(db safelite.ReadOnlyKVStore, addr safelite.Address) (bool, error) {
	return w.registry.IsOwner(db, addr)
}

// GetOwners returns the owners in the order they were added.
func (w *Wallet) GetOwners(db safelite.ReadOnlyKVStore) ([]safelite.Address, error) {
	set, err := w.registry.Load(db)
	if err != nil {
		return nil, err
	}
	return set.Addresses(), nil
}

// GetSignaturesRequired returns the threshold.
func (w *Wallet) GetSignaturesRequired(db safelite.ReadOnlyKVStore) (uint64, error) {
	set, err := w.registry.Load(db)
	if err != nil {
		return 0, err
	}
	return set.SignaturesRequired, nil
}

// GetNonce returns the nonce the next transaction must be signed with.
func (w *Wallet) GetNonce(db safelite.ReadOnlyKVStore) (uint64, error) {
	return w.nonce.Current(db)
}

// GetPendingTransaction returns the pending record for nonce or
// ErrNotFound. SignatureCount is the number of recorded signatures.
func (w *Wallet) GetPendingTransaction(db safelite.ReadOnlyKVStore, nonce uint64) (*PendingTransaction, error) {
	tx, err := w.pending.Get(db, nonce)
	if err != nil {
		return nil, err
	}
	return viewPending(nonce, tx), nil
}

// GetPendingSigners returns the recorded signers of a pending record in
// signing order.
func (w *Wallet) GetPendingSigners(db safelite.ReadOnlyKVStore, nonce uint64) ([]safelite.Address, error) {
	tx, err := w.pending.Get(db, nonce)
	if err != nil {
		return nil, err
	}
	signers := make([]safelite.Address, len(tx.Signers))
	for i, s := range tx.Signers {
		signers[i] = safelite.Address(s).Clone()
	}
	return signers, nil
}

// GetPendingNonces returns the nonces of all pending records.
func (w *Wallet) GetPendingNonces(db safelite.ReadOnlyKVStore) ([]uint64, error) {
	return w.pending.Nonces(db)
}

// Balance returns the funds held by the wallet.
func (w *Wallet) Balance(db safelite.ReadOnlyKVStore) (*big.Int, error) {
	return w.cash.Balance(db, w.address)
}

// Receive moves amount from sender to the wallet. Anyone may deposit.
func (w *Wallet) Receive(ctx safelite.Context, db safelite.KVStore, sender safelite.Address, amount *big.Int) (*Result, error) {
	var res Result
	err := commit(ctx, db, func(ctx safelite.Context, db safelite.KVStore) (func(), error) {
		if amount == nil || amount.Sign() == 0 {
			return nil, errors.Wrap(errors.ErrAmount, "deposit must be positive")
		}
		if err := sender.Validate(); err != nil {
			return nil, errors.Wrap(err, "sender")
		}
		if err := w.cash.MoveCoins(db, sender, w.address, amount); err != nil {
			return nil, err
		}
		balance, err := w.Balance(db)
		if err != nil {
			return nil, err
		}
		res.Events = []Event{Deposit{
			Sender:  sender.Clone(),
			Amount:  new(big.Int).Set(amount),
			Balance: balance,
		}}
		events := res.Events
		return func() { w.report(ctx, events) }, nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (w *Wallet) digest(nonce uint64, c Call) safelite.Hash {
	return BuildDigest(w.address, w.chainID, nonce, c)
}

func (w *Wallet) logEvents(ctx safelite.Context, events []Event) {
	logger := safelite.GetLogger(ctx).With("module", "multisig", "wallet", w.address.String())
	for _, e := range events {
		if _, ok := e.(TransactionSigned); ok {
			logger.Debug("signature recorded", e.KeyVals()...)
			continue
		}
		logger.Info("wallet event", e.KeyVals()...)
	}
}
