package cash

import (
	"math/big"

	"github.com/iov-one/safelite"
	"github.com/iov-one/safelite/errors"
	"github.com/iov-one/safelite/orm"
)

// Controller is the functionality needed by the wallet to hold and
// disburse funds.
type Controller interface {
	Balance(db safelite.ReadOnlyKVStore, addr safelite.Address) (*big.Int, error)
	MoveCoins(db safelite.KVStore, src, dest safelite.Address, amount *big.Int) error
	IssueCoins(db safelite.KVStore, dest safelite.Address, amount *big.Int) error
}

// BaseController is a simple implementation of Controller backed by a
// balance bucket.
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller using given bucket.
func NewController(bucket orm.ModelBucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the amount held by given account. Unknown accounts hold
// nothing.
func (c BaseController) Balance(db safelite.ReadOnlyKVStore, addr safelite.Address) (*big.Int, error) {
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	var b Balance
	switch err := c.bucket.One(db, addr, &b); {
	case err == nil:
		return b.Value(), nil
	case errors.ErrNotFound.Is(err):
		return new(big.Int), nil
	default:
		return nil, errors.Wrap(err, "cannot load balance")
	}
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't have sufficient coins, it fails. Moving a zero amount is
// a noop.
func (c BaseController) MoveCoins(db safelite.KVStore, src, dest safelite.Address, amount *big.Int) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	have, err := c.Balance(db, src)
	if err != nil {
		return errors.Wrap(err, "source")
	}
	if have.Cmp(amount) < 0 {
		return errors.Wrapf(errors.ErrInsufficientAmount, "balance %s, need %s",
			FormatAmount(have), FormatAmount(amount))
	}
	if amount.Sign() == 0 || src.Equals(dest) {
		return nil
	}

	recv, err := c.Balance(db, dest)
	if err != nil {
		return err
	}
	recv.Add(recv, amount)
	if recv.Cmp(MaxAmount) > 0 {
		return errors.Wrap(errors.ErrOverflow, "recipient balance")
	}

	if err := c.bucket.Put(db, src, NewBalance(have.Sub(have, amount))); err != nil {
		return err
	}
	return c.bucket.Put(db, dest, NewBalance(recv))
}

// IssueCoins adds the given amount to the destination account. Fails if
// it overflows the balance.
func (c BaseController) IssueCoins(db safelite.KVStore, dest safelite.Address, amount *big.Int) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	have, err := c.Balance(db, dest)
	if err != nil {
		return err
	}
	have.Add(have, amount)
	if have.Cmp(MaxAmount) > 0 {
		return errors.Wrap(errors.ErrOverflow, "balance")
	}
	return c.bucket.Put(db, dest, NewBalance(have))
}
