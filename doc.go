/*
Package safelite defines the common types and interfaces shared by the
multi-signature wallet packages: fixed width addresses and hashes, the key
value store abstraction every state transition runs against, context helpers
and the genesis options used to construct a wallet.

The authorization engine itself lives in x/multisig. The custodial balance
ledger it disburses lives in x/cash.

We pass context through context.Context between the entry points and the
extensions. There exist two functions for every XYZ of type T that we want to
support in Context:

	WithXYZ(Context, T) Context
	GetXYZ(Context) (val T, ok bool)
*/
package safelite
