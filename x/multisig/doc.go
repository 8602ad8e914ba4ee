/*
Package multisig implements a multi-signature custodial wallet.

A fixed replay domain (chain id and wallet address), a set of owners and a
signature threshold are stored at construction. Any action of the wallet,
including changes of its own owner set, is a Call authorized by at least
threshold distinct owner signatures over the call digest.

Two authorization protocols share one execution core:

	ExecuteTransaction  all signatures are submitted at once, ordered by
	                    ascending signer address
	SignTransaction     signatures are collected one at a time in a pending
	                    record keyed by nonce, the call executes once enough
	                    current owners signed

On execution the nonce is advanced and the pending record is marked executed
before the outbound call is dispatched. Every entry point runs inside a
savepoint: any failure, including a failing or panicking callee, leaves the
store untouched.

A call whose destination is the wallet itself is the governance path. Its
payload is decoded as addOwner(address,uint256), removeOwner(address,uint256)
or updateThreshold(uint256) ABI call data; an empty payload is a plain
transfer to self.
*/
package multisig
