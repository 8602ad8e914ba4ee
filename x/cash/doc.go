/*
Package cash keeps the custodial balances of all accounts known to the
wallet host: the wallet itself, its owners and any destination funds were
sent to.

There is no logic in the balances, except that they may not go below zero
nor above the uint256 range. Simple and safe.
*/
package cash
