/*
Package crypto implements the cryptographic primitives used to authorize
wallet transactions: Keccak-256 hashing, secp256k1 keys, personal message
prefixing and public key recovery from 65 byte recoverable signatures.

Signatures are compatible with widely deployed off-chain signer tooling. A
signer hashes the 32 byte digest with the personal message prefix and signs
the result, producing R || S || V with V being 27 or 28.
*/
package crypto
