/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called buckets. Each bucket
contains only one type of model, serialized as protobuf. Sequences and
singletons live under their own fixed keys next to the buckets.
*/
package orm
