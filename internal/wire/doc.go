// Package wire defines the request/response messages exchanged between the
// pomidoro daemon and its clients, and their binary codec.
//
// Messages are CBOR maps with integer keys for compactness. Encoding is
// deterministic (canonical key order, definite lengths), so equal values
// always produce equal bytes within one deployment; the exact byte layout
// is not a cross-version compatibility promise. Decoding is slightly
// lenient (duplicate keys resolve to the last value) but every decoded
// message is validated before it reaches a handler, so unknown request
// kinds and shape mismatches are rejected per message.
package wire
