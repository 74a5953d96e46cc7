// Package codec provides named byte encodings for recon values.
//
// Two codecs are registered:
// - "recon": canonical recon text (recon.Stringify / recon.Parse)
// - "cbor": CBOR with Core Deterministic Encoding (RFC 8949 §4.2)
//
// Every codec must round-trip a value to a structurally equal value.
package codec
