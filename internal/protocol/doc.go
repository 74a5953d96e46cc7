// Package protocol owns the envelope contract and its transcoding.
//
// Ownership boundary:
// - closed envelope variant set and role membership
// - declarative header table and the named/positional header matcher
// - tag dispatch from recon values to variant decoders
// - facade: Decode, Encode, Parse, Stringify, Marshal, Unmarshal
//
// Decoding accepts named headers (`@link(node:n,lane:l)`), positional
// headers (`@link(n,l)`) and mixes of both, ignores unknown headers, and
// fills optional headers with their defaults. Encoding always produces the
// canonical named form and omits optional headers equal to their default.
package protocol
