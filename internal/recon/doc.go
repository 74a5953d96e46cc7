// Package recon owns the structured-value tree that envelopes are
// transcoded to and from.
//
// Ownership boundary:
// - value model (Extant, Absent, Bool, Num, Text, Record)
// - record items (bare values, Attr, Slot)
// - navigation, builder and structural equality
// - text grammar: Parse and canonical Stringify
//
// Values are immutable once built. Record never exposes its backing slice;
// Builder copies on Record().
package recon
