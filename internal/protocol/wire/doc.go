// Package wire carries envelopes over byte streams inside frames.
//
// Ownership boundary:
// - envelope <-> frame helpers (message type = kind code)
// - codec selection from frame flags
// - sequential stream Reader/Writer
//
// Envelope semantics live in internal/protocol; byte layout of the fixed
// header lives in internal/protocol/frame.
package wire
