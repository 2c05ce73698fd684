// Package transcript models recognized speech and turns it into captions.
//
// The package covers the text half of the pipeline: normalizing the
// recognizer's word stream, packing words into length-bounded caption
// segments, the SubRip interchange codec, and the validation applied when
// an external editor hands back a modified segment list.
package transcript
