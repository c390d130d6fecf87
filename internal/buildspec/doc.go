// Package buildspec decodes the build specification emitted by the CI
// configuration evaluator.
//
// The document is a JSON object with a "builds" array of job records.
// Mapping-valued fields (environment, packages, downloads) keep the key
// order of the source document, because the emitted matrix echoes them
// back and must be stable across runs.
//
// The evaluator is trusted to produce well-formed records. A record
// without a string "name" is a fatal shape error; decoding stops at the
// first such record.
package buildspec
