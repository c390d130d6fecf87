// Package matrix turns a decoded build specification into a CI job matrix.
//
// A job is kept only when all of these hold, checked in order:
//   - it targets tier1, tier2 or tier3
//   - its name contains "gate" and every extra substring of the profile
//   - its capabilities resolve to a runner in Platforms
//   - the runner is allowed by the profile
//   - the normalized descriptor does not mention "graal-enterprise"
//
// Package keys are classified by an ordered rule table (see
// ClassifyPackage). The two shipped variants of the extractor differ only
// in their Profile; see BuiltinProfiles.
package matrix
