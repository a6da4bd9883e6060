// Package version parses and compares the semantic versions reported by
// SIRIUS services and decides whether a service is new enough for this
// client.
//
// Versions have one to three numeric components, an optional "v" prefix and
// optional extras after '-' or '+' ("6.1.0-SNAPSHOT", "6.0.3+build.7").
// Comparisons honour the precision of the shorter version, so "6.1" matches
// any 6.1.x release.
//
//	v, err := version.ParseVersion(info.SiriusVersion)
//	if err := version.CheckServer(*info.SiriusVersion, version.MustParseVersion(version.MinServerVersion)); err != nil {
//	    return err
//	}
package version
