// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - LoadTaxonomyOverrides: YAML rejection category overrides
//   - LoadManifest: YAML campaign manifests
package file
