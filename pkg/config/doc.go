// Package config handles configuration management for brander.
//
// Two records live here. Product is the global identity loaded once per
// process from brander.toml (with BRANDER_* environment overrides).
// BrandingConfig is the flat per-profile record produced by merging, in
// increasing priority, the product identity, the embedded default brand
// constants and the profile's [brands.<name>] overrides.
package config
