package config

import (
	"sort"

	"github.com/arthur-debert/brander/pkg/errors"
	"github.com/arthur-debert/brander/pkg/logging"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
)

// Template context keys
const (
	KeyGenericName = "brandingGenericName"
	KeyVendor      = "brandingVendor"
	KeyBackground  = "backgroundColor"
	KeyShorterName = "brandShorterName"
	KeyShortName   = "brandShortName"
	KeyFullName    = "brandFullName"
)

// BrandingConfig is the merged, immutable branding record for one profile
type BrandingConfig struct {
	Profile string `koanf:"-" toml:"-"`

	BrandingGenericName string `koanf:"brandingGenericName" toml:"brandingGenericName"`
	BrandingVendor      string `koanf:"brandingVendor" toml:"brandingVendor"`
	BackgroundColor     string `koanf:"backgroundColor" toml:"backgroundColor"`
	BrandShorterName    string `koanf:"brandShorterName" toml:"brandShorterName"`
	BrandShortName      string `koanf:"brandShortName" toml:"brandShortName"`
	BrandFullName       string `koanf:"brandFullName" toml:"brandFullName"`

	// values holds every merged key, including overrides with no field
	values map[string]string
}

// ResolveBranding merges identity, default brand constants and the
// profile's overrides, later layers winning. A profile without an
// override record resolves to identity plus defaults.
func ResolveBranding(product *Product, profile string) (*BrandingConfig, error) {
	logger := logging.GetLogger("config")

	if product == nil {
		return nil, errors.New(errors.ErrInvalidInput, "product configuration is required")
	}

	k := koanf.New(".")

	// 1. Identity
	identity := map[string]interface{}{
		KeyGenericName: product.Name,
		KeyVendor:      product.Vendor,
	}
	if err := k.Load(confmap.Provider(identity, "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load product identity")
	}

	// 2. Default brand constants
	if err := k.Load(&rawBytesProvider{bytes: defaultBrandConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load default brand constants")
	}

	// 3. Profile overrides
	overrides := product.Overrides(profile)
	overrideMap := make(map[string]interface{}, len(overrides))
	for key, value := range overrides {
		if c, ok := canonicalKeys[key]; ok {
			key = c
		}
		overrideMap[key] = value
	}
	if err := k.Load(confmap.Provider(overrideMap, ""), nil); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad,
			"failed to load overrides for profile %s", profile)
	}

	cfg := BrandingConfig{Profile: profile}
	if err := unmarshal(k, &cfg); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse,
			"invalid branding configuration for profile %s", profile)
	}

	cfg.values = make(map[string]string, len(k.Keys()))
	for _, key := range k.Keys() {
		cfg.values[key] = k.String(key)
	}
	// Typed fields are authoritative for the recognized keys
	for key, value := range cfg.fields() {
		cfg.values[key] = value
	}

	logger.Debug().
		Str("profile", profile).
		Int("overrides", len(overrides)).
		Str("backgroundColor", cfg.BackgroundColor).
		Msg("Resolved branding configuration")

	return &cfg, nil
}

func (c *BrandingConfig) fields() map[string]string {
	return map[string]string{
		KeyGenericName: c.BrandingGenericName,
		KeyVendor:      c.BrandingVendor,
		KeyBackground:  c.BackgroundColor,
		KeyShorterName: c.BrandShorterName,
		KeyShortName:   c.BrandShortName,
		KeyFullName:    c.BrandFullName,
	}
}

// Context returns a fresh template context holding every merged key
func (c *BrandingConfig) Context() map[string]string {
	ctx := make(map[string]string, len(c.values)+6)
	for key, value := range c.values {
		ctx[key] = value
	}
	for key, value := range c.fields() {
		ctx[key] = value
	}
	return ctx
}

// Keys returns the context keys in sorted order
func (c *BrandingConfig) Keys() []string {
	ctx := c.Context()
	keys := make([]string, 0, len(ctx))
	for key := range ctx {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
