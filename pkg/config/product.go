package config

import (
	"os"
	"sort"
	"strings"

	"github.com/arthur-debert/brander/pkg/errors"
	"github.com/arthur-debert/brander/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment variables that override brander.toml keys
const EnvPrefix = "BRANDER_"

// Product is the global product identity of the fork
type Product struct {
	Name       string         `koanf:"name" toml:"name"`
	Vendor     string         `koanf:"vendor" toml:"vendor"`
	AppID      string         `koanf:"appId" toml:"appId"`
	BinaryName string         `koanf:"binaryName" toml:"binaryName"`
	Version    ProductVersion `koanf:"version" toml:"version"`

	// Brands maps a profile name to its override record
	Brands map[string]map[string]string `koanf:"brands" toml:"brands,omitempty"`
}

type ProductVersion struct {
	Product        string `koanf:"product" toml:"product"`
	DisplayVersion string `koanf:"displayVersion" toml:"displayVersion"`
}

// canonicalKeys restores the camelCase spelling of keys that arrive
// lowercased from the environment.
var canonicalKeys = map[string]string{
	"appid":               "appId",
	"binaryname":          "binaryName",
	"displayversion":      "displayVersion",
	"brandinggenericname": "brandingGenericName",
	"brandingvendor":      "brandingVendor",
	"backgroundcolor":     "backgroundColor",
	"brandshortername":    "brandShorterName",
	"brandshortname":      "brandShortName",
	"brandfullname":       "brandFullName",
}

// productKeys are the top-level keys the environment may override
var productKeys = map[string]bool{
	"name":       true,
	"vendor":     true,
	"appId":      true,
	"binaryName": true,
	"version":    true,
	"brands":     true,
}

// envKey turns BRANDER_VERSION_DISPLAYVERSION into version.displayVersion.
// Variables that do not map to a product key (BRANDER_ROOT and friends)
// yield "" and are ignored.
func envKey(s string) string {
	parts := strings.Split(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_")
	for i, p := range parts {
		if c, ok := canonicalKeys[p]; ok {
			parts[i] = c
		}
	}
	if !productKeys[parts[0]] {
		return ""
	}
	return strings.Join(parts, ".")
}

const brandsEnvPrefix = "brands_"

// envKeyFor extends envKey with the brand profiles declared in the product
// file. BRANDER_BRANDS_MY_BRAND_BRANDSHORTNAME reaches [brands.my_brand],
// and a profile declared as Beta keeps that spelling. Profiles the file
// does not declare fall back to envKey, which lowercases them and treats
// underscores as nesting.
func envKeyFor(profiles []string) func(string) string {
	sorted := append([]string(nil), profiles...)
	sort.Slice(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	return func(s string) string {
		raw := strings.TrimPrefix(s, EnvPrefix)
		if !strings.HasPrefix(strings.ToLower(raw), brandsEnvPrefix) {
			return envKey(s)
		}

		rest := raw[len(brandsEnvPrefix):]
		for _, profile := range sorted {
			n := len(profile)
			if len(rest) <= n+1 || rest[n] != '_' || !strings.EqualFold(rest[:n], profile) {
				continue
			}
			key := strings.ToLower(rest[n+1:])
			if c, ok := canonicalKeys[key]; ok {
				key = c
			}
			return "brands." + profile + "." + key
		}
		return envKey(s)
	}
}

// LoadProduct reads the product identity from the TOML file at path and
// applies BRANDER_* environment overrides on top.
func LoadProduct(path string) (*Product, error) {
	logger := logging.GetLogger("config")

	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad,
			"product configuration not found at %s", path).
			WithDetail("path", path)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse,
			"failed to parse product configuration %s", path).
			WithDetail("path", path)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKeyFor(k.MapKeys("brands"))), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	var product Product
	if err := unmarshal(k, &product); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse,
			"invalid product configuration %s", path)
	}

	if product.Name == "" {
		return nil, errors.Newf(errors.ErrConfigParse,
			"product configuration %s does not define a name", path).
			WithDetail("path", path)
	}

	logger.Debug().
		Str("path", path).
		Str("name", product.Name).
		Str("vendor", product.Vendor).
		Int("brands", len(product.Brands)).
		Msg("Loaded product configuration")

	return &product, nil
}

// Overrides returns the override record for profile, empty when absent
func (p *Product) Overrides(profile string) map[string]string {
	if o, ok := p.Brands[profile]; ok && o != nil {
		return o
	}
	return map[string]string{}
}

func unmarshal(k *koanf.Koanf, out interface{}) error {
	return k.UnmarshalWithConf("", out, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           out,
			TagName:          "koanf",
			WeaklyTypedInput: true,
		},
	})
}
