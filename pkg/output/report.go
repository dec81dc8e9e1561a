package output

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/brander/pkg/config"
)

// ConfigReport builds the markdown report of a resolved profile
func ConfigReport(product *config.Product, cfg *config.BrandingConfig) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s: `%s`\n\n", product.Name, cfg.Profile)

	b.WriteString("## Product\n\n")
	b.WriteString("| Key | Value |\n|---|---|\n")
	rows := [][2]string{
		{"name", product.Name},
		{"vendor", product.Vendor},
		{"appId", product.AppID},
		{"binaryName", product.BinaryName},
		{"version", product.Version.Product},
		{"displayVersion", product.Version.DisplayVersion},
	}
	for _, row := range rows {
		fmt.Fprintf(&b, "| %s | %s |\n", row[0], cell(row[1]))
	}

	b.WriteString("\n## Branding\n\n")
	b.WriteString("| Key | Value |\n|---|---|\n")
	ctx := cfg.Context()
	for _, key := range cfg.Keys() {
		fmt.Fprintf(&b, "| %s | %s |\n", key, cell(ctx[key]))
	}

	if overrides := product.Overrides(cfg.Profile); len(overrides) > 0 {
		fmt.Fprintf(&b, "\n%d key(s) overridden by `[brands.%s]`.\n", len(overrides), cfg.Profile)
	} else {
		b.WriteString("\nNo overrides; defaults apply.\n")
	}

	return b.String()
}

func cell(value string) string {
	if value == "" {
		return "_(empty)_"
	}
	return "`" + strings.ReplaceAll(value, "|", "\\|") + "`"
}
