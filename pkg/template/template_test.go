package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		ctx      map[string]string
		expected string
	}{
		{
			name:     "simple substitution",
			text:     "Hello {{name}}",
			ctx:      map[string]string{"name": "Acme"},
			expected: "Hello Acme",
		},
		{
			name:     "whitespace inside braces",
			text:     "ac_add_options --with-app-name={{ binaryName }}",
			ctx:      map[string]string{"binaryName": "acme"},
			expected: "ac_add_options --with-app-name=acme",
		},
		{
			name:     "repeated placeholder",
			text:     "{{a}}-{{a}}",
			ctx:      map[string]string{"a": "x"},
			expected: "x-x",
		},
		{
			name:     "unknown placeholder left verbatim",
			text:     "{{brandShortName}} by {{brandingVendor}}",
			ctx:      map[string]string{"brandShortName": "Acme"},
			expected: "Acme by {{brandingVendor}}",
		},
		{
			name:     "overlapping names match whole tokens only",
			text:     "{{brandShortName}} {{brandShorterName}}",
			ctx:      map[string]string{"brandShortName": "Short", "brandShorterName": "Shorter"},
			expected: "Short Shorter",
		},
		{
			name:     "prefix name does not consume longer token",
			text:     "{{brandShorterName}}",
			ctx:      map[string]string{"brandShort": "X"},
			expected: "{{brandShorterName}}",
		},
		{
			name:     "substituted values are not rescanned",
			text:     "{{a}}",
			ctx:      map[string]string{"a": "{{b}}", "b": "nope"},
			expected: "{{b}}",
		},
		{
			name:     "malformed tokens untouched",
			text:     "{{ }} {{1abc}} {name} {{a b}}",
			ctx:      map[string]string{"name": "x", "a": "y"},
			expected: "{{ }} {{1abc}} {name} {{a b}}",
		},
		{
			name:     "empty value",
			text:     "[{{a}}]",
			ctx:      map[string]string{"a": ""},
			expected: "[]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Render(tt.text, tt.ctx))
		})
	}
}

func TestRender_EmptyContextIsIdentity(t *testing.T) {
	texts := []string{
		"",
		"plain text",
		"{{name}} and {{ other }}",
		"export MOZ_APP_VENDOR={{vendor}}\n",
	}
	for _, text := range texts {
		assert.Equal(t, text, Render(text, nil))
		assert.Equal(t, text, Render(text, map[string]string{}))
	}
}

func TestRender_StagedRendering(t *testing.T) {
	text := "{{name}} / {{vendor}}"
	stage1 := Render(text, map[string]string{"name": "Acme"})
	assert.Equal(t, "Acme / {{vendor}}", stage1)

	stage2 := Render(stage1, map[string]string{"vendor": "Acme Corp"})
	assert.Equal(t, "Acme / Acme Corp", stage2)
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, []string{"name", "vendor"}, Placeholders("{{name}} {{ vendor }} {{name}}"))
	assert.Nil(t, Placeholders("nothing here"))
}

func TestUnresolved(t *testing.T) {
	missing := Unresolved("{{a}} {{b}} {{c}}", map[string]string{"b": "1"})
	assert.Equal(t, []string{"a", "c"}, missing)
	assert.Nil(t, Unresolved("{{a}}", map[string]string{"a": "1"}))
}
