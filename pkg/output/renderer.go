package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/brander/pkg/branding"
	"github.com/arthur-debert/brander/pkg/logging"
	"github.com/arthur-debert/brander/pkg/output/styles"
	"github.com/arthur-debert/brander/pkg/types"
	"github.com/charmbracelet/glamour"
)

// Renderer writes styled command results to a writer
type Renderer struct {
	writer  io.Writer
	noColor bool
}

// NewRenderer creates a renderer; with noColor every style is dropped
func NewRenderer(w io.Writer, noColor bool) *Renderer {
	logging.GetLogger("output").Debug().Bool("noColor", noColor).Msg("Creating renderer")
	return &Renderer{writer: w, noColor: noColor}
}

func (r *Renderer) style(name, text string) string {
	if r.noColor {
		return text
	}
	return styles.GetStyle(name).Render(text)
}

func (r *Renderer) println(lines ...string) error {
	_, err := fmt.Fprintln(r.writer, strings.Join(lines, "\n"))
	return err
}

// RenderProfiles lists branding profiles
func (r *Renderer) RenderProfiles(profiles []types.BrandProfile) error {
	if len(profiles) == 0 {
		return r.println(r.style("Muted", "No branding profiles found"))
	}

	lines := []string{r.style("Title", "Branding profiles")}
	for _, p := range profiles {
		lines = append(lines, fmt.Sprintf("  %s  %s", r.style("Profile", p.Name), r.style("Path", p.Path)))
	}
	return r.println(lines...)
}

// RenderApply summarizes an apply run
func (r *Renderer) RenderApply(res *branding.ApplyResult) error {
	verb := "Applied"
	if res.DryRun {
		verb = "Would apply"
	}

	lines := []string{
		fmt.Sprintf("%s branding %s", r.style("Success", verb), r.style("Profile", res.Profile.Name)),
		fmt.Sprintf("  %s %s", r.style("Key", "output:"), r.style("Path", res.OutputDir)),
		fmt.Sprintf("  %s %d", r.style("Key", "icons:"), len(res.Icons)),
		fmt.Sprintf("  %s %d", r.style("Key", "locale files:"), len(res.Locale)),
		fmt.Sprintf("  %s %d", r.style("Key", "synced files:"), len(res.Synced)),
	}
	if len(res.Skipped) > 0 {
		lines = append(lines, fmt.Sprintf("  %s %d", r.style("Key", "kept existing:"), len(res.Skipped)))
		for _, path := range res.Skipped {
			lines = append(lines, "    "+r.style("Skipped", path))
		}
	}
	return r.println(lines...)
}

// RenderMozconfig prints the option lines of a written mozconfig
func (r *Renderer) RenderMozconfig(target, path string, options []string) error {
	lines := []string{
		fmt.Sprintf("%s mozconfig for %s", r.style("Success", "Wrote"), r.style("Profile", target)),
		"  " + r.style("Path", path),
	}
	for _, opt := range options {
		lines = append(lines, "    "+opt)
	}
	return r.println(lines...)
}

// RenderMarkdown renders markdown with glamour, or prints it as is
// without color.
func (r *Renderer) RenderMarkdown(markdown string) error {
	if r.noColor {
		return r.println(strings.TrimRight(markdown, "\n"))
	}

	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return r.println(strings.TrimRight(markdown, "\n"))
	}
	rendered, err := renderer.Render(markdown)
	if err != nil {
		return r.println(strings.TrimRight(markdown, "\n"))
	}
	_, err = io.WriteString(r.writer, rendered)
	return err
}

// RenderWarning prints a warning line
func (r *Renderer) RenderWarning(message string) error {
	return r.println(r.style("Warning", "Warning: ") + message)
}

// RenderError renders an error message with appropriate styling
func (r *Renderer) RenderError(err error) error {
	return r.println(r.style("Error", "Error:") + " " + err.Error())
}

// RenderMessage renders a simple message with optional styling
func (r *Renderer) RenderMessage(style, message string) error {
	return r.println(r.style(style, message))
}
