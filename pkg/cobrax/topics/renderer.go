package topics

// Renderer formats topic content for the terminal
type Renderer interface {
	// Render takes raw content and its file extension, e.g. ".md"
	Render(content string, format string) string
}

// PlainRenderer prints topics as written
type PlainRenderer struct{}

// Render returns the content unchanged
func (r *PlainRenderer) Render(content string, format string) string {
	return content
}
