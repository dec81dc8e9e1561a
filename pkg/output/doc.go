// Package output renders brander's command results for the terminal.
//
// Styling is semantic: callers name a style from pkg/output/styles and the
// renderer decides whether to apply it. When color is disabled (NO_COLOR,
// a pipe, or an ASCII-only terminal) output is plain text so it stays
// greppable. Markdown reports are rendered with glamour.
package output
