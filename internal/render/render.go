// Package render writes processed HTML for the terminal: as raw HTML for
// copying, as a Markdown preview, and as summary tables.
package render

import (
	"fmt"
	"io"
	"strings"

	htm "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/fatih/color"
)

// Format selects how processed HTML is printed.
type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
	FormatBoth     Format = "both"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatHTML, FormatMarkdown, FormatBoth:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown format %q (want html, markdown or both)", s)
	}
}

// ToMarkdown converts HTML content to Markdown format.
func ToMarkdown(htmlString string) (string, error) {
	markdown, err := htm.ConvertString(htmlString)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to markdown: %w", err)
	}
	return markdown, nil
}

// Write prints processed HTML to w in the given format.
func Write(w io.Writer, format Format, processed string) error {
	switch format {
	case FormatHTML:
		_, err := fmt.Fprintln(w, processed)
		return err
	case FormatMarkdown:
		md, err := ToMarkdown(processed)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, md)
		return err
	case FormatBoth:
		md, err := ToMarkdown(processed)
		if err != nil {
			return err
		}
		heading := color.New(color.FgGreen, color.Bold).SprintFunc()
		_, err = fmt.Fprintf(w, "%s\n%s\n\n%s\n%s\n",
			heading("## Processed HTML:"), md,
			heading("## Copy Processed HTML Below:"), processed)
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
