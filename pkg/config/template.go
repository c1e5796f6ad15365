package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every method. If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string

	// Methods describes the available methods. If empty, a built-in list
	// is used.
	Methods []MethodInfo
}

// MethodInfo contains method metadata for template generation.
type MethodInfo struct {
	Name        string
	Aliases     []string
	Description string
	Carrier     string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON()
	}

	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Methods used to hide and recover messages. Several may be combined,
# except double-space which must be used alone.
methods:
  - trailing-space

# Document grammar: auto, html, or css
grammar: auto

# Check that the stego document is equivalent to its cover before writing
verify: true

# Backups written before a cover is replaced in place
backups:
  enabled: true
  mode: sidecar

# Output format for extract and capacity: text or json
# format: text

# Number of parallel workers (0 = auto)
# jobs: 0

# File patterns to skip during extraction (glob patterns)
# ignore:
#   - "vendor/**"
#   - "node_modules/**"
`)

	if opts.Full {
		writeMethodDocs(&buf, methodInfos(opts))
	}

	return buf.Bytes(), nil
}

func writeMethodDocs(buf *bytes.Buffer, methods []MethodInfo) {
	buf.WriteString("\n# Available methods\n#\n")
	for _, m := range methods {
		fmt.Fprintf(buf, "#   %s", m.Name)
		if m.Carrier != "" {
			fmt.Fprintf(buf, " (%s)", m.Carrier)
		}
		buf.WriteString("\n")
		fmt.Fprintf(buf, "#     %s\n", wrapComment(m.Description, commentWrapWidth))
		if len(m.Aliases) > 0 {
			fmt.Fprintf(buf, "#     Aliases: %s\n", strings.Join(m.Aliases, ", "))
		}
	}
}

func methodInfos(opts TemplateOptions) []MethodInfo {
	if len(opts.Methods) > 0 {
		return opts.Methods
	}

	return []MethodInfo{
		{Name: "trailing-space", Description: "trailing space at the end of each line"},
		{Name: "double-space", Description: "doubled spaces between words"},
		{Name: "quotemark", Description: "single or double quotes around attribute values"},
		{Name: "equals-spacing", Description: "spaces around the = of attributes"},
		{Name: "colon-spacing", Description: "space after the colon of CSS declarations"},
		{Name: "element-id", Description: "16-bit number appended to the id of each opening tag"},
		{Name: "sorting", Description: "order of tag attributes and rule properties"},
	}
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n#     ")
}

// templateToJSON renders the default configuration as JSON.
func templateToJSON() ([]byte, error) {
	cfg := map[string]any{
		"methods": []string{DefaultMethod},
		"grammar": "auto",
		"verify":  true,
		"backups": map[string]any{
			"enabled": true,
			"mode":    BackupModeSidecar,
		},
		"format": string(FormatText),
		"jobs":   0,
	}

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return jsonBytes, nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# webstego configuration
# See: https://github.com/yaklabco/webstego`
}
