package fontsettings

import (
	"fmt"
	"strings"
)

const (
	cellSelector   = ".imsakiye-table td"
	headerSelector = ".imsakiye-table th"
)

// ColumnSelector targets the data cells of a 0-based column. It is more
// specific than the blanket cell rule, so column rules win without
// !important.
func ColumnSelector(index int) string {
	return fmt.Sprintf(".imsakiye-table tbody td:nth-child(%d)", index+1)
}

func writeRule(b *strings.Builder, selector string, spec StyleSpec) {
	fmt.Fprintf(b, "%s {\n", selector)
	fmt.Fprintf(b, "  font-family: %s;\n", spec.FontFamily)
	fmt.Fprintf(b, "  font-size: %dpx;\n", spec.FontSize)
	fmt.Fprintf(b, "  font-weight: %s;\n", spec.FontWeight)
	fmt.Fprintf(b, "  color: %s;\n", spec.Color)
	b.WriteString("}\n")
}

func writeInheritRule(b *strings.Builder, selector string) {
	fmt.Fprintf(b, "%s strong {\n", selector)
	b.WriteString("  font-family: inherit;\n")
	b.WriteString("  font-size: inherit;\n")
	b.WriteString("  font-weight: inherit;\n")
	b.WriteString("  color: inherit;\n")
	b.WriteString("}\n")
}

// Stylesheet renders the settings as CSS. Output depends only on s.
func Stylesheet(s Settings) string {
	var b strings.Builder
	writeRule(&b, cellSelector, s.Global)
	if s.Header.Enabled {
		writeRule(&b, headerSelector, s.Header.StyleSpec)
	}
	for i, col := range s.Columns {
		if !col.Enabled {
			continue
		}
		sel := ColumnSelector(i)
		writeRule(&b, sel, col.StyleSpec)
		writeInheritRule(&b, sel)
	}
	return b.String()
}
