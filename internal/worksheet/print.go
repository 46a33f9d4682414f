package worksheet

import (
	"fmt"
	"html/template"

	"englisharcade/internal/models"
)

// googleFontsHref loads the decorative fonts the editor offers beyond
// the system families.
const googleFontsHref = "https://fonts.googleapis.com/css2?family=Bangers&family=Caveat:wght@400;600&family=Luckiest+Guy&family=Pacifico&family=Permanent+Marker&family=Poppins:wght@300;400;500;600;700&display=swap"

// fontStacks maps the editor's font choices to full CSS font stacks
// with sensible fallbacks for the print document.
var fontStacks = map[string]string{
	"Poppins":         "Poppins, Arial, sans-serif",
	"Caveat":          "Caveat, Arial, sans-serif",
	"Comic Sans MS":   `"Comic Sans MS", Arial, sans-serif`,
	"Times New Roman": `"Times New Roman", Times, serif`,
	"Calibri":         "Calibri, Arial, sans-serif",
	"Verdana":         "Verdana, Arial, sans-serif",
	"Garamond":        "Garamond, serif",
}

// FontStack resolves a font name to its print CSS stack.
func FontStack(font string) string {
	if stack, ok := fontStacks[font]; ok {
		return stack
	}
	if font == "" {
		return "Arial"
	}
	return font
}

// printCSS holds the pagination rules shared by every layout: repeated
// table headers, rows and cards that never split across pages, and
// screen-only chrome hidden.
const printCSS = `
body { margin: 0; padding: 0; background: white; }
.worksheet-preview { width: 100%; max-width: none; margin: 0; padding: 0; background: white; }
.drag-instructions, .print-hide { display: none !important; }
.worksheet-header { page-break-after: avoid; page-break-inside: avoid; margin-bottom: 20px; }
table { page-break-inside: auto; border-collapse: collapse; margin-bottom: 10px; }
thead { display: table-header-group; page-break-after: avoid; }
tr { page-break-inside: avoid; }
img { max-width: 100%; height: auto; page-break-inside: avoid; }
.picture-card-5col, .picture-card-6col { page-break-inside: avoid; break-inside: avoid; }
.quiz-underline { display: block; position: relative !important; margin: 0 auto !important; height: 22px !important; width: 140px !important; }
.quiz-underline::after { content: ''; position: absolute; left: 0; right: 0; bottom: 0; border-bottom: 2px solid #000; display: block; }
.dup-overlay-screen { display: none !important; }
`

// BuildPrintDocument wraps rendered worksheet HTML in a standalone
// printable page: A4 page setup (landscape for the wide card and quiz
// layouts), the chosen font stack, and pagination CSS.
func BuildPrintDocument(body template.HTML, st models.Settings) string {
	size := "A4"
	if st.Layout.Landscape() {
		size = "A4 landscape"
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Worksheet</title>
<link href="%s" rel="stylesheet">
<style>
@page { size: %s; margin: 0.5in; }
body { font-family: %s; }
%s</style>
</head>
<body>%s</body>
</html>`, googleFontsHref, size, FontStack(st.Font), printCSS, body)
}
