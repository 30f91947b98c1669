package importer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripAccents elimina diacríticos: "PREÇO" → "PRECO", "aéreo" → "aereo".
func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// foldKey clave de comparación para encabezados: sin acentos, mayúsculas y solo letras/dígitos.
// "PREÇO GUIA", "Preco guia" y "precoGuia" producen la misma clave.
func foldKey(s string) string {
	s = strings.ToUpper(stripAccents(s))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
