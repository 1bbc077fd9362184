// Package textnorm normaliza texto para búsquedas: minúsculas y sin diacríticos,
// de modo que "Agrícola" y "agricola" coincidan.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold devuelve s en minúsculas, sin tildes y sin espacios en los extremos.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// Contains informa si needle aparece en alguno de los campos, comparando texto plegado.
// Un needle vacío coincide siempre.
func Contains(needle string, fields ...string) bool {
	n := Fold(needle)
	if n == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(Fold(f), n) {
			return true
		}
	}
	return false
}
