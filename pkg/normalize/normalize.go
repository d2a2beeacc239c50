package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Key reduz um nome a uma chave de comparação: minúsculas, sem acentos e sem
// espaços nas pontas. "Laticínios " e "laticinios" produzem a mesma chave —
// é a base da unicidade de categorias e fornecedores por estabelecimento.
func Key(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}
