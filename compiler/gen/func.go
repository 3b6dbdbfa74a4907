package gen

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// acronyms are kept upper-cased by pascal.
var acronyms = map[string]bool{
	"ACL": true, "API": true, "ASCII": true, "CPU": true, "CSS": true, "DNS": true,
	"EOF": true, "GUID": true, "HTML": true, "HTTP": true, "HTTPS": true, "ID": true,
	"IP": true, "JSON": true, "RPC": true, "SQL": true, "SSH": true, "TCP": true,
	"TLS": true, "TTL": true, "UDP": true, "UI": true, "UID": true, "URI": true,
	"URL": true, "UTF8": true, "UUID": true, "VM": true, "XML": true,
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || unicode.IsSpace(r)
}

// pascal converts a table name to a model name. For example, "user_info"
// becomes "UserInfo" and "user_id" becomes "UserID".
func pascal(s string) string {
	words := strings.FieldsFunc(s, isSeparator)
	title := cases.Title(language.English)
	for i, w := range words {
		if upper := strings.ToUpper(w); acronyms[upper] {
			words[i] = upper
		} else {
			words[i] = title.String(w)
		}
	}
	return strings.Join(words, "")
}

// snake converts a model name to snake case. For example, "UserInfo"
// becomes "user_info" and "HTTPCode" becomes "http_code".
func snake(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			next := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && next) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
