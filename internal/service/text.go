package service

import (
	"html"
	"strings"
)

// Escape 在存入資料庫前跳脫使用者輸入的 HTML
func Escape(s string) string {
	return html.EscapeString(s)
}

// NormalizeTags trims, escapes and dedupes tag names case-insensitively, keeping
// the first spelling and the input order.
func NormalizeTags(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		n = Escape(n)
		key := strings.ToLower(n)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, n)
	}
	return out
}
