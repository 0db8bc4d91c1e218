package domain

import "strings"

// HolderKey canonicalizes a client or company name for matching acertos
// and permutas across transactions: trimmed, lowercased, inner whitespace
// collapsed. "Maria" and "  maria " contribute to the same account.
func HolderKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// SameHolder reports whether two names resolve to the same holder key.
func SameHolder(a, b string) bool {
	return HolderKey(a) == HolderKey(b)
}
