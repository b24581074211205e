package reference

import "strings"

// UnknownAuthor is the display value for entries without a usable author.
const UnknownAuthor = "Unknown"

// FormatAuthors joins author names for display: one name as-is, two joined by
// " and ", three or more as "A, B and C". An empty list yields UnknownAuthor.
func FormatAuthors(names []string) string {
	var kept []string
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			kept = append(kept, n)
		}
	}

	switch len(kept) {
	case 0:
		return UnknownAuthor
	case 1:
		return kept[0]
	case 2:
		return kept[0] + " and " + kept[1]
	default:
		return strings.Join(kept[:len(kept)-1], ", ") + " and " + kept[len(kept)-1]
	}
}

// SplitAuthors splits a display author string back into names, inverting
// FormatAuthors: names are separated by " and " or commas.
func SplitAuthors(display string) []string {
	var names []string
	for _, chunk := range strings.Split(strings.TrimSpace(display), " and ") {
		for _, p := range strings.Split(chunk, ",") {
			if p = strings.TrimSpace(p); p != "" {
				names = append(names, p)
			}
		}
	}
	return names
}
