// file: internal/isbn/isbn.go
// version: 1.0.0
// guid: 4c1f9d2a-7b3e-4e8f-a6d0-52c88e11f94b

package isbn

import "strings"

// Clean trims s and removes separator dashes and spaces, leaving any
// other characters alone. Use it where user input should be passed
// through rather than validated.
func Clean(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "-", "")
	return strings.ReplaceAll(s, " ", "")
}

// Normalize strips everything except digits and the check character X
// (uppercased) from s. Hyphens, spaces and trailing qualifiers such as
// "(br.)" found in library records are removed.
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == 'X' || r == 'x':
			b.WriteRune('X')
		}
	}
	return b.String()
}

// Valid reports whether s is a checksum-valid ISBN-10 or ISBN-13.
// The input is normalized first, so dashed or spaced forms are accepted.
func Valid(s string) bool {
	n := Normalize(s)
	switch len(n) {
	case 10:
		return validISBN10(n)
	case 13:
		return validISBN13(n)
	}
	return false
}

// IsISBN10 reports whether s normalizes to a 10-character ISBN.
func IsISBN10(s string) bool {
	return len(Normalize(s)) == 10
}

// IsISBN13 reports whether s normalizes to a 13-character ISBN.
func IsISBN13(s string) bool {
	return len(Normalize(s)) == 13
}

func validISBN10(n string) bool {
	sum := 0
	for i := 0; i < 10; i++ {
		c := n[i]
		var v int
		switch {
		case c >= '0' && c <= '9':
			v = int(c - '0')
		case c == 'X' && i == 9:
			v = 10
		default:
			return false
		}
		sum += (10 - i) * v
	}
	return sum%11 == 0
}

func validISBN13(n string) bool {
	sum := 0
	for i := 0; i < 12; i++ {
		c := n[i]
		if c < '0' || c > '9' {
			return false
		}
		v := int(c - '0')
		if i%2 == 1 {
			v *= 3
		}
		sum += v
	}
	last := n[12]
	if last < '0' || last > '9' {
		return false
	}
	check := (10 - sum%10) % 10
	return check == int(last-'0')
}
