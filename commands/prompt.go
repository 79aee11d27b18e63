package commands

import (
	"path/filepath"
	"strings"
)

// promptInfo holds the values substituted into the prompt.
type promptInfo struct {
	Cwd  string
	User string
	Host string
	Root bool
}

// expandPrompt expands the backslash escapes of a prompt template in one left
// to right pass, text produced by an escape is never expanded again.
//
//	\w  working directory      \W  its last element
//	\u  $USER                  \$  '#' for root, '$' otherwise
//	\h  hostname up to a '.'   \H  full hostname
//	\n \r \t \a \e \\          control characters and backslash
//	\NNN \xHH                  octal and hex bytes
//	\[ \]                      dropped
//
// Anything else, including a trailing backslash, is kept as written.
func expandPrompt(template string, info promptInfo) string {
	var out strings.Builder

	for i := 0; i < len(template); i++ {
		c := template[i]
		if c != '\\' || i+1 == len(template) {
			out.WriteByte(c)
			continue
		}

		i++
		switch esc := template[i]; esc {
		case '\\':
			out.WriteByte('\\')
		case 'n':
			out.WriteByte('\n')
		case 'r':
			out.WriteByte('\r')
		case 't':
			out.WriteByte('\t')
		case 'a':
			out.WriteByte('\a')
		case 'e':
			out.WriteByte(0x1b)
		case '[', ']':
		case 'w':
			out.WriteString(info.Cwd)
		case 'W':
			out.WriteString(filepath.Base(info.Cwd))
		case 'u':
			out.WriteString(info.User)
		case 'h':
			host, _, _ := strings.Cut(info.Host, ".")
			out.WriteString(host)
		case 'H':
			out.WriteString(info.Host)
		case '$':
			if info.Root {
				out.WriteByte('#')
			} else {
				out.WriteByte('$')
			}
		case 'x':
			value, width := parseDigits(template[i+1:], 16, 2)
			if width == 0 {
				out.WriteString(`\x`)
				continue
			}
			out.WriteByte(byte(value))
			i += width
		default:
			value, width := parseDigits(template[i:], 8, 3)
			if width == 0 {
				out.WriteByte('\\')
				out.WriteByte(esc)
				continue
			}
			out.WriteByte(byte(value))
			i += width - 1
		}
	}

	return out.String()
}

// parseDigits reads at most max digits in the base from the start of s.
func parseDigits(s string, base, max int) (value, width int) {
	for width < max && width < len(s) {
		digit := digitValue(s[width])
		if digit < 0 || digit >= base {
			break
		}
		value = value*base + digit
		width++
	}
	return value, width
}

func digitValue(c byte) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'f':
		return int(c-'a') + 10
	case 'A' <= c && c <= 'F':
		return int(c-'A') + 10
	default:
		return -1
	}
}
