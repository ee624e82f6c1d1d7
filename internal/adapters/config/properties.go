package config

import (
	"bufio"
	"bytes"
	"strings"

	"go.trai.ch/buildlogic/internal/core/domain"
	"go.trai.ch/zerr"
)

// ParseProperties reads a Java-style properties file: "key=value" or
// "key:value" lines, "#" and "!" comments, and "\" line continuations.
func ParseProperties(data []byte) (map[string]string, error) {
	props := make(map[string]string)
	scanner := bufio.NewScanner(bytes.NewReader(data))

	var logical strings.Builder
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimLeft(scanner.Text(), " \t\f")
		if logical.Len() == 0 && (line == "" || line[0] == '#' || line[0] == '!') {
			continue
		}

		if strings.HasSuffix(line, `\`) && !strings.HasSuffix(line, `\\`) {
			logical.WriteString(strings.TrimSuffix(line, `\`))
			continue
		}
		logical.WriteString(line)

		key, value := splitProperty(logical.String())
		logical.Reset()
		if key == "" {
			return nil, zerr.With(domain.ErrPropertiesParseFailed, "line", lineNo)
		}
		props[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, zerr.Wrap(err, domain.ErrPropertiesParseFailed.Error())
	}
	if logical.Len() > 0 {
		if key, value := splitProperty(logical.String()); key != "" {
			props[key] = value
		}
	}
	return props, nil
}

func splitProperty(line string) (string, string) {
	idx := separatorIndex(line)
	if idx < 0 {
		return strings.TrimSpace(line), ""
	}
	key := strings.TrimSpace(line[:idx])
	value := strings.TrimSpace(line[idx+1:])
	return unescape(key), unescape(value)
}

// separatorIndex returns the index of the first unescaped '=' or ':'.
func separatorIndex(line string) int {
	escaped := false
	for i, r := range line {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '=' || r == ':':
			return i
		}
	}
	return -1
}

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	escaped := false
	for _, r := range s {
		if escaped {
			switch r {
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			default:
				b.WriteRune(r)
			}
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
