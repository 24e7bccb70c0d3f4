package importer

import (
	"fmt"
	"strconv"
	"strings"
)

// statementPrefix is matched case-sensitively; the legacy dump never
// varies it.
const statementPrefix = "INSERT INTO `beers` VALUES"

// extractStatements returns the VALUES list of every beers insert
// statement in the dump. The terminating semicolon is located with quote
// tracking so a ';' inside a quoted field does not end the statement.
func extractStatements(dump string) []string {
	var statements []string

	for {
		start := strings.Index(dump, statementPrefix)
		if start < 0 {
			return statements
		}

		rest := dump[start+len(statementPrefix):]
		end := scanToTerminator(rest)
		statements = append(statements, strings.TrimSpace(rest[:end]))

		if end >= len(rest) {
			return statements
		}

		dump = rest[end+1:]
	}
}

func scanToTerminator(s string) int {
	inQuote := false

	for i := 0; i < len(s); i++ {
		switch {
		case inQuote && s[i] == '\\':
			i++
		case inQuote && s[i] == '\'':
			inQuote = false
		case !inQuote && s[i] == '\'':
			inQuote = true
		case !inQuote && s[i] == ';':
			return i
		}
	}

	return len(s)
}

// splitTuples breaks a VALUES list into the bodies of its parenthesized
// row tuples. Quote state and parenthesis nesting are tracked, so a
// literal "),(" inside a quoted field never causes a split. A tuple whose
// quote never closes is cut at the next textual tuple boundary; the cut
// fragment fails later at field parsing instead of swallowing every
// remaining row.
func splitTuples(values string) []string {
	var tuples []string

	pos := 0
	for pos < len(values) {
		c := values[pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == ',' || c == ';' {
			// the terminator can survive in the statement text when a
			// stray quote ran the scan off the end; it is not a row
			pos++

			continue
		}

		if c != '(' {
			// junk between tuples; collect it as a malformed row
			end := strings.IndexByte(values[pos:], '(')
			if end < 0 {
				end = len(values) - pos
			}
			tuples = append(tuples, strings.TrimSpace(values[pos:pos+end]))
			pos += end

			continue
		}

		body, next, ok := scanTuple(values, pos+1)
		if !ok {
			// unterminated quote: resynchronize at the next "),(" so
			// one corrupt row stays one row
			resync := strings.Index(values[pos:], "),(")
			if resync < 0 {
				tail := strings.TrimSpace(values[pos+1:])
				tail = strings.TrimSpace(strings.TrimSuffix(tail, ";"))
				tuples = append(tuples, strings.TrimSuffix(tail, ")"))

				return tuples
			}

			tuples = append(tuples, values[pos+1:pos+resync])
			pos += resync + 2

			continue
		}

		tuples = append(tuples, body)
		pos = next
	}

	return tuples
}

// scanTuple reads from just after an opening parenthesis to its matching
// close. Reports false if the input ends inside a quote or the tuple is
// never closed.
func scanTuple(s string, start int) (body string, next int, ok bool) {
	depth := 1
	inQuote := false

	for i := start; i < len(s); i++ {
		switch {
		case inQuote && s[i] == '\\':
			i++
		case inQuote && s[i] == '\'':
			inQuote = false
		case inQuote:
		case s[i] == '\'':
			inQuote = true
		case s[i] == '(':
			depth++
		case s[i] == ')':
			depth--
			if depth == 0 {
				return s[start:i], i + 1, true
			}
		}
	}

	return "", len(s), false
}

// parseFields tokenizes one tuple body into typed values: quoted strings
// with backslash escapes and '' doubling, bare numbers, and NULL (any
// casing) or an absent value as nil.
func parseFields(tuple string) ([]interface{}, error) {
	var fields []interface{}

	pos := 0
	for {
		pos = skipSpace(tuple, pos)

		if pos >= len(tuple) {
			fields = append(fields, nil)

			return fields, nil
		}

		var (
			value interface{}
			err   error
		)

		if tuple[pos] == '\'' {
			value, pos, err = parseQuoted(tuple, pos+1)
		} else {
			value, pos, err = parseBare(tuple, pos)
		}

		if err != nil {
			return nil, err
		}

		fields = append(fields, value)

		pos = skipSpace(tuple, pos)
		if pos >= len(tuple) {
			return fields, nil
		}

		if tuple[pos] != ',' {
			return nil, fmt.Errorf("unexpected character %q at offset %d", tuple[pos], pos)
		}

		pos++
	}
}

func parseQuoted(s string, start int) (string, int, error) {
	var b strings.Builder

	for i := start; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if i+1 >= len(s) {
				return "", 0, fmt.Errorf("dangling escape at offset %d", i)
			}

			b.WriteByte(unescape(s[i+1]))
			i++
		case '\'':
			if i+1 < len(s) && s[i+1] == '\'' {
				b.WriteByte('\'')
				i++

				continue
			}

			return b.String(), i + 1, nil
		default:
			b.WriteByte(s[i])
		}
	}

	return "", 0, fmt.Errorf("unterminated string starting at offset %d", start-1)
}

func unescape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	default:
		return c
	}
}

func parseBare(s string, start int) (interface{}, int, error) {
	end := start
	for end < len(s) && s[end] != ',' {
		end++
	}

	token := strings.TrimSpace(s[start:end])

	if token == "" || strings.EqualFold(token, "NULL") {
		return nil, end, nil
	}

	number, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid token %q at offset %d", token, start)
	}

	return number, end, nil
}

func skipSpace(s string, pos int) int {
	for pos < len(s) {
		switch s[pos] {
		case ' ', '\t', '\n', '\r':
			pos++
		default:
			return pos
		}
	}

	return pos
}
