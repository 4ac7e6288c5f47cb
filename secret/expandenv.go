package secret

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
)

var (
	// ErrMissingEnv indicates a referenced environment variable is unset.
	ErrMissingEnv = errors.New("secret: missing required environment variables")

	// ErrMalformedReference indicates an unterminated or badly named ${...}.
	ErrMalformedReference = errors.New("secret: malformed reference")
)

// MissingEnvError lists every unset variable referenced by one value.
type MissingEnvError struct {
	Names []string
}

func (e *MissingEnvError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingEnv, strings.Join(e.Names, ", "))
}

// Is matches ErrMissingEnv.
func (e *MissingEnvError) Is(target error) bool {
	return target == ErrMissingEnv
}

// Expander resolves ${VAR} references against Lookup.
type Expander struct {
	Lookup func(name string) (string, bool)
}

// ExpandEnvStrict expands s against the process environment.
//
//   - ${VAR} is replaced by the value of VAR; an unset VAR is an error.
//   - ${VAR:-fallback} uses fallback when VAR is unset or empty.
//   - $$ emits a literal $.
//   - Any other $ is kept as is, so values like "pa$word" survive.
func ExpandEnvStrict(s string) (string, error) {
	return Expander{Lookup: os.LookupEnv}.Expand(s)
}

// Expand expands the references in s. Every missing variable is reported in
// a single *MissingEnvError.
func (x Expander) Expand(s string) (string, error) {
	if !strings.Contains(s, "$") {
		return s, nil
	}

	var (
		b       strings.Builder
		missing []string
	)
	for i := 0; i < len(s); {
		if s[i] != '$' || i+1 == len(s) {
			b.WriteByte(s[i])
			i++
			continue
		}
		switch s[i+1] {
		case '$':
			b.WriteByte('$')
			i += 2
		case '{':
			end := strings.IndexByte(s[i+2:], '}')
			if end < 0 {
				return "", fmt.Errorf("%w: unterminated ${ at offset %d", ErrMalformedReference, i)
			}
			ref := s[i+2 : i+2+end]
			value, ok, err := x.resolve(ref)
			if err != nil {
				return "", err
			}
			if !ok && !slices.Contains(missing, ref) {
				missing = append(missing, ref)
			}
			b.WriteString(value)
			i += end + 3
		default:
			b.WriteByte('$')
			i++
		}
	}

	if len(missing) > 0 {
		slices.Sort(missing)
		return "", &MissingEnvError{Names: missing}
	}
	return b.String(), nil
}

// resolve looks up one reference body, "NAME" or "NAME:-fallback".
func (x Expander) resolve(ref string) (string, bool, error) {
	name, fallback, hasFallback := strings.Cut(ref, ":-")
	if !validName(name) {
		return "", false, fmt.Errorf("%w: ${%s}", ErrMalformedReference, ref)
	}

	value, ok := x.Lookup(name)
	if hasFallback && value == "" {
		return fallback, true, nil
	}
	return value, ok, nil
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', 'A' <= r && r <= 'Z', 'a' <= r && r <= 'z':
		case i > 0 && '0' <= r && r <= '9':
		default:
			return false
		}
	}
	return true
}
