package attributed

import (
	"fmt"
	"strings"

	"github.com/dshills/textkit/internal/engine/text"
)

// DescribeOptions controls how a String is described for logging.
type DescribeOptions struct {
	// Short lists attribute names only, except for the keys in Described.
	// When false, every attribute is listed with its value.
	Short bool

	// Described lists the keys whose values are included in a short
	// description.
	Described []Key
}

// Describe returns the text of each run followed by its attributes, as in
// "meow{style: ...}purr{}".
func (s *String) Describe(opts DescribeOptions) string {
	described := make(map[Key]bool, len(opts.Described))
	for _, k := range opts.Described {
		described[k] = true
	}

	var b strings.Builder
	for r, attrs := range s.Runs() {
		sub, err := text.Substring(s.text, r)
		if err != nil {
			continue
		}
		b.WriteString(sub)
		b.WriteByte('{')
		for i, k := range attrs.Keys() {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(string(k))
			if !opts.Short || described[k] {
				fmt.Fprintf(&b, ": %v", attrs[k])
			}
		}
		b.WriteByte('}')
	}
	return b.String()
}

// String returns the full description of s.
func (s *String) String() string {
	return s.Describe(DescribeOptions{})
}

// Description defers Describe until it is formatted, so disabled log
// levels never build the string.
type Description struct {
	str  *String
	opts DescribeOptions
}

// LoggingDescription returns a lazily formatted description of s.
func (s *String) LoggingDescription(opts DescribeOptions) Description {
	return Description{str: s, opts: opts}
}

// String implements fmt.Stringer.
func (d Description) String() string {
	return d.str.Describe(d.opts)
}
