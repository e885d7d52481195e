package configdoc

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Document is an ordered set of Kafka configuration properties. Insertion
// order is preserved so that rendering the same document twice produces
// byte-identical output.
type Document struct {
	keys   []string
	values map[string]string
}

func New() *Document {
	return &Document{values: map[string]string{}}
}

func (d *Document) Set(key string, value string) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

func (d *Document) Setf(key string, format string, a ...any) {
	d.Set(key, fmt.Sprintf(format, a...))
}

func (d *Document) Get(key string) (string, bool) {
	value, ok := d.values[key]
	return value, ok
}

func (d *Document) Keys() []string {
	return append([]string{}, d.keys...)
}

func (d *Document) Len() int {
	return len(d.keys)
}

// Properties renders the document in Java properties format, one key=value
// line per property, in insertion order.
func (d *Document) Properties() string {
	var sb strings.Builder
	for _, key := range d.keys {
		sb.WriteString(key)
		sb.WriteString("=")
		sb.WriteString(d.values[key])
		sb.WriteString("\n")
	}
	return sb.String()
}

// Environ renders the document as environment variable assignments using the
// conventional property-to-env mangling (dots to underscores, upper-cased,
// prefixed), e.g. node.id -> KAFKA_NODE_ID. Output is sorted, since env vars
// carry no meaningful order.
func (d *Document) Environ(prefix string) []string {
	environ := lo.Map(d.keys, func(key string, _ int) string {
		name := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		return fmt.Sprintf("%s_%s=%s", prefix, name, d.values[key])
	})
	sort.Strings(environ)
	return environ
}
