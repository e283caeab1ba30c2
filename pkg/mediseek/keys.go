package mediseek

import (
	"sort"
	"strings"
)

// Key is an ordered sequence of cache-key segments. Keys form a prefix
// hierarchy: Detail(id) extends Details() extends All(), and List(filters)
// extends Lists() extends All(), so invalidating a prefix reaches every key
// beneath it.
type Key []string

// String renders the key in its canonical "seg:seg:..." form.
func (k Key) String() string {
	return strings.Join(k, ":")
}

// HasPrefix reports whether k starts with every segment of prefix.
func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix) > len(k) {
		return false
	}

	for i, seg := range prefix {
		if k[i] != seg {
			return false
		}
	}

	return true
}

// Append returns a new key extended with the given segments.
func (k Key) Append(segments ...string) Key {
	out := make(Key, 0, len(k)+len(segments))
	out = append(out, k...)
	out = append(out, segments...)

	return out
}

// Domain is a logical resource family producing hierarchical cache keys.
type Domain string

// Known cache-key domains.
const (
	ClinicsDomain  Domain = "clinics"
	BookingsDomain Domain = "bookings"
	ChatDomain     Domain = "chat"
	UsersDomain    Domain = "users"
)

// All is the root key for the domain; invalidating it reaches every key in
// the domain.
func (d Domain) All() Key {
	return Key{string(d)}
}

// Lists is the common prefix of every list variant.
func (d Domain) Lists() Key {
	return d.All().Append("list")
}

// List keys one list variant by its canonicalized filters.
func (d Domain) List(filters map[string]string) Key {
	if len(filters) == 0 {
		return d.Lists().Append("")
	}

	return d.Lists().Append(CanonicalFilters(filters))
}

// Details is the common prefix of every detail key.
func (d Domain) Details() Key {
	return d.All().Append("detail")
}

// Detail keys a single record.
func (d Domain) Detail(id string) Key {
	return d.Details().Append(id)
}

// CanonicalFilters serializes filter parameters order-independently: sorted
// by name, "name=value" pairs joined with "&". Two semantically equal filter
// maps always produce the same string.
func CanonicalFilters(filters map[string]string) string {
	if len(filters) == 0 {
		return ""
	}

	names := make([]string, 0, len(filters))
	for name := range filters {
		names = append(names, name)
	}

	sort.Strings(names)

	pairs := make([]string, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, name+"="+filters[name])
	}

	return strings.Join(pairs, "&")
}
