package contract

import (
	"strconv"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Variables is the flat dictionary substituted into a template.
type Variables map[string]string

// Keys returns the keys in lexical order.
func (v Variables) Keys() []string {
	keys := maps.Keys(v)
	slices.Sort(keys)
	return keys
}

// Clone returns a copy of v.
func (v Variables) Clone() Variables {
	return maps.Clone(v)
}

// Merge copies every entry of other into v, overwriting existing keys.
func (v Variables) Merge(other Variables) {
	maps.Copy(v, other)
}

// partnerKey builds the n-th partner key, "socio_2_nome".
func partnerKey(n int, field string) string {
	return "socio_" + strconv.Itoa(n) + "_" + field
}
