package op

import (
	"fmt"
	"strings"

	"github.com/flowgraph/rvsdg-go/rtype"
)

// Match maps a bit(n) value to a control(k) alternative via an explicit
// table; values not present in the table select Default.
type Match struct {
	Width      int
	Table      map[int64]int // bit-pattern (as signed int64) -> alternative
	NumAlts    int
	Default    int
}

func (m Match) Kind() Kind                { return KindMatch }
func (m Match) InputTypes() []rtype.Type  { return []rtype.Type{rtype.Bit(m.Width)} }
func (m Match) OutputTypes() []rtype.Type { return []rtype.Type{rtype.Control(m.NumAlts)} }

func (m Match) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "match.bit%d(", m.Width)
	keys := make([]int64, 0, len(m.Table))
	for k := range m.Table {
		keys = append(keys, k)
	}
	sortInt64s(keys)
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d->%d", k, m.Table[k])
	}
	fmt.Fprintf(&b, ", default->%d)", m.Default)
	return b.String()
}

func (m Match) Equal(o Op) bool {
	other, ok := o.(Match)
	if !ok || m.Width != other.Width || m.NumAlts != other.NumAlts || m.Default != other.Default {
		return false
	}
	if len(m.Table) != len(other.Table) {
		return false
	}
	for k, v := range m.Table {
		if ov, ok := other.Table[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

func sortInt64s(s []int64) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
