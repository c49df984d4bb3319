package labels

import (
	"fmt"
	"strings"
)

// Summary renders a batch as "*added* `a`, `b` and *removed* `c`".
func Summary(b Batch) string {
	parts := make([]string, 0, 2)
	if len(b.Added) > 0 {
		parts = append(parts, "*added* "+quoteJoin(b.Added))
	}
	if len(b.Removed) > 0 {
		parts = append(parts, "*removed* "+quoteJoin(b.Removed))
	}
	return strings.Join(parts, " and ")
}

func quoteJoin(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("`%s`", n)
	}
	return strings.Join(quoted, ", ")
}
