package graph

import (
	"context"
	"fmt"
	"strings"
)

// CreateSingleIndex creates an index on a single property of a label. The
// statement is idempotent (CREATE INDEX IF NOT EXISTS).
func CreateSingleIndex(ctx context.Context, sess Session, label, prop string) error {
	q := fmt.Sprintf("CREATE INDEX IF NOT EXISTS FOR (n:%s) ON (n.%s)", label, prop)
	if _, err := sess.Run(ctx, q, nil); err != nil {
		return fmt.Errorf("create index on (%s.%s): %w", label, prop, err)
	}
	return nil
}

// CreateCompositeIndex creates a composite index covering all given
// properties of a label. The statement is idempotent.
func CreateCompositeIndex(ctx context.Context, sess Session, label string, props []string) error {
	parts := make([]string, 0, len(props))
	for _, p := range props {
		parts = append(parts, "n."+p)
	}
	q := fmt.Sprintf("CREATE INDEX IF NOT EXISTS FOR (n:%s) ON (%s)", label, strings.Join(parts, ","))
	if _, err := sess.Run(ctx, q, nil); err != nil {
		return fmt.Errorf("create composite index on %s: %w", label, err)
	}
	return nil
}
