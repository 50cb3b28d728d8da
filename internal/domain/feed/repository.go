package feed

import "context"

// Source fetches the records of one feed. Implementations never fail: any
// transport or decode problem is logged and yields an empty slice.
type Source interface {
	Fetch(ctx context.Context, desc Descriptor) []Record
}
