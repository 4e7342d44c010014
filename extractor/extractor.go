package extractor

import "context"

type Extractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}
