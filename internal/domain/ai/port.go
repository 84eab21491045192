package ai

import "context"

type Client interface {
	Summarize(ctx context.Context, profileJSON string) (string, error)
}
