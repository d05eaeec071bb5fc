package providers

import "context"

// Asset is a single generated image. Providers either return a URL to an
// ephemeral asset hosted on their side, or inline bytes in Data.
type Asset struct {
	URL         string
	Data        []byte
	ContentType string
}

// Empty reports whether the provider produced nothing usable.
func (a *Asset) Empty() bool {
	return a == nil || (a.URL == "" && len(a.Data) == 0)
}

// Generator defines the interface for image generation providers.
type Generator interface {
	// Generate synthesizes one image for the given prompt. A single
	// blocking round trip; no retries.
	Generate(ctx context.Context, prompt string) (*Asset, error)
}
