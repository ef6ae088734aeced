package chat

import (
	"context"
	"time"
)

// Image is one generated image as returned by the provider.
type Image struct {
	Data     []byte
	MIMEType string
}

// ImageProvider generates a single image from a text prompt. A *BlockedError
// return means the content policy refused the prompt.
type ImageProvider interface {
	GenerateImage(ctx context.Context, prompt string) (*Image, error)
}

// ImageRequestHandler is a stateless wrapper around the provider's image
// generation: one request per call, no session affinity.
type ImageRequestHandler struct {
	provider ImageProvider
	timeout  time.Duration
}

func NewImageRequestHandler(p ImageProvider, timeout time.Duration) *ImageRequestHandler {
	return &ImageRequestHandler{provider: p, timeout: timeout}
}

// Generate produces an image for the prompt. Failures come back classified:
// *BlockedError for policy refusals, ErrTimeout for deadline misses, and
// *TransportError for everything else, so callers can message each case
// differently.
func (h *ImageRequestHandler) Generate(ctx context.Context, prompt string) (*Image, error) {
	genCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	img, err := h.provider.GenerateImage(genCtx, prompt)
	if err != nil {
		return nil, classify(err)
	}
	return img, nil
}
