package llm

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	app_errors "loomchat/backend/internal/errors"
	"loomchat/backend/internal/model"
	"loomchat/backend/internal/stream"
)

// Provider dispatches a rendered request body to a resolved endpoint and
// exposes the response body as a demultiplexed frame sequence.
type Provider interface {
	ChatStream(ctx context.Context, genCtx *model.GenerationContext, body []byte) (<-chan stream.Frame, error)
}

type httpProvider struct {
	client *http.Client
}

// NewHTTPProvider builds the provider client. A zero timeout disables the
// overall request deadline: streaming responses legitimately stay open for
// minutes, so cancellation comes from the caller's context instead.
func NewHTTPProvider(timeout time.Duration) Provider {
	return &httpProvider{
		client: &http.Client{Timeout: timeout},
	}
}

func (p *httpProvider) ChatStream(ctx context.Context, genCtx *model.GenerationContext, body []byte) (<-chan stream.Frame, error) {
	endpoint := strings.TrimRight(genCtx.ProviderBaseURL, "/") + "/" + strings.TrimLeft(genCtx.EndpointPath, "/")
	method := strings.ToUpper(genCtx.EndpointMethod)
	if method == "" {
		method = http.MethodPost
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("could not create provider request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", app_errors.ErrUpstream, err)
	}

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: provider returned status %d: %s", app_errors.ErrUpstream, resp.StatusCode, string(respBody))
	}

	frames := make(chan stream.Frame)
	go func() {
		defer func() {
			_ = resp.Body.Close()
		}()
		stream.Demux(ctx, resp.Body, framingFor(genCtx.Compatibility), frames)
	}()
	return frames, nil
}

// framingFor selects the wire framing for a compatibility family. The
// OpenAI-compatible family streams text/event-stream; anything else is
// treated as newline-delimited JSON.
func framingFor(compatibility model.Compatibility) stream.Framing {
	if compatibility == model.CompatibilityOpenAI {
		return stream.EventStreamFraming{}
	}
	return stream.LineFraming{}
}
