package upstage

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"docpilot/internal/port"
)

const (
	sseDataPrefix = "data:"
	sseDone       = "[DONE]"
	maxEventSize  = 1024 * 1024
)

type streamEvent struct {
	Choices []struct {
		Delta struct {
			Content   string `json:"content"`
			Reasoning string `json:"reasoning"`
		} `json:"delta"`
	} `json:"choices"`
}

// Stream sends a streaming chat request and relays partial content as it
// arrives. The channel is closed after [DONE], an error, or ctx cancellation.
// A failure mid-stream is delivered as a final chunk with Err set.
func (c *Client) Stream(ctx context.Context, req *port.VendorRequest) (<-chan port.StreamChunk, error) {
	start := time.Now()
	resp, err := c.do(ctx, req)
	if err != nil {
		c.observe(ctx, req, start, err)
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		te := statusError(req, resp, body)
		c.observe(ctx, req, start, te)
		return nil, te
	}

	out := make(chan port.StreamChunk)
	go func() {
		defer close(out)
		defer func() { _ = resp.Body.Close() }()

		err := readEvents(ctx, resp.Body, out)
		if err != nil {
			err = &TransportError{Capability: req.Capability, StatusCode: resp.StatusCode, Err: err}
			select {
			case out <- port.StreamChunk{Err: err}:
			case <-ctx.Done():
			}
		}
		c.observe(ctx, req, start, err)
	}()
	return out, nil
}

func readEvents(ctx context.Context, r io.Reader, out chan<- port.StreamChunk) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxEventSize)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, sseDataPrefix) {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, sseDataPrefix))
		if payload == sseDone {
			return nil
		}
		if payload == "" {
			continue
		}

		var ev streamEvent
		if err := json.Unmarshal([]byte(payload), &ev); err != nil {
			return fmt.Errorf("decoding stream event: %w", err)
		}
		chunk := port.StreamChunk{Raw: json.RawMessage(payload)}
		for _, ch := range ev.Choices {
			chunk.Content += ch.Delta.Content
			chunk.Reasoning += ch.Delta.Reasoning
		}

		select {
		case out <- chunk:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading stream: %w", err)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return nil
}
