package letsosdk

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gin-contrib/sse"
	"github.com/vauradkar/letso/internal/pfs"
)

const (
	eventBatch     = "batch"
	maxEventLength = 16 << 20
)

// Browse lists the immediate children of dir.
func (s *LetsoSDK) Browse(ctx context.Context, dir pfs.Path) (result *pfs.Directory, err error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(dir).
		SetSuccessResult(&result).
		Post(apiBrowsePath)

	if err := handleAPIError(resp, err, "browse"); err != nil {
		return nil, err
	}

	return result, nil
}

// Lookup probes a single path. The returned item has nil Stats when nothing exists there.
func (s *LetsoSDK) Lookup(ctx context.Context, path pfs.Path) (result *pfs.SyncItem, err error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(path).
		SetSuccessResult(&result).
		Post(apiBrowseLookup)

	if err := handleAPIError(resp, err, "lookup"); err != nil {
		return nil, err
	}

	return result, nil
}

// ExchangeDeltas requests the full listing below req.Dest and calls fn for every
// batch as it arrives. Returning an error from fn stops the stream. A stream the
// server ends early looks like a complete one.
func (s *LetsoSDK) ExchangeDeltas(ctx context.Context, req *pfs.SyncRequest, fn func([]pfs.SyncItem) error) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/event-stream").
		SetBody(req).
		SetRetryCount(0).
		DisableAutoReadResponse().
		Post(apiExchangeDeltas)

	if err := handleStreamError(resp, err, "exchange deltas"); err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeBatches(resp.Body, fn)
}

// Recurse collects the full listing below dir.
func (s *LetsoSDK) Recurse(ctx context.Context, dir pfs.Path) ([]pfs.SyncItem, error) {
	var items []pfs.SyncItem
	err := s.ExchangeDeltas(ctx, &pfs.SyncRequest{Dest: dir}, func(batch []pfs.SyncItem) error {
		items = append(items, batch...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// decodeBatches reads server sent events from r, one blank line separated event
// at a time, and passes every batch event to fn.
func decodeBatches(r io.Reader, fn func([]pfs.SyncItem) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxEventLength)
	scanner.Split(scanEvents)

	for scanner.Scan() {
		chunk := scanner.Bytes()
		if len(bytes.TrimSpace(chunk)) == 0 {
			continue
		}

		events, err := sse.Decode(io.MultiReader(bytes.NewReader(chunk), strings.NewReader("\n\n")))
		if err != nil {
			return fmt.Errorf("decode event: %w", err)
		}
		for _, event := range events {
			if event.Event != eventBatch {
				continue
			}
			data, ok := event.Data.(string)
			if !ok {
				return fmt.Errorf("decode event: unexpected data %T", event.Data)
			}
			var batch []pfs.SyncItem
			if err := jsonUnmarshal([]byte(data), &batch); err != nil {
				return fmt.Errorf("decode batch: %w", err)
			}
			if err := fn(batch); err != nil {
				return err
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read stream: %w", err)
	}
	return nil
}

// scanEvents is a bufio.SplitFunc yielding one event block per token.
func scanEvents(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.Index(data, []byte("\n\n")); i >= 0 {
		return i + 2, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
