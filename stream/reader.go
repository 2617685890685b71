package stream

import (
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
)

// Reader splits an MJPEG stream into JPEG frames
type Reader struct {
	body io.Closer
	mr   *multipart.Reader
}

// NewReader reads parts separated by boundary from r
func NewReader(r io.Reader, boundary string) *Reader {
	rd := &Reader{mr: multipart.NewReader(r, boundary)}
	if c, ok := r.(io.Closer); ok {
		rd.body = c
	}
	return rd
}

// Open requests url and returns a Reader for the response
func Open(ctx context.Context, url string) (*Reader, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	mediaType, params, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") || params["boundary"] == "" {
		resp.Body.Close()
		return nil, fmt.Errorf("not an MJPEG stream: %q", resp.Header.Get("Content-Type"))
	}

	return NewReader(resp.Body, params["boundary"]), nil
}

// Next returns the next frame
func (r *Reader) Next() ([]byte, error) {
	part, err := r.mr.NextPart()
	if err != nil {
		return nil, err
	}
	defer part.Close()

	return io.ReadAll(part)
}

// Close closes the underlying stream
func (r *Reader) Close() error {
	if r.body == nil {
		return nil
	}
	return r.body.Close()
}
