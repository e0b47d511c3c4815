package mediaapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sony/gobreaker"

	"cloudgallery/internal/types"
)

// Client talks to the remote media service over its four-endpoint REST
// surface. Remote calls go through a circuit breaker so a flapping server
// fails fast instead of hanging every operation.
type Client struct {
	baseURL  string
	http     *http.Client
	breaker  *gobreaker.CircuitBreaker
	validate *validator.Validate
}

// NewClient creates a media service client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "MediaAPI",
		MaxRequests: 5,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			slog.Warn("circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	})

	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: timeout},
		breaker:  breaker,
		validate: validator.New(),
	}
}

// List fetches all media records currently known to the server.
func (c *Client) List(ctx context.Context) ([]types.Media, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/media", nil)
	if err != nil {
		return nil, fmt.Errorf("build list request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, newServerError(resp)
	}

	var medias []types.Media
	if err := json.NewDecoder(resp.Body).Decode(&medias); err != nil {
		return nil, fmt.Errorf("decode media list: %w", err)
	}

	return medias, nil
}

// Upload sends one file as a single-shot multipart POST and returns the
// created record. Size validation happens upstream in the upload queue; the
// client itself sends whatever it is given.
func (c *Client) Upload(ctx context.Context, filename string, payload io.Reader) (types.Media, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return types.Media{}, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, payload); err != nil {
		return types.Media{}, fmt.Errorf("read payload for %s: %w", filename, err)
	}
	if err := writer.Close(); err != nil {
		return types.Media{}, fmt.Errorf("finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/media", &buf)
	if err != nil {
		return types.Media{}, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.do(req)
	if err != nil {
		return types.Media{}, fmt.Errorf("upload %s: %w", filename, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return types.Media{}, newServerError(resp)
	}

	var media types.Media
	if err := json.NewDecoder(resp.Body).Decode(&media); err != nil {
		return types.Media{}, fmt.Errorf("decode created media: %w", err)
	}
	if err := c.validate.Struct(media); err != nil {
		return types.Media{}, fmt.Errorf("invalid media record from server: %w", err)
	}

	return media, nil
}

// FetchBinary returns the raw payload of one media record.
func (c *Client) FetchBinary(ctx context.Context, id string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.mediaURL(id), nil)
	if err != nil {
		return nil, fmt.Errorf("build fetch request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch media %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, newServerError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read media %s payload: %w", id, err)
	}

	return data, nil
}

// Delete removes one media record server-side. Deleting an id that is
// already gone surfaces as a ServerError like any other failure.
func (c *Client) Delete(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.mediaURL(id), nil)
	if err != nil {
		return fmt.Errorf("build delete request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return fmt.Errorf("delete media %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newServerError(resp)
	}

	return nil
}

// Download fetches a media payload and saves it under the supplied filename
// in dir. It returns the path of the written file.
func (c *Client) Download(ctx context.Context, id, filename, dir string) (string, error) {
	data, err := c.FetchBinary(ctx, id)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, filepath.Base(filename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("save %s: %w", filename, err)
	}

	return path, nil
}

func (c *Client) mediaURL(id string) string {
	return c.baseURL + "/media/" + url.PathEscape(id)
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.http.Do(req)
	})
	if err != nil {
		return nil, err
	}
	return result.(*http.Response), nil
}

func newServerError(resp *http.Response) *ServerError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &ServerError{
		StatusCode: resp.StatusCode,
		Message:    strings.TrimSpace(string(body)),
	}
}
