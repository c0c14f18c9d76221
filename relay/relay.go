// Package relay forwards exported spreadsheets to the downstream processing endpoint.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/idtoken"
)

var ErrStatus = errors.New("relay sink returned non-success status")

// Payload is the JSON document posted to the relay sink.
type Payload struct {
	FileID     string `json:"fileId"`
	FileName   string `json:"fileName"`
	CSVContent string `json:"csvContent"`
}

// Encode returns the JSON encoding of the payload, without HTML escaping or a trailing newline.
func (p Payload) Encode() ([]byte, error) {
	var b bytes.Buffer

	encoder := json.NewEncoder(&b)
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(p); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(b.Bytes(), []byte("\n")), nil
}

type Config struct {
	URL string

	// IdentityToken attaches a Google-signed identity token for Audience to every request.
	IdentityToken bool
	Audience      string

	// Timeout is applied to the HTTP client. Zero leaves the client default in place.
	Timeout time.Duration

	// Client overrides the HTTP client, e.g. for tests.
	Client *http.Client
}

type Client struct {
	url    string
	client *http.Client
}

// NewClient builds a relay client. If IdentityToken is set and no HTTP client is supplied the
// client fetches identity tokens from the application default credentials (the metadata
// server when running as a managed workload).
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	url := strings.TrimSpace(cfg.URL)
	if url == "" {
		return nil, errors.New("relay sink URL is required")
	}

	hc := cfg.Client
	if hc == nil {
		if cfg.IdentityToken {
			audience := cfg.Audience
			if audience == "" {
				audience = url
			}

			client, err := idtoken.NewClient(ctx, audience)
			if err != nil {
				return nil, fmt.Errorf("unable to create identity token client for %s (%w)", audience, err)
			}

			hc = client
		} else {
			hc = &http.Client{}
		}

		if cfg.Timeout > 0 {
			hc.Timeout = cfg.Timeout
		}
	}

	return &Client{
		url:    url,
		client: hc,
	}, nil
}

func (c *Client) URL() string {
	return c.url
}

// Relay posts a payload to the sink. Transport errors and non-2xx responses are returned as
// errors, the latter wrapping ErrStatus.
func (c *Client) Relay(ctx context.Context, payload Payload) error {
	body, err := payload.Encode()
	if err != nil {
		return fmt.Errorf("encode relay payload (%w)", err)
	}

	rq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create relay request (%w)", err)
	}

	rq.Header.Set("Content-Type", "application/json")

	response, err := c.client.Do(rq)
	if err != nil {
		return fmt.Errorf("relay request failed (%w)", err)
	}

	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(response.Body, 512))
		if msg := strings.TrimSpace(string(snippet)); msg != "" {
			return fmt.Errorf("%w: %s (%s)", ErrStatus, response.Status, msg)
		}

		return fmt.Errorf("%w: %s", ErrStatus, response.Status)
	}

	io.Copy(io.Discard, response.Body)

	return nil
}
