// Package imagehost uploads cover images to an external hosted image API
// (Cloudinary-style unsigned upload) and returns the hosted URL.
package imagehost

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

type Client struct {
	http    *resty.Client
	preset  string
	folder  string
	limiter *rate.Limiter
}

func NewClient(baseURL, preset string) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second)

	return &Client{
		http:    httpClient,
		preset:  preset,
		folder:  "books",
		limiter: rate.NewLimiter(rate.Every(time.Second), 2),
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload posts the image as a multipart form and returns its hosted URL.
func (c *Client) Upload(ctx context.Context, filename string, data io.Reader) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	var out uploadResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetFileReader("file", filename, data).
		SetFormData(map[string]string{
			"upload_preset": c.preset,
			"folder":        c.folder,
		}).
		SetResult(&out).
		SetError(&out).
		Post("/image/upload")
	if err != nil {
		return "", fmt.Errorf("image upload: %w", err)
	}
	if resp.IsError() {
		msg := out.Error.Message
		if msg == "" {
			msg = resp.Status()
		}
		return "", fmt.Errorf("image upload: %s", msg)
	}
	if out.SecureURL == "" {
		return "", fmt.Errorf("image upload: response missing secure_url")
	}
	return out.SecureURL, nil
}
