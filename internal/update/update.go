package update

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var ErrNetwork = errors.New("update check failed")

// Result of comparing the running version with the published one.
type Result struct {
	Current  string
	Latest   string
	UpToDate bool
}

// Checker fetches a plain-text version string from URL.
type Checker struct {
	URL     string
	Current string
	Timeout time.Duration
	Client  *http.Client
}

func NewChecker(url, current string, timeout time.Duration) *Checker {
	return &Checker{URL: url, Current: current, Timeout: timeout, Client: http.DefaultClient}
}

// Check performs one GET and compares the trimmed body with Current by exact
// string equality. Transport failures and non-2xx replies wrap ErrNetwork.
func (c *Checker) Check(ctx context.Context) (Result, error) {
	res := Result{Current: c.Current}
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return res, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return res, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return res, fmt.Errorf("%w: %s returned %s", ErrNetwork, c.URL, resp.Status)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return res, fmt.Errorf("%w: read body: %v", ErrNetwork, err)
	}

	res.Latest = strings.TrimSpace(string(b))
	res.UpToDate = res.Latest == c.Current
	return res, nil
}

// Message renders r as the text shown to the user.
func (r Result) Message(downloadURL string) (title, body string) {
	if r.UpToDate {
		return "Version check", fmt.Sprintf("You are running the latest version: %s", r.Current)
	}
	body = fmt.Sprintf("Current version: %s\nLatest version: %s", r.Current, r.Latest)
	if downloadURL != "" {
		body += "\n\nDownload the latest release from:\n" + downloadURL
	}
	return "New version available", body
}
