package main

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

// Client wraps HTTP calls to the streamdex server. It keeps the session
// cookie from login so admin endpoints work.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new streamdex client.
func NewClient(serverURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	return &Client{
		baseURL: strings.TrimSuffix(serverURL, "/"),
		httpClient: &http.Client{
			Jar: jar,
			// Imports stream for as long as the batch takes.
			Timeout: 0,
		},
	}, nil
}

// Login authenticates and stores the session cookie.
func (c *Client) Login(username, password string) error {
	resp, err := c.httpClient.PostForm(c.baseURL+"/login", url.Values{
		"username": {username},
		"password": {password},
	})
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Failed logins bounce back to the login page.
	if resp.Request.URL.Path == "/login" {
		return fmt.Errorf("login rejected for %q", username)
	}
	return nil
}

// StreamImport posts the import form and copies the progress lines to out
// as they arrive.
func (c *Client) StreamImport(form url.Values, out io.Writer) error {
	resp, err := c.httpClient.PostForm(c.baseURL+"/admin/import/ajax", form)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	start := time.Now()
	scanner := bufio.NewScanner(resp.Body)
	var last string
	for scanner.Scan() {
		last = scanner.Text()
		fmt.Fprintln(out, last)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read stream: %w", err)
	}

	if last == "" {
		fmt.Fprintln(out, "nothing imported")
	} else {
		fmt.Fprintf(out, "done in %s\n", time.Since(start).Round(time.Second))
	}
	return nil
}
