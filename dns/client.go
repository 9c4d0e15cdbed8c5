/*
 Caretaker, a scheduler for ephemeral game servers.
 Copyright (C) 2025 Yannic Rieger <oss@76k.io>

 This program is free software: you can redistribute it and/or modify
 it under the terms of the GNU Affero General Public License as published by
 the Free Software Foundation, either version 3 of the License, or
 (at your option) any later version.

 This program is distributed in the hope that it will be useful,
 but WITHOUT ANY WARRANTY; without even the implied warranty of
 MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 GNU Affero General Public License for more details.

 You should have received a copy of the GNU Affero General Public License
 along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

// Package dns updates a dynamic dns record through the common
// dyndns2 update protocol.
package dns

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/netip"
	"net/url"
	"strings"
	"time"
)

var (
	ErrUnauthorized    = errors.New("invalid credentials")
	ErrNotYourDomain   = errors.New("domain belongs to another user")
	ErrInvalidHostname = errors.New("invalid hostname")
	ErrRateLimited     = errors.New("rate limited")
)

type Client struct {
	httpClient *http.Client
	updateURL  string
	username   string
	password   string
}

func New(updateURL, username, password string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		updateURL:  updateURL,
		username:   username,
		password:   password,
	}
}

// Update points hostname at ip. "good" and "nochg" are the only
// responses considered a success.
func (c *Client) Update(ctx context.Context, hostname string, ip netip.Addr) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.updateURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)
	req.URL.RawQuery = url.Values{
		"hostname": {hostname},
		"myip":     {ip.String()},
	}.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("update request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return ErrUnauthorized
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	// the response body is a single status word, optionally followed
	// by the address.
	switch word := strings.Fields(strings.TrimSpace(string(body))); firstWord(word) {
	case "good", "nochg":
		return nil
	case "badauth":
		return ErrUnauthorized
	case "!yours":
		return ErrNotYourDomain
	case "notfqdn", "nohost", "numhost":
		return ErrInvalidHostname
	case "abuse":
		return ErrRateLimited
	default:
		return fmt.Errorf("unexpected response %q", strings.TrimSpace(string(body)))
	}
}

func firstWord(words []string) string {
	if len(words) == 0 {
		return ""
	}
	return words[0]
}
