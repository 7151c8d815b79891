// Package robinhood fetches account holdings from the Robinhood API.
//
// It is the only package that talks to the brokerage. A session is an
// explicit http.Header value created by Login and passed around; nothing in
// here keeps global login state. Records are returned raw, with the API's own
// string numbers: precision rules and validation belong to the normalizer.
package robinhood

import (
	"bufio"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/hoodviz/hoodviz"
)

const sessionFile = "hoodviz-robinhood-session"

func sessionPath() string { return filepath.Join(os.TempDir(), sessionFile) }

// SaveSession persists the authenticated request headers for later runs.
func SaveSession(headers http.Header) error {
	var b strings.Builder
	for key, values := range headers {
		for _, v := range values {
			fmt.Fprintf(&b, "%s: %s\n", key, v)
		}
	}
	if err := os.WriteFile(sessionPath(), []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("failed to save robinhood session: %w", err)
	}
	return nil
}

// LoadHeaders reads the stored session back as request headers.
func LoadHeaders() (http.Header, error) {
	headerData, err := os.ReadFile(sessionPath())
	if err != nil {
		return nil, fmt.Errorf("%w: no session found, run 'hv login' first: %v", hoodviz.ErrAuthentication, err)
	}

	headers := make(http.Header)
	scanner := bufio.NewScanner(strings.NewReader(string(headerData)))
	for scanner.Scan() {
		line := scanner.Text()
		parts := strings.SplitN(line, ":", 2)
		if len(parts) == 2 {
			headers.Add(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]))
		}
	}
	return headers, nil
}

// Logout discards the stored session. The token itself simply expires on the
// brokerage side.
func Logout() error {
	err := os.Remove(sessionPath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
