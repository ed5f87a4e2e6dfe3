// Package platform holds what the per-platform codecs share.
package platform

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/seu-repo/smartspeaker-gateway/internal/domain"
)

// Header finds name in headers regardless of case.
func Header(headers map[string]string, name string) string {
	if v, ok := headers[name]; ok {
		return v
	}
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

// DecodeJSON unmarshals body into v, wrapping failures in domain.ErrDecode.
// The body must be a JSON object; unknown fields are ignored.
func DecodeJSON(platform string, body []byte, v any) error {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) == 0 {
		return fmt.Errorf("%s: %w: empty body", platform, domain.ErrDecode)
	}
	if trimmed[0] != '{' {
		return fmt.Errorf("%s: %w: body is not a JSON object", platform, domain.ErrDecode)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%s: %w: %v", platform, domain.ErrDecode, err)
	}
	return nil
}
