/*
Copyright The Wharf Authors.
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package http

import (
	"crypto/md5"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
)

// digestTransport answers HTTP digest access authentication challenges.
// Reference: https://datatracker.ietf.org/doc/html/rfc7616
type digestTransport struct {
	base     http.RoundTripper
	username string
	password string
}

// RoundTrip executes req, answering a digest challenge with a second request
// carrying the computed response. The original response is returned untouched
// when the challenge cannot be answered.
func (t *digestTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}

	challenge, ok := parseChallenge(resp.Header.Get("WWW-Authenticate"))
	if !ok {
		return resp, nil
	}
	retried, ok := rewind(req)
	if !ok {
		return resp, nil
	}
	authorization, err := challenge.authorize(t.username, t.password, retried.Method, retried.URL.RequestURI())
	if err != nil {
		return resp, nil
	}

	if err := resp.Body.Close(); err != nil {
		return nil, err
	}
	retried.Header.Set("Authorization", authorization)
	return t.base.RoundTrip(retried)
}

// rewind clones req with a replayable body. It reports false if the body
// cannot be replayed.
func rewind(req *http.Request) (*http.Request, bool) {
	clone := req.Clone(req.Context())
	if req.Body == nil {
		return clone, true
	}
	if req.GetBody == nil {
		return nil, false
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, false
	}
	clone.Body = body
	return clone, true
}

// digestChallenge holds the parameters of a digest challenge.
type digestChallenge struct {
	realm     string
	nonce     string
	opaque    string
	algorithm string
	qop       []string
}

// parseChallenge extracts the digest challenge from a WWW-Authenticate
// header value. It reports false if header carries no digest challenge.
func parseChallenge(header string) (*digestChallenge, bool) {
	const scheme = "Digest "
	if len(header) < len(scheme) || !strings.EqualFold(header[:len(scheme)], scheme) {
		return nil, false
	}
	c := &digestChallenge{
		algorithm: "MD5",
	}
	for _, param := range splitParams(header[len(scheme):]) {
		key, value, ok := strings.Cut(param, "=")
		if !ok {
			continue
		}
		value = strings.Trim(strings.TrimSpace(value), `"`)
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "realm":
			c.realm = value
		case "nonce":
			c.nonce = value
		case "opaque":
			c.opaque = value
		case "algorithm":
			c.algorithm = value
		case "qop":
			for _, qop := range strings.Split(value, ",") {
				c.qop = append(c.qop, strings.TrimSpace(qop))
			}
		}
	}
	if c.nonce == "" {
		return nil, false
	}
	return c, true
}

// splitParams splits comma separated auth params, keeping quoted sections
// intact.
func splitParams(s string) []string {
	var params []string
	start := 0
	quoted := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			quoted = !quoted
		case ',':
			if !quoted {
				params = append(params, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	return append(params, strings.TrimSpace(s[start:]))
}

// authorize computes the Authorization header value answering the challenge.
func (c *digestChallenge) authorize(username, password, method, uri string) (string, error) {
	var h func(string) string
	switch strings.ToUpper(c.algorithm) {
	case "MD5":
		h = func(s string) string {
			sum := md5.Sum([]byte(s))
			return hex.EncodeToString(sum[:])
		}
	case "SHA-256":
		h = func(s string) string {
			sum := sha256.Sum256([]byte(s))
			return hex.EncodeToString(sum[:])
		}
	default:
		return "", fmt.Errorf("unsupported digest algorithm %q", c.algorithm)
	}

	ha1 := h(username + ":" + c.realm + ":" + password)
	ha2 := h(method + ":" + uri)

	fields := []string{
		fmt.Sprintf("username=%q", username),
		fmt.Sprintf("realm=%q", c.realm),
		fmt.Sprintf("nonce=%q", c.nonce),
		fmt.Sprintf("uri=%q", uri),
	}
	if c.supportsQOP("auth") {
		cnonce, err := newCNonce()
		if err != nil {
			return "", err
		}
		const nonceCount = "00000001"
		response := h(ha1 + ":" + c.nonce + ":" + nonceCount + ":" + cnonce + ":auth:" + ha2)
		fields = append(fields,
			"qop=auth",
			"nc="+nonceCount,
			fmt.Sprintf("cnonce=%q", cnonce),
			fmt.Sprintf("response=%q", response),
		)
	} else {
		response := h(ha1 + ":" + c.nonce + ":" + ha2)
		fields = append(fields, fmt.Sprintf("response=%q", response))
	}
	fields = append(fields, "algorithm="+c.algorithm)
	if c.opaque != "" {
		fields = append(fields, fmt.Sprintf("opaque=%q", c.opaque))
	}
	return "Digest " + strings.Join(fields, ", "), nil
}

// supportsQOP reports whether the challenge offers the given quality of
// protection.
func (c *digestChallenge) supportsQOP(qop string) bool {
	for _, q := range c.qop {
		if q == qop {
			return true
		}
	}
	return false
}

// newCNonce generates the client nonce.
func newCNonce() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
