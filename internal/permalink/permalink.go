// Package permalink builds shareable "run it online" links that carry an
// example's code in a single query parameter.
package permalink

import (
	"net/url"
	"strings"

	"git.home.luguber.info/inful/bookgen/internal/foundation/errors"
)

const (
	DefaultBaseURL = "https://numbat.dev/"
	DefaultParam   = "q"
)

// Encoder appends percent-encoded text to a fixed playground URL.
type Encoder struct {
	BaseURL string
	Param   string
}

// NewEncoder returns an Encoder, falling back to the default playground and parameter.
func NewEncoder(baseURL, param string) Encoder {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if param == "" {
		param = DefaultParam
	}
	return Encoder{BaseURL: baseURL, Param: param}
}

// Encode returns the run link for text. Spaces become '+' and every byte outside
// the unreserved set is percent-encoded, which is what the playground decoder expects.
func (e Encoder) Encode(text string) string {
	sep := "?"
	if strings.Contains(e.BaseURL, "?") {
		sep = "&"
	}
	return e.BaseURL + sep + url.QueryEscape(e.Param) + "=" + url.QueryEscape(text)
}

// Decode extracts and unescapes the code parameter from a run link.
func (e Encoder) Decode(link string) (string, error) {
	u, err := url.Parse(link)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryEncoding, "malformed run link").Fatal().Build()
	}
	values, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryEncoding, "malformed run link query").Fatal().Build()
	}
	code, ok := values[e.Param]
	if !ok || len(code) == 0 {
		return "", errors.EncodingError("run link has no code parameter").WithContext("param", e.Param).Build()
	}
	return code[0], nil
}
