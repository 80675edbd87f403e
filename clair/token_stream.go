package clair

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Masterminds/semver/v3"
)

// TokenStreamVersion is the token-stream format written by EncodeTokenStream.
const TokenStreamVersion = "1.0.0"

const supportedStreamRange = "^1.0.0"

var supportedStreamVersions = func() *semver.Constraints {
	c, err := semver.NewConstraint(supportedStreamRange)
	if err != nil {
		panic(err)
	}
	return c
}()

// TokenStream is the lexer's hand-off: the token sequence plus, optionally,
// the source text it was produced from.
type TokenStream struct {
	Version string
	Source  string
	Tokens  []Token
}

// StreamError reports a malformed token stream. Index is the offending
// token's position in the stream, or -1 for envelope-level problems.
type StreamError struct {
	Index int
	Msg   string
	Err   error
}

func (e *StreamError) Error() string {
	msg := "token stream: " + e.Msg
	if e.Index >= 0 {
		msg = fmt.Sprintf("token stream: token %d: %s", e.Index, e.Msg)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *StreamError) Unwrap() error {
	return e.Err
}

type wireToken struct {
	Type   string          `json:"type"`
	Value  json.RawMessage `json:"value"`
	Line   int             `json:"line"`
	Column int             `json:"column"`
}

type wireStream struct {
	Version string      `json:"version,omitempty"`
	Source  string      `json:"source,omitempty"`
	Tokens  []wireToken `json:"tokens"`
}

// ReadTokenStream decodes a token stream from r. See DecodeTokenStream.
func ReadTokenStream(r io.Reader) (*TokenStream, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &StreamError{Index: -1, Msg: "read failed", Err: err}
	}
	return DecodeTokenStream(data)
}

// DecodeTokenStream accepts either a bare JSON array of tokens or an
// envelope object {"version", "source", "tokens"}. Envelope versions must
// satisfy ^1.0.0; a missing version is read as 1.0.0.
func DecodeTokenStream(data []byte) (*TokenStream, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, &StreamError{Index: -1, Msg: "empty input"}
	}

	var wire wireStream
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &wire.Tokens); err != nil {
			return nil, &StreamError{Index: -1, Msg: "invalid token array", Err: err}
		}
	case '{':
		if err := json.Unmarshal(trimmed, &wire); err != nil {
			return nil, &StreamError{Index: -1, Msg: "invalid envelope", Err: err}
		}
	default:
		return nil, &StreamError{Index: -1, Msg: "expected a JSON array or object"}
	}

	if err := checkStreamVersion(wire.Version); err != nil {
		return nil, err
	}

	stream := &TokenStream{
		Version: wire.Version,
		Source:  wire.Source,
		Tokens:  make([]Token, 0, len(wire.Tokens)),
	}
	if stream.Version == "" {
		stream.Version = TokenStreamVersion
	}
	for i, wt := range wire.Tokens {
		tok, err := wt.token()
		if err != nil {
			return nil, &StreamError{Index: i, Msg: err.Error()}
		}
		stream.Tokens = append(stream.Tokens, tok)
	}
	return stream, nil
}

// DecodeTokens is DecodeTokenStream for callers that only need the tokens.
func DecodeTokens(data []byte) ([]Token, error) {
	stream, err := DecodeTokenStream(data)
	if err != nil {
		return nil, err
	}
	return stream.Tokens, nil
}

func checkStreamVersion(version string) error {
	if version == "" {
		return nil
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return &StreamError{Index: -1, Msg: fmt.Sprintf("invalid version %q", version), Err: err}
	}
	if !supportedStreamVersions.Check(v) {
		return &StreamError{Index: -1, Msg: fmt.Sprintf("unsupported version %s (want %s)", v, supportedStreamRange)}
	}
	return nil
}

func (wt wireToken) token() (Token, error) {
	kind := TokenKind(wt.Type)
	if !kind.valid() {
		return Token{}, fmt.Errorf("unknown token type %q", wt.Type)
	}
	tok := Token{Kind: kind, Pos: Position{Line: wt.Line, Column: wt.Column}}

	raw := bytes.TrimSpace(wt.Value)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return Token{}, fmt.Errorf("%s token has no value", kind)
	}

	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &tok.Value); err != nil {
			return Token{}, fmt.Errorf("invalid string value: %w", err)
		}
	} else {
		var n float64
		if err := json.Unmarshal(raw, &n); err != nil {
			return Token{}, fmt.Errorf("value must be a string or a number")
		}
		tok.Value = string(raw)
		tok.Number = n
	}

	if kind == TokenNumber && raw[0] == '"' {
		n, err := parseNumber(tok.Value)
		if err != nil {
			return Token{}, fmt.Errorf("invalid number %q", tok.Value)
		}
		tok.Number = n
	}
	return tok, nil
}

// EncodeTokenStream writes stream as an envelope that DecodeTokenStream
// reads back.
func EncodeTokenStream(w io.Writer, stream *TokenStream) error {
	wire := wireStream{
		Version: stream.Version,
		Source:  stream.Source,
		Tokens:  make([]wireToken, 0, len(stream.Tokens)),
	}
	if wire.Version == "" {
		wire.Version = TokenStreamVersion
	}
	for _, tok := range stream.Tokens {
		var value []byte
		var err error
		if tok.Kind == TokenNumber {
			value, err = json.Marshal(tok.Number)
		} else {
			value, err = json.Marshal(tok.Value)
		}
		if err != nil {
			return err
		}
		wire.Tokens = append(wire.Tokens, wireToken{
			Type:   string(tok.Kind),
			Value:  value,
			Line:   tok.Pos.Line,
			Column: tok.Pos.Column,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(wire)
}
