// In file: internal/swaig/swaig_test.go
package swaig

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedPrompter struct {
	answers map[string]string
	asked   []string
}

func (s *scriptedPrompter) Prompt(name string, _ Property, _ bool) (string, error) {
	s.asked = append(s.asked, name)
	return s.answers[name], nil
}

func searchSignature() Signature {
	return Signature{
		Function: "search_movie",
		Purpose:  "Search for movies by title",
		Argument: ArgumentSchema{
			Type: ArgumentTypeObject,
			Properties: map[string]Property{
				"query":    {Type: "string", Description: "Title to search for"},
				"year":     {Type: "integer"},
				"adult":    {Type: "boolean"},
				"language": {Type: "string"},
			},
			Required: []string{"query"},
		},
	}
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		name string
		kind ArgKind
		raw  string
		want any
	}{
		{"string passthrough", KindString, "Inception", "Inception"},
		{"integer", KindInteger, "2010", 2010},
		{"integer with spaces", KindInteger, " 42 ", 42},
		{"negative integer", KindInteger, "-7", -7},
		{"bool True", KindBoolean, "True", true},
		{"bool 1", KindBoolean, "1", true},
		{"bool yes", KindBoolean, "yes", true},
		{"bool no", KindBoolean, "no", false},
		{"bool garbage", KindBoolean, "maybe", false},
		{"bool empty", KindBoolean, "", false},
		{"bool padded yes", KindBoolean, " yes ", false},
		{"bool padded TRUE", KindBoolean, "TRUE\t", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coerce(tt.kind, tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerceIntegerRejectsMalformedInput(t *testing.T) {
	for _, raw := range []string{"abc", "", "12.5", "1e3"} {
		_, err := Coerce(KindInteger, raw)
		var ce *CoercionError
		require.ErrorAs(t, err, &ce, "input %q", raw)
		assert.Equal(t, KindInteger, ce.Kind)
		assert.Equal(t, raw, ce.Input)
	}
}

func TestParseKind(t *testing.T) {
	assert.Equal(t, KindInteger, ParseKind("integer"))
	assert.Equal(t, KindBoolean, ParseKind("Boolean"))
	assert.Equal(t, KindString, ParseKind("string"))
	assert.Equal(t, KindString, ParseKind("number"))
	assert.Equal(t, KindString, ParseKind(""))
}

func TestCollectArguments(t *testing.T) {
	sig := searchSignature()

	t.Run("blank optionals are omitted", func(t *testing.T) {
		p := &scriptedPrompter{answers: map[string]string{"query": "Inception", "year": ""}}
		args, err := CollectArguments(&sig, p)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"query": "Inception"}, args)
		assert.Equal(t, []string{"adult", "language", "query", "year"}, p.asked)
	})

	t.Run("values are typed", func(t *testing.T) {
		p := &scriptedPrompter{answers: map[string]string{"query": "Heat", "year": "1995", "adult": "yes"}}
		args, err := CollectArguments(&sig, p)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"query": "Heat", "year": 1995, "adult": true}, args)
	})

	t.Run("malformed integer fails", func(t *testing.T) {
		p := &scriptedPrompter{answers: map[string]string{"query": "Heat", "year": "abc"}}
		_, err := CollectArguments(&sig, p)
		var ce *CoercionError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "year", ce.Argument)
	})

	t.Run("blank required integer fails", func(t *testing.T) {
		idSig := Signature{
			Function: "get_movie_details",
			Argument: ArgumentSchema{
				Type:       ArgumentTypeObject,
				Properties: map[string]Property{"movie_id": {Type: "integer"}},
				Required:   []string{"movie_id"},
			},
		}
		_, err := CollectArguments(&idSig, &scriptedPrompter{})
		var ce *CoercionError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "movie_id", ce.Argument)
	})
}

func TestLinePrompter(t *testing.T) {
	in := strings.NewReader("Inception\r\n\n")
	var out bytes.Buffer
	p := NewLinePrompter(in, &out)

	v, err := p.Prompt("query", Property{Type: "string", Description: "Title"}, true)
	require.NoError(t, err)
	assert.Equal(t, "Inception", v)
	assert.Equal(t, "query (string, required) - Title: ", out.String())

	out.Reset()
	v, err = p.Prompt("year", Property{Type: "integer"}, false)
	require.NoError(t, err)
	assert.Empty(t, v)
	assert.Equal(t, "year (integer, optional): ", out.String())

	// Input is exhausted from here on.
	v, err = p.Prompt("page", Property{}, false)
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestSelectSignature(t *testing.T) {
	sigs := []Signature{{Function: "a"}, searchSignature()}

	sig, err := SelectSignature(sigs, "search_movie")
	require.NoError(t, err)
	assert.Equal(t, "search_movie", sig.Function)

	_, err = SelectSignature(sigs, "missing")
	assert.ErrorIs(t, err, ErrFunctionNotFound)

	_, err = SelectSignature(nil, "search_movie")
	assert.ErrorIs(t, err, ErrFunctionNotFound)
}

func TestSignatureRequestWireFormat(t *testing.T) {
	data, err := json.Marshal(NewSignatureRequest([]string{"search_movie"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"functions": ["search_movie"],
		"action": "get_signature",
		"version": "2.0",
		"content_disposition": "function signature request",
		"content_type": "text/swaig"
	}`, string(data))

	data, err = json.Marshal(NewSignatureRequest(nil))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"functions":[]`)
}

func TestMessageDecode(t *testing.T) {
	var m Message
	require.NoError(t, json.Unmarshal([]byte(`{"functions":[],"action":"get_signature"}`), &m))
	assert.True(t, m.IsSignatureRequest())

	m = Message{}
	require.NoError(t, json.Unmarshal([]byte(`{"function":"search_movie","argument":{"parsed":[{"query":"Matrix"}]}}`), &m))
	assert.False(t, m.IsSignatureRequest())
	assert.Equal(t, "search_movie", m.Function)
	assert.Equal(t, map[string]any{"query": "Matrix"}, m.Argument.Args())

	assert.Empty(t, InvokeArgument{}.Args())
}

func TestClientEndToEnd(t *testing.T) {
	var signatureCalls, invokeCalls atomic.Int32
	var invokeBody string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		body, _ := io.ReadAll(r.Body)

		var m Message
		require.NoError(t, json.Unmarshal(body, &m))
		w.Header().Set("Content-Type", "application/json")
		if m.IsSignatureRequest() {
			signatureCalls.Add(1)
			assert.Equal(t, []string{"search_movie"}, m.Functions)
			_ = json.NewEncoder(w).Encode([]Signature{searchSignature()})
			return
		}
		invokeCalls.Add(1)
		invokeBody = string(body)
		_, _ = w.Write([]byte(`{"response":"id: 603 title: The Matrix"}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	require.NoError(t, err)
	ctx := context.Background()

	sigs, err := c.FetchSignatures(ctx, []string{"search_movie"})
	require.NoError(t, err)
	sig, err := SelectSignature(sigs, "search_movie")
	require.NoError(t, err)

	p := &scriptedPrompter{answers: map[string]string{"query": "Matrix"}}
	args, err := CollectArguments(sig, p)
	require.NoError(t, err)

	resp, err := c.Invoke(ctx, sig.Function, args)
	require.NoError(t, err)

	assert.EqualValues(t, 1, signatureCalls.Load())
	assert.EqualValues(t, 1, invokeCalls.Load())
	assert.JSONEq(t, `{"function":"search_movie","argument":{"parsed":[{"query":"Matrix"}]}}`, invokeBody)
	assert.Equal(t, "id: 603 title: The Matrix", resp.Response)
	assert.JSONEq(t, `{"response":"id: 603 title: The Matrix"}`, string(resp.Raw))
}

func TestClientHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	_, err = c.FetchSignatures(context.Background(), []string{"search_movie"})
	var he *HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusUnauthorized, he.StatusCode)
	assert.Equal(t, "nope", he.Body)

	_, err = c.Invoke(context.Background(), "search_movie", nil)
	require.ErrorAs(t, err, &he)
}

func TestClientTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, err := NewClient(url)
	require.NoError(t, err)
	_, err = c.FetchSignatures(context.Background(), nil)
	require.Error(t, err)
	var he *HTTPError
	assert.NotErrorAs(t, err, &he)
}

func TestClientRejectsNonJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>"))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	require.NoError(t, err)
	_, err = c.FetchSignatures(context.Background(), nil)
	assert.ErrorContains(t, err, "failed to decode signatures")
}

func TestNewClientRequiresURL(t *testing.T) {
	_, err := NewClient("")
	assert.Error(t, err)
}

func TestInvokeKeepsResponsesOfAnyShape(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantText string
	}{
		{"text response", `{"response":"ok"}`, "ok"},
		{"object response", `{"response":{"text":"ok"}}`, ""},
		{"object action", `{"response":"ok","action":{"SWML":{}}}`, "ok"},
		{"array body", `["ok"]`, ""},
		{"bare string body", `"ok"`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c, err := NewClient(srv.URL)
			require.NoError(t, err)
			resp, err := c.Invoke(context.Background(), "search_movie", map[string]any{"query": "Matrix"})
			require.NoError(t, err)
			assert.Equal(t, tt.body, string(resp.Raw))
			assert.Equal(t, tt.wantText, resp.Text())
		})
	}
}

func TestInvokeDecodesActions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response":"bye","action":[{"hangup":true}]}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	require.NoError(t, err)
	resp, err := c.Invoke(context.Background(), "end_call", nil)
	require.NoError(t, err)
	assert.Equal(t, []any{map[string]any{"hangup": true}}, resp.Action)
}

func TestFetchSignaturesAcceptsLooseSchemas(t *testing.T) {
	const body = `[{"function":"f","meta_data":{"k":"v"},"fillers":{"en-US":["one moment"]},` +
		`"argument":{"properties":{"n":{"type":"integer","enum":[1,2]}}}}]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	sigs, err := c.FetchSignatures(context.Background(), []string{"f"})
	require.NoError(t, err)
	require.Len(t, sigs, 1)
	assert.Equal(t, []any{float64(1), float64(2)}, sigs[0].Argument.Properties["n"].Enum)

	raw, err := c.FetchSignaturesRaw(context.Background(), []string{"f"})
	require.NoError(t, err)
	assert.Equal(t, body, string(raw))
}

func TestInvokeRejectsNonJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>"))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	require.NoError(t, err)
	_, err = c.Invoke(context.Background(), "search_movie", nil)
	assert.ErrorContains(t, err, "not valid JSON")
}
