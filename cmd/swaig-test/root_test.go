// In file: cmd/swaig-test/root_test.go
package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dileep-u-k/moviebot/internal/swaig"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type webhook struct {
	server  *httptest.Server
	invokes []string
}

func newWebhook(t *testing.T) *webhook {
	t.Helper()
	wh := &webhook{}
	wh.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var m swaig.Message
		require.NoError(t, json.Unmarshal(body, &m))
		if m.IsSignatureRequest() {
			sigs := []swaig.Signature{{
				Function: "search_movie",
				Purpose:  "Search for movies by title",
				Argument: swaig.ArgumentSchema{
					Type: swaig.ArgumentTypeObject,
					Properties: map[string]swaig.Property{
						"query": {Type: "string"},
						"year":  {Type: "integer"},
					},
					Required: []string{"query"},
				},
			}}
			_ = json.NewEncoder(w).Encode(sigs)
			return
		}
		wh.invokes = append(wh.invokes, string(body))
		w.Write([]byte(`{"response":"Search results for movies:\n"}`))
	}))
	t.Cleanup(wh.server.Close)
	return wh
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SWAIG_TEST_URL", "")
	t.Setenv("SWAIG_TEST_FUNCTION", "")

	cmd := newRootCmd()
	var out, prompts bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&prompts)
	err := cmd.Execute()
	return out.String(), err
}

func TestGetSignatures(t *testing.T) {
	wh := newWebhook(t)

	out, err := execute(t, "", "--url", wh.server.URL, "--get-signatures", "--raw")
	require.NoError(t, err)

	var sigs []swaig.Signature
	require.NoError(t, json.Unmarshal([]byte(out), &sigs))
	require.Len(t, sigs, 1)
	assert.Equal(t, "search_movie", sigs[0].Function)
	assert.Empty(t, wh.invokes)
}

func TestInvokeSingleFunction(t *testing.T) {
	wh := newWebhook(t)

	out, err := execute(t, "Matrix\n\n", "--url", wh.server.URL, "--function", "search_movie")
	require.NoError(t, err)

	require.Len(t, wh.invokes, 1)
	assert.JSONEq(t, `{"function":"search_movie","argument":{"parsed":[{"query":"Matrix"}]}}`, wh.invokes[0])
	assert.JSONEq(t, `{"response":"Search results for movies:\n"}`, out)
	assert.Contains(t, out, "\n  \"response\"")
}

func TestURLFromEnvironment(t *testing.T) {
	wh := newWebhook(t)

	cmd := newRootCmd()
	t.Setenv("SWAIG_TEST_URL", wh.server.URL)
	t.Setenv("SWAIG_TEST_FUNCTION", "search_movie")
	var out bytes.Buffer
	cmd.SetArgs([]string{"--raw"})
	cmd.SetIn(strings.NewReader("Heat\n1995\n"))
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	require.NoError(t, cmd.Execute())

	require.Len(t, wh.invokes, 1)
	assert.JSONEq(t, `{"function":"search_movie","argument":{"parsed":[{"query":"Heat","year":1995}]}}`, wh.invokes[0])
}

func TestFunctionNotFoundFails(t *testing.T) {
	wh := newWebhook(t)

	_, err := execute(t, "", "--url", wh.server.URL, "--function", "get_movie_details")
	assert.ErrorIs(t, err, swaig.ErrFunctionNotFound)
	assert.Empty(t, wh.invokes)
}

func TestMalformedArgumentFails(t *testing.T) {
	wh := newWebhook(t)

	_, err := execute(t, "Heat\nabc\n", "--url", wh.server.URL, "--function", "search_movie")
	var ce *swaig.CoercionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "year", ce.Argument)
	assert.Empty(t, wh.invokes)
}

func TestUsageErrors(t *testing.T) {
	_, err := execute(t, "", "--function", "search_movie")
	assert.ErrorContains(t, err, "webhook URL is required")

	_, err = execute(t, "", "--url", "http://localhost:1", "--function", "a,b")
	assert.ErrorContains(t, err, "exactly one function")

	_, err = execute(t, "", "--url", "http://localhost:1")
	assert.ErrorContains(t, err, "exactly one function")
}

func TestSplitNames(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitNames(" a, ,b "))
	assert.Nil(t, splitNames(""))
}

func TestOutputIsVerbatimWithRaw(t *testing.T) {
	const sigBody = `[{"function":"f","fillers":{"en-US":["hold on"]},"argument":{"type":"object","properties":{"n":{"type":"integer","enum":[1,2]}}}}]`
	const respBody = `{"response":{"text":"ok"},"action":{"SWML":{}}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var m swaig.Message
		require.NoError(t, json.Unmarshal(body, &m))
		if m.IsSignatureRequest() {
			w.Write([]byte(sigBody))
			return
		}
		w.Write([]byte(respBody))
	}))
	t.Cleanup(srv.Close)

	out, err := execute(t, "", "--url", srv.URL, "--get-signatures", "--raw")
	require.NoError(t, err)
	assert.Equal(t, sigBody+"\n", out)

	out, err = execute(t, "2\n", "--url", srv.URL, "--function", "f", "--raw")
	require.NoError(t, err)
	assert.Equal(t, respBody+"\n", out)
}
