package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiStub struct {
	mu      sync.Mutex
	queries []string
	srv     *httptest.Server
}

func newAPIStub(t *testing.T) *apiStub {
	t.Helper()
	s := &apiStub{}
	s.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("kv")
		s.mu.Lock()
		s.queries = append(s.queries, q)
		s.mu.Unlock()

		switch q {
		case "piz":
			_, _ = w.Write([]byte(`[{"name":"Pizza","calories_per_serving":285},{"name":"Pizza Bianca"}]`))
		case "chicken":
			_, _ = w.Write([]byte(`[{"name":"Chicken Tikka","spice_level":3}]`))
		case "err":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			_, _ = w.Write([]byte(`[]`))
		}
	}))
	t.Cleanup(s.srv.Close)
	return s
}

func (s *apiStub) Queries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.queries...)
}

// run executes the CLI with an isolated config file
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.toml")

	cmd, c := newRootCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", configPath}, args...))

	err := cmd.Execute()
	c.close()
	return out.String(), err
}

func TestFetchPrintsItems(t *testing.T) {
	api := newAPIStub(t)

	out, err := run(t, "", "fetch", "--endpoint", api.srv.URL, "chicken")
	require.NoError(t, err)
	assert.Contains(t, out, "Chicken Tikka")
	assert.Contains(t, out, "spiceLevel  3")
	assert.Equal(t, []string{"chicken"}, api.Queries())
}

func TestFetchJoinsArguments(t *testing.T) {
	api := newAPIStub(t)

	out, err := run(t, "", "fetch", "--endpoint", api.srv.URL, "fried", "rice")
	require.NoError(t, err)
	assert.Contains(t, out, "No results found for your search query")
	assert.Equal(t, []string{"fried rice"}, api.Queries())
}

func TestFetchJSON(t *testing.T) {
	api := newAPIStub(t)

	out, err := run(t, "", "fetch", "--json", "--endpoint", api.srv.URL, "piz")
	require.NoError(t, err)

	var items []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "Pizza", items[0]["name"])
	assert.EqualValues(t, 285, items[0]["caloriesPerServing"])
}

func TestFetchFailure(t *testing.T) {
	api := newAPIStub(t)

	_, err := run(t, "", "fetch", "--endpoint", api.srv.URL, "err")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Something went wrong, try again!")
	assert.Contains(t, err.Error(), "status 500")

	_, err = run(t, "", "fetch", "--endpoint", "not a url", "piz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing URL")
}

func TestFailedFetchStillFlushesLog(t *testing.T) {
	api := newAPIStub(t)
	logPath := filepath.Join(t.TempDir(), "foodsearch.log")

	_, err := run(t, "", "fetch", "--log", logPath, "--endpoint", api.srv.URL, "err")
	require.Error(t, err)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Using endpoint "+api.srv.URL)
	assert.Contains(t, string(data), "selects endpoint")
}

func TestFetchRequiresText(t *testing.T) {
	_, err := run(t, "", "fetch")
	assert.Error(t, err)
}

func TestStreamPrintsTransitions(t *testing.T) {
	api := newAPIStub(t)

	out, err := run(t, "p\npi\npiz\n", "stream", "--endpoint", api.srv.URL, "--debounce", "20ms")
	require.NoError(t, err)

	assert.Contains(t, out, "[1] Done(0 items)")
	assert.Contains(t, out, "Loading  Searching...")
	assert.Contains(t, out, "Done(2 items)")
	assert.Contains(t, out, "    Pizza Bianca")
	assert.Equal(t, []string{"piz"}, api.Queries())
}

func TestStreamJSON(t *testing.T) {
	api := newAPIStub(t)

	out, err := run(t, "zzz\n", "stream", "--json", "--clear-short=false", "--endpoint", api.srv.URL, "--debounce", "20ms")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)

	var first, second stateJSON
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "Loading", first.Phase)
	assert.Equal(t, "Searching...", first.Message)
	assert.Equal(t, "Empty", second.Phase)
	assert.Equal(t, "No results found for your search query", second.Message)
}

func TestStreamFailureIsAState(t *testing.T) {
	api := newAPIStub(t)

	out, err := run(t, "err\n", "stream", "--endpoint", api.srv.URL, "--debounce", "20ms")
	require.NoError(t, err)
	assert.Contains(t, out, "Failed(bad response: status 500)  Something went wrong, try again!")
}

func TestStreamShortInputNeverFetches(t *testing.T) {
	api := newAPIStub(t)

	out, err := run(t, "p\npi\n", "stream", "--endpoint", api.srv.URL, "--debounce", "20ms")
	require.NoError(t, err)
	assert.NotContains(t, out, "Loading")
	assert.Empty(t, api.Queries())
}

func TestConfigInitShowAndPath(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.toml")

	execute := func(args ...string) (string, error) {
		cmd, c := newRootCmd()
		out := new(bytes.Buffer)
		cmd.SetOut(out)
		cmd.SetArgs(append([]string{"--config", configPath}, args...))
		err := cmd.Execute()
		c.close()
		return out.String(), err
	}

	out, err := execute("config", "init", "--endpoint", "http://localhost:8080/search")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+configPath)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "http://localhost:8080/search")

	_, err = execute("config", "init")
	assert.Error(t, err)
	_, err = execute("config", "init", "--force")
	assert.NoError(t, err)

	out, err = execute("config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "http://localhost:8080/search")
	assert.Contains(t, out, "debounce_ms = 500")

	out, err = execute("config", "path")
	require.NoError(t, err)
	assert.Equal(t, configPath+"\n", out)
}
