package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/testutils"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *Server {
	t.Helper()
	loader := memory.NewLoader(map[string]string{
		"even-a": testutils.EvenA,
		"ab":     testutils.AB,
	})
	eng, err := automata.New("", automata.WithLoader(loader))
	require.NoError(t, err)
	return NewServer(eng, "test")
}

func TestServer_ToolsAreRegistered(t *testing.T) {
	s := newServer(t)

	msg := json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list","params":{}}`)
	resp := s.mcpServer.HandleMessage(context.Background(), msg)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	for _, name := range []string{"list_automata", "describe_automaton", "is_deterministic", "accepts"} {
		assert.Contains(t, string(raw), `"name":"`+name+`"`)
	}
}

func TestServer_HandleList(t *testing.T) {
	s := newServer(t)

	resp, err := s.handleList(context.Background(), mcp.CallToolRequest{}, struct{}{})
	require.NoError(t, err)
	assert.Equal(t, []string{"ab", "even-a"}, resp.Automata)
}

func TestServer_HandleDescribe(t *testing.T) {
	s := newServer(t)
	ctx := context.Background()

	resp, err := s.handleDescribe(ctx, mcp.CallToolRequest{}, IDArgs{ID: "even-a"})
	require.NoError(t, err)
	assert.Equal(t, "q0", resp.Initial)
	assert.Equal(t, []string{"a"}, resp.Alphabet)
	assert.Equal(t, testutils.EvenA, resp.Definition)

	_, err = s.handleDescribe(ctx, mcp.CallToolRequest{}, IDArgs{ID: "missing"})
	assert.ErrorIs(t, err, domain.ErrDefinitionNotFound)

	_, err = s.handleDescribe(ctx, mcp.CallToolRequest{}, IDArgs{})
	assert.Error(t, err)
}

func TestServer_HandleDeterminism(t *testing.T) {
	s := newServer(t)
	ctx := context.Background()

	resp, err := s.handleDeterminism(ctx, mcp.CallToolRequest{}, IDArgs{ID: "even-a"})
	require.NoError(t, err)
	assert.True(t, resp.Deterministic)
	assert.NotNil(t, resp.Conflicts)

	resp, err = s.handleDeterminism(ctx, mcp.CallToolRequest{}, IDArgs{ID: "ab"})
	require.NoError(t, err)
	assert.False(t, resp.Deterministic)
	assert.Len(t, resp.Conflicts, 1)
}

func TestServer_HandleAccepts(t *testing.T) {
	s := newServer(t)

	resp, err := s.handleAccepts(context.Background(), mcp.CallToolRequest{}, AcceptsArgs{
		ID:    "ab",
		Words: []string{"ab", "aa", ""},
	})
	require.NoError(t, err)
	require.Len(t, resp.Verdicts, 3)
	assert.True(t, resp.Verdicts[0].Accepted)
	assert.False(t, resp.Verdicts[1].Accepted)
	assert.Equal(t, domain.ReasonNoTransition, resp.Verdicts[1].Reason)
	assert.True(t, resp.Verdicts[2].Accepted)
}
