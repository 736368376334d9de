package server

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/mcp/dispatcher"
	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/mcp/types"
	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/registry"
)

func runStdio(t *testing.T, input string) []types.Response {
	t.Helper()

	reg := registry.New()
	require.NoError(t, reg.RegisterTool(&registry.Tool{
		Name:        "echo",
		Description: "echoes",
		Handler: func(_ context.Context, args map[string]interface{}) (*types.ContentResult, error) {
			text, _ := args["text"].(string)
			return types.TextResult(text), nil
		},
	}))

	d := dispatcher.New(reg, types.ServerInfo{Name: "test", Version: "0.0.1"})

	var out bytes.Buffer
	srv := NewStdioServerWith(d, strings.NewReader(input), &out)
	require.NoError(t, srv.Start(context.Background()))

	var responses []types.Response
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		var resp types.Response
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &resp))
		responses = append(responses, resp)
	}
	return responses
}

func TestStdioRequestResponse(t *testing.T) {
	input := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}` + "\n" +
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"echo","arguments":{"text":"hi"}}}` + "\n"

	responses := runStdio(t, input)
	require.Len(t, responses, 2)

	assert.Nil(t, responses[0].Error)
	assert.Equal(t, json.RawMessage(`1`), responses[0].ID)

	assert.Nil(t, responses[1].Error)
	assert.Equal(t, json.RawMessage(`2`), responses[1].ID)
}

func TestStdioParseError(t *testing.T) {
	responses := runStdio(t, "this is not json\n")
	require.Len(t, responses, 1)
	require.NotNil(t, responses[0].Error)
	assert.Equal(t, -32700, responses[0].Error.Code)
}

func TestStdioNotificationProducesNoOutput(t *testing.T) {
	responses := runStdio(t, `{"jsonrpc":"2.0","method":"notifications/initialized"}`+"\n")
	assert.Empty(t, responses)
}

func TestStdioRequestsAnsweredInOrder(t *testing.T) {
	var input strings.Builder
	for i := 1; i <= 5; i++ {
		input.WriteString(`{"jsonrpc":"2.0","id":`)
		input.WriteString(string(rune('0' + i)))
		input.WriteString(`,"method":"ping"}` + "\n")
	}

	responses := runStdio(t, input.String())
	require.Len(t, responses, 5)
	for i, resp := range responses {
		assert.Equal(t, json.RawMessage(string(rune('0'+i+1))), resp.ID)
	}
}
