package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestLibrary(t *testing.T) {
	reports := []*Report{
		{Name: "balance", Description: "balance", Run: func(ctx context.Context) (string, error) { return "# Balance", nil }},
		{Name: "orders", Description: "orders", Run: func(ctx context.Context) (string, error) { return "", errors.New("boom") }},
	}
	lib := NewLibrary(reports)
	ctx := context.Background()

	resp := lib(ctx, &genai.FunctionCall{ID: "1", Name: "balance"})
	assert.Equal(t, "1", resp.ID)
	assert.Equal(t, "# Balance", resp.Response["output"])

	resp = lib(ctx, &genai.FunctionCall{ID: "2", Name: "orders"})
	assert.Equal(t, "boom", resp.Response["error"])

	resp = lib(ctx, &genai.FunctionCall{ID: "3", Name: "withdraw"})
	assert.Equal(t, "withdraw", resp.Name)
	assert.Contains(t, resp.Response["error"], "unknown function")
}

func TestNewAdvisor(t *testing.T) {
	reports := []*Report{{Name: "balance", Description: "the balance"}}
	e := NewAdvisor("gemini-test", "| ETH | $300.00 |", reports...)

	assert.Equal(t, "gemini-test", e.ModelName)
	require.Len(t, e.Config.Tools, 1)
	decls := e.Config.Tools[0].FunctionDeclarations
	require.Len(t, decls, 1)
	assert.Equal(t, "balance", decls[0].Name)
	assert.Contains(t, e.Config.SystemInstruction.Parts[0].Text, "| ETH | $300.00 |")
}
