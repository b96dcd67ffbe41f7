package agent

import (
	"context"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// Report is a Function without arguments returning a markdown report of the
// user's portfolio, e.g the balance or the order history.
type Report struct {
	Name        string
	Description string
	Run         func(ctx context.Context) (string, error)
}

func (r *Report) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        r.Name,
		Description: r.Description,
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown report.",
		},
	}
}

func (r *Report) Call(ctx context.Context, id string, _ map[string]any) *genai.FunctionResponse {
	md, err := r.Run(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("report", r.Name).Msg("report failed")
		return errorResponse(id, r.Name, err.Error())
	}
	return &genai.FunctionResponse{ID: id, Name: r.Name, Response: map[string]any{"output": md}}
}
