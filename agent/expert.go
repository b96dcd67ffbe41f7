package agent

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// maxCalls bounds the function calls made to answer a single question.
const maxCalls = 8

// Expert is a chat with a model, able to call the functions of its library.
type Expert struct {
	Name      string
	ModelName string
	Config    *genai.GenerateContentConfig
	Library   Library
	chat      *genai.Chat
}

// NewAdvisor creates the portfolio advisor. It knows the summary from the
// start and can fetch the other reports.
func NewAdvisor(model, summary string, reports ...*Report) *Expert {
	return &Expert{
		Name:      "Advisor",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(reports)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a financial advisor reviewing the user's crypto-currency portfolio held
				on the Coinbase Exchange.

				Deposited is the amount spent in orders for an asset, Value is the current value
				at the last market price. An asset marked with a star has no cost basis: it was
				transferred in, its gain is conventionally reported as 100%.

				Use the tools to get the balance, the order history or the accounts when the
				summary is not enough. Answer in short markdown.

				Here is the current summary of the portfolio:

				` + summary}}},
		},
		Library: NewLibrary(reports),
	}
}

// Start creates the chat session.
func (e *Expert) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, e.ModelName, e.Config, nil)
	if err != nil {
		return fmt.Errorf("cannot start %s chat: %w", e.Name, err)
	}
	e.chat = chat
	return nil
}

// Ask sends parts to the expert and answers its function calls until it
// responds with content.
func (e *Expert) Ask(ctx context.Context, parts ...*genai.Part) (*genai.Content, error) {
	log := zerolog.Ctx(ctx)
	for range maxCalls {
		resp, err := e.chat.Send(ctx, parts...)
		if err != nil {
			return nil, err
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
			return nil, fmt.Errorf("no response from %s", e.Name)
		}
		content := resp.Candidates[0].Content
		call := content.Parts[0].FunctionCall
		if call == nil {
			return content, nil
		}
		if e.Library == nil {
			return nil, fmt.Errorf("%s doesn't know how to make function calls", e.Name)
		}
		log.Debug().Str("expert", e.Name).Str("function", call.Name).Msg("function call")
		parts = []*genai.Part{{FunctionResponse: e.Library(ctx, call)}}
	}
	return nil, fmt.Errorf("%s made more than %d function calls", e.Name, maxCalls)
}
