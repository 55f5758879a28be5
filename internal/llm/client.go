package llm

import "context"

// Message is one turn of chat context sent to a provider.
type Message struct {
	Role    string
	Content string
}

// Response carries the generated text plus usage accounting.
type Response struct {
	Content          string
	Model            string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Client is the general-purpose fallback model behind the agents: it
// answers utterances the slot-filling tracker does not claim.
type Client interface {
	Generate(ctx context.Context, messages []Message) (Response, error)
}
