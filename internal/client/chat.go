package client

import (
	"context"
	"net/url"

	internalhttp "github.com/mediseek-io/mediseek-client/internal/http"
	"github.com/mediseek-io/mediseek-client/pkg/mediseek"
)

// ChatClient implements mediseek.ChatClient.
type ChatClient struct {
	httpClient *internalhttp.Client
}

// NewChatClient creates a new chat client.
func NewChatClient(httpClient *internalhttp.Client) *ChatClient {
	return &ChatClient{httpClient: httpClient}
}

// Send implements mediseek.ChatClient.Send.
func (c *ChatClient) Send(ctx context.Context, request *mediseek.ChatRequest) (*mediseek.Envelope[mediseek.ChatMessage], error) {
	if request == nil {
		return nil, mediseek.ErrRequestRequired
	}

	err := request.Validate()
	if err != nil {
		return nil, err
	}

	envelope, err := decodeEnvelope[mediseek.ChatMessage](c.httpClient.Post(ctx, pathChat, request))
	if err != nil {
		return nil, err
	}

	err = validateData(envelope, mediseek.ChatMessage.Validate)
	if err != nil {
		return nil, err
	}

	return envelope, nil
}

// History implements mediseek.ChatClient.History.
func (c *ChatClient) History(ctx context.Context, params *mediseek.QueryParams) (*mediseek.Envelope[mediseek.ChatHistory], error) {
	var query url.Values
	if params != nil {
		query = params.ToValues()
	}

	envelope, err := decodeEnvelope[mediseek.ChatHistory](c.httpClient.Get(ctx, pathChatHistory, query))
	if err != nil {
		return nil, err
	}

	err = validateData(envelope, func(history mediseek.ChatHistory) error {
		return validateEach(history.Items, mediseek.ChatMessage.Validate)
	})
	if err != nil {
		return nil, err
	}

	return envelope, nil
}
