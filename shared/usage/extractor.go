package usage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// ErrNoUsage is returned when a response carries no token counts.
var ErrNoUsage = errors.New("no usage data in response")

var dataPrefix = []byte("data:")

// Extract reads token usage from a chat completion reply. Both a plain JSON
// body and a buffered event stream are accepted; for a stream the last chunk
// carrying usage wins.
func Extract(body []byte) (*openai.Usage, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, ErrNoUsage
	}
	if bytes.HasPrefix(body, dataPrefix) {
		return extractStream(body)
	}

	var resp struct {
		Usage *openai.Usage `json:"usage"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return validUsage(resp.Usage)
}

func extractStream(body []byte) (*openai.Usage, error) {
	var found *openai.Usage
	for _, line := range bytes.Split(body, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if !bytes.HasPrefix(line, dataPrefix) {
			continue
		}
		payload := bytes.TrimSpace(line[len(dataPrefix):])
		if len(payload) == 0 || string(payload) == "[DONE]" {
			continue
		}
		var chunk struct {
			Usage *openai.Usage `json:"usage"`
		}
		if json.Unmarshal(payload, &chunk) != nil {
			continue
		}
		if chunk.Usage != nil {
			found = chunk.Usage
		}
	}
	return validUsage(found)
}

func validUsage(u *openai.Usage) (*openai.Usage, error) {
	if u == nil || (u.TotalTokens == 0 && u.PromptTokens == 0 && u.CompletionTokens == 0) {
		return nil, ErrNoUsage
	}
	if u.TotalTokens == 0 {
		u.TotalTokens = u.PromptTokens + u.CompletionTokens
	}
	return u, nil
}
