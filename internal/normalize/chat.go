package normalize

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrEmptyCompletion is returned when a completion response has no choices.
var ErrEmptyCompletion = errors.New("empty response from API")

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content   *string `json:"content"`
			Reasoning *string `json:"reasoning"`
		} `json:"message"`
	} `json:"choices"`
}

// ChatContent reads choices[0].message.content and the optional reasoning
// trace from a chat completion body.
func ChatContent(body []byte) (content, reasoning string, err error) {
	var resp completionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", "", fmt.Errorf("unmarshaling completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", "", ErrEmptyCompletion
	}
	msg := resp.Choices[0].Message
	if msg.Content != nil {
		content = *msg.Content
	}
	if msg.Reasoning != nil {
		reasoning = *msg.Reasoning
	}
	return content, reasoning, nil
}
