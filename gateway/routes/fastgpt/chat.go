package fastgpt

import (
	"net/http"

	"github.com/like-mike/fastgpt-gateway/shared/credentials"
)

// chatCompletionFields are the FastGPT chat request fields the gateway
// forwards. Values are copied byte for byte so message extensions such as
// dataId and large integers in variables survive.
var chatCompletionFields = Fields{
	F("chatId"),
	F("stream"),
	F("detail"),
	F("variables"),
	F("messages"),
}

func chatRoutes() []Route {
	return []Route{
		{
			Name:    "chat-with-bot",
			Method:  http.MethodPost,
			Path:    "/chat-with-bot",
			Binding: credentials.App,
			Target:  "/chat",
			Body:    Fields{F("knowledgeBaseId"), F("message")},
			Failure: "Failed to interact with the chatbot.",
		},
		{
			Name:       "chat-completions",
			Method:     http.MethodPost,
			Path:       "/api/v1/chat/completions",
			Binding:    credentials.App,
			Target:     "/api/v1/chat/completions",
			Body:       chatCompletionFields,
			Failure:    "Failed to start conversation.",
			TrackUsage: true,
		},
	}
}
