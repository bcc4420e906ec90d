package fastgpt

import (
	"encoding/json"
	"net/http"

	"github.com/like-mike/fastgpt-gateway/shared/credentials"
)

const biographyTitle = "User's Biography"

func knowledgeBaseRoutes() []Route {
	return []Route{
		{
			Name:    "create-knowledge-base",
			Method:  http.MethodPost,
			Path:    "/create-knowledge-base",
			Binding: credentials.KnowledgeBase,
			Target:  "/create",
			Body: Fields{
				Const("title", biographyTitle),
				Rename("biography", "content"),
			},
			Failure: "Failed to create knowledge base.",
			Respond: knowledgeBaseCreated,
		},
		{
			Name:    "dataset-create",
			Method:  http.MethodPost,
			Path:    "/api/core/dataset/create",
			Binding: credentials.KnowledgeBase,
			Target:  "/create",
			Body: Fields{
				F("parentId"),
				Const("type", "dataset"),
				F("name"),
				F("intro"),
				F("avatar"),
				F("vectorModel"),
				F("agentModel"),
			},
			Failure: "Failed to create knowledge base.",
		},
	}
}

type knowledgeBaseResponse struct {
	Success         bool            `json:"success"`
	KnowledgeBaseID json.RawMessage `json:"knowledgeBaseId,omitempty"`
}

// knowledgeBaseCreated reduces the upstream reply to the id of the new
// knowledge base.
func knowledgeBaseCreated(upstream []byte) (any, error) {
	var created struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(upstream, &created); err != nil {
		return nil, err
	}
	return knowledgeBaseResponse{Success: true, KnowledgeBaseID: created.ID}, nil
}
