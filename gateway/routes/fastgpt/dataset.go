package fastgpt

import (
	"net/http"

	"github.com/like-mike/fastgpt-gateway/shared/credentials"
)

func datasetRoutes() []Route {
	return []Route{
		{
			Name:    "create-training-order",
			Method:  http.MethodPost,
			Path:    "/create-training-order",
			Binding: credentials.Dataset,
			Target:  "/support/wallet/usage/createTrainingUsage",
			Body:    Fields{F("name")},
			Failure: "Failed to create training order.",
		},
		{
			Name:    "dataset-list",
			Method:  http.MethodGet,
			Path:    "/api/core/dataset/list",
			Binding: credentials.Dataset,
			Target:  "/core/dataset/list",
			Query:   []Param{Q("parentId")},
			Failure: "Failed to get dataset list.",
		},
		{
			Name:    "dataset-detail",
			Method:  http.MethodGet,
			Path:    "/api/core/dataset/detail",
			Binding: credentials.Dataset,
			Target:  "/core/dataset/detail",
			Query:   []Param{Q("id")},
			Failure: "Failed to get dataset details.",
		},
		{
			Name:    "dataset-delete",
			Method:  http.MethodDelete,
			Path:    "/api/core/dataset/delete",
			Binding: credentials.Dataset,
			Target:  "/core/dataset/delete",
			Query:   []Param{Q("id")},
			Failure: "Failed to delete dataset.",
		},
		{
			Name:    "search-test",
			Method:  http.MethodPost,
			Path:    "/search-test",
			Binding: credentials.Dataset,
			Target:  "/core/dataset/searchTest",
			Body:    PassThrough{},
			Failure: "Failed to perform search test.",
		},
	}
}

func collectionRoutes() []Route {
	return []Route{
		{
			Name:    "collection-create",
			Method:  http.MethodPost,
			Path:    "/api/core/dataset/collection/create",
			Binding: credentials.Dataset,
			Target:  "/core/dataset/collection/create",
			Body:    PassThrough{},
			Failure: "Failed to create dataset collection.",
		},
		{
			Name:    "collection-create-text",
			Method:  http.MethodPost,
			Path:    "/api/core/dataset/collection/create/text",
			Binding: credentials.Dataset,
			Target:  "/core/dataset/collection/create/text",
			Body: Fields{
				F("text"),
				F("datasetId"),
				F("parentId"),
				F("name"),
				F("trainingType"),
				F("chunkSize"),
				F("chunkSplitter"),
				F("qaPrompt"),
				F("metadata"),
			},
			Failure: "Failed to create text content in dataset collection.",
		},
		{
			Name:    "collection-list",
			Method:  http.MethodPost,
			Path:    "/get-collection-list",
			Binding: credentials.Dataset,
			Target:  "/core/dataset/collection/list",
			Body:    PassThrough{},
			Failure: "Failed to get collection list.",
		},
		{
			Name:    "collection-detail",
			Method:  http.MethodGet,
			Path:    "/get-collection-details",
			Binding: credentials.Dataset,
			Target:  "/core/dataset/collection/detail",
			Query:   []Param{{From: "collectionId", To: "id"}},
			Failure: "Failed to get collection details.",
		},
		{
			Name:    "collection-update",
			Method:  http.MethodPut,
			Path:    "/update-collection",
			Binding: credentials.Dataset,
			Target:  "/core/dataset/collection/update",
			Body:    PassThrough{},
			Failure: "Failed to update collection.",
		},
		{
			Name:    "collection-delete",
			Method:  http.MethodDelete,
			Path:    "/delete-collection",
			Binding: credentials.Dataset,
			Target:  "/core/dataset/collection/delete",
			Query:   []Param{{From: "collectionId", To: "id"}},
			Failure: "Failed to delete collection.",
		},
	}
}

func dataRoutes() []Route {
	return []Route{
		{
			Name:    "data-push",
			Method:  http.MethodPost,
			Path:    "/add-data-to-collection",
			Binding: credentials.Dataset,
			Target:  "/core/dataset/data/pushData",
			Body:    PassThrough{},
			Failure: "Failed to add data to collection.",
		},
		{
			Name:    "data-list",
			Method:  http.MethodPost,
			Path:    "/get-data-list",
			Binding: credentials.Dataset,
			Target:  "/core/dataset/data/list",
			Body:    PassThrough{},
			Failure: "Failed to get data list.",
		},
		{
			Name:    "data-detail",
			Method:  http.MethodGet,
			Path:    "/get-data-details",
			Binding: credentials.Dataset,
			Target:  "/core/dataset/data/detail",
			Query:   []Param{{From: "dataId", To: "id"}},
			Failure: "Failed to get data details.",
		},
		{
			Name:    "data-update",
			Method:  http.MethodPut,
			Path:    "/update-data",
			Binding: credentials.Dataset,
			Target:  "/core/dataset/data/update",
			Body:    PassThrough{},
			Failure: "Failed to update data.",
		},
		{
			Name:    "data-delete",
			Method:  http.MethodDelete,
			Path:    "/delete-data",
			Binding: credentials.Dataset,
			Target:  "/core/dataset/data/delete",
			Query:   []Param{{From: "dataId", To: "id"}},
			Failure: "Failed to delete data.",
		},
	}
}
