// Command dummy_backend stands in for the FastGPT API when load-testing the
// gateway. Routes the gateway reshapes get canned replies; everything else is
// echoed back in the FastGPT envelope.
package main

import (
	"os"
	"strconv"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/like-mike/fastgpt-gateway/shared/logger"
	"github.com/like-mike/fastgpt-gateway/shared/models"
)

// statusHeader forces the given error status, for exercising the gateway's
// error paths.
const statusHeader = "X-Stub-Status"

type envelope struct {
	Code       int    `json:"code"`
	StatusText string `json:"statusText"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
}

func forcedStatus(c *fiber.Ctx) error {
	if code, err := strconv.Atoi(c.Get(statusHeader)); err == nil && code >= 400 && code <= 599 {
		return c.Status(code).JSON(envelope{Code: code, StatusText: "forced failure", Message: "forced failure"})
	}
	return c.Next()
}

func newApp() *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(otelfiber.Middleware())
	app.Use(fiberlogger.New())
	app.Use(forcedStatus)

	app.Post("/create", func(c *fiber.Ctx) error {
		id := uuid.NewString()
		return c.JSON(fiber.Map{"id": id, "code": fiber.StatusOK, "data": id})
	})
	app.Post("/api/v1/chat/completions", chatCompletions)
	app.All("/*", echo)
	return app
}

func chatCompletions(c *fiber.Ctx) error {
	var req struct {
		ChatID   string                         `json:"chatId"`
		Messages []openai.ChatCompletionMessage `json:"messages"`
	}
	if err := c.BodyParser(&req); err != nil || len(req.Messages) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(envelope{Code: fiber.StatusBadRequest, Message: "messages is required"})
	}
	if req.ChatID == "" {
		req.ChatID = uuid.NewString()
	}
	last := req.Messages[len(req.Messages)-1].Content
	return c.JSON(openai.ChatCompletionResponse{
		ID:      req.ChatID,
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   "fastgpt-stub",
		Choices: []openai.ChatCompletionChoice{{
			Message: openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleAssistant,
				Content: "Hello from the FastGPT stub! You said: " + last,
			},
			FinishReason: openai.FinishReasonStop,
		}},
		Usage: openai.Usage{
			PromptTokens:     len(last) / 4,
			CompletionTokens: 8,
			TotalTokens:      len(last)/4 + 8,
		},
	})
}

func echo(c *fiber.Ctx) error {
	return c.JSON(envelope{Code: fiber.StatusOK, Data: fiber.Map{
		"method":        c.Method(),
		"path":          c.Path(),
		"query":         string(c.Request().URI().QueryString()),
		"authorization": c.Get(fiber.HeaderAuthorization) != "",
		"bodyBytes":     len(c.Body()),
	}})
}

func main() {
	zlog := logger.New(models.LogConfig{Level: os.Getenv("LOG_LEVEL"), Format: "console"})
	defer func() { _ = zlog.Sync() }()

	port := os.Getenv("STUB_PORT")
	if port == "" {
		port = "2000"
	}
	zlog.Info("FastGPT stub listening", zap.String("port", port))
	if err := newApp().Listen(":" + port); err != nil {
		zlog.Fatal("stub server failed", zap.Error(err))
	}
}
