package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/learnhub/learnhub-backend/internal/logger"
	"github.com/learnhub/learnhub-backend/internal/types"
)

// ChatWithVideoRequest is the payload the chat function expects. History is
// the prior transcript, oldest first, capped by the caller.
type ChatWithVideoRequest struct {
	Message             string               `json:"message"`
	CourseID            string               `json:"courseId"`
	VideoTitle          string               `json:"videoTitle"`
	ConversationHistory []ChatHistoryMessage `json:"conversationHistory"`
}

type ChatHistoryMessage struct {
	Content string `json:"content"`
	Role    string `json:"role"`
}

type ChatWithVideoResponse struct {
	Response string `json:"response"`
}

type GenerateQuizRequest struct {
	CourseTitle       string `json:"courseTitle"`
	CourseDescription string `json:"courseDescription"`
	NumberOfQuestions int    `json:"numberOfQuestions"`
	Difficulty        string `json:"difficulty"`
}

type GeneratedQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Points        int      `json:"points"`
}

type GenerateQuizResponse struct {
	Questions []GeneratedQuestion `json:"questions"`
}

type AIFunctionsClient interface {
	ChatWithVideo(ctx context.Context, req ChatWithVideoRequest) (*ChatWithVideoResponse, error)
	GenerateQuiz(ctx context.Context, req GenerateQuizRequest) (*GenerateQuizResponse, error)
}

type aiFunctionsClient struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewAIFunctionsClient(log *logger.Logger) (AIFunctionsClient, error) {
	baseURL := os.Getenv("AI_FUNCTIONS_BASE_URL")
	if baseURL == "" {
		return nil, fmt.Errorf("missing AI_FUNCTIONS_BASE_URL")
	}
	apiKey := os.Getenv("AI_FUNCTIONS_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("missing AI_FUNCTIONS_API_KEY")
	}

	timeoutSec := 60
	if v := os.Getenv("AI_FUNCTIONS_TIMEOUT_SECONDS"); v != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed > 0 {
			timeoutSec = parsed
		}
	}

	return &aiFunctionsClient{
		log:        log.With("service", "AIFunctionsClient"),
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
	}, nil
}

type aiFunctionsHTTPError struct {
	StatusCode int
	Body       string
}

func (e *aiFunctionsHTTPError) Error() string {
	return fmt.Sprintf("ai functions http %d: %s", e.StatusCode, e.Body)
}

// doOnce issues a single request. Chat and quiz generation are interactive
// calls, so a failure surfaces to the user instead of being retried.
func (c *aiFunctionsClient) doOnce(ctx context.Context, path string, body any, out any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return readErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &aiFunctionsHTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	if out == nil {
		return nil
	}
	if uErr := json.Unmarshal(raw, out); uErr != nil {
		return fmt.Errorf("ai functions decode error: %w; raw=%s", uErr, string(raw))
	}
	return nil
}

func (c *aiFunctionsClient) ChatWithVideo(ctx context.Context, req ChatWithVideoRequest) (*ChatWithVideoResponse, error) {
	var resp ChatWithVideoResponse
	if err := c.doOnce(ctx, "/chat-with-video", req, &resp); err != nil {
		c.log.Warn("ChatWithVideo failed", "course_id", req.CourseID, "error", err.Error())
		return nil, err
	}
	return &resp, nil
}

func (c *aiFunctionsClient) GenerateQuiz(ctx context.Context, req GenerateQuizRequest) (*GenerateQuizResponse, error) {
	var resp GenerateQuizResponse
	if err := c.doOnce(ctx, "/generate-quiz", req, &resp); err != nil {
		c.log.Warn("GenerateQuiz failed", "course_title", req.CourseTitle, "error", err.Error())
		return nil, err
	}
	return &resp, nil
}

// HistoryFromMessages converts transcript entries into the wire shape,
// preserving order.
func HistoryFromMessages(messages []types.ChatMessage) []ChatHistoryMessage {
	out := make([]ChatHistoryMessage, 0, len(messages))
	for _, m := range messages {
		out = append(out, ChatHistoryMessage{Content: m.Content, Role: m.Role})
	}
	return out
}
