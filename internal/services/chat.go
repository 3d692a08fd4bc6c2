package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/learnhub/learnhub-backend/internal/logger"
	"github.com/learnhub/learnhub-backend/internal/repos"
	"github.com/learnhub/learnhub-backend/internal/requestdata"
	"github.com/learnhub/learnhub-backend/internal/types"
)

// ErrSendInFlight rejects a second send while the assistant is still
// answering the first one for the same session.
var ErrSendInFlight = errors.New("a message is already being processed for this chat")

const (
	// historyWindow is how many prior messages ride along with each send.
	historyWindow = 10
	// transcriptCap bounds per-session memory. Oldest entries fall off first
	// but the greeting at index 0 is kept.
	transcriptCap = 200

	apologyReply = "I apologize, but I couldn't process your question right now. Please try again."

	connectivityReply = "Sorry, I'm having trouble connecting right now. Please check your internet connection and try again."
)

type sessionKey struct {
	userID   uuid.UUID
	courseID uuid.UUID
}

type chatSession struct {
	messages []types.ChatMessage
	sending  bool
}

type ChatService interface {
	GetTranscript(ctx context.Context, courseID uuid.UUID) ([]types.ChatMessage, error)
	SendMessage(ctx context.Context, courseID uuid.UUID, message string) ([]types.ChatMessage, error)
}

type chatService struct {
	log        *logger.Logger
	courseRepo repos.CourseRepo
	aiClient   AIFunctionsClient

	mu       sync.Mutex
	sessions map[sessionKey]*chatSession
}

func NewChatService(
	baseLog *logger.Logger,
	courseRepo repos.CourseRepo,
	aiClient AIFunctionsClient,
) ChatService {
	return &chatService{
		log:        baseLog.With("service", "ChatService"),
		courseRepo: courseRepo,
		aiClient:   aiClient,
		sessions:   make(map[sessionKey]*chatSession),
	}
}

func greetingFor(videoTitle string) string {
	return fmt.Sprintf(`Hi! I'm your AI learning assistant for "%s". Ask me anything about this video, and I'll help you understand the concepts better!`, videoTitle)
}

// GetTranscript returns the session transcript, seeding a fresh session with
// the greeting on first access.
func (cs *chatService) GetTranscript(ctx context.Context, courseID uuid.UUID) ([]types.ChatMessage, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("no authenticated user in request context")
	}
	course, err := cs.loadCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()
	session := cs.sessionLocked(rd.UserID, courseID, course.Title)
	return cloneMessages(session.messages), nil
}

func (cs *chatService) SendMessage(ctx context.Context, courseID uuid.UUID, message string) ([]types.ChatMessage, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("no authenticated user in request context")
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("a message is required")
	}
	course, err := cs.loadCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	key := sessionKey{userID: rd.UserID, courseID: courseID}

	cs.mu.Lock()
	session := cs.sessionLocked(rd.UserID, courseID, course.Title)
	if session.sending {
		cs.mu.Unlock()
		return nil, ErrSendInFlight
	}
	session.sending = true
	history := lastN(session.messages, historyWindow)
	session.messages = append(session.messages, types.ChatMessage{
		ID:        uuid.New().String(),
		Content:   message,
		Role:      types.ChatRoleUser,
		Timestamp: time.Now(),
	})
	cs.mu.Unlock()

	reply := cs.askAssistant(ctx, courseID, course.Title, message, history)

	cs.mu.Lock()
	defer cs.mu.Unlock()
	session = cs.sessions[key]
	if session == nil {
		return nil, fmt.Errorf("chat session expired")
	}
	session.sending = false
	session.messages = append(session.messages, types.ChatMessage{
		ID:        uuid.New().String(),
		Content:   reply,
		Role:      types.ChatRoleAssistant,
		Timestamp: time.Now(),
	})
	session.messages = trimTranscript(session.messages, transcriptCap)
	return cloneMessages(session.messages), nil
}

// askAssistant always yields assistant text: a real answer, the apology for
// an empty answer, or the connectivity line when the call fails outright.
func (cs *chatService) askAssistant(ctx context.Context, courseID uuid.UUID, videoTitle, message string, history []types.ChatMessage) string {
	resp, err := cs.aiClient.ChatWithVideo(ctx, ChatWithVideoRequest{
		Message:             message,
		CourseID:            courseID.String(),
		VideoTitle:          videoTitle,
		ConversationHistory: HistoryFromMessages(history),
	})
	if err != nil {
		cs.log.Warn("chat assistant call failed", "course_id", courseID, "error", err.Error())
		return connectivityReply
	}
	if resp == nil || strings.TrimSpace(resp.Response) == "" {
		return apologyReply
	}
	return resp.Response
}

func (cs *chatService) loadCourse(ctx context.Context, courseID uuid.UUID) (*types.Course, error) {
	courses, err := cs.courseRepo.GetByIDs(ctx, nil, []uuid.UUID{courseID})
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}
	if len(courses) == 0 {
		return nil, ErrCourseNotFound
	}
	return courses[0], nil
}

func (cs *chatService) sessionLocked(userID, courseID uuid.UUID, videoTitle string) *chatSession {
	key := sessionKey{userID: userID, courseID: courseID}
	session := cs.sessions[key]
	if session == nil {
		session = &chatSession{
			messages: []types.ChatMessage{{
				ID:        uuid.New().String(),
				Content:   greetingFor(videoTitle),
				Role:      types.ChatRoleAssistant,
				Timestamp: time.Now(),
			}},
		}
		cs.sessions[key] = session
	}
	return session
}

func lastN(messages []types.ChatMessage, n int) []types.ChatMessage {
	if len(messages) <= n {
		return cloneMessages(messages)
	}
	return cloneMessages(messages[len(messages)-n:])
}

func trimTranscript(messages []types.ChatMessage, limit int) []types.ChatMessage {
	if len(messages) <= limit {
		return messages
	}
	trimmed := make([]types.ChatMessage, 0, limit)
	trimmed = append(trimmed, messages[0])
	trimmed = append(trimmed, messages[len(messages)-(limit-1):]...)
	return trimmed
}

func cloneMessages(messages []types.ChatMessage) []types.ChatMessage {
	out := make([]types.ChatMessage, len(messages))
	copy(out, messages)
	return out
}
