package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/learnhub/learnhub-backend/internal/logger"
	"github.com/learnhub/learnhub-backend/internal/repos"
	"github.com/learnhub/learnhub-backend/internal/requestdata"
	"github.com/learnhub/learnhub-backend/internal/types"
)

func testLogger() *logger.Logger {
	log, err := logger.New("dev")
	if err != nil {
		panic(err)
	}
	return log
}

func ctxForUser(userID uuid.UUID, role string) context.Context {
	return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
		UserID: userID,
		Role:   role,
	})
}

type fakeUserRepo struct {
	users []*types.User
	err   error
}

func (f *fakeUserRepo) Create(ctx context.Context, tx *gorm.DB, users []*types.User) ([]*types.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.users = append(f.users, users...)
	return users, nil
}

func (f *fakeUserRepo) GetByIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*types.User
	for _, u := range f.users {
		for _, id := range userIDs {
			if u.ID == id {
				out = append(out, u)
			}
		}
	}
	return out, nil
}

func (f *fakeUserRepo) GetByEmails(ctx context.Context, tx *gorm.DB, userEmails []string) ([]*types.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*types.User
	for _, u := range f.users {
		for _, email := range userEmails {
			if u.Email == email {
				out = append(out, u)
			}
		}
	}
	return out, nil
}

func (f *fakeUserRepo) EmailExists(ctx context.Context, tx *gorm.DB, userEmail string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, u := range f.users {
		if u.Email == userEmail {
			return true, nil
		}
	}
	return false, nil
}

type fakeCourseRepo struct {
	courses   []*types.Course
	stats     []*repos.CourseStatsRow
	createErr error
}

func (f *fakeCourseRepo) Create(ctx context.Context, tx *gorm.DB, courses []*types.Course) ([]*types.Course, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.courses = append(f.courses, courses...)
	return courses, nil
}

func (f *fakeCourseRepo) GetByIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) ([]*types.Course, error) {
	var out []*types.Course
	for _, c := range f.courses {
		for _, id := range courseIDs {
			if c.ID == id {
				out = append(out, c)
			}
		}
	}
	return out, nil
}

func (f *fakeCourseRepo) ListWithStats(ctx context.Context, tx *gorm.DB) ([]*repos.CourseStatsRow, error) {
	return f.stats, nil
}

func (f *fakeCourseRepo) GetStatsByIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) ([]*repos.CourseStatsRow, error) {
	var out []*repos.CourseStatsRow
	for _, row := range f.stats {
		for _, id := range courseIDs {
			if row.ID == id {
				out = append(out, row)
			}
		}
	}
	return out, nil
}

func (f *fakeCourseRepo) GetStatsByTeacherIDs(ctx context.Context, tx *gorm.DB, teacherIDs []uuid.UUID) ([]*repos.CourseStatsRow, error) {
	var out []*repos.CourseStatsRow
	for _, row := range f.stats {
		for _, id := range teacherIDs {
			if row.TeacherID == id {
				out = append(out, row)
			}
		}
	}
	return out, nil
}

type fakeEnrollmentRepo struct {
	enrollments []*types.Enrollment
	createErr   error
}

func (f *fakeEnrollmentRepo) Create(ctx context.Context, tx *gorm.DB, enrollments []*types.Enrollment) ([]*types.Enrollment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.enrollments = append(f.enrollments, enrollments...)
	return enrollments, nil
}

func (f *fakeEnrollmentRepo) GetByStudentIDs(ctx context.Context, tx *gorm.DB, studentIDs []uuid.UUID) ([]*types.Enrollment, error) {
	var out []*types.Enrollment
	for _, e := range f.enrollments {
		for _, id := range studentIDs {
			if e.StudentID == id {
				out = append(out, e)
			}
		}
	}
	return out, nil
}

type fakeBadgeRepo struct {
	badges []*types.Badge
}

func (f *fakeBadgeRepo) GetByStudentIDs(ctx context.Context, tx *gorm.DB, studentIDs []uuid.UUID) ([]*types.Badge, error) {
	var out []*types.Badge
	for _, b := range f.badges {
		for _, id := range studentIDs {
			if b.StudentID == id {
				out = append(out, b)
			}
		}
	}
	return out, nil
}

type fakeQuizRepo struct {
	quizzes   []*types.Quiz
	createErr error
}

func (f *fakeQuizRepo) Create(ctx context.Context, tx *gorm.DB, quizzes []*types.Quiz) ([]*types.Quiz, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.quizzes = append(f.quizzes, quizzes...)
	return quizzes, nil
}

func (f *fakeQuizRepo) GetByCourseIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) ([]*types.Quiz, error) {
	var out []*types.Quiz
	for _, q := range f.quizzes {
		for _, id := range courseIDs {
			if q.CourseID == id {
				out = append(out, q)
			}
		}
	}
	return out, nil
}

type fakeQuizQuestionRepo struct {
	questions []*types.QuizQuestion
	createErr error
}

func (f *fakeQuizQuestionRepo) Create(ctx context.Context, tx *gorm.DB, questions []*types.QuizQuestion) ([]*types.QuizQuestion, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.questions = append(f.questions, questions...)
	return questions, nil
}

func (f *fakeQuizQuestionRepo) GetByQuizIDs(ctx context.Context, tx *gorm.DB, quizIDs []uuid.UUID) ([]*types.QuizQuestion, error) {
	var out []*types.QuizQuestion
	for _, q := range f.questions {
		for _, id := range quizIDs {
			if q.QuizID == id {
				out = append(out, q)
			}
		}
	}
	return out, nil
}

type fakeAIClient struct {
	chatResp    *ChatWithVideoResponse
	chatErr     error
	lastChatReq ChatWithVideoRequest

	quizResp    *GenerateQuizResponse
	quizErr     error
	lastQuizReq GenerateQuizRequest
}

func (f *fakeAIClient) ChatWithVideo(ctx context.Context, req ChatWithVideoRequest) (*ChatWithVideoResponse, error) {
	f.lastChatReq = req
	if f.chatErr != nil {
		return nil, f.chatErr
	}
	return f.chatResp, nil
}

func (f *fakeAIClient) GenerateQuiz(ctx context.Context, req GenerateQuizRequest) (*GenerateQuizResponse, error) {
	f.lastQuizReq = req
	if f.quizErr != nil {
		return nil, f.quizErr
	}
	return f.quizResp, nil
}
