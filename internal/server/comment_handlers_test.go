package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"twosides/internal/models"
	"twosides/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCommentRepository is a mock of the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) (int, error) {
	args := m.Called(ctx, comment)
	return args.Int(0), args.Error(1)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockCommentRepository) Like(ctx context.Context, commentID uint, viewerUID string) error {
	args := m.Called(ctx, commentID, viewerUID)
	return args.Error(0)
}

func newCommentTestApp(commentRepo *MockCommentRepository, postRepo *MockPostRepository, connRepo *MockConnectionRepository) *fiber.App {
	app := fiber.New()
	s := &Server{
		commentService: service.NewCommentService(commentRepo, postRepo, connRepo),
	}

	app.Use(func(c *fiber.Ctx) error {
		c.Locals("uid", "viewer-1")
		return c.Next()
	})
	app.Post("/posts/:id/comments", s.CreateComment)
	app.Get("/posts/:id/comments", s.GetThread)
	app.Post("/comments/:commentId/like", s.LikeComment)
	return app
}

func TestCreateCommentHandler(t *testing.T) {
	globalPost := &models.Post{ID: 1, AuthorUID: "author", IsGlobal: true}

	tests := []struct {
		name           string
		body           map[string]any
		mockSetup      func(commentRepo *MockCommentRepository, postRepo *MockPostRepository)
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]any{"text": "good point"},
			mockSetup: func(commentRepo *MockCommentRepository, postRepo *MockPostRepository) {
				postRepo.On("GetByID", mock.Anything, uint(1)).Return(globalPost, nil)
				commentRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
					args.Get(1).(*models.Comment).ID = 7
				}).Return(2, nil)
				commentRepo.On("GetByID", mock.Anything, uint(7)).
					Return(&models.Comment{ID: 7, Text: "good point"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Empty text",
			body:           map[string]any{"text": ""},
			mockSetup:      func(_ *MockCommentRepository, _ *MockPostRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Locked discussion",
			body: map[string]any{"text": "too late"},
			mockSetup: func(commentRepo *MockCommentRepository, postRepo *MockPostRepository) {
				postRepo.On("GetByID", mock.Anything, uint(1)).Return(globalPost, nil)
				commentRepo.On("Create", mock.Anything, mock.Anything).
					Return(0, models.NewDiscussionLockedError(1))
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "Invalid parent",
			body: map[string]any{"text": "reply", "parent_id": 99},
			mockSetup: func(commentRepo *MockCommentRepository, postRepo *MockPostRepository) {
				postRepo.On("GetByID", mock.Anything, uint(1)).Return(globalPost, nil)
				commentRepo.On("Create", mock.Anything, mock.Anything).
					Return(0, models.NewInvalidParentError(99))
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commentRepo := new(MockCommentRepository)
			postRepo := new(MockPostRepository)
			connRepo := new(MockConnectionRepository)
			tt.mockSetup(commentRepo, postRepo)
			app := newCommentTestApp(commentRepo, postRepo, connRepo)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/posts/1/comments", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestLikeCommentHandler(t *testing.T) {
	globalPost := &models.Post{ID: 1, AuthorUID: "author", IsGlobal: true}

	tests := []struct {
		name           string
		mockSetup      func(commentRepo *MockCommentRepository, postRepo *MockPostRepository)
		expectedStatus int
	}{
		{
			name: "Success",
			mockSetup: func(commentRepo *MockCommentRepository, postRepo *MockPostRepository) {
				commentRepo.On("GetByID", mock.Anything, uint(3)).
					Return(&models.Comment{ID: 3, PostID: 1, AuthorUID: "author"}, nil)
				postRepo.On("GetByID", mock.Anything, uint(1)).Return(globalPost, nil)
				commentRepo.On("Like", mock.Anything, uint(3), "viewer-1").Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Self like",
			mockSetup: func(commentRepo *MockCommentRepository, _ *MockPostRepository) {
				commentRepo.On("GetByID", mock.Anything, uint(3)).
					Return(&models.Comment{ID: 3, PostID: 1, AuthorUID: "viewer-1"}, nil)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "Already liked",
			mockSetup: func(commentRepo *MockCommentRepository, postRepo *MockPostRepository) {
				commentRepo.On("GetByID", mock.Anything, uint(3)).
					Return(&models.Comment{ID: 3, PostID: 1, AuthorUID: "author"}, nil)
				postRepo.On("GetByID", mock.Anything, uint(1)).Return(globalPost, nil)
				commentRepo.On("Like", mock.Anything, uint(3), "viewer-1").
					Return(models.NewAlreadyLikedError())
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commentRepo := new(MockCommentRepository)
			postRepo := new(MockPostRepository)
			connRepo := new(MockConnectionRepository)
			tt.mockSetup(commentRepo, postRepo)
			app := newCommentTestApp(commentRepo, postRepo, connRepo)

			req := httptest.NewRequest(http.MethodPost, "/comments/3/like", nil)
			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}
