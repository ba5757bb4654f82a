package service

import (
	"context"
	"strings"
	"testing"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPostRepository is a mock of the repository.PostRepository interface
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCreatePostValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   CreatePostInput
		wantErr string
	}{
		{
			name:    "empty subject",
			input:   CreatePostInput{Subject: "  ", Content: "body", UserID: 1},
			wantErr: "Subject is required",
		},
		{
			name:    "subject too long",
			input:   CreatePostInput{Subject: strings.Repeat("x", 201), Content: "body", UserID: 1},
			wantErr: "Subject too long (max 200 characters)",
		},
		{
			name:    "empty content",
			input:   CreatePostInput{Subject: "hello", Content: "", UserID: 1},
			wantErr: "Content is required",
		},
		{
			name:    "content too long",
			input:   CreatePostInput{Subject: "hello", Content: strings.Repeat("x", 20001), UserID: 1},
			wantErr: "Content too long (max 20000 characters)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockPostRepository)
			svc := NewPostService(repo)

			post, err := svc.CreatePost(context.Background(), tt.input)
			assert.Nil(t, post)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			repo.AssertNotCalled(t, "Create")
		})
	}
}

func TestCreatePostTrimsAndPersists(t *testing.T) {
	repo := new(MockPostRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Post) bool {
		return p.Subject == "hello" && p.Content == "body" && p.UserID == 3
	})).Return(nil)

	svc := NewPostService(repo)
	post, err := svc.CreatePost(context.Background(), CreatePostInput{
		Subject: "  hello  ",
		Content: "\nbody\n",
		UserID:  3,
	})

	require.NoError(t, err)
	assert.Equal(t, "hello", post.Subject)
	repo.AssertExpectations(t)
}

func TestDeletePostOwnershipCheck(t *testing.T) {
	repo := new(MockPostRepository)
	repo.On("GetByID", mock.Anything, uint(10)).Return(&models.Post{ID: 10, UserID: 1}, nil)

	svc := NewPostService(repo)
	err := svc.DeletePost(context.Background(), 10, 2)

	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "FORBIDDEN", appErr.Code)
	repo.AssertNotCalled(t, "Delete")
}

func TestDeletePostByOwner(t *testing.T) {
	repo := new(MockPostRepository)
	repo.On("GetByID", mock.Anything, uint(10)).Return(&models.Post{ID: 10, UserID: 1}, nil)
	repo.On("Delete", mock.Anything, uint(10)).Return(nil)

	svc := NewPostService(repo)
	require.NoError(t, svc.DeletePost(context.Background(), 10, 1))
	repo.AssertExpectations(t)
}

func TestDeletePostMissing(t *testing.T) {
	repo := new(MockPostRepository)
	repo.On("GetByID", mock.Anything, uint(99)).Return(nil, models.NewNotFoundError("Post", 99))

	svc := NewPostService(repo)
	err := svc.DeletePost(context.Background(), 99, 1)

	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
