package service

import (
	"context"
	"testing"

	"twosides/internal/models"
	"twosides/internal/repository"

	"github.com/stretchr/testify/assert"
)

// Repo stubs with overridable fn fields. The noop constructors return
// permissive defaults; tests override only what they exercise.

type userRepoStub struct {
	createFn     func(context.Context, *models.User) error
	getByUIDFn   func(context.Context, string) (*models.User, error)
	getByEmailFn func(context.Context, string) (*models.User, error)
	updateFn     func(context.Context, *models.User) error
	listOthersFn func(context.Context, string) ([]models.User, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByUID(ctx context.Context, uid string) (*models.User, error) {
	return s.getByUIDFn(ctx, uid)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) ListOthers(ctx context.Context, excludeUID string) ([]models.User, error) {
	return s.listOthersFn(ctx, excludeUID)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:     func(_ context.Context, _ *models.User) error { return nil },
		getByUIDFn:   func(_ context.Context, uid string) (*models.User, error) { return &models.User{UID: uid}, nil },
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		updateFn:     func(_ context.Context, _ *models.User) error { return nil },
		listOthersFn: func(_ context.Context, _ string) ([]models.User, error) { return nil, nil },
	}
}

type postRepoStub struct {
	createFn       func(context.Context, *models.Post) error
	getByIDFn      func(context.Context, uint) (*models.Post, error)
	deleteFn       func(context.Context, uint) error
	listGlobalFn   func(context.Context) ([]*models.Post, error)
	listVisibleFn  func(context.Context, string) ([]*models.Post, error)
	listByAuthorFn func(context.Context, string) ([]*models.Post, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) ListGlobal(ctx context.Context) ([]*models.Post, error) {
	return s.listGlobalFn(ctx)
}
func (s *postRepoStub) ListVisible(ctx context.Context, viewerUID string) ([]*models.Post, error) {
	return s.listVisibleFn(ctx, viewerUID)
}
func (s *postRepoStub) ListByAuthor(ctx context.Context, authorUID string) ([]*models.Post, error) {
	return s.listByAuthorFn(ctx, authorUID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id, IsGlobal: true}, nil
		},
		deleteFn:       func(_ context.Context, _ uint) error { return nil },
		listGlobalFn:   func(_ context.Context) ([]*models.Post, error) { return nil, nil },
		listVisibleFn:  func(_ context.Context, _ string) ([]*models.Post, error) { return nil, nil },
		listByAuthorFn: func(_ context.Context, _ string) ([]*models.Post, error) { return nil, nil },
	}
}

type voteRepoStub struct {
	getByPostAndVoterFn func(context.Context, uint, string) (*models.Vote, error)
	castVoteFn          func(context.Context, uint, string, models.VoteColor) (repository.VoteOutcome, error)
}

func (s *voteRepoStub) GetByPostAndVoter(ctx context.Context, postID uint, voterUID string) (*models.Vote, error) {
	return s.getByPostAndVoterFn(ctx, postID, voterUID)
}
func (s *voteRepoStub) CastVote(ctx context.Context, postID uint, voterUID string, color models.VoteColor) (repository.VoteOutcome, error) {
	return s.castVoteFn(ctx, postID, voterUID, color)
}

func noopVoteRepo() *voteRepoStub {
	return &voteRepoStub{
		getByPostAndVoterFn: func(_ context.Context, _ uint, _ string) (*models.Vote, error) { return nil, nil },
		castVoteFn: func(_ context.Context, _ uint, _ string, _ models.VoteColor) (repository.VoteOutcome, error) {
			return repository.VoteCreated, nil
		},
	}
}

type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) (int, error)
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint) ([]models.Comment, error)
	likeFn       func(context.Context, uint, string) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) (int, error) {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) Like(ctx context.Context, commentID uint, viewerUID string) error {
	return s.likeFn(ctx, commentID, viewerUID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:     func(_ context.Context, _ *models.Comment) (int, error) { return 1, nil },
		getByIDFn:    func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		listByPostFn: func(_ context.Context, _ uint) ([]models.Comment, error) { return nil, nil },
		likeFn:       func(_ context.Context, _ uint, _ string) error { return nil },
	}
}

type connRepoStub struct {
	createRequestFn        func(context.Context, *models.ConnectionRequest) error
	getRequestByIDFn       func(context.Context, uint) (*models.ConnectionRequest, error)
	deleteRequestFn        func(context.Context, uint) error
	pendingRequestExistsFn func(context.Context, string, string) (bool, error)
	listRequestsToFn       func(context.Context, string) ([]models.ConnectionRequest, error)
	listRequestsFromFn     func(context.Context, string) ([]models.ConnectionRequest, error)
	acceptRequestFn        func(context.Context, *models.ConnectionRequest) error
	connectionExistsFn     func(context.Context, string, string) (bool, error)
	listConnectionsFn      func(context.Context, string) ([]models.Connection, error)
	listConnectedUsersFn   func(context.Context, string) ([]models.User, error)
	deleteConnectionFn     func(context.Context, string, string) error
}

func (s *connRepoStub) CreateRequest(ctx context.Context, req *models.ConnectionRequest) error {
	return s.createRequestFn(ctx, req)
}
func (s *connRepoStub) GetRequestByID(ctx context.Context, id uint) (*models.ConnectionRequest, error) {
	return s.getRequestByIDFn(ctx, id)
}
func (s *connRepoStub) DeleteRequest(ctx context.Context, id uint) error {
	return s.deleteRequestFn(ctx, id)
}
func (s *connRepoStub) PendingRequestExists(ctx context.Context, fromUID, toUID string) (bool, error) {
	return s.pendingRequestExistsFn(ctx, fromUID, toUID)
}
func (s *connRepoStub) ListRequestsTo(ctx context.Context, uid string) ([]models.ConnectionRequest, error) {
	return s.listRequestsToFn(ctx, uid)
}
func (s *connRepoStub) ListRequestsFrom(ctx context.Context, uid string) ([]models.ConnectionRequest, error) {
	return s.listRequestsFromFn(ctx, uid)
}
func (s *connRepoStub) AcceptRequest(ctx context.Context, req *models.ConnectionRequest) error {
	return s.acceptRequestFn(ctx, req)
}
func (s *connRepoStub) ConnectionExists(ctx context.Context, uidA, uidB string) (bool, error) {
	return s.connectionExistsFn(ctx, uidA, uidB)
}
func (s *connRepoStub) ListConnections(ctx context.Context, uid string) ([]models.Connection, error) {
	return s.listConnectionsFn(ctx, uid)
}
func (s *connRepoStub) ListConnectedUsers(ctx context.Context, uid string) ([]models.User, error) {
	return s.listConnectedUsersFn(ctx, uid)
}
func (s *connRepoStub) DeleteConnection(ctx context.Context, uidA, uidB string) error {
	return s.deleteConnectionFn(ctx, uidA, uidB)
}

func noopConnRepo() *connRepoStub {
	return &connRepoStub{
		createRequestFn: func(_ context.Context, _ *models.ConnectionRequest) error { return nil },
		getRequestByIDFn: func(_ context.Context, id uint) (*models.ConnectionRequest, error) {
			return &models.ConnectionRequest{ID: id}, nil
		},
		deleteRequestFn:        func(_ context.Context, _ uint) error { return nil },
		pendingRequestExistsFn: func(_ context.Context, _, _ string) (bool, error) { return false, nil },
		listRequestsToFn:       func(_ context.Context, _ string) ([]models.ConnectionRequest, error) { return nil, nil },
		listRequestsFromFn:     func(_ context.Context, _ string) ([]models.ConnectionRequest, error) { return nil, nil },
		acceptRequestFn:        func(_ context.Context, _ *models.ConnectionRequest) error { return nil },
		connectionExistsFn:     func(_ context.Context, _, _ string) (bool, error) { return false, nil },
		listConnectionsFn:      func(_ context.Context, _ string) ([]models.Connection, error) { return nil, nil },
		listConnectedUsersFn:   func(_ context.Context, _ string) ([]models.User, error) { return nil, nil },
		deleteConnectionFn:     func(_ context.Context, _, _ string) error { return nil },
	}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	assert.Error(t, err)
	assert.True(t, models.IsCode(err, code), "expected code %s, got %v", code, err)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertCode(t, err, models.CodeValidation)
}

func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	assertCode(t, err, models.CodeUnauthorized)
}
