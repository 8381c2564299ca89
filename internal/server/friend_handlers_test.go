package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"steamfinder/internal/models"
	"steamfinder/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newFriendTestApp(userRepo *MockUserRepository, friendRepo *MockFriendRepository) (*fiber.App, *Server) {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", uint(1))
		return c.Next()
	})

	s := &Server{
		friendService: service.NewFriendService(friendRepo, userRepo),
	}
	app.Post("/friends/requests/:userId", s.SendFriendRequest)
	app.Post("/friends/requests/:requestId/accept", s.AcceptFriendRequest)
	app.Post("/friends/requests/:userId/decline", s.DeclineFriendRequest)
	return app, s
}

func TestSendFriendRequest(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		friendRepo := new(MockFriendRepository)
		userRepo.On("GetByID", mock.Anything, uint(2)).Return(&models.User{ID: 2}, nil)
		friendRepo.On("GetFriendshipBetweenUsers", mock.Anything, uint(1), uint(2)).Return(nil, nil)
		friendRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(1).(*models.Friendship).ID = 9
		}).Return(nil)
		friendRepo.On("GetByID", mock.Anything, uint(9)).Return(&models.Friendship{
			ID: 9, RequesterID: 1, AddresseeID: 2, Status: models.FriendshipStatusPending,
		}, nil)

		app, _ := newFriendTestApp(userRepo, friendRepo)
		req := httptest.NewRequest(http.MethodPost, "/friends/requests/2", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("Duplicate Is OK Not Error", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		friendRepo := new(MockFriendRepository)
		userRepo.On("GetByID", mock.Anything, uint(2)).Return(&models.User{ID: 2}, nil)
		friendRepo.On("GetFriendshipBetweenUsers", mock.Anything, uint(1), uint(2)).Return(&models.Friendship{
			ID: 9, RequesterID: 1, AddresseeID: 2, Status: models.FriendshipStatusPending,
		}, nil)

		app, _ := newFriendTestApp(userRepo, friendRepo)
		req := httptest.NewRequest(http.MethodPost, "/friends/requests/2", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			AlreadyExists bool `json:"already_exists"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.True(t, body.AlreadyExists)
		friendRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Self Request", func(t *testing.T) {
		app, _ := newFriendTestApp(new(MockUserRepository), new(MockFriendRepository))
		req := httptest.NewRequest(http.MethodPost, "/friends/requests/1", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Target Missing", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByID", mock.Anything, uint(99)).Return(nil, models.NewNotFoundError("User", 99))

		app, _ := newFriendTestApp(userRepo, new(MockFriendRepository))
		req := httptest.NewRequest(http.MethodPost, "/friends/requests/99", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestAcceptFriendRequest(t *testing.T) {
	t.Run("Addressee Accepts", func(t *testing.T) {
		friendRepo := new(MockFriendRepository)
		friendRepo.On("GetByID", mock.Anything, uint(9)).Return(&models.Friendship{
			ID: 9, RequesterID: 2, AddresseeID: 1, Status: models.FriendshipStatusPending,
		}, nil).Once()
		friendRepo.On("UpdateStatus", mock.Anything, uint(9), models.FriendshipStatusAccepted).Return(nil)
		friendRepo.On("GetByID", mock.Anything, uint(9)).Return(&models.Friendship{
			ID: 9, RequesterID: 2, AddresseeID: 1, Status: models.FriendshipStatusAccepted,
		}, nil)

		app, _ := newFriendTestApp(new(MockUserRepository), friendRepo)
		req := httptest.NewRequest(http.MethodPost, "/friends/requests/9/accept", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Requester Cannot Accept", func(t *testing.T) {
		friendRepo := new(MockFriendRepository)
		friendRepo.On("GetByID", mock.Anything, uint(9)).Return(&models.Friendship{
			ID: 9, RequesterID: 1, AddresseeID: 2, Status: models.FriendshipStatusPending,
		}, nil)

		app, _ := newFriendTestApp(new(MockUserRepository), friendRepo)
		req := httptest.NewRequest(http.MethodPost, "/friends/requests/9/accept", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestDeclineFriendRequest(t *testing.T) {
	friendRepo := new(MockFriendRepository)
	friendRepo.On("DeletePending", mock.Anything, uint(2), uint(1)).Return(nil)

	app, _ := newFriendTestApp(new(MockUserRepository), friendRepo)

	// Double decline stays 204 both times.
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/friends/requests/2/decline", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	}
}
