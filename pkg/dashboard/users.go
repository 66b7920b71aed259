package dashboard

import (
	"context"
	"net/url"
	"strings"

	"github.com/Ramsey-B/collably/pkg/api"
	"github.com/Ramsey-B/collably/pkg/models"
	"github.com/Ramsey-B/collably/pkg/store"
)

type userActions struct {
	fetchAll *store.AsyncAction[struct{}, []models.User]
	fetchOne *store.AsyncAction[string, models.User]
	create   *store.AsyncAction[models.UserInput, models.User]
	update   *store.AsyncAction[models.UserInput, models.User]
	follow   *store.AsyncAction[string, models.User]
	unfollow *store.AsyncAction[string, models.User]
	search   *store.AsyncAction[string, []models.User]
}

func newUserActions(client Caller) userActions {
	return userActions{
		fetchAll: &store.AsyncAction[struct{}, []models.User]{
			Type:  "users/fetchAllUsers",
			Slice: SliceUsers,
			Op:    store.OpFetchAll,
			Key:   noKey[struct{}],
			Run: func(ctx context.Context, _ struct{}) ([]models.User, error) {
				return fetch[[]models.User](ctx, client, api.UsersList, api.Request{})
			},
		},
		fetchOne: &store.AsyncAction[string, models.User]{
			Type:  "users/fetchUser",
			Slice: SliceUsers,
			Op:    store.OpFetchOne,
			Key:   idKey,
			Run: func(ctx context.Context, id string) (models.User, error) {
				return fetch[models.User](ctx, client, api.UsersGet, byID(id))
			},
		},
		create: &store.AsyncAction[models.UserInput, models.User]{
			Type:  "users/createUser",
			Slice: SliceUsers,
			Op:    store.OpCreate,
			Key:   func(input models.UserInput) string { return strings.ToLower(input.Email) },
			Run: func(ctx context.Context, input models.UserInput) (models.User, error) {
				req, err := withBody(input, input.Avatar, nil)
				if err != nil {
					return models.User{}, err
				}
				return fetch[models.User](ctx, client, api.UsersCreate, req)
			},
		},
		update: &store.AsyncAction[models.UserInput, models.User]{
			Type:  "users/updateUser",
			Slice: SliceUsers,
			Op:    store.OpUpdate,
			Key:   func(input models.UserInput) string { return input.ID },
			Run: func(ctx context.Context, input models.UserInput) (models.User, error) {
				req, err := withBody(input, input.Avatar, nil)
				if err != nil {
					return models.User{}, err
				}
				return fetch[models.User](ctx, client, api.UsersUpdate, req)
			},
		},
		follow: &store.AsyncAction[string, models.User]{
			Type:  "users/followUser",
			Slice: SliceUsers,
			Op:    store.OpReplace,
			Key:   idKey,
			Run: func(ctx context.Context, id string) (models.User, error) {
				return fetch[models.User](ctx, client, api.UsersFollow, byID(id))
			},
		},
		unfollow: &store.AsyncAction[string, models.User]{
			Type:  "users/unfollowUser",
			Slice: SliceUsers,
			Op:    store.OpReplace,
			Key:   idKey,
			Run: func(ctx context.Context, id string) (models.User, error) {
				return fetch[models.User](ctx, client, api.UsersUnfollow, byID(id))
			},
		},
		search: &store.AsyncAction[string, []models.User]{
			Type:  "userSearch/searchUsers",
			Slice: SliceUserSearch,
			Op:    store.OpFetchAll,
			Key:   noKey[string],
			Scope: idKey,
			Run: func(ctx context.Context, username string) ([]models.User, error) {
				return fetch[[]models.User](ctx, client, api.UsersSearch, api.Request{
					Query: url.Values{"username": {username}},
				})
			},
		},
	}
}

// FetchAllUsers loads every user. A response without a users list yields an empty list.
func (d *Dashboard) FetchAllUsers(ctx context.Context) ([]models.User, error) {
	return d.users.fetchAll.Dispatch(ctx, d.dispatcher, struct{}{})
}

// FetchUser loads one user as the slice's current record
func (d *Dashboard) FetchUser(ctx context.Context, id string) (models.User, error) {
	return d.users.fetchOne.Dispatch(ctx, d.dispatcher, id)
}

// CreateUser validates input and registers the user
func (d *Dashboard) CreateUser(ctx context.Context, input models.UserInput) (models.User, error) {
	if err := models.Validate(input); err != nil {
		return models.User{}, err
	}
	return d.users.create.Dispatch(ctx, d.dispatcher, input)
}

// UpdateUser validates input and updates the profile named by input.ID
func (d *Dashboard) UpdateUser(ctx context.Context, input models.UserInput) (models.User, error) {
	if err := models.Validate(input); err != nil {
		return models.User{}, err
	}
	return d.users.update.Dispatch(ctx, d.dispatcher, input)
}

// FollowUser follows the user with the given id as the logged-in account
func (d *Dashboard) FollowUser(ctx context.Context, id string) (models.User, error) {
	return d.users.follow.Dispatch(ctx, d.dispatcher, id)
}

// UnfollowUser stops following the user with the given id
func (d *Dashboard) UnfollowUser(ctx context.Context, id string) (models.User, error) {
	return d.users.unfollow.Dispatch(ctx, d.dispatcher, id)
}

// SearchUsers loads users whose username matches into the userSearch slice. A newer
// search supersedes one still in flight.
func (d *Dashboard) SearchUsers(ctx context.Context, username string) ([]models.User, error) {
	return d.users.search.Dispatch(ctx, d.dispatcher, username)
}
