package dashboard

import (
	"context"

	"github.com/Ramsey-B/collably/pkg/api"
	"github.com/Ramsey-B/collably/pkg/models"
	"github.com/Ramsey-B/collably/pkg/store"
)

type blogActions struct {
	fetchAll *store.AsyncAction[struct{}, []models.Blog]
	fetchOne *store.AsyncAction[string, models.Blog]
	create   *store.AsyncAction[models.BlogInput, models.Blog]
	update   *store.AsyncAction[models.Update[models.BlogInput], models.Blog]
	remove   *store.AsyncAction[string, string]
}

func newBlogActions(client Caller) blogActions {
	return blogActions{
		fetchAll: &store.AsyncAction[struct{}, []models.Blog]{
			Type:  "blogs/fetchAllBlogs",
			Slice: SliceBlogs,
			Op:    store.OpFetchAll,
			Key:   noKey[struct{}],
			Run: func(ctx context.Context, _ struct{}) ([]models.Blog, error) {
				return fetch[[]models.Blog](ctx, client, api.BlogsList, api.Request{})
			},
		},
		fetchOne: &store.AsyncAction[string, models.Blog]{
			Type:  "blogs/fetchBlog",
			Slice: SliceBlogs,
			Op:    store.OpFetchOne,
			Key:   idKey,
			Run: func(ctx context.Context, id string) (models.Blog, error) {
				return fetch[models.Blog](ctx, client, api.BlogsGet, byID(id))
			},
		},
		create: &store.AsyncAction[models.BlogInput, models.Blog]{
			Type:  "blogs/createBlog",
			Slice: SliceBlogs,
			Op:    store.OpCreate,
			Key:   func(input models.BlogInput) string { return input.Title },
			Run: func(ctx context.Context, input models.BlogInput) (models.Blog, error) {
				req, err := withBody(input, input.Image, nil)
				if err != nil {
					return models.Blog{}, err
				}
				return fetch[models.Blog](ctx, client, api.BlogsCreate, req)
			},
		},
		update: &store.AsyncAction[models.Update[models.BlogInput], models.Blog]{
			Type:  "blogs/updateBlog",
			Slice: SliceBlogs,
			Op:    store.OpUpdate,
			Key:   func(u models.Update[models.BlogInput]) string { return u.ID },
			Run: func(ctx context.Context, u models.Update[models.BlogInput]) (models.Blog, error) {
				req, err := withBody(u.Data, u.Data.Image, map[string]string{"id": u.ID})
				if err != nil {
					return models.Blog{}, err
				}
				return fetch[models.Blog](ctx, client, api.BlogsUpdate, req)
			},
		},
		remove: &store.AsyncAction[string, string]{
			Type:  "blogs/deleteBlog",
			Slice: SliceBlogs,
			Op:    store.OpDelete,
			Key:   idKey,
			Run: func(ctx context.Context, id string) (string, error) {
				return remove(ctx, client, api.BlogsDelete, id)
			},
		},
	}
}

// FetchAllBlogs loads every blog
func (d *Dashboard) FetchAllBlogs(ctx context.Context) ([]models.Blog, error) {
	return d.blogs.fetchAll.Dispatch(ctx, d.dispatcher, struct{}{})
}

// FetchBlog loads one blog as the slice's current record
func (d *Dashboard) FetchBlog(ctx context.Context, id string) (models.Blog, error) {
	return d.blogs.fetchOne.Dispatch(ctx, d.dispatcher, id)
}

// CreateBlog validates input and uploads the blog
func (d *Dashboard) CreateBlog(ctx context.Context, input models.BlogInput) (models.Blog, error) {
	if err := models.Validate(input); err != nil {
		return models.Blog{}, err
	}
	return d.blogs.create.Dispatch(ctx, d.dispatcher, input)
}

// UpdateBlog validates input and replaces the blog with the given id
func (d *Dashboard) UpdateBlog(ctx context.Context, id string, input models.BlogInput) (models.Blog, error) {
	if err := models.Validate(input); err != nil {
		return models.Blog{}, err
	}
	return d.blogs.update.Dispatch(ctx, d.dispatcher, models.Update[models.BlogInput]{ID: id, Data: input})
}

// DeleteBlog removes the blog with the given id
func (d *Dashboard) DeleteBlog(ctx context.Context, id string) error {
	_, err := d.blogs.remove.Dispatch(ctx, d.dispatcher, id)
	return err
}

// ClearBlogs resets the blogs slice to its initial state
func (d *Dashboard) ClearBlogs() {
	d.dispatcher.Dispatch(store.Reset("blogs/clearBlogs", SliceBlogs))
}
