package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ramsey-B/collably/pkg/models"
	"github.com/Ramsey-B/collably/pkg/query"
)

func newBlogsCommand(opts *rootOptions) *cobra.Command {
	blogs := &cobra.Command{
		Use:   "blogs",
		Short: "Manage blog posts",
	}
	blogs.AddCommand(
		newBlogsListCommand(opts),
		newBlogsGetCommand(opts),
		newBlogsCreateCommand(opts),
		newBlogsUpdateCommand(opts),
		newBlogsDeleteCommand(opts),
	)
	return blogs
}

func newBlogsListCommand(opts *rootOptions) *cobra.Command {
	var (
		list     listFlags
		category string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List blog posts",
		Args:  cobra.NoArgs,
		RunE: action(opts, func(cmd *cobra.Command, _ []string, a *app) error {
			blogs, err := a.Dashboard.FetchAllBlogs(cmd.Context())
			if err != nil {
				return err
			}

			filtered := query.BlogFilter{Category: category, Search: list.search}.Apply(blogs)
			return printPage(newPrinter(cmd, opts), query.Paginate(filtered, list.page, list.size(a)), blogTable)
		}),
	}

	list.bind(cmd)
	cmd.Flags().StringVar(&category, "category", "", "blog category")
	return cmd
}

func newBlogsGetCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one blog post",
		Args:  cobra.ExactArgs(1),
		RunE: action(opts, func(cmd *cobra.Command, args []string, a *app) error {
			blog, err := a.Dashboard.FetchBlog(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return newPrinter(cmd, opts).print(blog, func() table { return blogDetail(blog) })
		}),
	}
}

type blogFlags struct {
	input models.BlogInput
	image string
}

func (f *blogFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.input.Title, "title", "", "title")
	flags.StringVar(&f.input.Content, "content", "", "post body")
	flags.StringVar(&f.input.Category, "category", "", "category")
	flags.StringVar(&f.input.Author, "author", "", "author, defaults to the logged-in account")
	flags.StringVar(&f.image, "image", "", "cover image file to upload")
}

func (f *blogFlags) merge(cmd *cobra.Command, blog models.Blog) models.BlogInput {
	input := models.BlogInput{
		Title:    blog.Title,
		Content:  blog.Content,
		Category: blog.Category,
		Author:   blog.Author,
	}

	set := map[string]func(){
		"title":    func() { input.Title = f.input.Title },
		"content":  func() { input.Content = f.input.Content },
		"category": func() { input.Category = f.input.Category },
		"author":   func() { input.Author = f.input.Author },
	}
	for name, apply := range set {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}

	input.Image = attachment("image", f.image)
	return input
}

func newBlogsCreateCommand(opts *rootOptions) *cobra.Command {
	var flags blogFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Publish a blog post",
		Args:  cobra.NoArgs,
		RunE: action(opts, func(cmd *cobra.Command, _ []string, a *app) error {
			input := flags.input
			input.Image = attachment("image", flags.image)

			blog, err := a.Dashboard.CreateBlog(cmd.Context(), input)
			if err != nil {
				return err
			}
			return newPrinter(cmd, opts).print(blog, func() table { return blogDetail(blog) })
		}),
	}

	flags.bind(cmd)
	return cmd
}

func newBlogsUpdateCommand(opts *rootOptions) *cobra.Command {
	var flags blogFlags

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a blog post, keeping fields whose flags are not set",
		Args:  cobra.ExactArgs(1),
		RunE: action(opts, func(cmd *cobra.Command, args []string, a *app) error {
			existing, err := a.Dashboard.FetchBlog(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			blog, err := a.Dashboard.UpdateBlog(cmd.Context(), args[0], flags.merge(cmd, existing))
			if err != nil {
				return err
			}
			return newPrinter(cmd, opts).print(blog, func() table { return blogDetail(blog) })
		}),
	}

	flags.bind(cmd)
	return cmd
}

func newBlogsDeleteCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a blog post",
		Args:  cobra.ExactArgs(1),
		RunE: action(opts, func(cmd *cobra.Command, args []string, a *app) error {
			ok, err := confirm(cmd, opts, fmt.Sprintf("Delete blog %s?", args[0]))
			if err != nil || !ok {
				return err
			}
			if err := a.Dashboard.DeleteBlog(cmd.Context(), args[0]); err != nil {
				return err
			}
			return newPrinter(cmd, opts).message("Blog deleted successfully")
		}),
	}
}

func blogTable(blogs []models.Blog) table {
	t := table{headers: []string{"ID", "TITLE", "CATEGORY", "AUTHOR", "CREATED"}}
	for _, b := range blogs {
		t.rows = append(t.rows, []string{b.ID, truncate(b.Title, 40), b.Category, b.Author, b.CreatedAt})
	}
	return t
}

func blogDetail(b models.Blog) table {
	return table{
		headers: []string{"FIELD", "VALUE"},
		rows: [][]string{
			{"id", b.ID},
			{"title", b.Title},
			{"category", b.Category},
			{"author", b.Author},
			{"image", b.Image},
			{"created", b.CreatedAt},
			{"updated", b.UpdatedAt},
			{"content", truncate(b.Content, 80)},
		},
	}
}
