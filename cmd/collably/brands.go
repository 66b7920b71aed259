package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ramsey-B/collably/pkg/models"
	"github.com/Ramsey-B/collably/pkg/query"
)

type listFlags struct {
	page    int
	perPage int
	search  string
}

func (l *listFlags) bind(cmd *cobra.Command) {
	cmd.Flags().IntVar(&l.page, "page", 1, "page to show")
	cmd.Flags().IntVar(&l.perPage, "per-page", 0, "rows per page (defaults to PAGE_SIZE)")
	cmd.Flags().StringVar(&l.search, "search", "", "case-insensitive text filter")
}

func (l listFlags) size(a *app) int {
	if l.perPage > 0 {
		return l.perPage
	}
	return a.Config.PageSize
}

func newBrandsCommand(opts *rootOptions) *cobra.Command {
	brands := &cobra.Command{
		Use:   "brands",
		Short: "Manage brands",
	}
	brands.AddCommand(
		newBrandsListCommand(opts),
		newBrandsGetCommand(opts),
		newBrandsCreateCommand(opts),
		newBrandsUpdateCommand(opts),
		newBrandsDeleteCommand(opts),
	)
	return brands
}

func newBrandsListCommand(opts *rootOptions) *cobra.Command {
	var list listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List brands",
		Args:  cobra.NoArgs,
		RunE: action(opts, func(cmd *cobra.Command, _ []string, a *app) error {
			brands, err := a.Dashboard.FetchAllBrands(cmd.Context())
			if err != nil {
				return err
			}

			filtered := query.BrandFilter{Search: list.search}.Apply(brands)
			return printPage(newPrinter(cmd, opts), query.Paginate(filtered, list.page, list.size(a)), brandTable)
		}),
	}

	list.bind(cmd)
	return cmd
}

func newBrandsGetCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one brand",
		Args:  cobra.ExactArgs(1),
		RunE: action(opts, func(cmd *cobra.Command, args []string, a *app) error {
			brand, err := a.Dashboard.FetchBrand(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return newPrinter(cmd, opts).print(brand, func() table {
				return brandDetail(brand)
			})
		}),
	}
}

type brandFlags struct {
	input models.BrandInput
	logo  string
}

func (f *brandFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.input.BrandName, "name", "", "brand name")
	flags.StringVar(&f.input.BrandCategory, "category", "", "brand category")
	flags.StringVar(&f.input.ContactEmail, "email", "", "contact email, also the login")
	flags.StringVar(&f.input.BrandDescription, "description", "", "brand description")
	flags.StringVar(&f.input.BrandWebsite, "website", "", "website URL")
	flags.StringVar(&f.input.BrandPhoneNumber, "phone", "", "phone number")
	flags.StringVar(&f.input.GSTNumber, "gst", "", "GST number")
	flags.StringVar(&f.input.Password, "password", "", "login password")
	flags.StringVar(&f.input.SocialMediaLinks.Facebook, "facebook", "", "Facebook URL")
	flags.StringVar(&f.input.SocialMediaLinks.Twitter, "twitter", "", "Twitter URL")
	flags.StringVar(&f.input.SocialMediaLinks.Instagram, "instagram", "", "Instagram URL")
	flags.StringVar(&f.input.SocialMediaLinks.Linkedin, "linkedin", "", "LinkedIn URL")
	flags.StringVar(&f.logo, "logo", "", "logo image file to upload")
}

// merge overlays the flags the user set onto an existing brand
func (f *brandFlags) merge(cmd *cobra.Command, brand models.Brand) models.BrandInput {
	input := models.BrandInput{
		BrandName:        brand.BrandName,
		BrandDescription: brand.BrandDescription,
		BrandCategory:    brand.BrandCategory,
		ContactEmail:     brand.ContactEmail,
		BrandWebsite:     brand.BrandWebsite,
		BrandPhoneNumber: brand.BrandPhoneNumber,
		SocialMediaLinks: brand.SocialMediaLinks,
		GSTNumber:        brand.GSTNumber,
	}

	set := map[string]func(){
		"name":        func() { input.BrandName = f.input.BrandName },
		"category":    func() { input.BrandCategory = f.input.BrandCategory },
		"email":       func() { input.ContactEmail = f.input.ContactEmail },
		"description": func() { input.BrandDescription = f.input.BrandDescription },
		"website":     func() { input.BrandWebsite = f.input.BrandWebsite },
		"phone":       func() { input.BrandPhoneNumber = f.input.BrandPhoneNumber },
		"gst":         func() { input.GSTNumber = f.input.GSTNumber },
		"password":    func() { input.Password = f.input.Password },
		"facebook":    func() { input.SocialMediaLinks.Facebook = f.input.SocialMediaLinks.Facebook },
		"twitter":     func() { input.SocialMediaLinks.Twitter = f.input.SocialMediaLinks.Twitter },
		"instagram":   func() { input.SocialMediaLinks.Instagram = f.input.SocialMediaLinks.Instagram },
		"linkedin":    func() { input.SocialMediaLinks.Linkedin = f.input.SocialMediaLinks.Linkedin },
	}
	for name, apply := range set {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}

	input.Logo = attachment("brandLogo", f.logo)
	return input
}

func newBrandsCreateCommand(opts *rootOptions) *cobra.Command {
	var flags brandFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a brand",
		Args:  cobra.NoArgs,
		RunE: action(opts, func(cmd *cobra.Command, _ []string, a *app) error {
			input := flags.input
			input.Logo = attachment("brandLogo", flags.logo)

			brand, err := a.Dashboard.CreateBrand(cmd.Context(), input)
			if err != nil {
				return err
			}
			return newPrinter(cmd, opts).print(brand, func() table { return brandDetail(brand) })
		}),
	}

	flags.bind(cmd)
	return cmd
}

func newBrandsUpdateCommand(opts *rootOptions) *cobra.Command {
	var flags brandFlags

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a brand, keeping fields whose flags are not set",
		Args:  cobra.ExactArgs(1),
		RunE: action(opts, func(cmd *cobra.Command, args []string, a *app) error {
			existing, err := a.Dashboard.FetchBrand(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			brand, err := a.Dashboard.UpdateBrand(cmd.Context(), args[0], flags.merge(cmd, existing))
			if err != nil {
				return err
			}
			return newPrinter(cmd, opts).print(brand, func() table { return brandDetail(brand) })
		}),
	}

	flags.bind(cmd)
	return cmd
}

func newBrandsDeleteCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a brand",
		Args:  cobra.ExactArgs(1),
		RunE: action(opts, func(cmd *cobra.Command, args []string, a *app) error {
			ok, err := confirm(cmd, opts, fmt.Sprintf("Delete brand %s?", args[0]))
			if err != nil || !ok {
				return err
			}
			if err := a.Dashboard.DeleteBrand(cmd.Context(), args[0]); err != nil {
				return err
			}
			return newPrinter(cmd, opts).message("Brand deleted successfully")
		}),
	}
}

func brandTable(brands []models.Brand) table {
	t := table{headers: []string{"ID", "NAME", "CATEGORY", "EMAIL", "WEBSITE"}}
	for _, b := range brands {
		t.rows = append(t.rows, []string{b.ID, b.BrandName, b.BrandCategory, b.ContactEmail, b.BrandWebsite})
	}
	return t
}

func brandDetail(b models.Brand) table {
	return table{
		headers: []string{"FIELD", "VALUE"},
		rows: [][]string{
			{"id", b.ID},
			{"name", b.BrandName},
			{"category", b.BrandCategory},
			{"email", b.ContactEmail},
			{"description", truncate(b.BrandDescription, 60)},
			{"website", b.BrandWebsite},
			{"phone", b.BrandPhoneNumber},
			{"gst", b.GSTNumber},
			{"logo", b.BrandLogo},
			{"facebook", b.SocialMediaLinks.Facebook},
			{"twitter", b.SocialMediaLinks.Twitter},
			{"instagram", b.SocialMediaLinks.Instagram},
			{"linkedin", b.SocialMediaLinks.Linkedin},
		},
	}
}

// attachment returns nil when no file was given
func attachment(field, path string) *models.Attachment {
	if path == "" {
		return nil
	}
	return &models.Attachment{Field: field, Path: path}
}
