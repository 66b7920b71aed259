package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Ramsey-B/collably/pkg/models"
	"github.com/Ramsey-B/collably/pkg/query"
)

func newOrdersCommand(opts *rootOptions) *cobra.Command {
	orders := &cobra.Command{
		Use:   "orders",
		Short: "View orders",
	}
	orders.AddCommand(newOrdersListCommand(opts), newOrdersGetCommand(opts))
	return orders
}

func newOrdersListCommand(opts *rootOptions) *cobra.Command {
	var (
		list    listFlags
		brandID string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List orders; brand sessions see orders containing their products",
		Args:  cobra.NoArgs,
		RunE: action(opts, func(cmd *cobra.Command, _ []string, a *app) error {
			brandSession, err := isBrand(cmd, a)
			if err != nil {
				return err
			}

			var orders []models.Order
			if brandSession || brandID != "" {
				orders, err = a.Dashboard.FetchBrandOrders(cmd.Context(), brandID)
			} else {
				orders, err = a.Dashboard.FetchAllOrders(cmd.Context())
			}
			if err != nil {
				return err
			}

			return printPage(newPrinter(cmd, opts), query.Paginate(orders, list.page, list.size(a)), orderTable)
		}),
	}

	list.bind(cmd)
	cmd.Flags().StringVar(&brandID, "brand-id", "", "only orders containing this brand's products")
	return cmd
}

func newOrdersGetCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one order",
		Args:  cobra.ExactArgs(1),
		RunE: action(opts, func(cmd *cobra.Command, args []string, a *app) error {
			order, err := a.Dashboard.FetchOrder(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return newPrinter(cmd, opts).print(order, func() table { return orderDetail(order) })
		}),
	}
}

func orderTable(orders []models.Order) table {
	t := table{headers: []string{"ID", "CUSTOMER", "ITEMS", "TOTAL", "PAYMENT", "STATUS", "CREATED"}}
	for _, o := range orders {
		t.rows = append(t.rows, []string{
			o.ID,
			o.User.Username,
			strconv.Itoa(len(o.Items)),
			formatPrice(o.TotalAmount),
			o.PaymentStatus,
			o.OrderStatus,
			o.CreatedAt,
		})
	}
	return t
}

func orderDetail(o models.Order) table {
	t := table{
		headers: []string{"FIELD", "VALUE"},
		rows: [][]string{
			{"id", o.ID},
			{"customer", fmt.Sprintf("%s (%s)", o.User.Fullname, o.User.Username)},
			{"total", formatPrice(o.TotalAmount)},
			{"shipping address", o.ShippingAddress},
			{"payment", o.PaymentStatus},
			{"status", o.OrderStatus},
			{"created", o.CreatedAt},
		},
	}
	for i, item := range o.Items {
		t.rows = append(t.rows, []string{
			fmt.Sprintf("item %d", i+1),
			fmt.Sprintf("%s x%d @ %s", item.Product, item.Quantity, formatPrice(item.Price)),
		})
	}
	return t
}
