package main

import (
	"fmt"
	"strconv"
	"time"

	"printflow/internal/core/application/usecases/queries"
	"printflow/internal/core/domain/model/item"
	"printflow/internal/core/domain/model/kernel"

	"github.com/spf13/cobra"
)

func newItemsCommand(ctx *commandContext) *cobra.Command {
	var statusFlag string

	command := &cobra.Command{
		Use:   "items",
		Short: "List items at a production stage in priority order",
		RunE: func(command *cobra.Command, args []string) error {
			status, err := item.ParseStatus(statusFlag)
			if err != nil {
				return err
			}
			query, err := queries.NewListItemsByStatusQuery(status)
			if err != nil {
				return err
			}

			db, closeStore, err := ctx.openStore(false)
			if err != nil {
				return err
			}
			defer closeStore()

			views, err := queries.NewListItemsByStatusQueryHandler(db).Handle(command.Context(), query)
			if err != nil {
				return err
			}
			if len(views) == 0 {
				fmt.Fprintf(command.OutOrStdout(), "No items are %s\n", status)
				return nil
			}
			fmt.Fprintln(command.OutOrStdout(), itemsTable(views))
			return nil
		},
	}

	command.Flags().StringVarP(&statusFlag, "status", "s", item.InQueue.String(), "Production stage, for example \"In Queue\" or printed")
	return command
}

func itemsTable(views []queries.ItemView) string {
	rows := make([][]string, 0, len(views))
	for _, v := range views {
		rows = append(rows, []string{
			v.OrderNumber,
			v.CustomerName,
			v.ProductName,
			v.Name,
			formatDate(v.ShipByDate),
			yesNo(v.IsExpress),
			yesNo(v.NeedsReprint()),
			v.ID.String(),
		})
	}
	return renderTable(
		[]string{"Order", "Customer", "Product", "Item", "Ship By", "Express", "Reprint", "Item ID"},
		rows,
		nil,
	)
}

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "history <itemId>",
		Short: "Show the status history of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			itemID, err := parseID(args[0])
			if err != nil {
				return err
			}
			query, err := queries.NewGetItemHistoryQuery(itemID)
			if err != nil {
				return err
			}

			db, closeStore, err := ctx.openStore(false)
			if err != nil {
				return err
			}
			defer closeStore()

			entries, err := queries.NewGetItemHistoryQueryHandler(db).Handle(command.Context(), query)
			if err != nil {
				return err
			}
			fmt.Fprintln(command.OutOrStdout(), historyTable(entries))
			return nil
		},
	}
}

func historyTable(entries []queries.HistoryEntry) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		from := "-"
		if e.OldStatus != nil {
			from = e.OldStatus.String()
		}
		rows = append(rows, []string{
			strconv.FormatUint(e.Seq, 10),
			from,
			e.NewStatus.String(),
			e.ChangedAt.UTC().Format(time.DateTime),
			e.Reason,
		})
	}
	return renderTable(
		[]string{"#", "From", "To", "Changed At (UTC)", "Reason"},
		rows,
		[]columnAlignment{alignRight},
	)
}

func newNextNumberCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "next-number",
		Short: "Print the order number the next generated order will get",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, args []string) error {
			db, closeStore, err := ctx.openStore(false)
			if err != nil {
				return err
			}
			defer closeStore()

			number, err := queries.NewNextOrderNumberQueryHandler(db).Handle(command.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(command.OutOrStdout(), number)
			return nil
		},
	}
}

func parseID(raw string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, fmt.Errorf("item id %q: %w", raw, err)
	}
	return id, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(time.DateOnly)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return ""
}
