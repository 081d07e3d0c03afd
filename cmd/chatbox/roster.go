package main

import (
	"chat-box/domain"
	"chat-box/domain/event"
	"chat-box/roster"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func newRosterCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "roster",
		Short: "List the chats of the roster file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, file, err := setup()
			if err != nil {
				return err
			}
			printRoster(cmd.OutOrStdout(), file)
			return nil
		},
	}
}

func printRoster(w io.Writer, file *roster.File) {
	counts := lo.CountValuesBy(
		lo.Filter(file.Events(), func(e event.DomainEvent, _ int) bool {
			_, ok := e.(event.MessagePosted)
			return ok
		}),
		func(e event.DomainEvent) domain.ChatID { return e.ChatID() },
	)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Name", "Online", "Messages", "Last seen"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for _, c := range file.Chats {
		table.Append([]string{
			string(c.ID),
			c.Name,
			lo.Ternary(c.Online, "yes", "no"),
			strconv.Itoa(counts[c.ID]),
			c.LastSeen,
		})
	}
	table.Render()
}
