package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/spec-kit/ticket-tracker/internal/domain"
	"github.com/spec-kit/ticket-tracker/internal/service"
)

func newCreateCommand() *cobra.Command {
	var title, description, status, priority string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new ticket",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()
			if err := a.requireAuth(); err != nil {
				return err
			}

			ticket, err := a.tickets.Create(cmd.Context(), service.TicketFormInput{
				Title:       title,
				Description: description,
				Status:      domain.TicketStatus(status),
				Priority:    domain.TicketPriority(priority),
			})
			if err != nil {
				return renderError(err)
			}
			fmt.Printf("Created ticket %s\n", ticket.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Ticket title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Ticket description")
	cmd.Flags().StringVarP(&status, "status", "s", string(domain.TicketStatusOpen), "Status (open, in_progress, closed)")
	cmd.Flags().StringVarP(&priority, "priority", "P", string(domain.TicketPriorityMedium), "Priority (low, medium, high)")
	return cmd
}

func newListCommand() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tickets, optionally filtered by status",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()
			if err := a.requireAuth(); err != nil {
				return err
			}

			if _, err := a.tickets.List(cmd.Context()); err != nil {
				return renderError(err)
			}
			printStatusCounts(a.tickets)
			printTickets(a.tickets.Filter(status))
			return nil
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", service.StatusFilterAll, "Filter (all, open, in_progress, closed)")
	return cmd
}

func newUpdateCommand() *cobra.Command {
	var title, description, status, priority string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of an existing ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()
			if err := a.requireAuth(); err != nil {
				return err
			}

			var patch domain.TicketPatch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			if cmd.Flags().Changed("status") {
				value := domain.TicketStatus(status)
				patch.Status = &value
			}
			if cmd.Flags().Changed("priority") {
				value := domain.TicketPriority(priority)
				patch.Priority = &value
			}

			ticket, err := a.tickets.Update(cmd.Context(), args[0], patch)
			if err != nil {
				return renderError(err)
			}
			fmt.Printf("Updated ticket %s\n", ticket.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")
	cmd.Flags().StringVarP(&status, "status", "s", "", "New status (open, in_progress, closed)")
	cmd.Flags().StringVarP(&priority, "priority", "P", "", "New priority (low, medium, high)")
	return cmd
}

func newDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()
			if err := a.requireAuth(); err != nil {
				return err
			}

			removed, err := a.tickets.Delete(cmd.Context(), args[0])
			if err != nil {
				return renderError(err)
			}
			if removed == 0 {
				fmt.Println("No ticket with that id.")
				return nil
			}
			fmt.Println("Ticket deleted.")
			return nil
		},
	}
}

func printStatusCounts(tickets *service.TicketService) {
	counts := tickets.CountByStatus()
	total := 0
	for _, n := range counts {
		total += n
	}
	fmt.Printf("All (%d)  Open (%d)  In Progress (%d)  Closed (%d)\n\n",
		total,
		counts[domain.TicketStatusOpen],
		counts[domain.TicketStatusInProgress],
		counts[domain.TicketStatusClosed])
}

func printTickets(tickets []domain.Ticket) {
	if len(tickets) == 0 {
		fmt.Println("No tickets found.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tPRIORITY\tUPDATED")
	for _, ticket := range tickets {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			ticket.ID,
			ticket.Title,
			ticket.Status,
			ticket.Priority,
			ticket.UpdatedAt.Local().Format(time.DateTime))
	}
	_ = w.Flush()
}
