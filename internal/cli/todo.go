package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flooyd/gameserver/internal/ws"
)

func newTodoCmd() *cobra.Command {
	var (
		name     string
		password string
	)

	cmd := &cobra.Command{
		Use:   "todo",
		Short: "Inspect and manage the shared todo board",
	}

	cmd.PersistentFlags().StringVar(&name, "name", "", "player name")
	cmd.PersistentFlags().StringVar(&password, "password", "", "player password")
	_ = cmd.MarkPersistentFlagRequired("name")
	_ = cmd.MarkPersistentFlagRequired("password")

	cmd.AddCommand(newTodoListCmd(&name, &password))
	cmd.AddCommand(newTodoCreateCmd(&name, &password))

	return cmd
}

func newTodoListCmd(name, password *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all todos on the board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := NewClient(serverURL, timeout)
			if err := client.Dial(); err != nil {
				return err
			}
			defer client.Close()

			if _, err := client.Login(*name, *password); err != nil {
				return err
			}

			if err := client.Send(ws.EventGetTodos, nil); err != nil {
				return err
			}
			env, err := client.WaitFor(ws.EventTodos)
			if err != nil {
				return err
			}
			return printJSON(cmd, env.Data)
		},
	}
}

func newTodoCreateCmd(name, password *string) *cobra.Command {
	var x, y float64

	cmd := &cobra.Command{
		Use:   "create <task>",
		Short: "Create a new todo on the board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := NewClient(serverURL, timeout)
			if err := client.Dial(); err != nil {
				return err
			}
			defer client.Close()

			view, err := client.Login(*name, *password)
			if err != nil {
				return err
			}

			payload := ws.CreateTodoPayload{Task: args[0], X: x, Y: y, PlayerID: view.ID}
			if err := client.Send(ws.EventCreateTodo, payload); err != nil {
				return err
			}

			env, err := client.WaitFor(ws.EventTodoCreated, ws.EventTodoCreationFailed)
			if err != nil {
				return err
			}
			if env.Event == ws.EventTodoCreationFailed {
				return fmt.Errorf("todo creation failed")
			}
			return printJSON(cmd, env.Data)
		},
	}

	cmd.Flags().Float64Var(&x, "x", 0, "board x position")
	cmd.Flags().Float64Var(&y, "y", 0, "board y position")

	return cmd
}
