package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flooyd/gameserver/internal/ws"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Register and authenticate players",
	}

	cmd.AddCommand(newPlayerRegisterCmd())
	cmd.AddCommand(newPlayerLoginCmd())

	return cmd
}

func newPlayerRegisterCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "register <name> <password>",
		Short: "Register a new player account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := NewClient(serverURL, timeout)
			if err := client.Dial(); err != nil {
				return err
			}
			defer client.Close()

			payload := ws.RegisterPayload{Name: args[0], Password: args[1], Email: email}
			if err := client.Send(ws.EventRegister, payload); err != nil {
				return err
			}

			env, err := client.WaitFor(ws.EventRegistered, ws.EventRegistrationFailed)
			if err != nil {
				return err
			}
			if env.Event == ws.EventRegistrationFailed {
				return fmt.Errorf("registration failed for %q", args[0])
			}

			return printJSON(cmd, env.Data)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")

	return cmd
}

func newPlayerLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <name> <password>",
		Short: "Log in and show the player state",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := NewClient(serverURL, timeout)
			if err := client.Dial(); err != nil {
				return err
			}
			defer client.Close()

			view, err := client.Login(args[0], args[1])
			if err != nil {
				return err
			}

			data, err := json.Marshal(view)
			if err != nil {
				return err
			}
			return printJSON(cmd, data)
		},
	}
}

func printJSON(cmd *cobra.Command, data []byte) error {
	var buf any
	if err := json.Unmarshal(data, &buf); err != nil {
		return err
	}
	pretty, err := json.MarshalIndent(buf, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(pretty))
	return nil
}
