package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	roomsCmd := &cobra.Command{Use: "rooms", Short: "Mood room operations"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Live room populations",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet("/api/rooms")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, data)
			return nil
		},
	}
	roomsCmd.AddCommand(listCmd)

	var userID string
	enterCmd := &cobra.Command{
		Use:   "enter MOOD_ID",
		Short: "Enter a mood room, optionally resolving a resonance match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/rooms/" + args[0]
			if userID != "" {
				path += "?userId=" + userID
			}
			data, err := doGet(path)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, data)
			return nil
		},
	}
	enterCmd.Flags().StringVarP(&userID, "user", "u", "", "User ID for the resonance match")
	roomsCmd.AddCommand(enterCmd)

	rootCmd.AddCommand(roomsCmd)
}
