package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	chatsCmd := &cobra.Command{Use: "chats", Short: "Ephemeral chat operations"}

	var initiatorID, targetID, moodID string
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start a chat from a resonance match",
		RunE: func(cmd *cobra.Command, args []string) error {
			if initiatorID == "" || targetID == "" || moodID == "" {
				return fmt.Errorf("--initiator, --target and --mood required")
			}
			payload := map[string]string{
				"initiatorId": initiatorID,
				"targetId":    targetID,
				"moodId":      moodID,
			}
			data, err := doPostJSON("/api/chats", payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, data)
			return nil
		},
	}
	startCmd.Flags().StringVarP(&initiatorID, "initiator", "i", "", "Initiator user ID (required)")
	startCmd.Flags().StringVarP(&targetID, "target", "t", "", "Target user ID (required)")
	startCmd.Flags().StringVarP(&moodID, "mood", "m", "", "Mood ID (required)")
	chatsCmd.AddCommand(startCmd)

	getCmd := &cobra.Command{
		Use:   "get CHAT_ID",
		Short: "Get chat with derived quota state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet("/api/chats/" + args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, data)
			return nil
		},
	}
	chatsCmd.AddCommand(getCmd)

	sendCmd := &cobra.Command{
		Use:   "send CHAT_ID SENDER_ID TEXT",
		Short: "Send a chat message",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doPostJSON("/api/chats/"+args[0]+"/messages", map[string]string{
				"senderId": args[1],
				"text":     args[2],
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, data)
			return nil
		},
	}
	chatsCmd.AddCommand(sendCmd)

	listCmd := &cobra.Command{
		Use:   "list USER_ID",
		Short: "List chats the user participates in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet("/api/users/" + args[0] + "/chats")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, data)
			return nil
		},
	}
	chatsCmd.AddCommand(listCmd)

	rootCmd.AddCommand(chatsCmd)
}
