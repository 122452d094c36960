package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	postsCmd := &cobra.Command{Use: "posts", Short: "Post operations"}

	var authorID, photoURL, moodID string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a mood-tagged post",
		RunE: func(cmd *cobra.Command, args []string) error {
			if authorID == "" || photoURL == "" || moodID == "" {
				return fmt.Errorf("--author, --photo and --mood required")
			}
			payload := map[string]string{
				"authorId": authorID,
				"photoUrl": photoURL,
				"moodId":   moodID,
			}
			data, err := doPostJSON("/api/posts", payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, data)
			return nil
		},
	}
	createCmd.Flags().StringVarP(&authorID, "author", "u", "", "Author user ID (required)")
	createCmd.Flags().StringVarP(&photoURL, "photo", "p", "", "Photo URL (required)")
	createCmd.Flags().StringVarP(&moodID, "mood", "m", "", "Mood ID (required)")
	postsCmd.AddCommand(createCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the post ledger, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet("/api/posts")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, data)
			return nil
		},
	}
	postsCmd.AddCommand(listCmd)

	getCmd := &cobra.Command{
		Use:   "get POST_ID",
		Short: "Get post by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet("/api/posts/" + args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, data)
			return nil
		},
	}
	postsCmd.AddCommand(getCmd)

	reactCmd := &cobra.Command{
		Use:   "react POST_ID SYMBOL",
		Short: "Append a reaction to a post",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doPostJSON("/api/posts/"+args[0]+"/reactions", map[string]string{"symbol": args[1]})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, data)
			return nil
		},
	}
	postsCmd.AddCommand(reactCmd)

	rootCmd.AddCommand(postsCmd)
}
