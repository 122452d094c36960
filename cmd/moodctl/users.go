package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	usersCmd := &cobra.Command{Use: "users", Short: "User operations"}

	// register
	var username, displayName, dob, country string
	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Register a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || displayName == "" || dob == "" {
				return fmt.Errorf("--username, --name and --dob required")
			}
			payload := map[string]interface{}{
				"username":    username,
				"displayName": displayName,
				"dob":         dob + "T00:00:00Z",
			}
			if country != "" {
				payload["country"] = country
			}
			data, err := doPostJSON("/api/users", payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, data)
			return nil
		},
	}
	registerCmd.Flags().StringVarP(&username, "username", "u", "", "Username (required)")
	registerCmd.Flags().StringVarP(&displayName, "name", "n", "", "Display name (required)")
	registerCmd.Flags().StringVarP(&dob, "dob", "d", "", "Date of birth, YYYY-MM-DD (required)")
	registerCmd.Flags().StringVarP(&country, "country", "c", "", "Country")
	usersCmd.AddCommand(registerCmd)

	// get
	getCmd := &cobra.Command{
		Use:   "get USER_ID",
		Short: "Get user by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet("/api/users/" + args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, data)
			return nil
		},
	}
	usersCmd.AddCommand(getCmd)

	// login (lookup by username)
	loginCmd := &cobra.Command{
		Use:   "login USERNAME",
		Short: "Look up a user by username",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet("/api/users?username=" + args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, data)
			return nil
		},
	}
	usersCmd.AddCommand(loginCmd)

	// circle toggle
	circleCmd := &cobra.Command{
		Use:   "circle USER_ID TARGET_ID",
		Short: "Toggle a member of the user's inner circle",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doPostJSON(fmt.Sprintf("/api/users/%s/circle/%s", args[0], args[1]), nil)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, data)
			return nil
		},
	}
	usersCmd.AddCommand(circleCmd)

	// feed
	feedCmd := &cobra.Command{
		Use:   "feed USER_ID",
		Short: "Show the user's visibility-filtered feed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet("/api/users/" + args[0] + "/feed")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, data)
			return nil
		},
	}
	usersCmd.AddCommand(feedCmd)

	// moodstats
	statsCmd := &cobra.Command{
		Use:   "stats USER_ID",
		Short: "Per-mood post counts for the user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet("/api/users/" + args[0] + "/moodstats")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, data)
			return nil
		},
	}
	usersCmd.AddCommand(statsCmd)

	// insight
	insightCmd := &cobra.Command{
		Use:   "insight USER_ID",
		Short: "Weekly mood insight for the user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet("/api/users/" + args[0] + "/insight")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, data)
			return nil
		},
	}
	usersCmd.AddCommand(insightCmd)

	rootCmd.AddCommand(usersCmd)
}
