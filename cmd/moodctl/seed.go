package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// seedUsers mirror the demo feed shipped with the original client.
var seedUsers = []struct {
	username string
	name     string
	mood     string
	reaction string
}{
	{"luka", "Luka", "calm", "sprout"},
	{"sia", "Sia", "radiant", "heart"},
	{"noa", "Noa", "melancholy", "hug"},
	{"kael", "Kael", "fluid", "dizzy"},
}

func init() {
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Create demo users and posts through the API",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, su := range seedUsers {
				userData, err := doPostJSON("/api/users", map[string]interface{}{
					"username":    su.username,
					"displayName": su.name,
					"dob":         "1995-04-02T00:00:00Z",
				})
				if err != nil {
					return fmt.Errorf("seed user %s: %w", su.username, err)
				}
				var u struct {
					UserID string `json:"userId"`
				}
				if err := json.Unmarshal([]byte(userData), &u); err != nil {
					return fmt.Errorf("decode user %s: %w", su.username, err)
				}

				postData, err := doPostJSON("/api/posts", map[string]string{
					"authorId": u.UserID,
					"photoUrl": "https://picsum.photos/seed/" + su.username + "/600/800",
					"moodId":   su.mood,
				})
				if err != nil {
					return fmt.Errorf("seed post for %s: %w", su.username, err)
				}
				var p struct {
					PostID string `json:"postId"`
				}
				if err := json.Unmarshal([]byte(postData), &p); err != nil {
					return fmt.Errorf("decode post for %s: %w", su.username, err)
				}

				if _, err := doPostJSON("/api/posts/"+p.PostID+"/reactions", map[string]string{"symbol": su.reaction}); err != nil {
					return fmt.Errorf("seed reaction for %s: %w", su.username, err)
				}
				_, _ = fmt.Fprintf(os.Stdout, "seeded %s (%s, %s)\n", su.name, u.UserID, su.mood)
			}
			return nil
		},
	}
	rootCmd.AddCommand(seedCmd)
}
