package validate

import (
	"fmt"
	"regexp"
	"time"

	"github.com/moodshot/moodshot/internal/model"
)

// username must be lowercase letters, digits, underscore, 3-20 chars
var usernameRx = regexp.MustCompile(`^[a-z0-9_]{3,20}$`)

// countries is the profile country picker list.
var countries = map[string]bool{}

func init() {
	for _, c := range countryList {
		countries[c] = true
	}
}

var countryList = []string{
	"Algeria", "Argentina", "Australia", "Belgium", "Brazil", "Canada",
	"China", "Denmark", "Egypt", "Ethiopia", "Finland", "France", "Germany",
	"Ghana", "Greece", "India", "Indonesia", "Italy", "Japan", "Kenya",
	"Mexico", "Morocco", "Netherlands", "New Zealand", "Nigeria", "Norway",
	"Philippines", "Portugal", "Saudi Arabia", "Senegal", "Singapore",
	"South Africa", "South Korea", "Spain", "Sweden", "Switzerland",
	"Tanzania", "Uganda", "United Kingdom", "United States", "Other",
}

func Username(v string) error {
	if v == "" {
		return fmt.Errorf("username is required")
	}
	if !usernameRx.MatchString(v) {
		return fmt.Errorf("username must match %s", usernameRx.String())
	}
	return nil
}

func NonEmpty(field, v string) error {
	if v == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

func MaxLen(field string, v *string, limit int) error {
	if v == nil {
		return nil
	}
	if len(*v) > limit {
		return fmt.Errorf("%s exceeds %d characters", field, limit)
	}
	return nil
}

func Country(v *string) error {
	if v == nil {
		return nil
	}
	if !countries[*v] {
		return fmt.Errorf("unknown country %q", *v)
	}
	return nil
}

func SexOption(v *model.Sex) error {
	if v == nil {
		return nil
	}
	switch *v {
	case model.SexMale, model.SexFemale, model.SexOther, model.SexUnspecified:
		return nil
	}
	return fmt.Errorf("unknown sex option %q", *v)
}

// -------- Request specific helpers ----------

// Register validates input for creating a new account.
func Register(username, displayName string, dob time.Time, country *string, sex *model.Sex) error {
	if err := Username(username); err != nil {
		return err
	}
	if err := NonEmpty("displayName", displayName); err != nil {
		return err
	}
	if len(displayName) > 100 {
		return fmt.Errorf("displayName exceeds 100 characters")
	}
	if dob.IsZero() {
		return fmt.Errorf("dob is required")
	}
	if err := Country(country); err != nil {
		return err
	}
	return SexOption(sex)
}

// ProfileUpdate validates the present fields of a profile patch.
func ProfileUpdate(upd model.ProfileUpdate) error {
	if upd.Username != nil {
		if err := Username(*upd.Username); err != nil {
			return err
		}
	}
	if upd.DisplayName != nil {
		if err := NonEmpty("displayName", *upd.DisplayName); err != nil {
			return err
		}
	}
	if err := MaxLen("displayName", upd.DisplayName, 100); err != nil {
		return err
	}
	if err := MaxLen("fullName", upd.FullName, 150); err != nil {
		return err
	}
	if err := Country(upd.Country); err != nil {
		return err
	}
	return SexOption(upd.Sex)
}

// CreatePost validates input for a new post.
func CreatePost(authorID, photoURL, moodID string) error {
	if err := NonEmpty("authorId", authorID); err != nil {
		return err
	}
	if err := NonEmpty("photoUrl", photoURL); err != nil {
		return err
	}
	return NonEmpty("moodId", moodID)
}
