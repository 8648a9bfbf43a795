package cases

import (
	"time"

	"github.com/vibefolio/vibefolio-e2e/internal/config"
	"github.com/vibefolio/vibefolio-e2e/pkg/testutil"
)

const profileFailure = "Test case failed: Profile pages do not accurately display user info, projects, " +
	"likes, following and follower counts with consistency and completeness as required by the test plan."

// profilePage opens a creator's profile from the landing page feed and
// expands the follower and following lists.
func profilePage(b *testutil.BrowserClient, cfg config.Config) error {
	steps := []string{
		"xpath=html/body/div[2]/div/main/section[3]/div/div/div/img", // creator avatar in the feed
		"xpath=html/body/div[4]/div[2]/div[2]/div/div/img",           // profile link in the creator popup
		"xpath=html/body/div[4]/div/div[2]/button",                   // followers count
		"xpath=html/body/div[4]/div/div[4]/button",                   // following count
	}
	for _, xpath := range steps {
		if err := b.Click(xpath, cfg.ActionDelay, cfg.DefaultTimeout); err != nil {
			return err
		}
	}

	err := b.ExpectVisible("Profile information is completely accurate and displayed", 3*time.Second)
	return withPlanMessage(err, profileFailure)
}
