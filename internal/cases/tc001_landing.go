package cases

import (
	"fmt"
	"slices"

	"github.com/vibefolio/vibefolio-e2e/internal/config"
	"github.com/vibefolio/vibefolio-e2e/pkg/testutil"
)

// Category filters in the sticky menu, in the order the recording clicks them.
var categoryFilters = []struct {
	label string
	xpath string
}{
	{"전체", "xpath=html/body/div[2]/div/main/section[2]/div[3]/div"},
	{"영상/모션그래픽", "xpath=html/body/div[2]/div/main/section[2]/div[3]/div[2]"},
	{"그래픽 디자인", "xpath=html/body/div[2]/div/main/section[2]/div[3]/div[3]"},
	{"브랜딩/편집", "xpath=html/body/div[2]/div/main/section[2]/div[3]/div[4]"},
	{"UI/UX", "xpath=html/body/div[2]/div/main/section[2]/div[3]/div[5]"},
	{"일러스트레이션", "xpath=html/body/div[2]/div/main/section[2]/div[3]/div[6]"},
	{"디지털 아트", "xpath=html/body/div[2]/div/main/section[2]/div[3]/div[7]"},
	{"AI", "xpath=html/body/div[2]/div/main/section[2]/div[3]/div[8]"},
	{"캐릭터 디자인", "xpath=html/body/div[2]/div/main/section[2]/div[3]/div[9]"},
	{"제품/패키지 디자인", "xpath=html/body/div[2]/div/main/section[2]/div[3]/div[10]"},
	{"포토그래피", "xpath=html/body/div[2]/div/main/section[2]/div[3]/div[11]"},
}

// Labels of the landing page chrome that every page render must show.
var (
	headerLabels = []string{
		"발견",
		"채용",
		"NEW",
		"워크숍/커뮤니티",
		"포폴 피드백",
		"에이전시",
		"로그인",
		"회원가입",
		"레퍼런스로 시작하는 스몰 브랜드 브랜딩 워크숍",
	}
	categoryLabels = []string{
		"전체",
		"영상/모션그래픽",
		"그래픽 디자인",
		"브랜딩/편집",
		"UI/UX",
		"일러스트레이션",
		"디지털 아트",
		"AI",
		"캐릭터 디자인",
		"제품/패키지 디자인",
		"포토그래피",
		"타이포그래피",
		"공예",
		"파인아트",
	}
)

// landingPage selects each category filter one by one, then checks the
// header, banner and the full category menu are still visible.
func landingPage(b *testutil.BrowserClient, cfg config.Config) error {
	for _, f := range categoryFilters {
		if err := b.Click(f.xpath, cfg.ActionDelay, cfg.DefaultTimeout); err != nil {
			return fmt.Errorf("select category %s: %w", f.label, err)
		}
	}

	for _, text := range slices.Concat(headerLabels, categoryLabels) {
		if err := b.ExpectVisible(text, cfg.AssertTimeout); err != nil {
			return err
		}
	}
	return nil
}
