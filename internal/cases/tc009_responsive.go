package cases

import (
	"slices"

	"github.com/vibefolio/vibefolio-e2e/internal/config"
	"github.com/vibefolio/vibefolio-e2e/pkg/testutil"
)

var footerLabels = []string{
	"경기도 AI 콘텐츠",
	"(주)스터닝",
	"사업자 정보",
	"서비스 소개",
	"공지사항",
	"운영정책",
	"개인정보처리방침",
	"자주묻는 질문",
	"광고상품",
	"문의하기",
}

const (
	signupButton = "xpath=html/body/div[2]/div/main/div/div/button"
	loginButton  = "xpath=html/body/div[2]/div/main/div/div/button[2]"
)

// responsiveLayout reloads and scrolls the landing page at tablet and mobile
// sizes, opens and closes the 회원가입 and 로그인 dialogs, then checks the
// header, banner, categories and footer at the desktop size.
func responsiveLayout(b *testutil.BrowserClient, cfg config.Config) error {
	reload := func() error {
		if err := b.Goto(cfg.URL("/"), cfg.NavigationTimeout); err != nil {
			return err
		}
		return b.Pause(cfg.SettleDelay)
	}

	// tablet
	if err := b.SetViewport(768, 1024, false); err != nil {
		return err
	}
	if err := reload(); err != nil {
		return err
	}
	if err := b.Wheel(0, 300); err != nil {
		return err
	}
	if err := reload(); err != nil {
		return err
	}
	if err := b.Wheel(0, 300); err != nil {
		return err
	}

	// mobile
	if err := b.SetViewport(375, 812, true); err != nil {
		return err
	}
	if err := reload(); err != nil {
		return err
	}
	if err := reload(); err != nil {
		return err
	}
	if err := b.Wheel(0, 300); err != nil {
		return err
	}
	if err := b.Wheel(0, 300); err != nil {
		return err
	}

	// open then close each dialog with its own toggle
	for _, xpath := range []string{signupButton, signupButton, loginButton, loginButton} {
		if err := b.Click(xpath, cfg.ActionDelay, cfg.DefaultTimeout); err != nil {
			return err
		}
	}

	if err := b.ResetViewport(); err != nil {
		return err
	}
	for _, text := range slices.Concat(headerLabels, categoryLabels, footerLabels) {
		if err := b.ExpectVisible(text, cfg.AssertTimeout); err != nil {
			return err
		}
	}
	return nil
}
