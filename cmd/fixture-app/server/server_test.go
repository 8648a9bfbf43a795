package server

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Logger, _ = test.NewNullLogger()
	return cfg
}

func TestServerStartStop(t *testing.T) {
	// Create server with random port
	srv, err := NewServer(testConfig())
	if err != nil {
		t.Fatalf("NewServer() failed: %v", err)
	}

	addr, err := srv.Start()
	if err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	// Verify we got a real address (not :0)
	if addr == "" || addr == ":0" {
		t.Errorf("Start() returned invalid address: %q", addr)
	}
	t.Logf("Server started on %s", addr)

	if got := srv.Addr(); got != addr {
		t.Errorf("Addr() = %q, want %q", got, addr)
	}
	if got := srv.URL(); !strings.HasPrefix(got, "http://localhost:") {
		t.Errorf("URL() = %q, want http://localhost:<port>", got)
	}

	url := "http://" + addr + "/"
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("HTTP GET failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET / status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "레퍼런스로 시작하는 스몰 브랜드 브랜딩 워크숍") {
		t.Error("Response body doesn't contain expected HTML")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown() failed: %v", err)
	}
	if got := srv.Addr(); got != "" {
		t.Errorf("Addr() after shutdown = %q, want empty", got)
	}

	// Verify server is stopped (should fail to connect)
	_, err = http.Get(url)
	if err == nil {
		t.Error("Expected connection error after shutdown, but request succeeded")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Addr != ":0" {
		t.Errorf("DefaultConfig().Addr = %q, want %q", cfg.Addr, ":0")
	}
	if cfg.ReadTimeout != 30*time.Second {
		t.Errorf("DefaultConfig().ReadTimeout = %v, want %v", cfg.ReadTimeout, 30*time.Second)
	}
	if cfg.WriteTimeout != 30*time.Second {
		t.Errorf("DefaultConfig().WriteTimeout = %v, want %v", cfg.WriteTimeout, 30*time.Second)
	}
	if cfg.Logger == nil {
		t.Error("DefaultConfig().Logger is nil")
	}
}

func TestServerDoubleStart(t *testing.T) {
	srv, err := NewServer(testConfig())
	if err != nil {
		t.Fatalf("NewServer() failed: %v", err)
	}
	defer srv.Shutdown(context.Background())

	addr1, err := srv.Start()
	if err != nil {
		t.Fatalf("First Start() failed: %v", err)
	}

	// Second start should return same address (no error)
	addr2, err := srv.Start()
	if err != nil {
		t.Fatalf("Second Start() failed: %v", err)
	}

	if addr1 != addr2 {
		t.Errorf("Second Start() returned different address: %q vs %q", addr1, addr2)
	}
}

func startServer(t *testing.T) string {
	t.Helper()

	srv, err := NewServer(testConfig())
	require.NoError(t, err)
	_, err = srv.Start()
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		assert.NoError(t, srv.Shutdown(ctx))
	})
	return srv.URL()
}

func getDocument(t *testing.T, url string, wantStatus int) *goquery.Document {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, wantStatus, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)
	return doc
}

func getJSON(t *testing.T, url string, wantStatus int) gjson.Result {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, wantStatus, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.True(t, gjson.ValidBytes(body), "invalid JSON: %s", body)
	return gjson.ParseBytes(body)
}

// The selectors below are the CSS equivalents of the recorded XPath locators.
func TestLandingPageLayout(t *testing.T) {
	doc := getDocument(t, startServer(t)+"/", http.StatusOK)

	nav := doc.Find("body > header:nth-of-type(2) > div > nav > a")
	require.Equal(t, 5, nav.Length())
	assert.Equal(t, "발견", strings.TrimSpace(nav.Eq(0).Text()))
	assert.Equal(t, "채용NEW", strings.TrimSpace(nav.Eq(1).Text()))

	categories := doc.Find("body > div:nth-of-type(2) > div > main > section:nth-of-type(2) > div:nth-of-type(3) > div")
	require.Equal(t, len(Categories), categories.Length())
	categories.Each(func(i int, s *goquery.Selection) {
		assert.Equal(t, Categories[i].Label, strings.TrimSpace(s.Text()))
		value, _ := s.Attr("data-value")
		assert.Equal(t, Categories[i].Value, value)
	})

	authButtons := doc.Find("body > div:nth-of-type(2) > div > main > div > div > button")
	require.Equal(t, 2, authButtons.Length())
	assert.Equal(t, "회원가입", strings.TrimSpace(authButtons.Eq(0).Text()))
	assert.Equal(t, "로그인", strings.TrimSpace(authButtons.Eq(1).Text()))

	avatars := doc.Find("body > div:nth-of-type(2) > div > main > section:nth-of-type(3) > div > div > div > img")
	assert.Equal(t, len(projects), avatars.Length())
	src, _ := avatars.First().Attr("src")
	assert.True(t, strings.HasPrefix(src, "data:image/svg+xml"), "avatar src = %q", src)

	popupAvatar := doc.Find("body > div:nth-of-type(4) > div:nth-of-type(2) > div:nth-of-type(2) > div > div > img")
	assert.Equal(t, 1, popupAvatar.Length())
	_, hidden := doc.Find("#creator-popup").Attr("hidden")
	assert.True(t, hidden, "creator popup starts closed")

	footer := doc.Find("footer").Text()
	for _, label := range []string{"경기도 AI 콘텐츠", "(주)스터닝", "사업자 정보", "서비스 소개", "공지사항",
		"운영정책", "개인정보처리방침", "자주묻는 질문", "광고상품", "문의하기"} {
		assert.Contains(t, footer, label)
	}
	assert.Contains(t, doc.Find("main > section.banner").Text(), "레퍼런스로 시작하는 스몰 브랜드 브랜딩 워크숍")
}

func TestCreatorPage(t *testing.T) {
	base := startServer(t)
	doc := getDocument(t, base+"/creator/creator1", http.StatusOK)

	followers := doc.Find("body > div:nth-of-type(4) > div > div:nth-of-type(2) > button")
	require.Equal(t, 1, followers.Length())
	assert.Contains(t, followers.Text(), "팔로워")
	assert.Contains(t, followers.Text(), "2")

	following := doc.Find("body > div:nth-of-type(4) > div > div:nth-of-type(4) > button")
	require.Equal(t, 1, following.Length())
	assert.Contains(t, following.Text(), "팔로잉")

	assert.Equal(t, 3, doc.Find("main .card").Length(), "creator1 owns three projects")
	assert.Contains(t, doc.Find("title").Text(), "김하린")

	getDocument(t, base+"/creator/nobody", http.StatusNotFound)
}

func TestNotFoundKeepsNavigation(t *testing.T) {
	base := startServer(t)

	for _, route := range []string{"/non-existent-route", "/projects", "/profile", "/%EB%B0%9C%EA%B2%AC"} {
		t.Run(route, func(t *testing.T) {
			doc := getDocument(t, base+route, http.StatusNotFound)
			assert.Contains(t, doc.Find("main").Text(), "페이지를 찾을 수 없습니다")
			assert.Equal(t, 5, doc.Find("body > header:nth-of-type(2) > div > nav > a").Length())
		})
	}
}

func TestProjectsAPI(t *testing.T) {
	base := startServer(t)

	all := getJSON(t, base+"/api/projects", http.StatusOK)
	assert.Equal(t, int64(len(projects)), all.Get("data.#").Int())
	assert.Equal(t, "봄 시즌 브랜드 필름", all.Get("data.0.title").String())

	for _, category := range []string{"korea", "all"} {
		res := getJSON(t, base+"/api/projects?category="+category, http.StatusOK)
		assert.Equal(t, int64(len(projects)), res.Get("data.#").Int(), category)
	}

	video := getJSON(t, base+"/api/projects?category=video", http.StatusOK)
	require.Equal(t, int64(1), video.Get("data.#").Int())
	assert.Equal(t, "video", video.Get("data.0.category").String())
	assert.Equal(t, "creator1", video.Get("data.0.creator").String())

	empty := getJSON(t, base+"/api/projects?category=art", http.StatusOK)
	assert.True(t, empty.Get("data").IsArray())
	assert.Equal(t, int64(0), empty.Get("data.#").Int())

	limited := getJSON(t, base+"/api/projects?limit=2", http.StatusOK)
	assert.Equal(t, int64(2), limited.Get("data.#").Int())

	bad := getJSON(t, base+"/api/projects?limit=many", http.StatusBadRequest)
	assert.NotEmpty(t, bad.Get("error").String())
}

func TestProjectsAPI_SimulatedNetworkFailure(t *testing.T) {
	res := getJSON(t, startServer(t)+"/api/projects?simulateNetworkFailure=true", http.StatusServiceUnavailable)

	assert.Equal(t, "프로젝트 조회에 실패했습니다.", res.Get("error").String())
	assert.False(t, res.Get("data").Exists())
}

func TestProjectsAPI_UserAndSearchFilters(t *testing.T) {
	base := startServer(t)

	owned := getJSON(t, base+"/api/projects?userId=creator1", http.StatusOK)
	require.Equal(t, int64(3), owned.Get("data.#").Int())
	for _, creator := range owned.Get("data.#.creator").Array() {
		assert.Equal(t, "creator1", creator.String())
	}

	none := getJSON(t, base+"/api/projects?userId=nobody", http.StatusOK)
	assert.True(t, none.Get("data").IsArray())
	assert.Equal(t, int64(0), none.Get("data.#").Int())

	tests := []struct {
		query string
		want  []int64
	}{
		{"search=%ED%8C%A8%ED%82%A4%EC%A7%80", []int64{2, 8}},
		{"search=ux", []int64{3}},
		{"search=typography", []int64{7}},
		{"search=%ED%8C%A8%ED%82%A4%EC%A7%80&userId=creator2", []int64{2, 8}},
		{"search=%ED%8C%A8%ED%82%A4%EC%A7%80&category=brand", []int64{2}},
		{"search=%ED%8C%A8%ED%82%A4%EC%A7%80&limit=1", []int64{2}},
		{"search=nothing-like-this", nil},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			res := getJSON(t, base+"/api/projects?"+tt.query, http.StatusOK)
			var got []int64
			for _, id := range res.Get("data.#.project_id").Array() {
				got = append(got, id.Int())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreatorPageMatchesUserFilter(t *testing.T) {
	base := startServer(t)

	for id := range creators {
		t.Run(id, func(t *testing.T) {
			doc := getDocument(t, base+"/creator/"+id, http.StatusOK)
			api := getJSON(t, base+"/api/projects?userId="+id, http.StatusOK)

			titles := doc.Find("main .card h4").Map(func(_ int, s *goquery.Selection) string {
				return s.Text()
			})
			var want []string
			for _, title := range api.Get("data.#.title").Array() {
				want = append(want, title.String())
			}
			assert.Equal(t, want, titles)
		})
	}
}
