package server

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Category is one entry of the landing page's category menu.
type Category struct {
	Label string
	Value string
}

// Categories mirrors the sticky menu of the real application, in menu order.
var Categories = []Category{
	{"전체", "korea"},
	{"영상/모션그래픽", "video"},
	{"그래픽 디자인", "graphic-design"},
	{"브랜딩/편집", "brand"},
	{"UI/UX", "ui"},
	{"일러스트레이션", "illustration"},
	{"디지털 아트", "digital-art"},
	{"AI", "ai"},
	{"캐릭터 디자인", "cartoon"},
	{"제품/패키지 디자인", "product-design"},
	{"포토그래피", "photography"},
	{"타이포그래피", "typography"},
	{"공예", "craft"},
	{"파인아트", "art"},
}

// Project is a feed entry as returned by /api/projects.
type Project struct {
	ID       int    `json:"project_id"`
	Title    string `json:"title"`
	Content  string `json:"content_text"`
	Category string `json:"category"`
	Creator  string `json:"creator"`
	Likes    int    `json:"likes"`
}

// Creator is a public profile.
type Creator struct {
	ID        string
	Name      string
	Bio       string
	Followers []string
	Following []string
}

var projects = []Project{
	{1, "봄 시즌 브랜드 필름", "꽃집 브랜드의 30초 모션 캠페인", "video", "creator1", 128},
	{2, "카페 리브랜딩 패키지", "로고와 컵 슬리브를 새로 그린 리브랜딩", "brand", "creator2", 96},
	{3, "핀테크 앱 온보딩 UX", "가입 단계를 다섯 화면에서 세 화면으로 줄인 UX 개선", "ui", "creator1", 211},
	{4, "도시 야경 일러스트 시리즈", "서울의 밤을 담은 디지털 드로잉", "illustration", "creator3", 74},
	{5, "생성형 AI 포스터 실험", "이미지 생성 모델로 만든 전시 포스터", "ai", "creator2", 59},
	{6, "수제 도자기 굿즈", "손으로 빚은 머그와 접시 세트", "craft", "creator3", 33},
	{7, "한글 타이포 포스터", "자모 조합을 활용한 Typography 실험", "typography", "creator1", 87},
	{8, "친환경 화장품 패키지", "재생 종이로 만든 패키지 디자인", "product-design", "creator2", 45},
}

// projectQuery filters the feed the way /api/projects does.
type projectQuery struct {
	Category string // menu value; "korea" and "all" mean no filter
	UserID   string // creator ID
	Search   string // case-insensitive match on title or content
	Limit    int    // 0 means no limit
}

func (q projectQuery) matches(p Project) bool {
	if q.Category != "" && q.Category != "korea" && q.Category != "all" && p.Category != q.Category {
		return false
	}
	if q.UserID != "" && p.Creator != q.UserID {
		return false
	}
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(p.Title), needle) && !strings.Contains(strings.ToLower(p.Content), needle) {
			return false
		}
	}
	return true
}

func listProjects(q projectQuery) []Project {
	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		if q.matches(p) {
			out = append(out, p)
		}
	}
	if q.Limit > 0 && q.Limit < len(out) {
		out = out[:q.Limit]
	}
	return out
}

var creators = map[string]Creator{
	"creator1": {"creator1", "김하린", "모션과 UX를 오가는 디자이너", []string{"creator2", "creator3"}, []string{"creator2"}},
	"creator2": {"creator2", "박지우", "브랜드 아이덴티티 스튜디오", []string{"creator1"}, []string{"creator1", "creator3"}},
	"creator3": {"creator3", "이서준", "손으로 만드는 일러스트와 공예", []string{"creator2"}, nil},
}

// avatar is a plain circle so image clicks have a hit box without network access.
const avatar = template.URL(`data:image/svg+xml;utf8,<svg xmlns='http://www.w3.org/2000/svg' width='64' height='64'><circle cx='32' cy='32' r='32' fill='%23c7d2fe'/></svg>`)

type handler struct {
	log logrus.FieldLogger
}

func (h *handler) landing(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, landingPage, map[string]any{
		"Title":      "발견",
		"Avatar":     avatar,
		"Categories": Categories,
		"Projects":   projects,
	})
}

func (h *handler) creator(w http.ResponseWriter, r *http.Request) {
	c, ok := creators[r.PathValue("id")]
	if !ok {
		h.notFound(w, r)
		return
	}

	h.render(w, http.StatusOK, creatorPage, map[string]any{
		"Title":    c.Name,
		"Avatar":   avatar,
		"Creator":  c,
		"Projects": listProjects(projectQuery{UserID: c.ID}),
	})
}

func (h *handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.log.WithField("path", r.URL.Path).Debug("not found")
	h.render(w, http.StatusNotFound, notFoundPage, map[string]any{"Title": "404"})
}

// projects serves GET /api/projects. Query parameters:
//   - category: menu value; "korea" and "all" mean no filter
//   - userId: creator ID
//   - search: substring of the title or content, ignoring case
//   - limit: maximum number of entries
//   - simulateNetworkFailure=true: answer 503 instead
func (h *handler) projects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if q.Get("simulateNetworkFailure") == "true" {
		h.log.Info("simulating network failure for /api/projects")
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error":   "프로젝트 조회에 실패했습니다.",
			"details": "simulated network failure",
		})
		return
	}

	query := projectQuery{
		Category: q.Get("category"),
		UserID:   q.Get("userId"),
		Search:   strings.TrimSpace(q.Get("search")),
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a non-negative integer"})
			return
		}
		query.Limit = limit
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"data": listProjects(query)})
}

func (h *handler) render(w http.ResponseWriter, status int, tmpl *template.Template, data any) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		h.log.WithError(err).Error("failed to render page")
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.WithError(err).Error("failed to encode response")
	}
}
