package server

import "html/template"

// layoutHTML is the page shell shared by every route. Its element order is
// what the recorded XPath locators index into:
//
//	body/header[1]        top bar with 로그인 and 회원가입
//	body/div[1]           promotion strip
//	body/header[2]        main navigation (div/nav/a)
//	body/div[2]/div/main  page content
//	body/footer
//	body/div[3]           toast
//	body/div[4]           page overlay (creator popup, profile panel)
const layoutHTML = `{{define "layout"}}<!DOCTYPE html>
<html lang="ko">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>{{.Title}} | VIBEFOLIO</title>
    <style>
        * { box-sizing: border-box; }
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; margin: 0; color: #0f172a; background: #fff; }
        [hidden] { display: none !important; }
        a { color: inherit; text-decoration: none; }
        .topbar { display: flex; justify-content: flex-end; gap: 16px; padding: 8px 24px; font-size: 13px; background: #f8fafc; }
        .promo { padding: 6px 24px; font-size: 13px; background: #0f172a; color: #fff; }
        .nav { border-bottom: 1px solid #e2e8f0; }
        .nav nav { display: flex; flex-wrap: wrap; gap: 20px; padding: 16px 24px; font-weight: 600; }
        .badge { font-size: 10px; color: #fff; background: #ef4444; border-radius: 4px; padding: 1px 4px; margin-left: 2px; }
        main { padding: 24px; }
        .auth { display: flex; gap: 8px; }
        .auth button, .profile button { border: 1px solid #cbd5e1; background: #fff; border-radius: 8px; padding: 8px 16px; cursor: pointer; }
        .dialog { margin-top: 12px; padding: 16px; border: 1px solid #e2e8f0; border-radius: 12px; max-width: 360px; }
        .banner { margin: 24px 0; padding: 32px; border-radius: 16px; background: #eef2ff; font-size: 22px; font-weight: 700; }
        .sticky { position: sticky; top: 0; background: #fff; padding: 12px 0; }
        .categories { display: flex; flex-wrap: wrap; gap: 8px; }
        .category { padding: 6px 12px; border-radius: 999px; border: 1px solid #e2e8f0; cursor: pointer; }
        .category.active { background: #0f172a; color: #fff; }
        .grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(220px, 1fr)); gap: 16px; }
        .card { border: 1px solid #e2e8f0; border-radius: 12px; padding: 12px; }
        .creator { display: flex; align-items: center; gap: 8px; }
        .creator img { cursor: pointer; border-radius: 50%; }
        footer { padding: 32px 24px; background: #f8fafc; font-size: 13px; display: flex; flex-wrap: wrap; gap: 12px; }
        .toast { position: fixed; bottom: 24px; right: 24px; padding: 12px 16px; border-radius: 8px; background: #fee2e2; }
        .popup { position: fixed; top: 15%; left: 50%; transform: translateX(-50%); width: 320px; background: #fff; border: 1px solid #e2e8f0; border-radius: 16px; padding: 16px; z-index: 50; }
        .profile { padding: 24px; }
        .profile > div:first-child { display: flex; flex-wrap: wrap; gap: 16px; align-items: center; }
    </style>
</head>
<body>
    <header class="topbar">
        <a href="/login">로그인</a>
        <a href="/signup">회원가입</a>
    </header>
    <div class="promo">VIBEFOLIO 크리에이터 공모전 진행 중</div>
    <header class="nav">
        <div>
            <nav>
                <a href="/">발견</a>
                <a href="/recruit">채용<span class="badge">NEW</span></a>
                <a href="/workshops">워크숍/커뮤니티</a>
                <a href="/feedback">포폴 피드백</a>
                <a href="/agency">에이전시</a>
            </nav>
        </div>
    </header>
    <div id="app">
        <div>
            <main>{{template "main" .}}</main>
        </div>
    </div>
    <footer>
        <span>경기도 AI 콘텐츠</span>
        <span>(주)스터닝</span>
        <a href="#business" onclick="return false">사업자 정보</a>
        <a href="/service">서비스 소개</a>
        <a href="/notices">공지사항</a>
        <a href="/policy/operation">운영정책</a>
        <a href="/policy/privacy">개인정보처리방침</a>
        <a href="/faq">자주묻는 질문</a>
        <a href="/ads">광고상품</a>
        <a href="/contact">문의하기</a>
        <span>&copy; 2025 VIBEFOLIO. All rights reserved.</span>
    </footer>
    <div id="toast" class="toast" hidden></div>
    {{template "overlay" .}}
    <script>
        function toggle(id) {
            var el = document.getElementById(id);
            el.hidden = !el.hidden;
        }
        function showToast(message) {
            var toast = document.getElementById('toast');
            toast.textContent = message;
            toast.hidden = false;
        }
    </script>
    {{template "script" .}}
</body>
</html>{{end}}`

// landingHTML is the discovery page: auth toggles, banner, category menu
// and the project feed.
const landingHTML = `{{define "main"}}
<div>
    <div class="auth">
        <button type="button" onclick="toggle('signup-dialog')">회원가입</button>
        <button type="button" onclick="toggle('login-dialog')">로그인</button>
    </div>
    <div id="signup-dialog" class="dialog" hidden>
        <h3>새 계정 만들기</h3>
        <p>이메일 주소로 가입하고 포트폴리오를 공유하세요.</p>
    </div>
    <div id="login-dialog" class="dialog" hidden>
        <h3>다시 오신 것을 환영합니다</h3>
        <p>이메일 주소와 비밀번호를 입력하세요.</p>
    </div>
</div>
<section class="banner">레퍼런스로 시작하는 스몰 브랜드 브랜딩 워크숍</section>
<section class="sticky">
    <div class="sort">최신순</div>
    <div class="search"><input type="search" placeholder="검색어를 입력하세요"></div>
    <div class="categories">
        {{- range .Categories}}
        <div class="category{{if eq .Value "korea"}} active{{end}}" data-value="{{.Value}}" onclick="selectCategory(this)">{{.Label}}</div>
        {{- end}}
    </div>
</section>
<section id="feed">
    <div class="grid">
        {{- range .Projects}}
        <div class="card">
            <div class="creator">
                <img src="{{$.Avatar}}" width="40" height="40" alt="{{.Creator}}" data-creator="{{.Creator}}" onclick="openCreator(this.dataset.creator)">
                <span>{{.Creator}}</span>
            </div>
            <h4>{{.Title}}</h4>
        </div>
        {{- end}}
    </div>
</section>
{{end}}
{{define "overlay"}}
<div id="creator-popup" class="popup" hidden>
    <div>
        <strong>크리에이터</strong>
        <button type="button" onclick="toggle('creator-popup')">닫기</button>
    </div>
    <div>
        <div id="creator-popup-name"></div>
        <div>
            <div>
                <div><img id="creator-popup-avatar" src="{{.Avatar}}" width="64" height="64" alt="프로필로 이동" onclick="location.href='/creator/' + encodeURIComponent(this.dataset.creator)"></div>
            </div>
        </div>
    </div>
</div>
{{end}}
{{define "script"}}
<script>
    var avatar = document.getElementById('creator-popup-avatar').src;

    function openCreator(id) {
        document.getElementById('creator-popup-name').textContent = id;
        document.getElementById('creator-popup-avatar').dataset.creator = id;
        document.getElementById('creator-popup').hidden = false;
    }

    function renderFeed(body) {
        var grid = document.querySelector('#feed .grid');
        grid.textContent = '';
        (body.data || []).forEach(function (p) {
            var card = document.createElement('div');
            card.className = 'card';
            var creator = document.createElement('div');
            creator.className = 'creator';
            var img = document.createElement('img');
            img.src = avatar;
            img.width = 40;
            img.height = 40;
            img.alt = p.creator;
            img.dataset.creator = p.creator;
            img.onclick = function () { openCreator(p.creator); };
            var name = document.createElement('span');
            name.textContent = p.creator;
            creator.appendChild(img);
            creator.appendChild(name);
            var title = document.createElement('h4');
            title.textContent = p.title;
            card.appendChild(creator);
            card.appendChild(title);
            grid.appendChild(card);
        });
    }

    function selectCategory(el) {
        document.querySelectorAll('.category').forEach(function (c) {
            c.classList.toggle('active', c === el);
        });
        fetch('/api/projects?category=' + encodeURIComponent(el.dataset.value))
            .then(function (res) {
                if (!res.ok) throw new Error(res.status);
                return res.json();
            })
            .then(renderFeed)
            .catch(function () { showToast('프로젝트를 불러오지 못했습니다. 다시 시도해주세요.'); });
    }
</script>
{{end}}`

// creatorHTML is a creator's public profile. The overlay slot carries the
// profile panel so its buttons sit at body/div[4]/div/div[n]/button.
const creatorHTML = `{{define "main"}}
<section>
    <h2>{{.Creator.Name}}님의 프로젝트</h2>
    <div class="grid">
        {{- range .Projects}}
        <div class="card"><h4>{{.Title}}</h4><span>좋아요 {{.Likes}}</span></div>
        {{- end}}
    </div>
</section>
{{end}}
{{define "overlay"}}
<div class="profile">
    <div>
        <div><img src="{{.Avatar}}" width="64" height="64" alt="{{.Creator.ID}}"><h1>{{.Creator.Name}}</h1><span>{{.Creator.Bio}}</span></div>
        <div><button type="button" onclick="toggle('followers')">팔로워 <strong>{{len .Creator.Followers}}</strong></button></div>
        <div>프로젝트 <strong>{{len .Projects}}</strong></div>
        <div><button type="button" onclick="toggle('following')">팔로잉 <strong>{{len .Creator.Following}}</strong></button></div>
    </div>
    <div id="followers" hidden>
        <h3>팔로워</h3>
        <ul>{{range .Creator.Followers}}<li>{{.}}</li>{{end}}</ul>
    </div>
    <div id="following" hidden>
        <h3>팔로잉</h3>
        <ul>{{range .Creator.Following}}<li>{{.}}</li>{{end}}</ul>
    </div>
</div>
{{end}}
{{define "script"}}{{end}}`

// notFoundHTML keeps the full layout so the navigation stays usable.
const notFoundHTML = `{{define "main"}}
<section class="not-found">
    <h1>404</h1>
    <h2>페이지를 찾을 수 없습니다</h2>
    <span>요청하신 페이지가 삭제되었거나, 이름이 변경되었거나, 일시적으로 사용할 수 없습니다.</span>
    <div>
        <button type="button" onclick="history.back()">이전 페이지</button>
        <a href="/">메인으로 이동</a>
    </div>
</section>
{{end}}
{{define "overlay"}}<div id="overlay"></div>{{end}}
{{define "script"}}{{end}}`

var (
	layout       = template.Must(template.New("layout").Parse(layoutHTML))
	landingPage  = template.Must(template.Must(layout.Clone()).Parse(landingHTML))
	creatorPage  = template.Must(template.Must(layout.Clone()).Parse(creatorHTML))
	notFoundPage = template.Must(template.Must(layout.Clone()).Parse(notFoundHTML))
)
