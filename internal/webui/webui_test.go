// ABOUTME: Tests for the web host rerun cycle
// ABOUTME: Drives sessions, widget submissions, uploads and exports through the mux

package webui

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/2389/widgetdash/internal/demo"
	"github.com/2389/widgetdash/internal/metrics"
	"github.com/2389/widgetdash/internal/page"
	"github.com/2389/widgetdash/internal/store"
)

type testHost struct {
	mux     *http.ServeMux
	store   *store.MockStore
	csvPath string
	cookie  *http.Cookie
}

func newTestHost(t *testing.T) *testHost {
	t.Helper()

	csvPath := filepath.Join(t.TempDir(), "sampledata.csv")
	s := store.NewMockStore()
	registry := demo.NewRegistry(demo.FileSink{Path: csvPath}, nil)

	h := New(registry, s, metrics.New(), Config{SessionTTL: time.Hour})
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	return &testHost{mux: mux, store: s, csvPath: csvPath}
}

// do sends req with the current session cookie and remembers any new one.
func (th *testHost) do(req *http.Request) *httptest.ResponseRecorder {
	if th.cookie != nil {
		req.AddCookie(th.cookie)
	}

	rr := httptest.NewRecorder()
	th.mux.ServeHTTP(rr, req)

	for _, c := range rr.Result().Cookies() {
		if c.Name == SessionCookieName {
			th.cookie = c
		}
	}
	return rr
}

func (th *testHost) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	return th.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (th *testHost) postForm(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return th.do(req)
}

func (th *testHost) postFile(t *testing.T, path, field, name, content string) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return th.do(req)
}

func TestIndex(t *testing.T) {
	th := newTestHost(t)

	rr := th.get(t, "/")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `href="/app/dashboard"`)
	assert.Contains(t, rr.Body.String(), `href="/app/widgets"`)
}

func TestUnknownScript(t *testing.T) {
	th := newTestHost(t)

	rr := th.get(t, "/app/nope")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDashboardPage(t *testing.T) {
	th := newTestHost(t)

	rr := th.get(t, "/app/dashboard")
	require.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	assert.Contains(t, body, "<h1>hello Stream lit</h1>")
	assert.Contains(t, body, "this is a simple text")
	assert.Contains(t, body, "<th>First column</th>")
	assert.Contains(t, body, "<th>second column</th>")
	assert.Equal(t, 3, strings.Count(body, "<polyline"))
}

func TestWidgetsPage_Defaults(t *testing.T) {
	th := newTestHost(t)

	rr := th.get(t, "/app/widgets")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, th.cookie, "session cookie should be set")

	body := rr.Body.String()
	assert.Contains(t, body, "Your age is 25")
	assert.Contains(t, body, "Your favourite programming language is python")
	assert.NotContains(t, body, "Hello,")
	assert.Contains(t, body, `accept=".csv"`)

	// People table is written on every rerun
	data, err := os.ReadFile(th.csvPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), ",Name,Age,City\n0,John,28,New York\n"))
}

func TestWidgetsPage_SubmitValues(t *testing.T) {
	th := newTestHost(t)
	th.get(t, "/app/widgets")

	form := url.Values{}
	form.Set(page.Key(demo.NameLabel), "Ada")
	form.Set(page.Key(demo.AgeLabel), "36")
	form.Set(page.Key(demo.LanguageLabel), "js")

	rr := th.postForm(t, "/app/widgets", form)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/app/widgets", rr.Header().Get("Location"))

	body := th.get(t, "/app/widgets").Body.String()
	assert.Contains(t, body, "Hello, Ada")
	assert.Contains(t, body, "Your age is 36")
	assert.Contains(t, body, "Your favourite programming language is js")
}

func TestWidgetsPage_SessionsIsolated(t *testing.T) {
	th := newTestHost(t)
	th.get(t, "/app/widgets")
	th.postForm(t, "/app/widgets", url.Values{page.Key(demo.NameLabel): {"Ada"}})

	other := &testHost{mux: th.mux, store: th.store}
	body := other.get(t, "/app/widgets").Body.String()
	assert.NotContains(t, body, "Hello, Ada")
}

func TestWidgetsPage_ClearName(t *testing.T) {
	th := newTestHost(t)
	th.get(t, "/app/widgets")
	th.postForm(t, "/app/widgets", url.Values{page.Key(demo.NameLabel): {"Ada"}})
	th.postForm(t, "/app/widgets", url.Values{page.Key(demo.NameLabel): {""}})

	body := th.get(t, "/app/widgets").Body.String()
	assert.NotContains(t, body, "Hello,")
}

func TestWidgetsPage_Upload(t *testing.T) {
	th := newTestHost(t)
	th.get(t, "/app/widgets")

	rr := th.postFile(t, "/app/widgets", page.Key(demo.UploadLabel), "scores.csv", "player,score\nann,3\n")
	require.Equal(t, http.StatusSeeOther, rr.Code)

	body := th.get(t, "/app/widgets").Body.String()
	assert.Contains(t, body, "<th>player</th>")
	assert.Contains(t, body, "<td>ann</td>")
	assert.Contains(t, body, "scores.csv")
}

func TestWidgetsPage_MalformedUpload(t *testing.T) {
	th := newTestHost(t)
	th.get(t, "/app/widgets")
	th.postFile(t, "/app/widgets", page.Key(demo.UploadLabel), "bad.csv", "a,b\n1,2,3\n")

	rr := th.get(t, "/app/widgets")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `class="error"`)
	assert.Contains(t, rr.Body.String(), "bad.csv")
}

func TestWidgetsPage_ClearUpload(t *testing.T) {
	th := newTestHost(t)
	th.get(t, "/app/widgets")
	th.postFile(t, "/app/widgets", page.Key(demo.UploadLabel), "scores.csv", "player\nann\n")

	rr := th.do(httptest.NewRequest(http.MethodPost, "/app/widgets/upload/"+page.Key(demo.UploadLabel)+"/clear", nil))
	require.Equal(t, http.StatusSeeOther, rr.Code)

	body := th.get(t, "/app/widgets").Body.String()
	assert.NotContains(t, body, "<th>player</th>")
}

func TestTableExport(t *testing.T) {
	th := newTestHost(t)

	rr := th.get(t, "/app/widgets/table/0.xlsx")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "widgets-table-0.xlsx")

	book, err := excelize.OpenReader(rr.Body)
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"", "Name", "Age", "City"}, rows[0])
}

func TestTableExport_NotFound(t *testing.T) {
	th := newTestHost(t)

	assert.Equal(t, http.StatusNotFound, th.get(t, "/app/widgets/table/7.xlsx").Code)
	assert.Equal(t, http.StatusNotFound, th.get(t, "/app/widgets/table/x.xlsx").Code)
	assert.Equal(t, http.StatusNotFound, th.get(t, "/app/widgets/table/0.csv").Code)
}

func TestStaleCookieStartsNewSession(t *testing.T) {
	th := newTestHost(t)
	th.cookie = &http.Cookie{Name: SessionCookieName, Value: "gone"}

	rr := th.get(t, "/app/widgets")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotEqual(t, "gone", th.cookie.Value)
}

// expiringStore deletes every session just before the first write, as the
// idle-session janitor would.
type expiringStore struct {
	*store.MockStore
	expired bool
}

func (s *expiringStore) SaveValues(ctx context.Context, sessionID string, values map[string]string) error {
	if !s.expired {
		s.expired = true
		if _, err := s.DeleteSessionsBefore(ctx, time.Now().Add(time.Hour)); err != nil {
			return err
		}
	}
	return s.MockStore.SaveValues(ctx, sessionID, values)
}

func TestWidgetsPage_SessionExpiresDuringSubmit(t *testing.T) {
	s := &expiringStore{MockStore: store.NewMockStore()}
	registry := demo.NewRegistry(demo.FileSink{Path: filepath.Join(t.TempDir(), "sampledata.csv")}, nil)
	h := New(registry, s, nil, Config{SessionTTL: time.Hour})
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	th := &testHost{mux: mux, store: s.MockStore}

	th.get(t, "/app/widgets")
	first := th.cookie.Value

	rr := th.postForm(t, "/app/widgets", url.Values{page.Key(demo.NameLabel): {"Ada"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.NotEqual(t, first, th.cookie.Value, "expired session should be replaced")

	body := th.get(t, "/app/widgets").Body.String()
	assert.Contains(t, body, "Hello, Ada")
}
