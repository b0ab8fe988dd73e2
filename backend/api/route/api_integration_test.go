package route

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"media-uploader/backend/common"
	"media-uploader/backend/library/storage"
	"media-uploader/backend/model"
	"media-uploader/backend/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	common.JWTSecret = "route-test-secret"
	os.Exit(m.Run())
}

type fakeStore struct {
	mu          sync.Mutex
	objects     map[string][]byte
	failDestroy bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string][]byte)}
}

func (f *fakeStore) Upload(ctx context.Context, key string, contentType string, data []byte) (storage.UploadResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = data
	return storage.UploadResult{URL: "http://store.local/" + key, Key: key}, nil
}

func (f *fakeStore) Destroy(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDestroy {
		return errors.New("remote store unavailable")
	}
	delete(f.objects, key)
	return nil
}

// testServer wires a full router against a throwaway database and a fake
// object store, with a cookie jar so flows spanning several requests keep
// their session.
type testServer struct {
	server *httptest.Server
	client *http.Client
	store  *fakeStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	originalSQLitePath := common.SQLitePath
	common.SQLitePath = filepath.Join(t.TempDir(), "route_test.db")
	assert.NoError(t, model.InitDB())

	store := newFakeStore()
	storage.Configure(store)

	router := gin.New()
	router.Use(sessions.Sessions("session", cookie.NewStore([]byte("test-session-secret"))))
	SetRouter(router, os.DirFS("../../../web"))

	server := httptest.NewServer(router)
	jar, err := cookiejar.New(nil)
	assert.NoError(t, err)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	t.Cleanup(func() {
		server.Close()
		common.SQLitePath = originalSQLitePath
		storage.Configure(nil)
	})
	return &testServer{server: server, client: client, store: store}
}

func (ts *testServer) get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := ts.client.Get(ts.server.URL + path)
	assert.NoError(t, err)
	return resp
}

func (ts *testServer) postForm(t *testing.T, path string, form url.Values) *http.Response {
	t.Helper()
	resp, err := ts.client.PostForm(ts.server.URL+path, form)
	assert.NoError(t, err)
	return resp
}

func (ts *testServer) postJSON(t *testing.T, path string, body any, token string) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	assert.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, ts.server.URL+path, bytes.NewReader(data))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := ts.client.Do(req)
	assert.NoError(t, err)
	return resp
}

func (ts *testServer) uploadFile(t *testing.T, filename string, content []byte, fields map[string]string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	assert.NoError(t, err)
	_, err = part.Write(content)
	assert.NoError(t, err)
	for k, v := range fields {
		assert.NoError(t, writer.WriteField(k, v))
	}
	assert.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, ts.server.URL+"/upload", &buf)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err := ts.client.Do(req)
	assert.NoError(t, err)
	return resp
}

func (ts *testServer) createAndLogin(t *testing.T, username, password string) {
	t.Helper()
	resp := ts.postForm(t, "/setup", url.Values{"username": {username}, "password": {password}})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp = ts.postForm(t, "/login", url.Values{"username": {username}, "password": {password}})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/manage", resp.Header.Get("Location"))
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	return string(data)
}

func decodeJSON(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var result map[string]any
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}

func TestSetupLoginFlow(t *testing.T) {
	ts := newTestServer(t)

	// without any user the login page punts to setup
	resp := ts.get(t, "/login")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/setup", resp.Header.Get("Location"))

	ts.createAndLogin(t, "admin", "secret123")

	resp = ts.get(t, "/manage")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Logged in as admin")
}

func TestSetupOverwritesExistingUser(t *testing.T) {
	ts := newTestServer(t)
	ts.createAndLogin(t, "admin", "first-password")

	resp := ts.postForm(t, "/setup", url.Values{"username": {"admin"}, "password": {"second-password"}})
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	count, err := model.CountUsers()
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = model.CheckCredentials("admin", "second-password")
	assert.NoError(t, err)
	_, err = model.CheckCredentials("admin", "first-password")
	assert.Error(t, err)
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.postForm(t, "/register", url.Values{"username": {"bob"}, "password": {"pw"}})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp = ts.postForm(t, "/register", url.Values{"username": {"bob"}, "password": {"other"}})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/register", resp.Header.Get("Location"))

	// the flash lands on the next render of the register page
	resp = ts.get(t, "/register")
	assert.Contains(t, readBody(t, resp), "That username is already taken.")
}

func TestLoginRejectsBadPassword(t *testing.T) {
	ts := newTestServer(t)
	ts.createAndLogin(t, "admin", "secret123")
	ts.get(t, "/logout")

	resp := ts.postForm(t, "/login", url.Values{"username": {"admin"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp = ts.get(t, "/login")
	assert.Contains(t, readBody(t, resp), "Invalid credentials")
}

func TestAuthGuards(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.get(t, "/manage")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp = ts.postJSON(t, "/bulk_delete", map[string]any{"media_ids": []int64{1}}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	result := decodeJSON(t, resp)
	assert.Equal(t, false, result["success"])
}

func TestAnonymousUploadAppearsInGallery(t *testing.T) {
	ts := newTestServer(t)
	ts.createAndLogin(t, "admin", "secret123")
	ts.get(t, "/logout")

	resp := ts.uploadFile(t, "vacation.jpg", []byte("jpegbytes"), map[string]string{"uploader_name": "carol"})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/gallery", resp.Header.Get("Location"))

	body := readBody(t, ts.get(t, "/gallery"))
	assert.Contains(t, body, "vacation.jpg")
	assert.Contains(t, body, "by carol")
}

func TestUploadUsesSessionUsername(t *testing.T) {
	ts := newTestServer(t)
	ts.createAndLogin(t, "admin", "secret123")

	resp := ts.uploadFile(t, "vacation.jpg", []byte("jpegbytes"), nil)
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	all, err := model.GetAllMedia()
	assert.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Equal(t, "admin", all[0].UploadedBy)
}

func TestToggleVisibilityHidesFromGallery(t *testing.T) {
	ts := newTestServer(t)
	ts.createAndLogin(t, "admin", "secret123")
	ts.uploadFile(t, "hideme.jpg", []byte("x"), nil)

	all, err := model.GetAllMedia()
	assert.NoError(t, err)
	assert.Len(t, all, 1)

	resp := ts.get(t, fmt.Sprintf("/toggle_visibility/%d", all[0].Id))
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	assert.NotContains(t, readBody(t, ts.get(t, "/gallery")), "hideme.jpg")
	assert.Contains(t, readBody(t, ts.get(t, "/manage")), "hideme.jpg")
}

func TestDeleteMedia(t *testing.T) {
	ts := newTestServer(t)
	ts.createAndLogin(t, "admin", "secret123")
	ts.uploadFile(t, "doomed.jpg", []byte("x"), nil)

	all, err := model.GetAllMedia()
	assert.NoError(t, err)
	assert.Len(t, all, 1)

	resp := ts.get(t, fmt.Sprintf("/delete/%d", all[0].Id))
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	all, err = model.GetAllMedia()
	assert.NoError(t, err)
	assert.Empty(t, all)
	assert.NotContains(t, readBody(t, ts.get(t, "/gallery")), "doomed.jpg")
}

func TestDeleteKeepsRowWhenRemoteFails(t *testing.T) {
	ts := newTestServer(t)
	ts.createAndLogin(t, "admin", "secret123")
	ts.uploadFile(t, "sticky.jpg", []byte("x"), nil)

	ts.store.failDestroy = true
	all, err := model.GetAllMedia()
	assert.NoError(t, err)
	ts.get(t, fmt.Sprintf("/delete/%d", all[0].Id))

	all, err = model.GetAllMedia()
	assert.NoError(t, err)
	assert.Len(t, all, 1)

	body := readBody(t, ts.get(t, "/manage"))
	assert.Contains(t, body, "Delete failed")
}

func TestBulkToggleVisibility(t *testing.T) {
	ts := newTestServer(t)
	ts.createAndLogin(t, "admin", "secret123")
	ts.uploadFile(t, "a.jpg", []byte("a"), nil)
	ts.uploadFile(t, "b.jpg", []byte("b"), nil)

	all, err := model.GetAllMedia()
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	resp := ts.postJSON(t, "/bulk_toggle_visibility", map[string]any{
		"media_ids": []int64{all[0].Id, all[1].Id, 999},
	}, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	result := decodeJSON(t, resp)
	assert.Equal(t, "success", result["status"])

	for _, m := range all {
		got, err := model.GetMediaById(m.Id)
		assert.NoError(t, err)
		assert.False(t, got.IsVisible)
	}
}

func TestBulkDeleteReportsPartialFailure(t *testing.T) {
	ts := newTestServer(t)
	ts.createAndLogin(t, "admin", "secret123")
	ts.uploadFile(t, "a.jpg", []byte("a"), nil)

	all, err := model.GetAllMedia()
	assert.NoError(t, err)

	ts.store.failDestroy = true
	resp := ts.postJSON(t, "/bulk_delete", map[string]any{
		"media_ids": []int64{all[0].Id, 999},
	}, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	result := decodeJSON(t, resp)
	assert.Equal(t, "partial", result["status"])
	assert.Len(t, result["failed_ids"], 1)
}

func TestBulkDeleteSucceeds(t *testing.T) {
	ts := newTestServer(t)
	ts.createAndLogin(t, "admin", "secret123")
	ts.uploadFile(t, "a.jpg", []byte("a"), nil)
	ts.uploadFile(t, "b.jpg", []byte("b"), nil)

	all, err := model.GetAllMedia()
	assert.NoError(t, err)

	resp := ts.postJSON(t, "/bulk_delete", map[string]any{
		"media_ids": []int64{all[0].Id, all[1].Id},
	}, "")
	result := decodeJSON(t, resp)
	assert.Equal(t, "success", result["status"])

	remaining, err := model.GetAllMedia()
	assert.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestDownloadSelected(t *testing.T) {
	ts := newTestServer(t)
	ts.createAndLogin(t, "admin", "secret123")
	ts.uploadFile(t, "a.jpg", []byte("content-a"), nil)
	ts.uploadFile(t, "b.jpg", []byte("content-b"), nil)

	all, err := model.GetAllMedia()
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	originalFetch := service.FetchURL
	service.FetchURL = func(ctx context.Context, mediaURL string) ([]byte, error) {
		key := strings.TrimPrefix(mediaURL, "http://store.local/")
		ts.store.mu.Lock()
		defer ts.store.mu.Unlock()
		data, ok := ts.store.objects[key]
		if !ok {
			return nil, fmt.Errorf("no object for %s", mediaURL)
		}
		return data, nil
	}
	t.Cleanup(func() { service.FetchURL = originalFetch })

	resp := ts.postForm(t, "/download_selected", url.Values{
		"media_ids": {fmt.Sprint(all[0].Id), fmt.Sprint(all[1].Id)},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/zip", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="selected_media.zip"`, resp.Header.Get("Content-Disposition"))

	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	assert.NoError(t, err)

	var names []string
	for _, f := range reader.File {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{"a.jpg", "b.jpg"}, names)
}

func TestDownloadSelectedEmptySelection(t *testing.T) {
	ts := newTestServer(t)
	ts.createAndLogin(t, "admin", "secret123")

	resp := ts.postForm(t, "/download_selected", url.Values{})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/manage", resp.Header.Get("Location"))

	body := readBody(t, ts.get(t, "/manage"))
	assert.Contains(t, body, "No files selected")
}

func TestAPITokenAuth(t *testing.T) {
	ts := newTestServer(t)
	ts.createAndLogin(t, "admin", "secret123")
	ts.uploadFile(t, "a.jpg", []byte("a"), nil)

	resp := ts.get(t, "/api/token")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	result := decodeJSON(t, resp)
	assert.Equal(t, true, result["success"])
	token, ok := result["data"].(string)
	assert.True(t, ok)
	assert.NotEmpty(t, token)

	// a fresh client has no session; the bearer token alone must work
	bare := &http.Client{}
	all, err := model.GetAllMedia()
	assert.NoError(t, err)
	payload, err := json.Marshal(map[string]any{"media_ids": []int64{all[0].Id}})
	assert.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, ts.server.URL+"/bulk_toggle_visibility", bytes.NewReader(payload))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	tokenResp, err := bare.Do(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, tokenResp.StatusCode)
	tokenResult := decodeJSON(t, tokenResp)
	assert.Equal(t, "success", tokenResult["status"])
}

func TestStatusEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.get(t, "/api/status")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	result := decodeJSON(t, resp)
	assert.Equal(t, true, result["success"])
}

func TestHomeRedirectsToUpload(t *testing.T) {
	ts := newTestServer(t)
	resp := ts.get(t, "/")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/upload", resp.Header.Get("Location"))
}
