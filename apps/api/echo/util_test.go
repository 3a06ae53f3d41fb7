package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync"
	"testing"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/course"
	"github.com/trezcool/gradebook/core/grade"
	"github.com/trezcool/gradebook/core/report"
	"github.com/trezcool/gradebook/core/student"
	"github.com/trezcool/gradebook/storage/database"
)

type testLogger struct {
	mu     sync.Mutex
	errors []string
}

var _ core.Logger = (*testLogger)(nil)

func (l *testLogger) Debug(string, ...interface{}) {}
func (l *testLogger) Info(string, ...interface{})  {}
func (l *testLogger) Warn(string, ...interface{})  {}
func (l *testLogger) Fatal(string, ...interface{}) {}
func (l *testLogger) Error(msg string, _ ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg)
}

func testConfig() *core.Config {
	return &core.Config{
		AppName:  "Gradebook",
		Env:      "TEST",
		TestMode: true,
		Server: core.ServerConfig{
			DisableReqLogs: true,
			CORSOrigins:    []string{"*"},
		},
	}
}

// newTestServer wires a server the way main does, over the given store.
func newTestServer(conf *core.Config, store *database.Store, logger core.Logger) Server {
	validate, translator := core.NewValidator()
	return NewServer(
		&Options{
			Conf:       conf,
			Logger:     logger,
			Translator: translator,
			UsingDB:    store.UsingDB(),
			StudentSvc: student.NewService(store.Students, validate),
			CourseSvc:  course.NewService(store.Courses, validate),
			GradeSvc:   grade.NewService(store.Grades, validate),
			ReportSvc:  report.NewService(store.Students, store.Courses, store.Grades),
		},
	)
}

func setup(t *testing.T) (Server, *database.Store) {
	t.Helper()
	store := database.NewInMemoryStore()
	return newTestServer(testConfig(), store, new(testLogger)), store
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		if tt.wantCode == http.StatusNoContent && rec.Body.Len() != 0 {
			t.Errorf("failed! data = %v; want no body", rec.Body.String())
		}
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runHTTPTests(t *testing.T, app Server, tests []httpTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
