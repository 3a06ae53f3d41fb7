package echoapi

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/gradebook/core/student"
	"github.com/trezcool/gradebook/testutil"
)

func Test_studentApi_lifecycle(t *testing.T) {
	app, _ := setup(t)

	// create
	req, rec := newRequest(http.MethodPost, "/students", []byte(`{"name":"Bob"}`))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.EqualValues(t, 1, created["id"])
	assert.Equal(t, "Bob", created["name"])
	assert.Nil(t, created["course_id"])
	assert.Nil(t, created["email"])
	assert.NotEmpty(t, created["created_at"])

	// list
	req, rec = newRequest(http.MethodGet, "/students")
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	ok, err := jsonBytesEqual(rec.Body.Bytes(), marchallObj(t, []interface{}{created}))
	require.NoError(t, err)
	assert.True(t, ok, rec.Body.String())

	// delete, twice
	for i := 0; i < 2; i++ {
		req, rec = newRequest(http.MethodDelete, "/students/1")
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}

	// gone
	req, rec = newRequest(http.MethodGet, "/students/1")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "student not found"})}, rec)
}

func Test_studentApi_create(t *testing.T) {
	app, store := setup(t)
	math := testutil.CreateCourse(t, store.Courses, "Math")

	tests := []httpTest{
		{
			name:     "no name",
			method:   http.MethodPost,
			path:     "/students",
			body:     []byte(`{"email":"bob@test.cd"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"name": "this field is required"}),
		},
		{
			name:     "blank name",
			method:   http.MethodPost,
			path:     "/students",
			body:     []byte(`{"name":"   "}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"name": "this field is required"}),
		},
		{
			name:     "invalid email",
			method:   http.MethodPost,
			path:     "/students",
			body:     []byte(`{"name":"Bob","email":"bob"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": "enter a valid email address"}),
		},
	}
	runHTTPTests(t, app, tests)

	t.Run("malformed body", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/students", []byte(`{"name":`))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("with course", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/students", []byte(`{"name":" Alice ","email":"alice@test.cd","course_id":1}`))
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var std student.Student
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &std))
		assert.Equal(t, "Alice", std.Name)
		assert.Equal(t, null.StringFrom("alice@test.cd"), std.Email)
		assert.Equal(t, null.Int64From(math.ID), std.CourseID)
		assert.Equal(t, null.StringFrom("Math"), std.CourseName)
	})
}

func Test_studentApi_update(t *testing.T) {
	app, store := setup(t)
	math := testutil.CreateCourse(t, store.Courses, "Math")
	createdAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bob := testutil.CreateStudent(t, store.Students, "Bob", "bob@test.cd", math.ID, createdAt)

	renamed := bob
	renamed.Name = "Robert"

	cleared := renamed
	cleared.Email = null.String{}
	cleared.CourseID = null.Int64{}
	cleared.CourseName = null.String{}

	tests := []httpTest{
		{
			name:     "unknown id",
			method:   http.MethodPut,
			path:     "/students/99",
			body:     []byte(`{"name":"X"}`),
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "student not found"}),
		},
		{
			name:     "non numeric id",
			method:   http.MethodPut,
			path:     "/students/lol",
			body:     []byte(`{"name":"X"}`),
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "not found"}),
		},
		{
			name:     "empty name",
			method:   http.MethodPut,
			path:     "/students/1",
			body:     []byte(`{"name":""}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"name": "this field is required"}),
		},
		{
			name:     "rename keeps other fields",
			method:   http.MethodPut,
			path:     "/students/1",
			body:     []byte(`{"name":"Robert"}`),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, renamed),
		},
		{
			name:     "null clears optional fields",
			method:   http.MethodPut,
			path:     "/students/1",
			body:     []byte(`{"email":null,"course_id":null,"id":42,"created_at":"2030-01-01T00:00:00Z"}`),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, cleared),
		},
	}
	runHTTPTests(t, app, tests)

	got, err := store.Students.GetStudentByID(context.Background(), bob.ID)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, got.ID)
	assert.True(t, createdAt.Equal(got.CreatedAt))
}

func Test_studentApi_query(t *testing.T) {
	app, store := setup(t)
	math := testutil.CreateCourse(t, store.Courses, "Math")
	bob := testutil.CreateStudent(t, store.Students, "Bob", "", math.ID)
	alice := testutil.CreateStudent(t, store.Students, "Alice", "", 0)
	ghost := testutil.CreateStudent(t, store.Students, "Ghost", "", 77) // dangling course

	runHTTPTests(t, app, []httpTest{
		{
			name:     "ordered by id with course names",
			method:   http.MethodGet,
			path:     "/students",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, []student.Student{bob, alice, ghost}),
		},
		{
			name:     "retrieve",
			method:   http.MethodGet,
			path:     "/students/2",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, alice),
		},
	})
	assert.Equal(t, null.StringFrom("Math"), bob.CourseName)
	assert.False(t, ghost.CourseName.Valid)
}
