package employee_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Qoxxoraliyev/employee-management/internal/employee"
	employeeerrors "github.com/Qoxxoraliyev/employee-management/internal/employee/errors"
	"github.com/Qoxxoraliyev/employee-management/internal/middleware"
	"github.com/Qoxxoraliyev/employee-management/internal/shared/pagination"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeService struct {
	employee.Service

	CreateFn  func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	GetByIDFn func(ctx context.Context, id int64) (employee.EmployeeResponse, error)
	SearchFn  func(ctx context.Context, criteria employee.FilterCriteria) ([]employee.EmployeeResponse, error)
	GetPageFn func(ctx context.Context, page, size int, sortBy, direction string) (pagination.Page[employee.EmployeeResponse], error)
	AgeOfFn   func(ctx context.Context, id int64) (int, error)
}

func (f *fakeEmployeeService) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeEmployeeService) GetByID(ctx context.Context, id int64) (employee.EmployeeResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeEmployeeService) Search(ctx context.Context, criteria employee.FilterCriteria) ([]employee.EmployeeResponse, error) {
	return f.SearchFn(ctx, criteria)
}
func (f *fakeEmployeeService) GetPage(ctx context.Context, page, size int, sortBy, direction string) (pagination.Page[employee.EmployeeResponse], error) {
	return f.GetPageFn(ctx, page, size, sortBy, direction)
}
func (f *fakeEmployeeService) AgeOf(ctx context.Context, id int64) (int, error) {
	return f.AgeOfFn(ctx, id)
}

func testContext(t *testing.T, method, target string, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	c.Request = httptest.NewRequest(method, target, reader)
	if body != "" {
		c.Request.Header.Set("Content-Type", "application/json")
	}
	return c, w
}

func TestEmployeeHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, "John", req.FirstName)
				return employee.EmployeeResponse{ID: 1, FullName: "John Doe"}, nil
			},
		}
		h := employee.NewHandler(svc)

		c, w := testContext(t, http.MethodPost, "/employees",
			`{"first_name":"John","last_name":"Doe","birth_date":"1990-06-15","department_id":1}`)
		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"ok":true`)
	})

	t.Run("missing required fields", func(t *testing.T) {
		h := employee.NewHandler(&fakeEmployeeService{})

		c, w := testContext(t, http.MethodPost, "/employees", `{"last_name":"Doe"}`)
		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"ok":false`)
	})
}

// idempotentCreateRouter mounts Create behind the idempotency middleware
// the way the app registry does: after authentication has set user_id.
func idempotentCreateRouter(svc employee.Service, rdb *redis.Client) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", "7") })
	h := employee.NewHandlerWithRedis(svc, rdb)
	r.POST("/employees", middleware.Idempotency(rdb), h.Create)
	return r
}

func TestEmployeeHandler_Create_Idempotency(t *testing.T) {
	const (
		body     = `{"first_name":"John","last_name":"Doe","birth_date":"1990-06-15","department_id":1}`
		cacheKey = "idemp:/employees:7:k-1"
		lockKey  = cacheKey + ":lock"
	)
	resp := employee.EmployeeResponse{ID: 1, FullName: "John Doe"}
	payload, err := json.Marshal(resp)
	require.NoError(t, err)

	post := func(r *gin.Engine) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Idempotency-Key", "k-1")
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("first request locks, caches the response and releases the lock", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return resp, nil
			},
		}

		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)
		mock.ExpectSet(cacheKey, payload, 24*time.Hour).SetVal("OK")
		mock.ExpectDel(lockKey).SetVal(1)

		w := post(idempotentCreateRouter(svc, rdb))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"ok":true`)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("retry of a completed request replays the cached response", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		// the service must not run again; an unstubbed CreateFn panics

		mock.ExpectGet(cacheKey).SetVal(string(payload))

		w := post(idempotentCreateRouter(&fakeEmployeeService{}, rdb))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"ok":true`)
		assert.Contains(t, w.Body.String(), "John Doe")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("in-flight duplicate is rejected", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()

		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(false)

		w := post(idempotentCreateRouter(&fakeEmployeeService{}, rdb))

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "PROCESSING")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEmployeeHandler_GetByID(t *testing.T) {
	t.Run("not found maps to 404 envelope", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetByIDFn: func(ctx context.Context, id int64) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
			},
		}
		h := employee.NewHandler(svc)

		c, w := testContext(t, http.MethodGet, "/employees/42", "")
		c.Params = gin.Params{{Key: "id", Value: "42"}}
		h.GetByID(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "NOT_FOUND")
	})

	t.Run("non-numeric id", func(t *testing.T) {
		h := employee.NewHandler(&fakeEmployeeService{})

		c, w := testContext(t, http.MethodGet, "/employees/abc", "")
		c.Params = gin.Params{{Key: "id", Value: "abc"}}
		h.GetByID(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEmployeeHandler_Search(t *testing.T) {
	t.Run("forwards query params as criteria", func(t *testing.T) {
		var got employee.FilterCriteria
		svc := &fakeEmployeeService{
			SearchFn: func(ctx context.Context, criteria employee.FilterCriteria) ([]employee.EmployeeResponse, error) {
				got = criteria
				return nil, nil
			},
		}
		h := employee.NewHandler(svc)

		c, w := testContext(t, http.MethodGet, "/employees/search?name=jo&department=HR&status=ACTIVE&min_age=20&max_age=40", "")
		h.Search(c)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, got.Name)
		assert.Equal(t, "jo", *got.Name)
		require.NotNil(t, got.Department)
		assert.Equal(t, "HR", *got.Department)
		require.NotNil(t, got.MinAge)
		assert.Equal(t, 20, *got.MinAge)
		require.NotNil(t, got.MaxAge)
		assert.Equal(t, 40, *got.MaxAge)
	})

	t.Run("unknown status is rejected before the service runs", func(t *testing.T) {
		h := employee.NewHandler(&fakeEmployeeService{})

		c, w := testContext(t, http.MethodGet, "/employees/search?status=NAPPING", "")
		h.Search(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("non-numeric age", func(t *testing.T) {
		h := employee.NewHandler(&fakeEmployeeService{})

		c, w := testContext(t, http.MethodGet, "/employees/search?min_age=young", "")
		h.Search(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEmployeeHandler_GetPage(t *testing.T) {
	svc := &fakeEmployeeService{
		GetPageFn: func(ctx context.Context, page, size int, sortBy, direction string) (pagination.Page[employee.EmployeeResponse], error) {
			assert.Equal(t, 1, page)
			assert.Equal(t, 5, size)
			assert.Equal(t, "last_name", sortBy)
			req, err := pagination.NewRequest(page, size, "last_name", direction, map[string]bool{"last_name": true})
			require.NoError(t, err)
			return pagination.NewPage([]employee.EmployeeResponse{{ID: 6}}, req, 6), nil
		},
	}
	h := employee.NewHandler(svc)

	c, w := testContext(t, http.MethodGet, "/employees/page?page=1&size=5&sort_by=last_name&direction=desc", "")
	h.GetPage(c)

	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Ok   bool            `json:"ok"`
		Meta json.RawMessage `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Ok)
	assert.Contains(t, string(envelope.Meta), `"totalPages":2`)
}

func TestEmployeeHandler_GetAge(t *testing.T) {
	svc := &fakeEmployeeService{
		AgeOfFn: func(ctx context.Context, id int64) (int, error) { return 34, nil },
	}
	h := employee.NewHandler(svc)

	c, w := testContext(t, http.MethodGet, "/employees/1/age", "")
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	h.GetAge(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"age":34`)
}
