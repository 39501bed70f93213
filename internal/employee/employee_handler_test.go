package employee_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"go-leaveflow/internal/employee"
	employeeerrors "go-leaveflow/internal/employee/errors"
	"go-leaveflow/internal/shared/apperror"
)

type fakeEmployeeService struct {
	CreateFn  func(ctx context.Context, req employee.EmployeeRequest) (employee.EmployeeResponse, error)
	GetAllFn  func(ctx context.Context) ([]employee.EmployeeResponse, error)
	GetByIDFn func(ctx context.Context, id string) (employee.EmployeeResponse, error)
	UpdateFn  func(ctx context.Context, id string, req employee.EmployeeRequest) (employee.EmployeeResponse, error)
	DeleteFn  func(ctx context.Context, id string) error
}

func (f *fakeEmployeeService) Create(ctx context.Context, req employee.EmployeeRequest) (employee.EmployeeResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeEmployeeService) GetAll(ctx context.Context) ([]employee.EmployeeResponse, error) {
	return f.GetAllFn(ctx)
}
func (f *fakeEmployeeService) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeEmployeeService) Update(ctx context.Context, id string, req employee.EmployeeRequest) (employee.EmployeeResponse, error) {
	return f.UpdateFn(ctx, id, req)
}
func (f *fakeEmployeeService) Delete(ctx context.Context, id string) error {
	return f.DeleteFn(ctx, id)
}

const validBody = `{"name":"John Doe","address":"Jl. Merdeka 10","age":30,"nationalId":"3201010101010001","status":"Married","gender":"MALE"}`

func newContext(method, path, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func TestEmployeeHandler_Create(t *testing.T) {
	t.Run("success accepts mixed case enums", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, req employee.EmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, "John Doe", req.Name)
				assert.Equal(t, "Married", req.Status)
				return employee.EmployeeResponse{ID: uuid.NewString(), Name: req.Name}, nil
			},
		}

		c, w := newContext(http.MethodPost, "/api/users", validBody)
		employee.NewHandler(svc).Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"success"`)
		assert.Contains(t, w.Body.String(), "John Doe")
	})

	t.Run("validation error", func(t *testing.T) {
		svc := &fakeEmployeeService{}

		c, w := newContext(http.MethodPost, "/api/users", `{"name":"x","address":"abc","nationalId":"12"}`)
		employee.NewHandler(svc).Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeValidationError)
	})

	t.Run("age out of range", func(t *testing.T) {
		svc := &fakeEmployeeService{}
		body := strings.Replace(validBody, `"age":30`, `"age":130`, 1)

		c, w := newContext(http.MethodPost, "/api/users", body)
		employee.NewHandler(svc).Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("service error", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, req employee.EmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, errors.New("database connection failed")
			},
		}

		c, w := newContext(http.MethodPost, "/api/users", validBody)
		employee.NewHandler(svc).Create(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "database connection failed")
	})

	t.Run("duplicate national id returns conflict", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, req employee.EmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrNationalIDAlreadyExists
			},
		}

		c, w := newContext(http.MethodPost, "/api/users", validBody)
		employee.NewHandler(svc).Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeConflict)
	})
}

func TestEmployeeHandler_GetAll(t *testing.T) {
	t.Run("empty list is still success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetAllFn: func(ctx context.Context) ([]employee.EmployeeResponse, error) {
				return []employee.EmployeeResponse{}, nil
			},
		}

		c, w := newContext(http.MethodGet, "/api/users", "")
		employee.NewHandler(svc).GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"data":[]`)
	})
}

func TestEmployeeHandler_GetByID(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetByIDFn: func(ctx context.Context, id string) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
			},
		}

		c, w := newContext(http.MethodGet, "/api/users/x", "")
		c.Params = gin.Params{{Key: "id", Value: uuid.NewString()}}
		employee.NewHandler(svc).GetByID(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestEmployeeHandler_UpdateAndDelete(t *testing.T) {
	id := uuid.NewString()
	svc := &fakeEmployeeService{
		UpdateFn: func(ctx context.Context, gotID string, req employee.EmployeeRequest) (employee.EmployeeResponse, error) {
			assert.Equal(t, id, gotID)
			return employee.EmployeeResponse{ID: gotID, Name: req.Name}, nil
		},
		DeleteFn: func(ctx context.Context, gotID string) error {
			assert.Equal(t, id, gotID)
			return nil
		},
	}
	h := employee.NewHandler(svc)

	c, w := newContext(http.MethodPut, "/api/users/"+id, validBody)
	c.Params = gin.Params{{Key: "id", Value: id}}
	h.Update(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = newContext(http.MethodDelete, "/api/users/"+id, "")
	c.Params = gin.Params{{Key: "id", Value: id}}
	h.Delete(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "User deleted")
}
