package employee

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/Qoxxoraliyev/employee-management/internal/domain"
	employeeerrors "github.com/Qoxxoraliyev/employee-management/internal/employee/errors"
	"github.com/Qoxxoraliyev/employee-management/internal/shared/apperror"
	"github.com/Qoxxoraliyev/employee-management/internal/shared/response"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, logger: l}
}

// NewHandlerWithRedis enables idempotent create: the handler stores the
// response under the middleware's cache key and releases its lock.
func NewHandlerWithRedis(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	h := NewHandler(service, logger...)
	h.rdb = rdb
	return h
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("employee request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Invalid employee ID", nil)
		return 0, false
	}
	return id, true
}

func (h *Handler) Create(c *gin.Context) {
	lockKey, _ := c.Get("idempotency_lock_key")
	cacheKey, _ := c.Get("idempotency_cache_key")

	if h.rdb != nil {
		if lk, ok := lockKey.(string); ok && lk != "" {
			defer h.rdb.Del(c.Request.Context(), lk)
		}
	}

	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if h.rdb != nil {
		if ck, ok := cacheKey.(string); ok && ck != "" {
			if payload, marshalErr := json.Marshal(resp); marshalErr == nil {
				_ = h.rdb.Set(c.Request.Context(), ck, payload, 24*time.Hour).Err()
			}
		}
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	resp, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

// Search composes the advanced filter from the optional query params
// name, department, status, min_age and max_age.
func (h *Handler) Search(c *gin.Context) {
	var criteria FilterCriteria

	if v, ok := c.GetQuery("name"); ok {
		criteria.Name = &v
	}
	if v, ok := c.GetQuery("department"); ok {
		criteria.Department = &v
	}
	if v, ok := c.GetQuery("status"); ok {
		status, valid := domain.ParseStatus(v)
		if !valid {
			h.writeServiceError(c, employeeerrors.ErrInvalidStatus)
			return
		}
		criteria.Status = &status
	}

	minAge, ok := h.queryInt(c, "min_age")
	if !ok {
		return
	}
	maxAge, ok := h.queryInt(c, "max_age")
	if !ok {
		return
	}
	criteria.MinAge = minAge
	criteria.MaxAge = maxAge

	resp, err := h.service.Search(c.Request.Context(), criteria)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetPage(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Invalid page number", nil)
		return
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Invalid page size", nil)
		return
	}
	sortBy := c.DefaultQuery("sort_by", "id")
	direction := c.DefaultQuery("direction", "asc")

	result, err := h.service.GetPage(c.Request.Context(), page, size, sortBy, direction)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := result.Meta()
	response.Success(c, http.StatusOK, result.Content, &meta)
}

func (h *Handler) GetByStatus(c *gin.Context) {
	resp, err := h.service.GetByStatus(c.Request.Context(), c.Param("status"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByGender(c *gin.Context) {
	resp, err := h.service.GetByGender(c.Request.Context(), c.Param("gender"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByDepartmentName(c *gin.Context) {
	resp, err := h.service.GetByDepartmentName(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByStatusAndDepartment(c *gin.Context) {
	resp, err := h.service.GetByStatusAndDepartmentName(
		c.Request.Context(), c.Query("status"), c.Query("department"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByDepartmentAndPosition(c *gin.Context) {
	resp, err := h.service.GetByDepartmentNameAndPosition(
		c.Request.Context(), c.Query("department"), c.Query("position"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) SearchByName(c *gin.Context) {
	resp, err := h.service.SearchByName(c.Request.Context(), c.Query("name"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) SearchByPhone(c *gin.Context) {
	resp, err := h.service.SearchByPhone(c.Request.Context(), c.Query("phone"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByHireDateRange(c *gin.Context) {
	resp, err := h.service.GetByHireDateRange(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByBirthDateRange(c *gin.Context) {
	resp, err := h.service.GetByBirthDateRange(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetBySalaryRange(c *gin.Context) {
	min, err := strconv.ParseFloat(c.Query("min"), 64)
	if err != nil {
		h.writeServiceError(c, employeeerrors.ErrInvalidSalaryRange)
		return
	}
	max, err := strconv.ParseFloat(c.Query("max"), 64)
	if err != nil {
		h.writeServiceError(c, employeeerrors.ErrInvalidSalaryRange)
		return
	}

	resp, err := h.service.GetBySalaryRange(c.Request.Context(), min, max)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetTopPaid(c *gin.Context) {
	resp, err := h.service.GetTopPaid(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAge(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	age, err := h.service.AgeOf(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"age": age}, nil)
}

func (h *Handler) GetCount(c *gin.Context) {
	count, err := h.service.CountAll(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, count, nil)
}

func (h *Handler) GetActivePercentage(c *gin.Context) {
	pct, err := h.service.ActivePercentage(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, pct, nil)
}

func (h *Handler) GetNewLast30Days(c *gin.Context) {
	count, err := h.service.CountNewLast30Days(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, count, nil)
}

func (h *Handler) queryInt(c *gin.Context, name string) (*int, bool) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Invalid "+name, nil)
		return nil, false
	}
	return &v, true
}
