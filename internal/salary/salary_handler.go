package salary

import (
	"fmt"
	"net/http"
	"strconv"

	salaryerrors "github.com/Qoxxoraliyev/employee-management/internal/salary/errors"
	"github.com/Qoxxoraliyev/employee-management/internal/shared/apperror"
	"github.com/Qoxxoraliyev/employee-management/internal/shared/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("salary.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salary.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("salary request failed",
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
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Invalid "+name, nil)
		return 0, false
	}
	return id, true
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateSalaryRequest
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

	var req UpdateSalaryRequest
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

func (h *Handler) GetHistoryByEmployee(c *gin.Context) {
	id, ok := parseID(c, "employeeId")
	if !ok {
		return
	}

	resp, err := h.service.GetHistoryByEmployee(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByDepartment(c *gin.Context) {
	id, ok := parseID(c, "departmentId")
	if !ok {
		return
	}

	resp, err := h.service.GetByDepartment(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByAmountRange(c *gin.Context) {
	min, err := strconv.ParseFloat(c.Query("min"), 64)
	if err != nil {
		h.writeServiceError(c, salaryerrors.ErrInvalidAmountRange)
		return
	}
	max, err := strconv.ParseFloat(c.Query("max"), 64)
	if err != nil {
		h.writeServiceError(c, salaryerrors.ErrInvalidAmountRange)
		return
	}

	resp, err := h.service.GetByAmountRange(c.Request.Context(), min, max)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByPaymentDateRange(c *gin.Context) {
	resp, err := h.service.GetByPaymentDateRange(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetWithBonus(c *gin.Context) {
	resp, err := h.service.GetWithBonus(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetWithoutBonus(c *gin.Context) {
	resp, err := h.service.GetWithoutBonus(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetTopByAmount(c *gin.Context) {
	resp, err := h.service.GetTopByAmount(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetTopByBonus(c *gin.Context) {
	resp, err := h.service.GetTopByBonus(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetMinAmount(c *gin.Context) {
	v, err := h.service.GetMinAmount(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, v, nil)
}

func (h *Handler) GetMaxAmount(c *gin.Context) {
	v, err := h.service.GetMaxAmount(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, v, nil)
}

func (h *Handler) GetMaxForEmployee(c *gin.Context) {
	id, ok := parseID(c, "employeeId")
	if !ok {
		return
	}
	v, err := h.service.GetMaxForEmployee(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, v, nil)
}

func (h *Handler) GetMaxForDepartment(c *gin.Context) {
	id, ok := parseID(c, "departmentId")
	if !ok {
		return
	}
	v, err := h.service.GetMaxForDepartment(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, v, nil)
}

func (h *Handler) GetAvgForEmployee(c *gin.Context) {
	id, ok := parseID(c, "employeeId")
	if !ok {
		return
	}
	v, err := h.service.GetAvgForEmployee(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, v, nil)
}

func (h *Handler) GetMonthlyStats(c *gin.Context) {
	year := 0
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.writeServiceError(c, salaryerrors.ErrInvalidYear)
			return
		}
		year = parsed
	}

	resp, err := h.service.GetMonthlyStats(c.Request.Context(), year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetReport(c *gin.Context) {
	id, ok := parseID(c, "employeeId")
	if !ok {
		return
	}

	pdf, err := h.service.GenerateReportPDF(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=salary-report-%d.pdf", id))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
