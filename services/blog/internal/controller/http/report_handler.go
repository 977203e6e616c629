package http

import (
	"net/http"

	"inkwell/pkg/logger"
	"inkwell/services/blog/internal/entity"
	"inkwell/services/blog/internal/usecase"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportUseCase usecase.ReportUseCase
	logger        *logger.Logger
}

func NewReportHandler(reportUseCase usecase.ReportUseCase, logger *logger.Logger) *ReportHandler {
	return &ReportHandler{reportUseCase: reportUseCase, logger: logger}
}

type CreateReportRequest struct {
	ReportType string  `json:"report_type"`
	ObjectUID  string  `json:"object_uid"`
	Reason     *string `json:"reason"`
}

// CreateReport godoc
// @Summary      Report a post or comment
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateReportRequest true "Report data"
// @Success      201  {object}  entity.Report
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /reports [post]
func (h *ReportHandler) CreateReport(c *gin.Context) {
	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	actor := currentActor(c)
	report, err := h.reportUseCase.CreateReport(c.Request.Context(), actor.UserUID, entity.ReportType(req.ReportType), req.ObjectUID, req.Reason)
	if err != nil {
		respondError(c, h.logger, err, "create report")
		return
	}

	c.JSON(http.StatusCreated, report)
}
