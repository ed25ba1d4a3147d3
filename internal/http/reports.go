package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"finlite/internal/domain"
	"finlite/internal/storage"
)

type reportRequest struct {
	ReportName string `json:"report_name"`
}

type ReportResponse struct {
	ID              int64  `json:"id"`
	ReportName      string `json:"report_name"`
	ArchiveLocation string `json:"archive_location,omitempty"`
	CreatedAt       string `json:"created_at"`
}

type StorageObjectResponse struct {
	Key          string  `json:"key"`
	Size         int64   `json:"size"`
	LastModified *string `json:"last_modified,omitempty"`
}

func reportToResponse(report domain.Report) ReportResponse {
	return ReportResponse{
		ID:              report.ID,
		ReportName:      report.ReportName,
		ArchiveLocation: report.ArchiveLocation,
		CreatedAt:       formatTime(report.CreatedAt),
	}
}

func objectToResponse(obj storage.ObjectInfo) StorageObjectResponse {
	resp := StorageObjectResponse{
		Key:  obj.Key,
		Size: obj.Size,
	}
	if obj.LastModified != nil && !obj.LastModified.IsZero() {
		v := obj.LastModified.Format(time.RFC3339)
		resp.LastModified = &v
	}
	return resp
}

func (h *Handler) listReports(c *gin.Context) {
	reports, err := h.reports.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]ReportResponse, len(reports))
	for i := range reports {
		resp[i] = reportToResponse(reports[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createReport(c *gin.Context) {
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reports.Create(c.Request.Context(), currentUserID(c), req.ReportName)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, reportToResponse(*report))
}

func (h *Handler) deleteReport(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.reports.Delete(c.Request.Context(), id, currentUserID(c)); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "report deleted"})
}

func (h *Handler) listReportArchives(c *gin.Context) {
	objects, err := h.reports.ListArchives(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]StorageObjectResponse, len(objects))
	for i := range objects {
		resp[i] = objectToResponse(objects[i])
	}
	c.JSON(http.StatusOK, resp)
}
