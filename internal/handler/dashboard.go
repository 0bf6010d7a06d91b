package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"dealflow/internal/export"
	"dealflow/internal/service"
	"dealflow/internal/stream"
)

type DashboardHandler struct {
	Service *service.DashboardService
	Hub     *stream.Hub
	Logger  *zap.Logger
}

func (h *DashboardHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/dashboard")
	group.GET("", h.get)
	group.GET("/export", h.exportFile)
	group.GET("/ws", h.stream)
}

// @Summary Aggregate dashboard view
// @Tags dashboard
// @Param year query int false "Reporting year (defaults to the current year)"
// @Param force query bool false "Bypass the freshness window and recompute"
// @Success 200 {object} engine.AggregateView
// @Router /api/v1/dashboard [get]
func (h *DashboardHandler) get(c *gin.Context) {
	year := intQuery(c, "year", 0)
	force := boolQueryDefault(c, "force", false)
	view, err := h.Service.Get(c.Request.Context(), year, force)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, view, nil)
}

// @Summary Download the dashboard as CSV or XLSX
// @Tags dashboard
// @Param year query int false "Reporting year (defaults to the current year)"
// @Param format query string false "csv|xlsx (default csv)"
// @Produce text/csv
// @Router /api/v1/dashboard/export [get]
func (h *DashboardHandler) exportFile(c *gin.Context) {
	year := intQuery(c, "year", 0)
	format := strings.ToLower(strings.TrimSpace(c.Query("format")))
	if format == "" {
		format = "csv"
	}

	view, err := h.Service.Get(c.Request.Context(), year, false)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}

	var buf bytes.Buffer
	var contentType string
	switch format {
	case "csv":
		contentType = "text/csv; charset=utf-8"
		err = export.WriteDashboardCSV(&buf, view)
	case "xlsx":
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		err = export.WriteDashboardXLSX(&buf, view)
	default:
		Error(c, http.StatusBadRequest, "unknown format "+format, nil)
		return
	}
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	filename := fmt.Sprintf("dashboard_%d.%s", view.Year, format)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// @Summary Dashboard refresh stream
// @Description Pushes the latest aggregate view to connected clients whenever
// @Description a recompute finishes. One-way: clients only listen.
// @Tags dashboard
// @Router /api/v1/dashboard/ws [get]
func (h *DashboardHandler) stream(c *gin.Context) {
	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		if h.Logger != nil {
			h.Logger.Debug("websocket accept failed", zap.Error(err))
		}
		return
	}
	defer conn.Close(websocket.StatusInternalError, "stream closed")

	// Clients never send application data; CloseRead gives us a context that
	// cancels when the peer goes away.
	ctx := conn.CloseRead(c.Request.Context())

	year := intQuery(c, "year", 0)
	if view, err := h.Service.Get(ctx, year, false); err == nil {
		if err := wsjson.Write(ctx, conn, view); err != nil {
			return
		}
	}

	sub := h.Hub.Subscribe(8)
	defer h.Hub.Unsubscribe(sub)

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case view, ok := <-sub.C():
			if !ok {
				conn.Close(websocket.StatusNormalClosure, "")
				return
			}
			if err := wsjson.Write(ctx, conn, view); err != nil {
				return
			}
		}
	}
}
