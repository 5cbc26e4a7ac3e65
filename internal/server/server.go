package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/emRival/rekap-absensi/internal/calendar"
	"github.com/emRival/rekap-absensi/internal/export"
	"github.com/emRival/rekap-absensi/internal/recap"
	"github.com/emRival/rekap-absensi/internal/role"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RowReq is one roster row in a recap request.
type RowReq struct {
	Name  string   `json:"name"`
	Role  string   `json:"role"`
	Cells []string `json:"cells"`
}

// RecapReq is the body of POST /api/v1/recap.
type RecapReq struct {
	Header     []string       `json:"header" binding:"required"`
	Rows       []RowReq       `json:"rows"`
	StartMonth int            `json:"start_month"`
	EndMonth   int            `json:"end_month"`
	Year       int            `json:"year"`
	DaysOff    []string       `json:"days_off"`
	Roles      *role.Document `json:"roles"`
}

// Window checks that both months of the evaluation window are 1..12.
func (req RecapReq) Window() error {
	for _, m := range []struct {
		field string
		value int
	}{{"start_month", req.StartMonth}, {"end_month", req.EndMonth}} {
		if m.value < 1 || m.value > 12 {
			return fmt.Errorf("%s must be 1-12, got %d", m.field, m.value)
		}
	}
	return nil
}

// Grid converts the request into a recap grid.
func (req RecapReq) Grid() recap.Grid {
	g := recap.Grid{
		Header:     req.Header,
		Rows:       make([]recap.Row, len(req.Rows)),
		StartMonth: time.Month(req.StartMonth),
		EndMonth:   time.Month(req.EndMonth),
		Year:       req.Year,
	}
	for i, r := range req.Rows {
		g.Rows[i] = recap.Row{Name: r.Name, Role: r.Role, Cells: r.Cells}
	}
	return g
}

type RecapHandler struct {
	Table  *role.Table
	Logger *zap.Logger
}

func NewRecapHandler(table *role.Table, logger *zap.Logger) *RecapHandler {
	return &RecapHandler{Table: table, Logger: logger}
}

func (h *RecapHandler) Recap(c *gin.Context) {
	var req RecapReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "detail": err.Error()})
		return
	}
	if err := req.Window(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid window", "detail": err.Error()})
		return
	}

	table := h.Table
	if req.Roles != nil {
		t, err := req.Roles.Apply(table)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid roles", "detail": err.Error()})
			return
		}
		table = t
	}

	rules, err := calendar.ParseDaysOff(req.DaysOff)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid days_off", "detail": err.Error()})
		return
	}

	g := req.Grid()
	off, err := g.DaysOff(rules)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid days_off", "detail": err.Error()})
		return
	}

	records, err := recap.Build(g, table, recap.WithLogger(h.Logger), recap.WithDaysOff(off))
	var lenErr *recap.RowLengthError
	if errors.As(err, &lenErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": lenErr.Error(), "row": lenErr.Row + 1})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "recap failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"data":   export.ToJSON(records),
	})
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "rekap is running",
	})
}

// requestLogger logs one line per request.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

// NewRouter wires the HTTP API. A nil table uses the built-in roles and a
// nil logger discards output.
func NewRouter(table *role.Table, logger *zap.Logger) *gin.Engine {
	if table == nil {
		table = role.DefaultTable()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))

	r.GET("/health", Health)

	recapH := NewRecapHandler(table, logger)
	api := r.Group("/api/v1")
	api.POST("/recap", recapH.Recap)

	return r
}
