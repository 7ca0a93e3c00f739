package labels

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}
	r.GET("/", h.Status)
	r.POST("/print", h.Print)
	r.GET("/image", h.Image)
	r.POST("/image", h.Image)
	r.GET("/test", h.Test)
	r.GET("/history", h.History)
}

func (h *Handler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{
		Status:  "running",
		Printer: h.svc.PrinterAddr(),
		Service: serviceName,
	})
}

// Print is the grocy webhook target. Responses are plain text on purpose:
// grocy shows the body verbatim in its UI.
func (h *Handler) Print(c *gin.Context) {
	raw := bindRaw(c)
	if len(raw) == 0 {
		c.String(http.StatusBadRequest, "No data received")
		return
	}

	data := Extract(raw)
	if data.Name == "" {
		c.String(http.StatusBadRequest, "Product name required")
		return
	}

	if err := h.svc.Print(c.Request.Context(), data); err != nil {
		var api *APIError
		if errors.As(err, &api) && api.Code == CodeInternal {
			c.String(http.StatusInternalServerError, "Error: %s", api.Message)
			return
		}
		c.String(http.StatusInternalServerError, "Print failed")
		return
	}
	c.String(http.StatusOK, "OK")
}

// Image renders the label as PNG without printing. GET takes query params,
// POST the same bodies as /print.
func (h *Handler) Image(c *gin.Context) {
	raw := bindRaw(c)
	if len(raw) == 0 {
		c.String(http.StatusBadRequest, "No data received")
		return
	}

	png, err := h.svc.Preview(Extract(raw))
	if err != nil {
		c.String(http.StatusInternalServerError, "Error: %s", err.Error())
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// Test renders a fixed sample label so a deploy can be checked from a
// browser without touching the printer.
func (h *Handler) Test(c *gin.Context) {
	sample := RawRequest{
		"product":   "Test Product",
		"grocycode": "12345",
		"stock_entry": map[string]any{
			"best_before_date": "2024-12-31",
			"purchased_date":   "2024-10-05",
			"amount":           "2",
		},
		"quantity_unit_stock": map[string]any{
			"name":        "piece",
			"name_plural": "pieces",
		},
	}

	png, err := h.svc.Preview(Extract(sample))
	if err != nil {
		c.String(http.StatusInternalServerError, "Error: %s", err.Error())
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func (h *Handler) History(c *gin.Context) {
	limit := atoiDef(c.Query("limit"), 20)
	items, err := h.svc.History(c.Request.Context(), limit)
	if err != nil {
		c.JSON(toHTTPStatus(err), newErrDTO(err))
		return
	}
	res := HistoryResponse{Items: []PrintJobResponse{}}
	for _, j := range items {
		res.Items = append(res.Items, toPrintJobResponse(j))
	}
	c.JSON(http.StatusOK, res)
}

// ===== helpers =====

// bindRaw collects the request into a RawRequest: JSON body, form body, or
// query string. Malformed bodies come back empty, the handlers turn that
// into a 400.
func bindRaw(c *gin.Context) RawRequest {
	if c.Request.Method == http.MethodGet {
		return rawFromValues(c.Request.URL.Query())
	}
	if strings.Contains(c.ContentType(), "application/json") {
		var raw RawRequest
		if err := c.ShouldBindJSON(&raw); err != nil {
			return nil
		}
		return raw
	}
	if err := c.Request.ParseForm(); err != nil {
		return nil
	}
	return rawFromValues(c.Request.PostForm)
}

func rawFromValues(vals url.Values) RawRequest {
	raw := RawRequest{}
	for k, vs := range vals {
		if len(vs) > 0 {
			raw[k] = vs[0]
		}
	}
	return raw
}

func atoiDef(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
