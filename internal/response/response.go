package response

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Envelope keys shared by every response body.
const (
	keySuccess    = "success"
	keyRequestID  = "request_id"
	keyCode       = "code"
	keyMessage    = "message"
	keyFields     = "fields"
	keyPagination = "pagination"
)

// Pagination holds pagination information.
type Pagination struct {
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalItems int  `json:"total_items"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// NewPagination derives page counts and navigation flags from a total.
func NewPagination(page, perPage, total int) *Pagination {
	totalPages := 0
	if perPage > 0 {
		totalPages = (total + perPage - 1) / perPage
	}
	return &Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// ────────────────────────────────────────────────────────────────────────────
// Helper builders
// ────────────────────────────────────────────────────────────────────────────

// Success sends {"success": true, ...payload}. Payload keys are written at the
// top level so clients read e.g. body.courses or body.user directly.
func Success(c *gin.Context, statusCode int, payload gin.H) {
	c.JSON(statusCode, envelope(c, true, payload))
}

// SuccessWithPagination sends a successful response with pagination metadata.
func SuccessWithPagination(c *gin.Context, statusCode int, payload gin.H, pagination *Pagination) {
	body := envelope(c, true, payload)
	body[keyPagination] = pagination
	c.JSON(statusCode, body)
}

// Fail sends {"success": false, "code": ..., "message": ...}.
func Fail(c *gin.Context, statusCode int, code ErrCode) {
	c.JSON(statusCode, failure(c, code, nil))
}

// FailWithFields sends an error response with field-level validation details.
func FailWithFields(c *gin.Context, statusCode int, code ErrCode, fields map[string]string) {
	c.JSON(statusCode, failure(c, code, fields))
}

// AbortFail aborts the middleware chain and sends an error response.
func AbortFail(c *gin.Context, statusCode int, code ErrCode) {
	c.AbortWithStatusJSON(statusCode, failure(c, code, nil))
}

// ────────────────────────────────────────────────────────────────────────────
// Internal helpers
// ────────────────────────────────────────────────────────────────────────────

func failure(c *gin.Context, code ErrCode, fields map[string]string) gin.H {
	body := envelope(c, false, nil)
	body[keyCode] = code
	body[keyMessage] = GetMessage(code)
	if len(fields) > 0 {
		body[keyFields] = fields
	}
	return body
}

func envelope(c *gin.Context, success bool, payload gin.H) gin.H {
	body := make(gin.H, len(payload)+2)
	for k, v := range payload {
		body[k] = v
	}
	body[keySuccess] = success
	body[keyRequestID] = requestID(c)
	return body
}

func requestID(c *gin.Context) string {
	reqID, _ := c.Get(ContextKeyRequestID)
	id, ok := reqID.(string)
	if !ok || id == "" {
		id = uuid.New().String() // Fallback if middleware not applied
	}
	return id
}
