package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	orderdomain "github.com/smallbiznis/compass/internal/order/domain"
)

type createOrderRequest struct {
	UserID      string     `json:"user_id"`
	TotalAmount float64    `json:"total_amount"`
	OrderedAt   *time.Time `json:"ordered_at"`
}

func (s *Server) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.orderSvc.Create(c.Request.Context(), orderdomain.CreateOrderRequest{
		UserID:      strings.TrimSpace(req.UserID),
		TotalAmount: req.TotalAmount,
		OrderedAt:   req.OrderedAt,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListOrders(c *gin.Context) {
	var query struct {
		UserID string `form:"user_id"`
		From   string `form:"from"`
		To     string `form:"to"`
		Limit  string `form:"limit"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	from, err := parseOptionalTime(query.From, false)
	if err != nil {
		AbortWithError(c, newValidationError("from", "invalid_time", "invalid time"))
		return
	}
	to, err := parseOptionalTime(query.To, true)
	if err != nil {
		AbortWithError(c, newValidationError("to", "invalid_time", "invalid time"))
		return
	}
	limit, err := parseOptionalInt(query.Limit)
	if err != nil {
		AbortWithError(c, newValidationError("limit", "invalid_limit", "invalid limit"))
		return
	}

	resp, err := s.orderSvc.List(c.Request.Context(), orderdomain.ListOrderRequest{
		UserID: strings.TrimSpace(query.UserID),
		From:   from,
		To:     to,
		Limit:  limit,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
