package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	productdomain "github.com/smallbiznis/compass/internal/product/domain"
)

type createProductRequest struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Stock    int64   `json:"stock"`
	Price    float64 `json:"price"`
}

type updateProductStockRequest struct {
	Stock int64 `json:"stock"`
}

func (s *Server) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.productSvc.Create(c.Request.Context(), productdomain.CreateProductRequest{
		Name:     strings.TrimSpace(req.Name),
		Category: strings.TrimSpace(req.Category),
		Stock:    req.Stock,
		Price:    req.Price,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListProducts(c *gin.Context) {
	var query struct {
		Category string `form:"category"`
		Limit    string `form:"limit"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	limit, err := parseOptionalInt(query.Limit)
	if err != nil {
		AbortWithError(c, newValidationError("limit", "invalid_limit", "invalid limit"))
		return
	}

	resp, err := s.productSvc.List(c.Request.Context(), productdomain.ListProductRequest{
		Category: strings.TrimSpace(query.Category),
		Limit:    limit,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateProductStock(c *gin.Context) {
	var req updateProductStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.productSvc.UpdateStock(c.Request.Context(), productdomain.UpdateStockRequest{
		ID:    strings.TrimSpace(c.Param("id")),
		Stock: req.Stock,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
