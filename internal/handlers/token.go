package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"card-tokenizer/internal/models"
	"card-tokenizer/internal/services"
	"card-tokenizer/internal/stripeerr"
	"card-tokenizer/internal/utils"

	"github.com/gin-gonic/gin"
)

type TokenHandler struct {
	tokenService *services.TokenService
}

func NewTokenHandler(tokenService *services.TokenService) *TokenHandler {
	return &TokenHandler{
		tokenService: tokenService,
	}
}

func (h *TokenHandler) CreateToken(c *gin.Context) {
	var req models.TokenizeRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload", err.Error()))
		return
	}

	if key := c.GetHeader("Idempotency-Key"); key != "" && req.IdempotencyKey == "" {
		req.IdempotencyKey = key
	}

	token, err := h.tokenService.CreateToken(c.Request.Context(), &req)
	if err != nil {
		h.writeTokenError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Token created", token))
}

func (h *TokenHandler) writeTokenError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrDuplicateRequest) {
		c.JSON(http.StatusConflict, utils.ErrorResponse("Duplicate request", err.Error()))
		return
	}

	var stripeErr stripeerr.Error
	if errors.As(err, &stripeErr) {
		switch stripeErr.Kind {
		case stripeerr.CardError, stripeerr.InvalidRequest:
			c.JSON(http.StatusPaymentRequired, utils.ErrorResponse("Card rejected", stripeErr.Error()))
		case stripeerr.Unauthorized:
			c.JSON(http.StatusBadGateway, utils.ErrorResponse("Upstream authentication failed", stripeErr.Error()))
		default:
			c.JSON(http.StatusBadGateway, utils.ErrorResponse("Tokenization failed", stripeErr.Error()))
		}
		return
	}

	c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Tokenization failed", err.Error()))
}

func (h *TokenHandler) ValidateCard(c *gin.Context) {
	var req models.CardValidationRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload", err.Error()))
		return
	}

	result := h.tokenService.ValidateCard(req.Card)
	c.JSON(http.StatusOK, utils.SuccessResponse("Card validated", result))
}

func (h *TokenHandler) GetRecord(c *gin.Context) {
	recordID := c.Param("id")
	if recordID == "" {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Record ID is required", ""))
		return
	}

	record, err := h.tokenService.GetRecord(c.Request.Context(), recordID)
	if err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utils.ErrorResponse("Record not found", err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to retrieve record", err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Record retrieved", record))
}

func (h *TokenHandler) GetUpstreamToken(c *gin.Context) {
	tokenID := c.Param("id")
	if tokenID == "" {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Token ID is required", ""))
		return
	}

	token, err := h.tokenService.GetUpstreamToken(c.Request.Context(), tokenID)
	if err != nil {
		h.writeTokenError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Token retrieved", token))
}

func (h *TokenHandler) ListRecords(c *gin.Context) {
	status := models.TokenStatus(c.Query("status"))

	limit := 50
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 200 {
			limit = parsed
		}
	}

	offset := 0
	if o := c.Query("offset"); o != "" {
		if parsed, err := strconv.Atoi(o); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	records, err := h.tokenService.ListRecords(c.Request.Context(), status, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to list records", err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Records retrieved", gin.H{
		"records": records,
		"count":   len(records),
	}))
}
