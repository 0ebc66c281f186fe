package dto

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- safe_id tests ---

func TestSafeID(t *testing.T) {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	type probe struct {
		ID string `binding:"safe_id"`
	}

	valid := []string{"TX-1001", "order_2024.01", "ABCDEF123456", "a"}
	for _, id := range valid {
		assert.NoError(t, v.Struct(probe{ID: id}), id)
	}

	invalid := []string{"TX 1001", "tx;drop", "order\ncode", "код", "a/b", ""}
	for _, id := range invalid {
		assert.Error(t, v.Struct(probe{ID: id}), id)
	}
}

// --- SanitizeStruct tests ---

func TestSanitizeStruct_TrimsWhitespace(t *testing.T) {
	req := InitiateTransactionRequest{
		ExternalID: "  TX-1001  ",
		UserID:     " 9f1b6e9a-1111-2222-3333-444455556666 ",
		Amount:     100000,
		Kind:       " DEPOSIT ",
	}
	SanitizeStruct(&req)

	assert.Equal(t, "TX-1001", req.ExternalID)
	assert.Equal(t, "9f1b6e9a-1111-2222-3333-444455556666", req.UserID)
	assert.Equal(t, "DEPOSIT", req.Kind)
}

func TestSanitizeStruct_EscapesHTML(t *testing.T) {
	req := GatewayCallbackRequest{
		Code: "00",
		Desc: "payment <script>alert('x')</script> ok",
	}
	SanitizeStruct(&req)

	assert.Contains(t, req.Desc, "&lt;script&gt;")
	assert.NotContains(t, req.Desc, "<script>")
}

func TestSanitizeStruct_HandlesPointerString(t *testing.T) {
	code := "  PROMO10  "
	req := InitiateTransactionRequest{
		ExternalID: "TX-1001",
		PromoCode:  &code,
	}
	SanitizeStruct(&req)

	assert.Equal(t, "PROMO10", *req.PromoCode)
}

func TestSanitizeStruct_NilPointerIsNoOp(t *testing.T) {
	req := InitiateTransactionRequest{ExternalID: "TX-1001"}
	SanitizeStruct(&req)
	assert.Nil(t, req.PromoCode)
}

func TestSanitizeStruct_NestedStruct(t *testing.T) {
	req := GatewayCallbackRequest{
		Code: "00",
		Data: GatewayCallbackData{
			OrderCode:   "  TX-1001  ",
			Description: " settled ",
		},
	}
	SanitizeStruct(&req)

	assert.Equal(t, "TX-1001", req.Data.OrderCode)
	assert.Equal(t, "settled", req.Data.Description)
}
