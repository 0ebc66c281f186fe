package dto

// GatewayCallbackData is the nested settlement payload of a gateway callback.
type GatewayCallbackData struct {
	OrderCode   string `json:"orderCode" binding:"required,max=100,safe_id"`
	Amount      int64  `json:"amount" binding:"required,gt=0"`
	Description string `json:"description"`
	Status      string `json:"status" binding:"required,oneof=success failed"`
}

// GatewayCallbackRequest is the request body delivered by the payment gateway.
type GatewayCallbackRequest struct {
	Code string              `json:"code" binding:"required"`
	Desc string              `json:"desc"`
	Data GatewayCallbackData `json:"data" binding:"required"`
}

// InitiateTransactionRequest is the request body for transaction intake.
type InitiateTransactionRequest struct {
	ExternalID string  `json:"external_id" binding:"required,max=100,safe_id"`
	UserID     string  `json:"user_id" binding:"required,uuid"`
	Amount     int64   `json:"amount" binding:"required,gt=0"`
	Kind       string  `json:"kind" binding:"required,oneof=DEPOSIT WITHDRAWAL"`
	PromoCode  *string `json:"promo_code,omitempty"`
}

// CreatePromotionRuleRequest is the request body for creating a promotion rule.
type CreatePromotionRuleRequest struct {
	Type            string `json:"type" binding:"required,oneof=first_deposit time_based code_based"`
	BonusPercentage *int64 `json:"bonus_percentage,omitempty"`
	BonusAmount     *int64 `json:"bonus_amount,omitempty"`
	MinDeposit      int64  `json:"min_deposit" binding:"gte=0"`
	MaxUses         *int64 `json:"max_uses,omitempty"`
	StartsAt        int64  `json:"starts_at" binding:"required"` // Unix timestamp
	EndsAt          int64  `json:"ends_at" binding:"required"`   // Unix timestamp
}

// MintCodesRequest is the request body for minting promotion codes.
type MintCodesRequest struct {
	Count int `json:"count" binding:"required,gte=1,lte=1000"`
}

// TransactionResponse is the response body for transaction results.
type TransactionResponse struct {
	InternalID string  `json:"internal_id"`
	ExternalID string  `json:"external_id"`
	UserID     string  `json:"user_id"`
	Amount     int64   `json:"amount"`
	Kind       string  `json:"kind"`
	Status     string  `json:"status"`
	PromoCode  *string `json:"promo_code,omitempty"`
	AdminNote  *string `json:"admin_note,omitempty"`
	CreatedAt  string  `json:"created_at"`
	SettledAt  *string `json:"settled_at,omitempty"`
}

// TransactionListResponse wraps paginated transaction list.
type TransactionListResponse struct {
	Items      []TransactionResponse `json:"items"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalPages int                   `json:"total_pages"`
}

// SettlementStatsResponse is the response for settlement statistics.
type SettlementStatsResponse struct {
	TotalTransactions int64 `json:"total_transactions"`
	Pending           int64 `json:"pending"`
	Approved          int64 `json:"approved"`
	Failed            int64 `json:"failed"`
	Expired           int64 `json:"expired"`
	DepositVolume     int64 `json:"deposit_volume"`
	WithdrawalVolume  int64 `json:"withdrawal_volume"`
}

// BalanceResponse is the response for a balance query.
type BalanceResponse struct {
	UserID    string `json:"user_id"`
	Balance   int64  `json:"balance"`
	UpdatedAt string `json:"updated_at"`
}

// LedgerEntryResponse is one ledger line in a history query.
type LedgerEntryResponse struct {
	ID                     string `json:"id"`
	Delta                  int64  `json:"delta"`
	Reason                 string `json:"reason"`
	ReferenceTransactionID string `json:"reference_transaction_id"`
	CreatedAt              string `json:"created_at"`
}

// PromotionRuleResponse is the response body for a promotion rule.
type PromotionRuleResponse struct {
	ID              string `json:"id"`
	Type            string `json:"type"`
	BonusPercentage *int64 `json:"bonus_percentage,omitempty"`
	BonusAmount     *int64 `json:"bonus_amount,omitempty"`
	MinDeposit      int64  `json:"min_deposit"`
	MaxUses         *int64 `json:"max_uses,omitempty"`
	CurrentUses     int64  `json:"current_uses"`
	StartsAt        string `json:"starts_at"`
	EndsAt          string `json:"ends_at"`
	IsActive        bool   `json:"is_active"`
}

// MintCodesResponse lists freshly minted promotion codes.
type MintCodesResponse struct {
	PromotionID string   `json:"promotion_id"`
	Codes       []string `json:"codes"`
}
