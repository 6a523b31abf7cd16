package handlers

type ProductRequest struct {
	Id             int     `json:"id,omitempty"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	Quantity       float64 `json:"quantity"`
	ExpirationDate string  `json:"expiration_date"`
	Type           string  `json:"type"`
}

type ProductResponse struct {
	Id             int     `json:"id"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	Quantity       float64 `json:"quantity"`
	ExpirationDate string  `json:"expiration_date"`
	Type           string  `json:"type"`
	Expired        bool    `json:"expired,omitempty"`
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type ProductsSearchResult struct {
	Data []ProductResponse `json:"data"`
	Meta Meta              `json:"meta,omitempty"`
}

// ConsumptionRequest carries the proposed quantity for a consumption create
// or update. Quantity is a pointer so a missing field can be told apart from
// an explicit zero.
type ConsumptionRequest struct {
	Quantity *float64 `json:"quantity"`
}

type ConsumptionResponse struct {
	ID        int     `json:"id"`
	ProductID int     `json:"product_id"`
	Quantity  float64 `json:"quantity"`
	CreatedAt string  `json:"created_at,omitempty"`
	UpdatedAt string  `json:"updated_at,omitempty"`
}

// LedgerResponse reports the aggregate consumption figures of a product.
type LedgerResponse struct {
	QuantityConsumed   float64 `json:"quantity_consumed"`
	PercentageConsumed float64 `json:"percentage_consumed"`
	PercentageWasted   float64 `json:"percentage_wasted"`
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RegisterResult struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type ImportProductsResult struct {
	ImportedProductsCount int                      `json:"imported"`
	Errors                []ProductValidationError `json:"errors"`
}
