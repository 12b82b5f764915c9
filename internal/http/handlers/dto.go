package handlers

// dataEnvelope wraps every single-record response body.
type dataEnvelope struct {
	Data any `json:"data"`
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

// listEnvelope wraps every collection response body.
type listEnvelope struct {
	Data any  `json:"data"`
	Meta Meta `json:"meta"`
}

type TransactionRequest struct {
	Type          string   `json:"type"`
	Category      string   `json:"category"`
	Amount        *float64 `json:"amount"`
	Date          string   `json:"date"`
	Description   string   `json:"description"`
	AppointmentID *string  `json:"appointment_id,omitempty"`
	ClientID      *string  `json:"client_id,omitempty"`
	PaymentMethod string   `json:"payment_method,omitempty"`
	Notes         string   `json:"notes,omitempty"`
}

// TransactionUpdateRequest is a partial update: absent fields stay untouched.
type TransactionUpdateRequest struct {
	Type          *string  `json:"type"`
	Category      *string  `json:"category"`
	Amount        *float64 `json:"amount"`
	Date          *string  `json:"date"`
	Description   *string  `json:"description"`
	AppointmentID *string  `json:"appointment_id"`
	ClientID      *string  `json:"client_id"`
	PaymentMethod *string  `json:"payment_method"`
	Notes         *string  `json:"notes"`
}

type AppointmentRequest struct {
	StartsAt       string  `json:"starts_at"`
	EndsAt         string  `json:"ends_at"`
	ClientID       *string `json:"client_id,omitempty"`
	Service        string  `json:"service"`
	ClientInitials string  `json:"client_initials,omitempty"`
	Color          string  `json:"color,omitempty"`
	Status         string  `json:"status,omitempty"`
	Notes          string  `json:"notes,omitempty"`
}

type AppointmentUpdateRequest struct {
	StartsAt       *string `json:"starts_at"`
	EndsAt         *string `json:"ends_at"`
	ClientID       *string `json:"client_id"`
	Service        *string `json:"service"`
	ClientInitials *string `json:"client_initials"`
	Color          *string `json:"color"`
	Status         *string `json:"status"`
	Notes          *string `json:"notes"`
}

type ClientRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email,omitempty"`
	BirthDate string `json:"birth_date,omitempty"`
	Status    string `json:"status,omitempty"`
}

type ClientUpdateRequest struct {
	Name      *string `json:"name"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	BirthDate *string `json:"birth_date"`
	Status    *string `json:"status"`
}

type ProductRequest struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	Cost     string `json:"cost,omitempty"`
	Stock    int    `json:"stock"`
	MinStock *int   `json:"min_stock"`
	Category string `json:"category,omitempty"`
	Supplier string `json:"supplier,omitempty"`
	Barcode  string `json:"barcode,omitempty"`
}

type ProductUpdateRequest struct {
	Name     *string `json:"name"`
	Price    *string `json:"price"`
	Cost     *string `json:"cost"`
	MinStock *int    `json:"min_stock"`
	Category *string `json:"category"`
	Supplier *string `json:"supplier"`
	Barcode  *string `json:"barcode"`
}

type ProductResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Price      string `json:"price"`
	Cost       string `json:"cost,omitempty"`
	Stock      int    `json:"stock"`
	MinStock   int    `json:"min_stock"`
	Category   string `json:"category,omitempty"`
	Supplier   string `json:"supplier,omitempty"`
	Barcode    string `json:"barcode,omitempty"`
	SalesCount int    `json:"sales_count"`
	LowStock   bool   `json:"low_stock"`
}

// StockAdjustmentRequest adjusts stock by a signed delta.
type StockAdjustmentRequest struct {
	ProductID string `json:"product_id"`
	Delta     int    `json:"delta"`
}

type SettingsRequest struct {
	BusinessName string `json:"business_name"`
	Theme        string `json:"theme"`
	TutorialSeen bool   `json:"tutorial_seen"`
}

type LoginRequest struct {
	ServiceKey string `json:"service_key"`
}

type LoginResult struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type SchemaResult struct {
	Success             bool   `json:"success"`
	Problems            any    `json:"problems,omitempty"`
	ManualSetupRequired bool   `json:"manualSetupRequired,omitempty"`
	SQLToRun            string `json:"sqlToRun,omitempty"`
	Error               string `json:"error,omitempty"`
}

type ImportClientsResult struct {
	ImportedClientsCount int          `json:"imported"`
	Errors               []FieldError `json:"errors"`
}
