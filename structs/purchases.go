package structs

// Purchase dates cross the API as dd/MM/yyyy strings; the service parses
// and formats them at the boundary.
type PurchaseIn struct {
	Id           int64   `json:"id"` // 0 means insert
	ProviderId   int64   `json:"provider_id"`
	Amount       float64 `json:"amount"`
	CreateDate   string  `json:"create_date"` // dd/MM/yyyy
	Description  *string `json:"description,omitempty"`
	PurchaseLink *string `json:"purchase_link,omitempty"`
	Image        *string `json:"image,omitempty"` // filename whose extension is recorded on insert
}

type Purchase struct {
	Id           int64   `json:"id"`
	ProviderId   int64   `json:"provider_id"`
	Amount       float64 `json:"amount"`
	CreateDate   string  `json:"create_date"` // dd/MM/yyyy
	Description  *string `json:"description,omitempty"`
	PurchaseLink *string `json:"purchase_link,omitempty"`
}

// GetPurchasesRequest criteria are ANDed; nil means "no filter". The date
// range applies only when FromDate is after 2000-01-01, mirroring the
// legacy minimum-date convention.
type GetPurchasesRequest struct {
	Id         *int64  `json:"id,omitempty"`
	ProviderId *int64  `json:"provider_id,omitempty"`
	FromDate   *string `json:"from_date,omitempty"` // dd/MM/yyyy
	ToDate     *string `json:"to_date,omitempty"`   // dd/MM/yyyy
}

type ProviderIn struct {
	Id          int64   `json:"id"` // 0 means insert
	Name        string  `json:"name"`
	IdN         *string `json:"idn,omitempty"`
	Address     *string `json:"address,omitempty"`
	Tel1        *string `json:"tel1,omitempty"`
	Tel2        *string `json:"tel2,omitempty"`
	Email       *string `json:"email,omitempty"`
	Description *string `json:"description,omitempty"`
	WebSite     *string `json:"website,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"` // defaults to true on insert
}
