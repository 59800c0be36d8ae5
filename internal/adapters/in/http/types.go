package http

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Wire types of openapi.yaml. Field names and tags follow the schema names.

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Created struct {
	Id openapi_types.UUID `json:"id"`
}

type NextNumber struct {
	Number string `json:"number"`
}

type OrderHeader struct {
	Number       *string             `json:"number,omitempty"`
	CustomerName string              `json:"customerName"`
	Platform     string              `json:"platform"`
	Notes        *string             `json:"notes,omitempty"`
	ShipByDate   *openapi_types.Date `json:"shipByDate,omitempty"`
	IsExpress    *bool               `json:"isExpress,omitempty"`
}

type NewOrder struct {
	OrderHeader
	Products []NewProduct `json:"products"`
}

type NewProduct struct {
	Name  string    `json:"name"`
	Items []NewItem `json:"items"`
}

type NewItem struct {
	Name       string               `json:"name"`
	ColorIds   []openapi_types.UUID `json:"colorIds"`
	Parts      []PartQuantity       `json:"parts,omitempty"`
	TemplateId *openapi_types.UUID  `json:"templateId,omitempty"`
}

type PartQuantity struct {
	PartId   openapi_types.UUID `json:"partId"`
	Quantity *int               `json:"quantity,omitempty"`
}

type OrderSummary struct {
	Id           openapi_types.UUID  `json:"id"`
	Number       string              `json:"number"`
	CustomerName string              `json:"customerName"`
	Platform     string              `json:"platform"`
	IsExpress    bool                `json:"isExpress"`
	IsArchived   bool                `json:"isArchived"`
	ShipByDate   *openapi_types.Date `json:"shipByDate,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
	ItemCount    int                 `json:"itemCount"`
	StatusCounts map[string]int      `json:"statusCounts"`
}

type OrderDetails struct {
	OrderSummary
	Notes     string     `json:"notes,omitempty"`
	ShippedAt *time.Time `json:"shippedAt,omitempty"`
	Products  []Product  `json:"products"`
}

type Product struct {
	Id    openapi_types.UUID `json:"id"`
	Name  string             `json:"name"`
	Items []Item             `json:"items"`
}

type Item struct {
	Id           openapi_types.UUID  `json:"id"`
	Name         string              `json:"name"`
	Status       string              `json:"status"`
	ProductId    openapi_types.UUID  `json:"productId"`
	ProductName  string              `json:"productName"`
	OrderId      openapi_types.UUID  `json:"orderId"`
	OrderNumber  string              `json:"orderNumber"`
	CustomerName string              `json:"customerName"`
	IsExpress    bool                `json:"isExpress"`
	ShipByDate   *openapi_types.Date `json:"shipByDate,omitempty"`
	NeedsReprint bool                `json:"needsReprint"`
	Colors       []ColorSlot         `json:"colors"`
	Parts        []ItemPart          `json:"parts"`
}

type ColorSlot struct {
	Position int                `json:"position"`
	ColorId  openapi_types.UUID `json:"colorId"`
	Name     string             `json:"name"`
	HexCode  string             `json:"hexCode"`
}

type ItemPart struct {
	PartId       openapi_types.UUID `json:"partId"`
	Code         string             `json:"code"`
	Name         string             `json:"name"`
	Quantity     int                `json:"quantity"`
	NeedsReprint bool               `json:"needsReprint"`
}

type ProductReadiness struct {
	ProductId        openapi_types.UUID `json:"productId"`
	ItemCount        int                `json:"itemCount"`
	ReadyForAssembly bool               `json:"readyForAssembly"`
}

type OrderReadiness struct {
	OrderId     openapi_types.UUID `json:"orderId"`
	ItemCount   int                `json:"itemCount"`
	ReadyToPack bool               `json:"readyToPack"`
	ReadyToShip bool               `json:"readyToShip"`
}

type Advance struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

type BatchAdvance struct {
	ItemIds []openapi_types.UUID `json:"itemIds"`
	Status  string               `json:"status"`
	Reason  string               `json:"reason,omitempty"`
}

type ReprintRequestScope string

const (
	ReprintRequestScopeItem  ReprintRequestScope = "item"
	ReprintRequestScopeParts ReprintRequestScope = "parts"
)

type ReprintRequest struct {
	Scope   ReprintRequestScope  `json:"scope"`
	PartIds []openapi_types.UUID `json:"partIds,omitempty"`
	Reason  string               `json:"reason,omitempty"`
}

type PartIds struct {
	PartIds []openapi_types.UUID `json:"partIds"`
}

type HistoryEntry struct {
	OldStatus *string   `json:"oldStatus,omitempty"`
	NewStatus string    `json:"newStatus"`
	ChangedAt time.Time `json:"changedAt"`
	Reason    string    `json:"reason"`
}

type Material struct {
	Type          string `json:"type,omitempty"`
	Supplier      string `json:"supplier,omitempty"`
	Category      string `json:"category,omitempty"`
	CostPerUnit   string `json:"costPerUnit,omitempty"`
	StockQuantity int    `json:"stockQuantity"`
}

type ColorInput struct {
	Name        string   `json:"name"`
	HexCode     string   `json:"hexCode"`
	PantoneCode *string  `json:"pantoneCode,omitempty"`
	Material    Material `json:"material"`
}

type Color struct {
	ColorInput
	Id       openapi_types.UUID `json:"id"`
	IsActive bool               `json:"isActive"`
}

type PartInput struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type Part struct {
	PartInput
	Id       openapi_types.UUID `json:"id"`
	IsActive bool               `json:"isActive"`
}

type TemplateInput struct {
	Name             string         `json:"name"`
	NumColors        int            `json:"numColors"`
	PrintTimeMinutes int            `json:"printTimeMinutes"`
	PrintCost        string         `json:"printCost,omitempty"`
	Parts            []PartQuantity `json:"parts"`
}

type TemplatePart struct {
	PartId   openapi_types.UUID `json:"partId"`
	Code     string             `json:"code"`
	Name     string             `json:"name"`
	Quantity int                `json:"quantity"`
}

type Template struct {
	Id               openapi_types.UUID `json:"id"`
	Name             string             `json:"name"`
	NumColors        int                `json:"numColors"`
	PrintTimeMinutes int                `json:"printTimeMinutes"`
	PrintCost        string             `json:"printCost"`
	IsActive         bool               `json:"isActive"`
	Parts            []TemplatePart     `json:"parts"`
}
