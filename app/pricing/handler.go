package pricing

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/autoazul/store-profit/models"
	"github.com/autoazul/store-profit/pkg/money"
)

type CatalogProvider interface {
	GetProducts(offset, limit int) ([]models.Product, int64, error)
	GetProductByID(id uint) (*models.Product, error)
}

type PriceStore interface {
	Get(itemID uint) (decimal.Decimal, bool, error)
	GetMany(itemIDs []uint) (map[uint]decimal.Decimal, error)
	Set(itemID uint, raw string) error
}

type Handler struct {
	catalog CatalogProvider
	prices  PriceStore
	format  money.Formatter
	log     *zap.SugaredLogger
}

func NewHandler(catalog CatalogProvider, prices PriceStore, format money.Formatter, log *zap.SugaredLogger) *Handler {
	return &Handler{
		catalog: catalog,
		prices:  prices,
		format:  format,
		log:     log,
	}
}

// --- listing columns ---

type ListingRow struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	SKU           string `json:"sku"`
	Type          string `json:"type"`
	Price         string `json:"price"`
	PurchasePrice string `json:"purchase_price"`
	Profit        string `json:"profit"`
}

type ListingResponse struct {
	Total int          `json:"total"`
	Rows  []ListingRow `json:"rows"`
}

// HandleListing renders the product list with the two computed columns
// appended after the price column.
func (h *Handler) HandleListing(w http.ResponseWriter, r *http.Request) {
	// Parse pagination query params
	offset := 0
	limit := 10

	if oStr := r.URL.Query().Get("offset"); oStr != "" {
		if o, err := strconv.Atoi(oStr); err == nil && o >= 0 {
			offset = o
		}
	}

	if lStr := r.URL.Query().Get("limit"); lStr != "" {
		if l, err := strconv.Atoi(lStr); err == nil {
			if l < 1 {
				limit = 1
			} else if l > 100 {
				limit = 100
			} else {
				limit = l
			}
		}
	}

	products, total, err := h.catalog.GetProducts(offset, limit)
	if err != nil {
		h.log.Errorw("listing query failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to get products")
		return
	}

	var itemIDs []uint
	for _, p := range products {
		itemIDs = append(itemIDs, p.ID)
		for _, v := range p.Variations {
			itemIDs = append(itemIDs, v.ID)
		}
	}

	prices, err := h.prices.GetMany(itemIDs)
	if err != nil {
		h.log.Errorw("purchase price lookup failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to get purchase prices")
		return
	}

	rows := make([]ListingRow, len(products))
	for i := range products {
		p := &products[i]
		cells := Cells(p, prices, h.format)
		price := dash
		if effective := p.EffectivePrice(); !effective.IsZero() {
			price = h.format.Format(effective)
		}
		rows[i] = ListingRow{
			ID:            p.ID,
			Name:          p.Name,
			SKU:           p.SKU,
			Type:          p.Type,
			Price:         price,
			PurchasePrice: cells.PurchasePrice,
			Profit:        cells.Profit,
		}
	}

	writeJSON(w, http.StatusOK, ListingResponse{
		Total: int(total),
		Rows:  rows,
	})
}

// --- purchase price read/write ---

type priceResponse struct {
	ItemID        uint    `json:"item_id"`
	PurchasePrice *string `json:"purchase_price"`
}

// HandleGetPrice returns the stored purchase price for one item, null when
// nothing usable is stored.
func (h *Handler) HandleGetPrice(w http.ResponseWriter, r *http.Request) {
	itemID, err := parseItemID(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	price, ok, err := h.prices.Get(itemID)
	if err != nil {
		h.log.Errorw("purchase price read failed", "item_id", itemID, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to read purchase price")
		return
	}

	resp := priceResponse{ItemID: itemID}
	if ok {
		value := price.String()
		resp.PurchasePrice = &value
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleSetPrice stores the submitted purchase price for one item (a simple
// product or a single variation), overwriting any prior value. The value is
// stored as submitted; non-numeric input reads back as unset.
func (h *Handler) HandleSetPrice(w http.ResponseWriter, r *http.Request) {
	itemID, err := parseItemID(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var input struct {
		PurchasePrice string `json:"purchase_price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := h.prices.Set(itemID, input.PurchasePrice); err != nil {
		h.log.Errorw("purchase price write failed", "item_id", itemID, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to store purchase price")
		return
	}

	h.log.Infow("purchase price stored", "item_id", itemID)
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Purchase price saved",
	})
}

// HandleSetVariationPrices is the variable-product save path: it stores a
// purchase price per submitted variation id. Only variations belonging to the
// product are accepted; nothing is stored when any id is foreign.
func (h *Handler) HandleSetVariationPrices(w http.ResponseWriter, r *http.Request) {
	productID, err := parseItemID(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var input struct {
		Prices map[string]string `json:"prices"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if len(input.Prices) == 0 {
		writeError(w, http.StatusBadRequest, "Missing prices")
		return
	}

	product, err := h.catalog.GetProductByID(productID)
	if err != nil {
		if errors.Is(err, models.ErrItemNotFound) {
			writeError(w, http.StatusNotFound, "Product not found")
			return
		}
		h.log.Errorw("product lookup failed", "product_id", productID, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to load product")
		return
	}

	children := make(map[uint]bool, len(product.Variations))
	for _, v := range product.Variations {
		children[v.ID] = true
	}

	submitted := make(map[uint]string, len(input.Prices))
	for rawID, value := range input.Prices {
		variationID, err := parseItemID(rawID)
		if err != nil || !children[variationID] {
			writeError(w, http.StatusBadRequest, "unknown variation id: "+rawID)
			return
		}
		submitted[variationID] = value
	}

	for variationID, value := range submitted {
		if err := h.prices.Set(variationID, value); err != nil {
			h.log.Errorw("purchase price write failed", "item_id", variationID, "err", err)
			writeError(w, http.StatusInternalServerError, "failed to store purchase prices")
			return
		}
	}

	h.log.Infow("variation purchase prices stored", "product_id", productID, "count", len(submitted))
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Purchase prices saved",
	})
}

// --- helpers ---

func parseItemID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
