package labels

import (
	"fmt"
	"strconv"
)

// Name candidates in priority order: the first populated field wins.
var nameFields = []string{"product", "battery", "chore", "recipe"}

// ===== safe accessors =====
// Grocy payloads are loosely typed; a missing key, a null, or a wrong shape
// must degrade to a zero value, never fail.

func str(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func obj(m map[string]any, key string) map[string]any {
	if v, ok := m[key].(map[string]any); ok {
		return v
	}
	return map[string]any{}
}

func numeric(v any) bool {
	switch n := v.(type) {
	case float64, float32, int, int64:
		return true
	case string:
		_, err := strconv.ParseFloat(n, 64)
		return err == nil
	default:
		return false
	}
}

// Extract normalizes a raw request into LabelData. Total function: any
// input shape yields a result, malformed pieces degrade to empty strings.
func Extract(raw RawRequest) LabelData {
	var name string
	for _, f := range nameFields {
		if v := str(raw, f); v != "" {
			name = v
			break
		}
	}

	stockEntry := obj(raw, "stock_entry")

	// A numeric container weight on the stock entry means the container is
	// weighed rather than counted: quantity and dates are dropped from the
	// label. Non-numeric values do not trigger the override.
	excludeAmountAndDates := false
	if cw, ok := obj(raw, "stock_entry_userfields")["StockEntryContainerWeight"]; ok && cw != nil {
		excludeAmountAndDates = numeric(cw)
	}

	var bestBefore, purchased, amount string
	if !excludeAmountAndDates {
		bestBefore = str(stockEntry, "best_before_date")
		purchased = str(stockEntry, "purchased_date")
		amount = str(stockEntry, "amount")
	}

	// The unit map is either top-level or nested under details.
	unit, ok := raw["quantity_unit_stock"].(map[string]any)
	if !ok {
		unit = obj(obj(raw, "details"), "quantity_unit_stock")
	}

	return LabelData{
		Name:           name,
		Barcode:        str(raw, "grocycode"),
		BestBeforeDate: bestBefore,
		PurchasedDate:  purchased,
		Amount:         amount,
		UnitName:       selectUnitName(unit, amount),
		Note:           str(stockEntry, "note"),
	}
}

// selectUnitName picks singular or plural based on the amount. Empty or
// unparseable amounts count as zero, so the singular is the fail-safe.
func selectUnitName(unit map[string]any, amount string) string {
	name := str(unit, "name")
	if name == "" {
		return ""
	}

	var amt float64
	if amount != "" {
		f, err := strconv.ParseFloat(amount, 64)
		if err != nil {
			return name
		}
		amt = f
	}

	if amt > 1 {
		if plural := str(unit, "name_plural"); plural != "" {
			return plural
		}
	}
	return name
}
