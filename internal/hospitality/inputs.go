// Package hospitality is the reference executor for the hospitality domain.
// It parses typed action payloads out of a task's free-form inputs and runs
// templated stub handlers for each action.
package hospitality

import (
	"fmt"
	"regexp"
	"strings"
)

// Action selects which hospitality operation a task carries.
type Action string

const (
	ActionRateUpdate         Action = "RATE_UPDATE"
	ActionTariffSync         Action = "TARIFF_SYNC"
	ActionVendorInvoiceCheck Action = "VENDOR_INVOICE_CHECK"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

var validSources = map[string]bool{
	"HTS":      true,
	"INTERNAL": true,
	"VENDOR":   true,
}

// Inputs is the closed set of hospitality payloads. Exactly one of the
// typed payload methods returns non-nil, matching Action.
type Inputs struct {
	Action             Action
	RateUpdate         *RateUpdateInputs
	TariffSync         *TariffSyncInputs
	VendorInvoiceCheck *VendorInvoiceCheckInputs
}

// RateUpdateInputs applies a new nightly rate over a date range.
type RateUpdateInputs struct {
	PropertyID   string
	RoomType     string // optional, empty when absent
	DateStart    string
	DateEnd      string
	NewRateCents int64
	Currency     string
}

// TariffSyncInputs refreshes tariff categories from an upstream source.
type TariffSyncInputs struct {
	Source        string
	EffectiveDate string
	Categories    []string
}

// VendorInvoiceCheckInputs flags a vendor invoice for review.
type VendorInvoiceCheckInputs struct {
	VendorID    string
	InvoiceID   string
	AmountCents int64
	Currency    string
}

// ParseInputs validates and types a raw inputs map. Error strings are
// stable codes consumed by callers and the audit trail.
func ParseInputs(raw map[string]any) (*Inputs, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("INPUTS_REQUIRED")
	}
	action, _ := raw["action"].(string)
	switch Action(action) {
	case ActionRateUpdate:
		in, err := parseRateUpdate(raw)
		if err != nil {
			return nil, err
		}
		return &Inputs{Action: ActionRateUpdate, RateUpdate: in}, nil
	case ActionTariffSync:
		in, err := parseTariffSync(raw)
		if err != nil {
			return nil, err
		}
		return &Inputs{Action: ActionTariffSync, TariffSync: in}, nil
	case ActionVendorInvoiceCheck:
		in, err := parseVendorInvoiceCheck(raw)
		if err != nil {
			return nil, err
		}
		return &Inputs{Action: ActionVendorInvoiceCheck, VendorInvoiceCheck: in}, nil
	default:
		return nil, fmt.Errorf("INPUT_ACTION_INVALID")
	}
}

func parseRateUpdate(raw map[string]any) (*RateUpdateInputs, error) {
	propertyID, err := reqInputString(raw, "property_id")
	if err != nil {
		return nil, err
	}
	dateStart, err := reqInputDate(raw, "date_start")
	if err != nil {
		return nil, err
	}
	dateEnd, err := reqInputDate(raw, "date_end")
	if err != nil {
		return nil, err
	}
	rate, err := reqInputInt(raw, "new_rate_cents")
	if err != nil {
		return nil, err
	}
	currency, err := reqInputString(raw, "currency")
	if err != nil {
		return nil, err
	}
	roomType, _ := raw["room_type"].(string)
	return &RateUpdateInputs{
		PropertyID:   propertyID,
		RoomType:     strings.TrimSpace(roomType),
		DateStart:    dateStart,
		DateEnd:      dateEnd,
		NewRateCents: rate,
		Currency:     currency,
	}, nil
}

func parseTariffSync(raw map[string]any) (*TariffSyncInputs, error) {
	source, err := reqInputString(raw, "source")
	if err != nil {
		return nil, err
	}
	if !validSources[source] {
		return nil, fmt.Errorf("INPUT_SOURCE_INVALID")
	}
	effective, err := reqInputDate(raw, "effective_date")
	if err != nil {
		return nil, err
	}
	var categories []string
	if list, ok := raw["categories"].([]any); ok {
		for _, v := range list {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				categories = append(categories, strings.TrimSpace(s))
			}
		}
	}
	return &TariffSyncInputs{Source: source, EffectiveDate: effective, Categories: categories}, nil
}

func parseVendorInvoiceCheck(raw map[string]any) (*VendorInvoiceCheckInputs, error) {
	vendorID, err := reqInputString(raw, "vendor_id")
	if err != nil {
		return nil, err
	}
	invoiceID, err := reqInputString(raw, "invoice_id")
	if err != nil {
		return nil, err
	}
	amount, err := reqInputInt(raw, "amount_cents")
	if err != nil {
		return nil, err
	}
	currency, err := reqInputString(raw, "currency")
	if err != nil {
		return nil, err
	}
	return &VendorInvoiceCheckInputs{
		VendorID:    vendorID,
		InvoiceID:   invoiceID,
		AmountCents: amount,
		Currency:    currency,
	}, nil
}

func reqInputString(raw map[string]any, key string) (string, error) {
	s, ok := raw[key].(string)
	s = strings.TrimSpace(s)
	if !ok || s == "" {
		return "", fmt.Errorf("INPUT_%s_REQUIRED", strings.ToUpper(key))
	}
	return s, nil
}

func reqInputDate(raw map[string]any, key string) (string, error) {
	s, err := reqInputString(raw, key)
	if err != nil {
		return "", err
	}
	if !datePattern.MatchString(s) {
		return "", fmt.Errorf("INPUT_%s_INVALID_DATE", strings.ToUpper(key))
	}
	return s, nil
}

// reqInputInt accepts JSON numbers and integer strings, truncating
// fractional values.
func reqInputInt(raw map[string]any, key string) (int64, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return 0, fmt.Errorf("INPUT_%s_REQUIRED", strings.ToUpper(key))
	}
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		return int64(n), nil
	case string:
		var parsed int64
		if _, err := fmt.Sscanf(strings.TrimSpace(n), "%d", &parsed); err != nil {
			return 0, fmt.Errorf("INPUT_%s_REQUIRED", strings.ToUpper(key))
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("INPUT_%s_REQUIRED", strings.ToUpper(key))
	}
}
