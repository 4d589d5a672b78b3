package hospitality

import (
	"reflect"
	"testing"

	"github.com/ppiankov/taskgate/internal/model"
)

func rateUpdateTask() *model.Task {
	return &model.Task{
		TaskID:         "task-2024-001",
		DomainID:       "hospitality",
		TaskType:       model.TaskExecute,
		RequestedBy:    "revenue-bot",
		AuthorityToken: "SENTINEL:hosp-pol-1:opaquecredential",
		Scope:          []string{"task:execute", "hospitality:execute", "hospitality:rates:write"},
		Inputs: map[string]any{
			"action":         "RATE_UPDATE",
			"property_id":    "prop-042",
			"date_start":     "2024-07-01",
			"date_end":       "2024-07-14",
			"new_rate_cents": float64(18900),
			"currency":       "EUR",
		},
		CreatedAt: "2024-06-15T09:00:00Z",
	}
}

func TestExecuteRateUpdate(t *testing.T) {
	result := New().Execute(rateUpdateTask())

	if result.Status != model.StatusOK {
		t.Fatalf("status = %q, error = %q", result.Status, result.Error)
	}
	if result.Output["result"] != "STUB_APPLIED" {
		t.Errorf("result = %v, want STUB_APPLIED", result.Output["result"])
	}
	if result.Output["action"] != "RATE_UPDATE" {
		t.Errorf("action = %v, want RATE_UPDATE", result.Output["action"])
	}
	if result.Output["executor"] != "hospitality" || result.Output["mode"] != "TEMPLATED_STUB" {
		t.Errorf("stub markers missing: %v", result.Output)
	}
	if result.Output["room_type"] != nil {
		t.Errorf("room_type = %v, want nil when absent", result.Output["room_type"])
	}
	wantRange := map[string]any{"start": "2024-07-01", "end": "2024-07-14"}
	if !reflect.DeepEqual(result.Output["date_range"], wantRange) {
		t.Errorf("date_range = %v, want %v", result.Output["date_range"], wantRange)
	}
	if result.Output["new_rate_cents"] != int64(18900) {
		t.Errorf("new_rate_cents = %v, want 18900", result.Output["new_rate_cents"])
	}
}

func TestExecuteRateUpdateWithRoomType(t *testing.T) {
	task := rateUpdateTask()
	task.Inputs["room_type"] = "deluxe"

	result := New().Execute(task)
	if result.Output["room_type"] != "deluxe" {
		t.Errorf("room_type = %v, want deluxe", result.Output["room_type"])
	}
}

func TestExecuteTariffSync(t *testing.T) {
	task := rateUpdateTask()
	task.Scope = []string{"hospitality:execute", "hospitality:tariffs:sync"}
	task.Inputs = map[string]any{
		"action":         "TARIFF_SYNC",
		"source":         "HTS",
		"effective_date": "2024-08-01",
		"categories":     []any{"standard", "premium"},
	}

	result := New().Execute(task)
	if result.Status != model.StatusOK {
		t.Fatalf("status = %q, error = %q", result.Status, result.Error)
	}
	if result.Output["result"] != "STUB_SYNCED" {
		t.Errorf("result = %v, want STUB_SYNCED", result.Output["result"])
	}
	if result.Output["action"] != "TARIFF_SYNC" {
		t.Errorf("action = %v, want TARIFF_SYNC", result.Output["action"])
	}
	if !reflect.DeepEqual(result.Output["categories"], []string{"standard", "premium"}) {
		t.Errorf("categories = %v", result.Output["categories"])
	}
}

func TestExecuteVendorInvoiceCheck(t *testing.T) {
	task := rateUpdateTask()
	task.Scope = []string{"hospitality:execute", "hospitality:invoices:review"}
	task.Inputs = map[string]any{
		"action":       "VENDOR_INVOICE_CHECK",
		"vendor_id":    "vendor-9",
		"invoice_id":   "inv-123",
		"amount_cents": float64(450075),
		"currency":     "USD",
	}

	result := New().Execute(task)
	if result.Status != model.StatusOK {
		t.Fatalf("status = %q, error = %q", result.Status, result.Error)
	}
	if result.Output["result"] != "STUB_CHECK_COMPLETE" {
		t.Errorf("result = %v, want STUB_CHECK_COMPLETE", result.Output["result"])
	}
	if result.Output["action"] != "VENDOR_INVOICE_CHECK" {
		t.Errorf("action = %v, want VENDOR_INVOICE_CHECK", result.Output["action"])
	}
	if !reflect.DeepEqual(result.Output["flags"], []string{}) {
		t.Errorf("flags = %v, want empty list", result.Output["flags"])
	}
}

func TestExecuteScopeInsufficient(t *testing.T) {
	task := rateUpdateTask()
	task.Scope = []string{"task:execute", "hospitality:execute"}

	result := New().Execute(task)
	if result.Status != model.StatusError {
		t.Fatalf("status = %q, want ERROR", result.Status)
	}
	if result.Error != "HOSPITALITY_SCOPE_INSUFFICIENT:hospitality:rates:write" {
		t.Errorf("error = %q", result.Error)
	}
}

func TestExecuteInputErrors(t *testing.T) {
	tests := []struct {
		name    string
		inputs  map[string]any
		wantErr string
	}{
		{"nil inputs", nil, "INPUTS_REQUIRED"},
		{"empty inputs", map[string]any{}, "INPUTS_REQUIRED"},
		{"unknown action", map[string]any{"action": "DEMOLISH"}, "INPUT_ACTION_INVALID"},
		{"missing action", map[string]any{"property_id": "p"}, "INPUT_ACTION_INVALID"},
		{
			"missing property",
			map[string]any{"action": "RATE_UPDATE", "date_start": "2024-07-01", "date_end": "2024-07-02", "new_rate_cents": float64(1), "currency": "EUR"},
			"INPUT_PROPERTY_ID_REQUIRED",
		},
		{
			"bad date",
			map[string]any{"action": "RATE_UPDATE", "property_id": "p", "date_start": "July 1", "date_end": "2024-07-02", "new_rate_cents": float64(1), "currency": "EUR"},
			"INPUT_DATE_START_INVALID_DATE",
		},
		{
			"bad source",
			map[string]any{"action": "TARIFF_SYNC", "source": "GUESSWORK", "effective_date": "2024-08-01"},
			"INPUT_SOURCE_INVALID",
		},
		{
			"missing amount",
			map[string]any{"action": "VENDOR_INVOICE_CHECK", "vendor_id": "v", "invoice_id": "i", "currency": "USD"},
			"INPUT_AMOUNT_CENTS_REQUIRED",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := rateUpdateTask()
			task.Scope = []string{"hospitality:execute", "hospitality:rates:write", "hospitality:tariffs:sync", "hospitality:invoices:review"}
			task.Inputs = tt.inputs

			result := New().Execute(task)
			if result.Status != model.StatusError {
				t.Fatalf("status = %q, want ERROR", result.Status)
			}
			if result.Error != tt.wantErr {
				t.Errorf("error = %q, want %q", result.Error, tt.wantErr)
			}
		})
	}
}

func TestRateCoercionTruncates(t *testing.T) {
	task := rateUpdateTask()
	task.Inputs["new_rate_cents"] = float64(18900.9)

	result := New().Execute(task)
	if result.Output["new_rate_cents"] != int64(18900) {
		t.Errorf("new_rate_cents = %v, want truncated 18900", result.Output["new_rate_cents"])
	}
}

func TestSupportsAllCoreTaskTypes(t *testing.T) {
	e := New()
	for _, tt := range model.TaskTypes() {
		if !e.Supports(tt) {
			t.Errorf("Supports(%s) = false", tt)
		}
	}
	if e.Supports(model.TaskType("DESTROY")) {
		t.Error("unknown task type must not be supported")
	}
}
