package hospitality

import (
	"strings"

	"github.com/ppiankov/taskgate/internal/model"
)

// DomainName is the registry key for this executor.
const DomainName = "hospitality"

// Executor handles hospitality tasks with templated stub logic. Each action
// enforces its own least-privilege scope on top of what admission checked.
type Executor struct{}

// New returns the hospitality executor.
func New() *Executor { return &Executor{} }

func (e *Executor) DomainID() string { return DomainName }

// Supports accepts every core task type; action-level routing happens in
// Execute based on the typed inputs.
func (e *Executor) Supports(t model.TaskType) bool {
	return model.IsValidTaskType(t)
}

// Execute parses the task inputs and runs the matching stub handler. All
// failures come back as ERROR results, never panics.
func (e *Executor) Execute(task *model.Task) model.ExecutionResult {
	inputs, err := ParseInputs(task.Inputs)
	if err != nil {
		return errorResult(task, err.Error())
	}
	if missing := missingScopes(inputs.Action, task.Scope); len(missing) > 0 {
		return errorResult(task, "HOSPITALITY_SCOPE_INSUFFICIENT:"+strings.Join(missing, ","))
	}

	var output map[string]any
	switch inputs.Action {
	case ActionRateUpdate:
		output = runRateUpdate(inputs.RateUpdate)
	case ActionTariffSync:
		output = runTariffSync(inputs.TariffSync)
	case ActionVendorInvoiceCheck:
		output = runVendorInvoiceCheck(inputs.VendorInvoiceCheck)
	}
	output["executor"] = DomainName
	output["mode"] = "TEMPLATED_STUB"
	return model.ExecutionResult{
		Status:   model.StatusOK,
		TaskID:   task.TaskID,
		DomainID: task.DomainID,
		TaskType: task.TaskType,
		Output:   output,
	}
}

func runRateUpdate(in *RateUpdateInputs) map[string]any {
	var roomType any
	if in.RoomType != "" {
		roomType = in.RoomType
	}
	return map[string]any{
		"action":         string(ActionRateUpdate),
		"result":         "STUB_APPLIED",
		"property_id":    in.PropertyID,
		"room_type":      roomType,
		"date_range":     map[string]any{"start": in.DateStart, "end": in.DateEnd},
		"new_rate_cents": in.NewRateCents,
		"currency":       in.Currency,
	}
}

func runTariffSync(in *TariffSyncInputs) map[string]any {
	categories := in.Categories
	if categories == nil {
		categories = []string{}
	}
	return map[string]any{
		"action":         string(ActionTariffSync),
		"result":         "STUB_SYNCED",
		"source":         in.Source,
		"effective_date": in.EffectiveDate,
		"categories":     categories,
	}
}

func runVendorInvoiceCheck(in *VendorInvoiceCheckInputs) map[string]any {
	return map[string]any{
		"action":       string(ActionVendorInvoiceCheck),
		"result":       "STUB_CHECK_COMPLETE",
		"vendor_id":    in.VendorID,
		"invoice_id":   in.InvoiceID,
		"amount_cents": in.AmountCents,
		"currency":     in.Currency,
		"flags":        []string{},
	}
}

func errorResult(task *model.Task, reason string) model.ExecutionResult {
	return model.ExecutionResult{
		Status:   model.StatusError,
		TaskID:   task.TaskID,
		DomainID: task.DomainID,
		TaskType: task.TaskType,
		Error:    reason,
	}
}
