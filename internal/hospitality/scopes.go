package hospitality

// BaseScope is required for every hospitality action.
const BaseScope = "hospitality:execute"

var actionScopes = map[Action]string{
	ActionRateUpdate:         "hospitality:rates:write",
	ActionTariffSync:         "hospitality:tariffs:sync",
	ActionVendorInvoiceCheck: "hospitality:invoices:review",
}

// requiredScopes returns the capabilities an action needs, base first.
func requiredScopes(a Action) []string {
	return []string{BaseScope, actionScopes[a]}
}

// missingScopes returns required capabilities absent from the task scope,
// in required order.
func missingScopes(a Action, scope []string) []string {
	held := make(map[string]bool, len(scope))
	for _, s := range scope {
		held[s] = true
	}
	var missing []string
	for _, req := range requiredScopes(a) {
		if !held[req] {
			missing = append(missing, req)
		}
	}
	return missing
}
