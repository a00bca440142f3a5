package service

import (
	"fmt"
	"strings"
)

// KeyHelp describes one dashboard key binding.
type KeyHelp struct {
	Keys        string
	Description string
	// Short is the compact footer label; empty keeps the binding out of the footer.
	Short string
}

// HelpProvider lists the dashboard key bindings.
type HelpProvider struct {
	bindings []KeyHelp
}

// NewHelpProvider creates the provider with the default bindings.
func NewHelpProvider() *HelpProvider {
	return &HelpProvider{bindings: []KeyHelp{
		{Keys: "a", Description: "Show all orders", Short: "all"},
		{Keys: "p", Description: "Show pending orders only", Short: "pending"},
		{Keys: "f", Description: "Show failed orders only", Short: "failed"},
		{Keys: "c/C", Description: "Cycle channel filter forward/back", Short: "channel"},
		{Keys: "1-9", Description: "Sync the n-th configured channel", Short: "sync"},
		{Keys: "r", Description: "Retry the selected failed order", Short: "retry"},
		{Keys: "R", Description: "Refresh orders now", Short: "refresh"},
		{Keys: "s", Description: "Toggle server stats view", Short: "stats"},
		{Keys: "j/k", Description: "Move selection down/up"},
		{Keys: "?", Description: "Toggle this help"},
		{Keys: "q", Description: "Quit", Short: "quit"},
	}}
}

// Bindings returns all bindings in display order.
func (p *HelpProvider) Bindings() []KeyHelp {
	return append([]KeyHelp(nil), p.bindings...)
}

// Footer renders the compact one-line help, e.g. "a: all  p: pending".
func (p *HelpProvider) Footer() string {
	parts := make([]string, 0, len(p.bindings))
	for _, b := range p.bindings {
		if b.Short == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", b.Keys, b.Short))
	}
	return strings.Join(parts, "  ")
}

// Full renders every binding on its own line.
func (p *HelpProvider) Full() string {
	var sb strings.Builder
	for _, b := range p.bindings {
		sb.WriteString(fmt.Sprintf("  %-5s %s\n", b.Keys, b.Description))
	}
	return sb.String()
}
