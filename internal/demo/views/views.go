// Package views contains the demo app views. Each view embeds
// navigation.ViewModelSlot so the manager can bind its viewmodel.
package views

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/waypoint/internal/demo/viewmodels"
	"github.com/zjrosen/waypoint/navigation"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	dimStyle   = lipgloss.NewStyle().Faint(true)
)

// HomeView is the landing view.
type HomeView struct {
	navigation.ViewModelSlot

	width, height int
}

func (v *HomeView) Init() tea.Cmd { return nil }

func (v *HomeView) Update(msg tea.Msg) tea.Cmd { return nil }

func (v *HomeView) View() string {
	visits := 0
	if vm, ok := v.ViewModel().(*viewmodels.HomeViewModel); ok {
		visits = vm.Visits
	}
	return titleStyle.Render("Home") + "\n" +
		fmt.Sprintf("Visited %d time(s)", visits) + "\n" +
		dimStyle.Render("s settings · p product · a about · q quit")
}

func (v *HomeView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// SettingsView edits demo settings.
type SettingsView struct {
	navigation.ViewModelSlot
}

func (v *SettingsView) Init() tea.Cmd { return nil }

func (v *SettingsView) Update(msg tea.Msg) tea.Cmd {
	vm, ok := v.ViewModel().(*viewmodels.SettingsViewModel)
	if !ok {
		return nil
	}
	if key, isKey := msg.(tea.KeyMsg); isKey {
		switch key.String() {
		case "d":
			vm.Dirty = true
		case "w":
			vm.Dirty = false
		}
	}
	return nil
}

func (v *SettingsView) View() string {
	state := "saved"
	if vm, ok := v.ViewModel().(*viewmodels.SettingsViewModel); ok && vm.Dirty {
		state = "unsaved changes"
	}
	return titleStyle.Render("Settings") + "\n" +
		"State: " + state + "\n" +
		dimStyle.Render("d dirty · w write · h home")
}

// ProductDetailView shows a single product loaded by its viewmodel.
type ProductDetailView struct {
	navigation.ViewModelSlot
}

func (v *ProductDetailView) Init() tea.Cmd { return nil }

func (v *ProductDetailView) Update(msg tea.Msg) tea.Cmd { return nil }

func (v *ProductDetailView) View() string {
	vm, ok := v.ViewModel().(*viewmodels.ProductDetailViewModel)
	if !ok || !vm.Loaded {
		return titleStyle.Render("Product") + "\n" + dimStyle.Render("loading…")
	}
	return titleStyle.Render(vm.Product.Name) + "\n" +
		fmt.Sprintf("#%d · %s", vm.Product.ID, vm.Product.Price) + "\n" +
		dimStyle.Render("h home")
}

// AboutView is bound to viewmodels.AppInfo through an explicit mapping.
type AboutView struct {
	navigation.ViewModelSlot
}

func (v *AboutView) Init() tea.Cmd { return nil }

func (v *AboutView) Update(msg tea.Msg) tea.Cmd { return nil }

func (v *AboutView) View() string {
	version, commit := "dev", "unknown"
	if vm, ok := v.ViewModel().(*viewmodels.AppInfo); ok {
		version, commit = vm.Version, vm.Commit
	}
	return titleStyle.Render("About waypoint") + "\n" +
		fmt.Sprintf("version %s (%s)", version, commit)
}

// StatusView renders the status bar region.
type StatusView struct {
	navigation.ViewModelSlot

	width int
}

func (v *StatusView) Init() tea.Cmd { return nil }

func (v *StatusView) Update(msg tea.Msg) tea.Cmd { return nil }

func (v *StatusView) View() string {
	vm, ok := v.ViewModel().(*viewmodels.StatusViewModel)
	if !ok {
		return ""
	}
	line := fmt.Sprintf("last: %s · navigations: %d", vm.LastTarget, vm.Count)
	return dimStyle.Width(v.width).Render(line)
}

func (v *StatusView) SetSize(width, height int) { v.width = width }
