// Package viewmodels contains the demo app viewmodels. HomeViewModel and
// SettingsViewModel pair with their views by naming convention;
// ProductDetailViewModel demonstrates the async lifecycle; AppInfo is
// bound through an explicit mapping.
package viewmodels

import (
	"context"
	"fmt"
	"time"
)

// HomeViewModel tracks how often the home view has been visited. The demo
// container hands out a single instance, so the count accumulates across
// navigations.
type HomeViewModel struct {
	Visits int
}

// CanNavigateTo always allows navigation to home.
func (vm *HomeViewModel) CanNavigateTo(param any) bool { return true }

// OnNavigatedTo counts the visit.
func (vm *HomeViewModel) OnNavigatedTo(param any) { vm.Visits++ }

// CanNavigateFrom always allows leaving home.
func (vm *HomeViewModel) CanNavigateFrom() bool { return true }

// OnNavigatedFrom is a no-op.
func (vm *HomeViewModel) OnNavigatedFrom() {}

// SettingsViewModel guards navigation away while unsaved changes exist.
type SettingsViewModel struct {
	Dirty bool
}

func (vm *SettingsViewModel) CanNavigateTo(param any) bool { return true }

func (vm *SettingsViewModel) OnNavigatedTo(param any) {}

// CanNavigateFrom blocks leaving while settings are dirty.
func (vm *SettingsViewModel) CanNavigateFrom() bool { return !vm.Dirty }

// OnNavigatedFrom clears the dirty flag once leaving is allowed.
func (vm *SettingsViewModel) OnNavigatedFrom() { vm.Dirty = false }

// Product is one catalog entry.
type Product struct {
	ID    int
	Name  string
	Price string
}

// Catalog looks up products. The demo catalog is in-memory; a real app
// would back this with a data service.
type Catalog struct {
	products map[int]Product
}

// NewCatalog creates a catalog with a few demo products.
func NewCatalog() *Catalog {
	return &Catalog{products: map[int]Product{
		7:  {ID: 7, Name: "Compass", Price: "$14.00"},
		42: {ID: 42, Name: "Sextant", Price: "$230.00"},
	}}
}

// Lookup returns the product with the given id.
func (c *Catalog) Lookup(id int) (Product, bool) {
	p, ok := c.products[id]
	return p, ok
}

// ProductDetailViewModel loads a product asynchronously when navigated to
// with a product id parameter.
type ProductDetailViewModel struct {
	catalog *Catalog

	Product Product
	Loaded  bool
}

// NewProductDetailViewModel creates a viewmodel over the given catalog.
func NewProductDetailViewModel(catalog *Catalog) *ProductDetailViewModel {
	return &ProductDetailViewModel{catalog: catalog}
}

// CanNavigateToContext requires an int product id parameter.
func (vm *ProductDetailViewModel) CanNavigateToContext(ctx context.Context, param any) (bool, error) {
	_, ok := param.(int)
	return ok, nil
}

// OnNavigatedToContext loads the product named by the parameter.
func (vm *ProductDetailViewModel) OnNavigatedToContext(ctx context.Context, param any) error {
	id := param.(int)

	// Simulated load latency, honoring cancellation.
	select {
	case <-time.After(10 * time.Millisecond):
	case <-ctx.Done():
		return ctx.Err()
	}

	p, ok := vm.catalog.Lookup(id)
	if !ok {
		return fmt.Errorf("product %d not found", id)
	}
	vm.Product = p
	vm.Loaded = true
	return nil
}

func (vm *ProductDetailViewModel) CanNavigateFromContext(ctx context.Context) (bool, error) {
	return true, nil
}

func (vm *ProductDetailViewModel) OnNavigatedFromContext(ctx context.Context) error {
	vm.Loaded = false
	return nil
}

// AppInfo backs the about view through an explicit mapping; its name has
// no relationship to the view's.
type AppInfo struct {
	Version string
	Commit  string
}

// StatusViewModel backs the status bar region.
type StatusViewModel struct {
	LastTarget string
	Count      int
}
