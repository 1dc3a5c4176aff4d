package models

// All returns every persistence model in dependency order. It backs
// AutoMigrate in tests; production schemas come from the SQL migrations.
func All() []any {
	return []any{
		&ProductModel{},
		&PriceHistoryModel{},
		&CustomerModel{},
		&CostLayerModel{},
		&InventoryTransactionModel{},
		&PurchaseModel{},
		&PurchaseItemModel{},
		&SaleModel{},
		&SaleItemModel{},
		&SaleItemLayerModel{},
		&SystemSettingsModel{},
	}
}
