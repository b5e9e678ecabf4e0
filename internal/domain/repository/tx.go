package repository

// TxRepositories agrupa los repositorios atados a una misma transacción.
type TxRepositories struct {
	Movements StockMovementRepository
	Products  ProductRepository
	Customers CustomerRepository
	Suppliers SupplierRepository
	Sales     OrderRepository
	Purchases OrderRepository
}
