package entity

// Category categoría de productos (dato de referencia, solo lectura).
type Category struct {
	ID   int64
	Name string
}

// State estado/región de un proveedor (dato de referencia, solo lectura).
type State struct {
	ID           int64
	Name         string
	Abbreviation string // UF
}
