package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrQuantityTooLow     = errors.New("cantidad por debajo del mínimo de stock")
	ErrSupplierNotFound   = errors.New("proveedor no encontrado")
	// ErrImageCleanup indica que la fila ya fue eliminada pero el archivo de imagen no.
	ErrImageCleanup = errors.New("no se pudo eliminar la imagen del producto")
)

// Duplicados por entidad; todos cumplen errors.Is(err, ErrDuplicate).
var (
	ErrDuplicateUser     = duplicate("usuario ya registrado")
	ErrDuplicateSupplier = duplicate("proveedor ya registrado")
	ErrDuplicateProduct  = duplicate("producto ya registrado")
)

type duplicateError struct{ msg string }

func duplicate(msg string) error { return &duplicateError{msg: msg} }

func (e *duplicateError) Error() string { return e.msg }

func (e *duplicateError) Unwrap() error { return ErrDuplicate }
