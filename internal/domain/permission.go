package domain

// PermissionLevel nivel de permiso de un usuario (1 = solo lectura, 2 = estándar, 3 = elevado).
type PermissionLevel int

const (
	LevelReadOnly PermissionLevel = 1
	LevelStandard PermissionLevel = 2
	LevelElevated PermissionLevel = 3
)

// Valid indica si el nivel pertenece al rango conocido.
func (l PermissionLevel) Valid() bool {
	return l >= LevelReadOnly && l <= LevelElevated
}

// CanWrite permite crear y editar productos.
func (l PermissionLevel) CanWrite() bool { return l > LevelReadOnly }

// CanDelete permite eliminar productos; solo el nivel más alto.
func (l PermissionLevel) CanDelete() bool { return l == LevelElevated }
