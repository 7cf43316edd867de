// estoquectl tareas de administración: migraciones, datos de referencia y alta de usuarios con nivel.
//
// Uso: go run ./cmd/estoquectl [migrate|seed|user create] --help
package main

import "github.com/jhoicas/estoque-api/cmd/estoquectl/commands"

func main() {
	commands.Execute()
}
