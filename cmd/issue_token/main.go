// issue_token emite un JWT firmado con JWT_SECRET para probar la API en local.
//
//	go run ./cmd/issue_token -role bodeguero -user u-1
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-ledger/pkg/config"
	"github.com/jhoicas/stock-ledger/pkg/jwt"
)

func main() {
	role := flag.String("role", jwt.RoleAdmin, "rol del token: admin, bodeguero o vendedor")
	user := flag.String("user", "", "user id (por defecto un UUID nuevo)")
	company := flag.String("company", "", "company id (opcional)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	if cfg.JWT.Secret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET no configurado")
		os.Exit(1)
	}
	if !jwt.KnownRole(*role) {
		fmt.Fprintf(os.Stderr, "rol desconocido: %q\n", *role)
		os.Exit(2)
	}
	if *user == "" {
		*user = uuid.NewString()
	}

	token, err := jwt.Generate(cfg.JWT.Secret, *user, *company, *role, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		fmt.Fprintln(os.Stderr, "generar token:", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
