package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"golayout/internal/domain"
	"golayout/internal/pkg/token"
)

// token emite um JWT assinado com JWT_SECRET_KEY para uso local.
// Uso: token -sub ana -role operator [-ttl 60m]
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado. Carregando configs apenas do ambiente do sistema.")
	}

	subject := flag.String("sub", "", "identificador do operador")
	role := flag.String("role", string(domain.RoleOperator), "papel: admin, operator ou viewer")
	ttl := flag.Duration("ttl", time.Hour, "validade do token")
	flag.Parse()

	secret, ok := os.LookupEnv("JWT_SECRET_KEY")
	if !ok || secret == "" {
		log.Fatal("❌ JWT_SECRET_KEY deve ser definida.")
	}
	if !domain.Role(*role).Valid() {
		log.Fatalf("❌ Papel desconhecido: %q", *role)
	}

	signed, err := token.NewService(secret, *ttl).GenerateToken(*subject, *role)
	if err != nil {
		log.Fatalf("❌ Falha ao gerar token: %v", err)
	}
	fmt.Println(signed)
}
