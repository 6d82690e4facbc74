// Command grant_role bootstraps a role for an existing principal, typically the first super_admin.
package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	"mentorhub/backend/internal/common"
	"mentorhub/backend/internal/config"
	"mentorhub/backend/internal/constants"
	"mentorhub/backend/internal/db"
	"mentorhub/backend/internal/services"
)

func main() {
	configPath := flag.String("config", os.Getenv("MENTORHUB_CONFIG"), "path to a YAML config file")
	email := flag.String("email", "", "email of the principal")
	role := flag.String("role", string(constants.RoleSuperAdmin), "role to grant")
	flag.Parse()

	if *email == "" {
		log.Fatal("-email is required")
	}
	if !constants.Role(*role).Valid() {
		log.Fatalf("unknown role %q", *role)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	sqlDB, err := db.InitPostgres(cfg.Postgres.DSN())
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer sqlDB.Close()

	var principalID string
	err = sqlDB.QueryRowx(constants.InsertPrincipalRole, uuid.NewString(), *role, *email).Scan(&principalID)
	if errors.Is(err, sql.ErrNoRows) {
		fmt.Printf("Nothing granted: %s not found or already holds %s\n", *email, *role)
		return
	}
	if err != nil {
		log.Fatalf("grant role: %v", err)
	}

	// a server on the in-process cache picks the grant up after cache.roles_ttl
	if cfg.Redis.Enabled {
		client := common.NewRedisClient(cfg.Redis)
		services.InvalidateRoleCache(common.NewRedisCacheService(client), principalID)
		client.Close()
	}

	fmt.Printf("Granted %s to %s\n", *role, *email)
}
