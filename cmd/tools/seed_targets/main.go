// Command seed_targets registers target platforms from a JSON seed file,
// encrypting each target's credentials with the master key on the way in.
//
// Usage:
//
//	go run cmd/tools/seed_targets/main.go targets.json
//
// Requires DATABASE_URL and VAULT_KEY environment variables to be set.
//
// Seed file format:
//
//	[
//	  {
//	    "name": "heaven-net",
//	    "base_url": "https://admin.heaven-net.example.jp/",
//	    "login_url": "https://admin.heaven-net.example.jp/login",
//	    "category": "customer",
//	    "identifier": "shop12345",
//	    "secret": "...",
//	    "use_proxy": true
//	  }
//	]
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/jonathan/panelsync/internal/db"
	"github.com/jonathan/panelsync/internal/dispatch"
	"github.com/jonathan/panelsync/internal/vault"
)

type seedTarget struct {
	Name       string `json:"name"`
	BaseURL    string `json:"base_url"`
	LoginURL   string `json:"login_url"`
	Category   string `json:"category"`
	Identifier string `json:"identifier"`
	Secret     string `json:"secret"`
	UseProxy   bool   `json:"use_proxy"`
}

func main() {
	_ = godotenv.Load()

	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: seed_targets <seed-file.json>")
		os.Exit(1)
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		fmt.Fprintln(os.Stderr, "ERROR: DATABASE_URL environment variable not set")
		os.Exit(1)
	}
	keyHex := os.Getenv("VAULT_KEY")
	if keyHex == "" {
		fmt.Fprintln(os.Stderr, "ERROR: VAULT_KEY environment variable not set")
		os.Exit(1)
	}

	v, err := vault.NewFromHex(keyHex)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Invalid vault key: %v\n", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to read seed file: %v\n", err)
		os.Exit(1)
	}
	var seeds []seedTarget
	if err := json.Unmarshal(data, &seeds); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to parse seed file: %v\n", err)
		os.Exit(1)
	}
	if len(seeds) == 0 {
		fmt.Println("Seed file is empty, nothing to do.")
		return
	}

	ctx := context.Background()

	database, err := db.Connect(ctx, dsn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	fmt.Println("=== Target Seeding ===")
	fmt.Println()

	created := 0
	for _, s := range seeds {
		if s.Name == "" || s.BaseURL == "" || s.LoginURL == "" ||
			s.Identifier == "" || s.Secret == "" {
			fmt.Fprintf(os.Stderr, "ERROR: Seed entry %q is missing required fields\n", s.Name)
			os.Exit(1)
		}

		ciphertext, err := v.EncryptCredentials(vault.Credentials{
			Identifier: s.Identifier,
			Secret:     s.Secret,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Failed to encrypt credentials for %s: %v\n", s.Name, err)
			os.Exit(1)
		}

		category := s.Category
		if category == "" {
			category = dispatch.CategoryCustomer
		}

		target := &dispatch.Target{
			ID:              uuid.New(),
			Name:            s.Name,
			BaseURL:         s.BaseURL,
			LoginURL:        s.LoginURL,
			Category:        category,
			Mode:            dispatch.ModeBrowser,
			EncryptedSecret: ciphertext,
			Active:          true,
			UseProxy:        s.UseProxy,
		}
		if err := database.CreateTarget(ctx, target); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Failed to create target %s: %v\n", s.Name, err)
			os.Exit(1)
		}

		fmt.Printf("  created %s  %s\n", target.ID, target.Name)
		created++
	}

	fmt.Println()
	fmt.Printf("Done: %d targets created.\n", created)
}
