package db

import (
	"fmt"
	"log"
	"os"
)

// RunMigrateCommand dispatches the `skyview migrate` subcommand.
func RunMigrateCommand(args []string, dbPath string) {
	if len(args) < 1 {
		PrintMigrateHelp()
		os.Exit(1)
	}

	database, err := Open(dbPath)
	if err != nil {
		log.Fatalf("Failed to open ledger: %v", err)
	}
	defer database.Close()

	switch args[0] {
	case "up":
		if err := database.MigrateUp(); err != nil {
			log.Fatalf("Migration up failed: %v", err)
		}
		log.Println("All migrations applied")

	case "down":
		if err := database.MigrateDown(); err != nil {
			log.Fatalf("Migration down failed: %v", err)
		}
		log.Println("Rolled back one migration")

	case "status":
		version, dirty, err := database.MigrateVersion()
		if err != nil {
			log.Fatalf("Failed to read migration status: %v", err)
		}
		log.Printf("Ledger schema version %d (dirty=%v)", version, dirty)

	case "help":
		PrintMigrateHelp()

	default:
		fmt.Printf("Unknown migrate action: %s\n\n", args[0])
		PrintMigrateHelp()
		os.Exit(1)
	}
}

// PrintMigrateHelp prints usage for the migrate subcommand.
func PrintMigrateHelp() {
	fmt.Println(`Usage: skyview migrate <action> [-db path]

Actions:
  up      apply all pending migrations
  down    roll back the most recent migration
  status  print the current schema version
  help    show this message`)
}
