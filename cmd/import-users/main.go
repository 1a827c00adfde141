// Command import-users loads a tab-separated roster export into the users
// table, the same ingestion the admin upload endpoint performs.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"time-tracker-api/config"
	"time-tracker-api/models"
	"time-tracker-api/services"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	var filePath string
	flag.StringVar(&filePath, "file", "", "path to the tab-separated roster file")
	flag.Parse()

	if filePath == "" {
		log.Fatal("usage: import-users -file <roster.tsv>")
	}

	config.InitDB()
	if err := models.AutoMigrate(config.DB); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	file, err := os.Open(filePath)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", filePath, err)
	}
	defer file.Close()

	svc := services.NewUserService(config.DB)
	summary, err := svc.ImportFromReader(file, filepath.Base(filePath))
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Printf("Import %s finished: %d imported, %d skipped", summary.BatchID, summary.Imported, summary.Skipped)
}
