package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/adekunleadebayo/ticketapp/internal/auth"
	"github.com/adekunleadebayo/ticketapp/internal/models"
	"github.com/adekunleadebayo/ticketapp/internal/store"
)

func main() {
	addUserCmd := flag.NewFlagSet("add-user", flag.ExitOnError)
	fullname := addUserCmd.String("fullname", "", "Full name for the new user")
	username := addUserCmd.String("username", "", "Username for the new user")
	password := addUserCmd.String("password", "", "Password for the new user")

	importCmd := flag.NewFlagSet("import-tickets", flag.ExitOnError)
	file := importCmd.String("file", "data/tickets.json", "JSON file with a ticket array")

	if len(os.Args) < 2 {
		fmt.Println("expected 'add-user' or 'import-tickets' subcommand")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add-user":
		addUserCmd.Parse(os.Args[2:])
		if *fullname == "" || *username == "" || *password == "" {
			fmt.Println("fullname, username and password are required")
			addUserCmd.PrintDefaults()
			os.Exit(1)
		}
		createUser(*fullname, *username, *password)
	case "import-tickets":
		importCmd.Parse(os.Args[2:])
		importTickets(*file)
	default:
		fmt.Println("expected 'add-user' or 'import-tickets' subcommand")
		os.Exit(1)
	}
}

func openStore() *store.Store {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./ticketapp.db"
	}

	db, err := store.NewStore(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	// Ensure the schema exists if running the cli before the server
	if err := db.InitSchema(); err != nil {
		log.Fatalf("Failed to init schema: %v", err)
	}
	return db
}

func createUser(fullname, username, password string) {
	db := openStore()

	if username == auth.DemoUsername {
		log.Fatalf("Username %q is reserved", username)
	}
	if db.GetUserByUsername(username) != nil {
		log.Fatalf("Username %q already exists", username)
	}
	if len(password) < 6 {
		log.Fatal("Password must be at least 6 characters")
	}

	err := db.CreateUser(models.User{Fullname: fullname, Username: username, Password: password})
	if err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Printf("User '%s' created successfully.\n", username)
}

func importTickets(path string) {
	db := openStore()

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", path, err)
	}

	var tickets []models.Ticket
	if err := json.Unmarshal(data, &tickets); err != nil {
		log.Fatalf("Failed to parse %s: %v", path, err)
	}

	if len(db.LoadTickets()) > 0 {
		log.Fatal("Ticket collection is not empty; refusing to import")
	}

	n, err := db.ImportTickets(tickets)
	if err != nil {
		log.Fatalf("Failed to import tickets: %v", err)
	}

	fmt.Printf("Imported %d tickets from %s.\n", n, path)
}
