// Command seed bootstraps the database schema and loads sample reference
// data: authors, books, a handful of discussion threads and an admin user.
// Authors, books and threads are only ever created here, never through the
// HTTP API.
package main

import (
	"database/sql"
	"flag"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/readroom-dev/readroom/internal/config"
	"github.com/readroom-dev/readroom/internal/logger"
	"github.com/readroom-dev/readroom/internal/storage/pg"
)

func main() {
	var configFolder, schemaPath, adminPassword string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.StringVar(&schemaPath, "schema", "internal/storage/pg/migrations/init.sql", "path to schema sql")
	flag.StringVar(&adminPassword, "admin_password", "", "password for the seeded admin user")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	if adminPassword == "" {
		logger.Log.Error("-admin_password is required")
		os.Exit(1)
	}

	db, err := pg.Connect(cfg, pg.DefaultConnectionConfig())
	if err != nil {
		logger.Log.Error("failed to connect to db", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := applySchema(db, schemaPath); err != nil {
		logger.Log.Error("failed to apply schema", "error", err)
		os.Exit(1)
	}
	if err := seed(db, adminPassword); err != nil {
		logger.Log.Error("failed to seed data", "error", err)
		os.Exit(1)
	}
	logger.Log.Info("database seeded")
}

func applySchema(db *sql.DB, schemaPath string) error {
	schema, err := os.ReadFile(schemaPath)
	if err != nil {
		return err
	}
	_, err = db.Exec(string(schema))
	return err
}

func seed(db *sql.DB, adminPassword string) error {
	passHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	var adminId int64
	err = db.QueryRow(
		"INSERT INTO users(name, email, password_hash) VALUES($1, $2, $3) RETURNING id",
		"Admin", "admin@readroom.local", string(passHash),
	).Scan(&adminId)
	if err != nil {
		return err
	}

	authors := []struct {
		name, dob string
	}{
		{"Ursula K. Le Guin", "1929-10-21"},
		{"Italo Calvino", "1923-10-15"},
		{"Octavia E. Butler", "1947-06-22"},
	}
	authorIds := make([]int64, len(authors))
	for i, a := range authors {
		if err := db.QueryRow(
			"INSERT INTO authors(name, date_of_birth) VALUES($1, $2) RETURNING id",
			a.name, a.dob,
		).Scan(&authorIds[i]); err != nil {
			return err
		}
	}

	books := []struct {
		title, description, genre string
		author                    int
	}{
		{"The Dispossessed", "An ambiguous utopia across two worlds.", "Science fiction", 0},
		{"A Wizard of Earthsea", "A young mage learns the true cost of power.", "Fantasy", 0},
		{"Invisible Cities", "Marco Polo describes cities to Kublai Khan.", "Literary fiction", 1},
		{"Kindred", "A modern woman is pulled back to the antebellum South.", "Science fiction", 2},
	}
	bookIds := make([]int64, len(books))
	for i, b := range books {
		if err := db.QueryRow(
			"INSERT INTO books(title, description, genre, author_id) VALUES($1, $2, $3, $4) RETURNING id",
			b.title, b.description, b.genre, authorIds[b.author],
		).Scan(&bookIds[i]); err != nil {
			return err
		}
	}

	threads := []struct {
		title string
		book  int
	}{
		{"Does Anarres hold up as a society?", 0},
		{"Favorite city in Invisible Cities?", 2},
		{"First impressions of Kindred", 3},
	}
	for _, t := range threads {
		if _, err := db.Exec(
			"INSERT INTO threads(book_id, user_id, title) VALUES($1, $2, $3)",
			bookIds[t.book], adminId, t.title,
		); err != nil {
			return err
		}
	}

	return nil
}
