// Command grant gives a user a report capability, site-wide or for one course.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"conversation-report/internal/access"
	"conversation-report/internal/config"
	"conversation-report/internal/db"
	"conversation-report/internal/user"
)

func main() {
	username := flag.String("user", "", "username to grant")
	capability := flag.String("capability", access.CapabilitySite, "capability name")
	courseID := flag.Int("course", 0, "course id (0 = site level)")
	flag.Parse()

	if *username == "" {
		log.Fatal("❌ -user is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Config: %v", err)
	}

	database, err := db.NewDatabase(cfg.DBDSN)
	if err != nil {
		log.Fatalf("❌ Failed to connect to DB: %v", err)
	}
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	u, err := user.NewRepository(database.Conn).GetUserByUsername(ctx, *username)
	if err != nil {
		log.Fatalf("❌ Lookup %s: %v", *username, err)
	}

	scope := access.SystemScope()
	if *courseID != 0 {
		scope = access.CourseScope(*courseID)
	}

	if err := access.NewRepository(database.Conn).Grant(ctx, u.ID, *capability, scope); err != nil {
		log.Fatalf("❌ Grant failed: %v", err)
	}
	log.Printf("✅ Granted %s to %s in %s", *capability, u.Username, scope)
}
