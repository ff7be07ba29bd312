// Command seed populates the configured database with demo data.
package main

import (
	"context"
	"flag"
	"log"

	"simplesocial/internal/bootstrap"
	"simplesocial/internal/database"
	"simplesocial/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of distinct usernames")
	numPosts := flag.Int("posts", 50, "Number of posts to create")
	numComments := flag.Int("comments", 5, "Maximum comments per post")
	numLikes := flag.Int("likes", 10, "Maximum likes per post")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	randSeed := flag.Int64("seed", 0, "Random seed (0 uses the clock)")
	flag.Parse()

	log.Printf("Target: %d users, %d posts, clean=%v", *numUsers, *numPosts, *shouldClean)

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = database.Close(db) }()

	res, err := seed.Seed(context.Background(), db, seed.Options{
		Users:    *numUsers,
		Posts:    *numPosts,
		Comments: *numComments,
		Likes:    *numLikes,
		Clean:    *shouldClean,
		Seed:     *randSeed,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %d posts, %d comments, %d likes", res.Posts, res.Comments, res.Likes)
}
