// seed_catalog.go — standalone script to load a JSON catalog of profiles and
// listings into a running matchd instance via its API.
//
// Usage:
//
//	go run scripts/seed_catalog.go -catalog catalog.json -api http://localhost:8700
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
)

type catalog struct {
	Profiles []json.RawMessage `json:"profiles"`
	Listings []json.RawMessage `json:"listings"`
}

func main() {
	catalogPath := flag.String("catalog", "catalog.json", "path to catalog JSON file")
	apiURL := flag.String("api", "http://localhost:8700", "matchd API base URL")
	dryRun := flag.Bool("dry-run", false, "print counts without posting")
	flag.Parse()

	data, err := os.ReadFile(*catalogPath)
	if err != nil {
		log.Fatalf("read catalog: %v", err)
	}

	var cat catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		log.Fatalf("parse catalog: %v", err)
	}

	log.Printf("parsed %d profiles and %d listings from %s", len(cat.Profiles), len(cat.Listings), *catalogPath)

	if *dryRun {
		for i, p := range cat.Profiles {
			fmt.Printf("profile[%d] %s\n", i+1, summarize(p))
		}
		for i, l := range cat.Listings {
			fmt.Printf("listing[%d] %s\n", i+1, summarize(l))
		}
		return
	}

	client := &http.Client{}
	created, skipped := 0, 0
	post := func(path string, body json.RawMessage) {
		req, err := http.NewRequest("POST", *apiURL+path, bytes.NewReader(body))
		if err != nil {
			log.Printf("skip %s: %v", summarize(body), err)
			skipped++
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			log.Printf("skip %s: %v", summarize(body), err)
			skipped++
			return
		}
		resp.Body.Close()

		if resp.StatusCode == http.StatusCreated {
			created++
		} else {
			log.Printf("skip %s: status %d", summarize(body), resp.StatusCode)
			skipped++
		}
	}

	for _, p := range cat.Profiles {
		post("/api/v1/profiles", p)
	}
	for _, l := range cat.Listings {
		post("/api/v1/listings", l)
	}

	log.Printf("done: %d created, %d skipped", created, skipped)
}

// summarize pulls a human-readable label out of a raw catalog entry.
func summarize(raw json.RawMessage) string {
	var fields struct {
		DisplayName string `json:"display_name"`
		Title       string `json:"title"`
	}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return "<unparseable>"
	}
	if fields.DisplayName != "" {
		return fields.DisplayName
	}
	if fields.Title != "" {
		return fields.Title
	}
	return "<unnamed>"
}
