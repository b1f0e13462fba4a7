package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"property-manager/feature/calendar/feed"
	"property-manager/feature/calendar/models"
)

// Parses a local iCalendar file and prints the canonical events plus any
// warnings, for inspecting what a channel feed actually contains.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: debug_feed <file.ics> [channel]")
	}

	channel := models.ChannelAirbnb
	if len(os.Args) > 2 {
		channel = models.Channel(os.Args[2])
		if !channel.IsValid() {
			log.Fatalf("unknown channel %q", os.Args[2])
		}
	}

	raw, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}

	events, warnings, err := feed.Parse(string(raw), channel)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%d events, %d warnings\n\n", len(events), len(warnings))

	for _, w := range warnings {
		fmt.Printf("warning: %s\n", w)
	}
	if len(warnings) > 0 {
		fmt.Println()
	}

	out, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(out))
}
