package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"itworks-go/pkg/cli"
	"itworks-go/pkg/cli/logger"
	"itworks-go/pkg/config"
)

func main() {
	var (
		jobsMode   = flag.Bool("jobs", false, "List recent scrape jobs")
		submitFile = flag.String("submit", "", "Submit URLs from a file ('-' for stdin) and wait for completion")
		deleteID   = flag.String("delete", "", "Delete a scrape job from the history by id")

		// Config commands
		configShow = flag.Bool("config-show", false, "Show current configuration")
		configSet  = flag.String("config-set", "", "Set a config value (format: section.key=value)")
	)
	flag.Parse()

	defer logger.CloseLog()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	app := cli.NewApp(cfg)

	// Handle config commands first (don't need the API)
	if *configShow {
		app.ShowConfig()
		return
	}
	if *configSet != "" {
		if err := app.SetConfig(*configSet); err != nil {
			log.Fatalf("failed to set config: %v", err)
		}
		fmt.Println("Configuration updated successfully")
		return
	}

	// One-shot commands
	if *jobsMode {
		app.ListJobs()
		return
	}
	if *submitFile != "" {
		if err := app.HandleSubmitCommand(*submitFile); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}
	if *deleteID != "" {
		if err := app.DeleteJob(*deleteID); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Interactive console
	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
