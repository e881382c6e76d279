package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/john-ds-mc/lettie-cli/internal/env"
)

func runServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	var addr string
	fs.StringVar(&addr, "addr", "", "listen address (default from PORT, else :4002)")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if addr == "" {
		addr = fmt.Sprintf(":%d", env.GetInt("PORT", 4002))
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           BuildRouter(newSiteClient()),
		ReadHeaderTimeout: 5 * time.Second,
		// a single request may sit through the full 3-attempt retry ladder
		WriteTimeout: env.GetDuration("LETTIE_WRITE_TIMEOUT", 90*time.Second),
	}

	log.Printf("lettie listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil {
		log.Print(err)
		return 1
	}
	return 0
}
