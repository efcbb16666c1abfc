package main

import (
	"log"

	"github.com/anoixa/tripill/config"

	"github.com/anoixa/tripill/cmd"
)

func main() {
	log.Printf("tripill %s (%s)", config.Version, config.CommitHash)
	cmd.Execute()
}
