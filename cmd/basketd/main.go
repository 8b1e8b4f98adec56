package main

import (
	"log"

	"github.com/mchmarny/basket/pkg/api"
)

func main() {
	if err := api.Serve(); err != nil {
		log.Fatal(err)
	}
}
