package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"umrah-storefront/internal/faq"
)

// faq validates an FAQ CSV table and answers sample questions against it.
func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to FAQ CSV (kind,key,keywords,response); built-in table when empty")
	flag.Parse()

	matcher := faq.Default()
	if filePath != "" {
		m, err := faq.LoadFile(filePath)
		if err != nil {
			log.Fatalf("load %s: %v", filePath, err)
		}
		matcher = m
		fmt.Printf("%s: table is valid\n", filePath)
	}

	enc := json.NewEncoder(os.Stdout)
	for _, q := range flag.Args() {
		if err := enc.Encode(struct {
			Question string `json:"question"`
			faq.Reply
		}{Question: q, Reply: matcher.Match(q)}); err != nil {
			log.Fatalf("write reply: %v", err)
		}
	}
}
