// Command verify_theme loads every installed theme and prints the colors of
// each pair, failing on the first theme that does not parse.
package main

import (
	"fmt"
	"log"

	"cursespp/internal/theme"
)

func main() {
	themes, err := theme.List()
	if err != nil {
		log.Fatalf("Failed to list themes: %v", err)
	}
	for _, meta := range themes {
		fmt.Printf("Loading %s theme...\n", meta.Name)
		th, err := theme.Load(meta.Name)
		if err != nil {
			log.Fatalf("Failed to load theme: %v", err)
		}
		for _, p := range theme.Pairs() {
			fg, bg, _ := th.Style(p).Decompose()
			fmt.Printf("  %-24s fg %-10s bg %s\n", p, fg.Name(), bg.Name())
		}
	}
}
