package main

import (
	"os"

	"github.com/yanqian/faq-chatbot/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
