package main

import "github.com/popingalex/flowgram.ai-sub002/internal/cli"

func main() {
	cli.Execute()
}
