package main

import "github.com/barrard/video-transcribe/internal/adapters/cli"

func main() {
	cli.Execute()
}
