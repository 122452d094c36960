package main

import (
	"os"

	"github.com/moodshot/moodshot/moodservice"
)

func main() {
	if err := moodservice.Run(); err != nil {
		os.Exit(1)
	}
}
