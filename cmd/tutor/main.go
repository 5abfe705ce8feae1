// Command tutor is a terminal chat client for an AI tutoring service.
package main

import "github.com/tutorterm/tutor/internal/cli"

func main() {
	cli.Execute()
}
