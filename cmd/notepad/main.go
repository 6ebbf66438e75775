package main

import (
	"fmt"
	"os"
)

const usageText = `notepad keeps short notes in a local daemon and edits them from the terminal.

Usage:
  notepad <command> [flags]

Commands:
  daemon   run background daemon
  config   print configuration (effective or defaults)
  ls       list notes, newest first
  save     create or update a note
  rm       delete a note
  watch    print the collection every time it changes
  ui       run terminal UI
  help     show help

Flags:
  -h, --help   show help

Daemon flags:
  --background    run in background (logs to file)
  --force         stop any running daemon before starting
  --kill          stop any running daemon and exit

Examples:
  notepad ls
  notepad save --title "Groceries" --content "milk, eggs"
  echo "body" | notepad save --id 3f1c --title "Draft" --content -
  notepad rm 3f1c
  notepad config --scope ui --format toml
`

func printUsage() {
	fmt.Fprint(os.Stderr, usageText)
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		return
	}

	wiring := defaultCommandWiring(os.Stdin, os.Stdout, os.Stderr)
	commands := buildCommands(wiring)

	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
		return
	}

	runner, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		os.Exit(2)
	}
	exitOnErr(args[0], runner.Run(args[1:]), wiring.stderr)
}
