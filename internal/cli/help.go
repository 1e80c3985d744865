package cli

import (
	"maps"
	"slices"
	"strings"
)

// commandHelp contains help text for each command.
var commandHelp = map[string]string{
	"login": `Syntax: login <email> <password>
Signs in. Favorites move to your account from then on.`,

	"register": `Syntax: register --name "<full name>" --email <email> --age <n> --address "<address>" --password <password>
Creates an account and signs in. The password needs 8 characters with a letter and a digit.`,

	"logout": `Syntax: logout
Signs out. Dark mode is kept.`,

	"whoami": `Syntax: whoami
Shows the signed-in profile.`,

	"browse": `Syntax: browse [--tier Low,Medium,High] [--mood m,..] [--type t,..] [--io Indoor,Outdoor]
              [--min-rating n] [--sort key] [--page n] [--page-size n] [search words]
Lists the catalog. Values inside one filter are alternatives, different filters must all match.
Sort keys: relevance, rating_desc, rating_asc, price_desc, price_asc, distance_asc.
Example: browse --tier Low --mood Romantic --sort rating_desc nile`,

	"show": `Syntax: show <id>
Shows one attraction by catalog number or place id.`,

	"recommend": `Syntax: recommend [--refresh]
Lists your personal recommendations. Requires sign in and a finished quiz.`,

	"quiz": `Syntax: quiz [--vibe <vibe> --days <n> [--activities id,..] [--weather <pref>]]
Without flags shows your saved preferences, with flags saves new ones.`,

	"trips": `Syntax: trips [ls | gen | save <plan> "<title>" | show <id> | rm <id>]
Lists saved trips, generates plans, saves a generated plan or deletes a trip.`,

	"fav": `Syntax: fav [ls [--category c] [--sort newest|oldest|title] | add <id> [category] | rm <id> | toggle <id> | cat <id> [category]]
Manages favorites. Before sign in they are kept on this device.`,

	"dark": `Syntax: dark [on|off]
Shows or sets dark mode.`,

	"help": `Syntax: help [command]`,

	"exit": `Syntax: exit
Leaves the client. "quit" works too.`,
}

func (c *CLI) printHelp(command string) {
	command = strings.TrimSpace(command)
	if command == "" {
		c.printf("Available commands:\n")
		for _, name := range slices.Sorted(maps.Keys(commandHelp)) {
			c.printf("  %s\n", name)
		}
		c.printf("\nUse 'help <command>' for more information about a specific command.\n")
		return
	}
	if help, ok := commandHelp[command]; ok {
		c.printf("%s\n", help)
		return
	}
	c.printf("Unknown command: %s\n", command)
}
