package main

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/NewEra-cyber/studentplanner/internal/constants"
)

// Parse real argument vectors through the CLI grammar so needsLoad sees the
// same command path main does. The keyring and template commands must never
// touch the store: a PostgreSQL user records their DSN before any store
// exists.
func TestNeedsLoad(t *testing.T) {
	parser, err := kong.New(&CLI,
		kong.Name(constants.AppName),
		kong.Vars{"version": constants.Version},
	)
	if err != nil {
		t.Fatalf("failed to build parser: %v", err)
	}

	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"init"}, false},
		{[]string{"config", "set-connection", "postgres://db.example.com/planner"}, false},
		{[]string{"config", "delete-connection"}, false},
		{[]string{"routine", "list"}, false},
		{[]string{"routine", "init"}, true},
		{[]string{"adjust"}, true},
		{[]string{"day"}, true},
		{[]string{"doctor"}, true},
		{[]string{"activity", "list"}, true},
		{[]string{"timetable", "add", "CS201", "-D", "monday", "-s", "09:00", "-e", "11:00"}, true},
	}

	for _, tt := range tests {
		name := strings.Join(tt.args, " ")
		ctx, err := parser.Parse(tt.args)
		if err != nil {
			t.Fatalf("%s: failed to parse: %v", name, err)
		}
		if got := needsLoad(ctx.Command()); got != tt.want {
			t.Errorf("%s: needsLoad(%q) = %v, want %v", name, ctx.Command(), got, tt.want)
		}
	}
}
