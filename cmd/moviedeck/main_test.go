package main

import (
	"testing"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	root := newRootCmd()

	want := map[string]bool{
		"version":   false,
		"browse":    false,
		"movie":     false,
		"bot":       false,
		"mcp-serve": false,
		"config":    false,
	}

	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}

	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestRootCommand_ConfigFlag(t *testing.T) {
	root := newRootCmd()
	flag := root.PersistentFlags().Lookup("config")
	if flag == nil {
		t.Fatal("--config flag not registered")
	}
	if flag.DefValue != "configs/moviedeck.yaml" {
		t.Errorf("--config default = %q, want %q", flag.DefValue, "configs/moviedeck.yaml")
	}
	if flag.Shorthand != "c" {
		t.Errorf("--config shorthand = %q, want %q", flag.Shorthand, "c")
	}
}

func TestVersionCommand(t *testing.T) {
	cmd := newVersionCmd()
	if cmd.Use != "version" {
		t.Errorf("Use = %q, want %q", cmd.Use, "version")
	}
}

func TestBrowseCommand_ArgCount(t *testing.T) {
	cmd := newBrowseCmd()
	if err := cmd.Args(cmd, []string{}); err != nil {
		t.Errorf("browse should accept no arguments: %v", err)
	}
	if err := cmd.Args(cmd, []string{"popular"}); err != nil {
		t.Errorf("browse should accept one argument: %v", err)
	}
	if err := cmd.Args(cmd, []string{"popular", "extra"}); err == nil {
		t.Error("browse should reject two arguments")
	}
}

func TestMovieCommand_RequiresID(t *testing.T) {
	cmd := newMovieCmd()
	if err := cmd.Args(cmd, []string{}); err == nil {
		t.Error("movie command should require an argument")
	}
	if err := cmd.Args(cmd, []string{"550"}); err != nil {
		t.Errorf("movie command should accept one argument: %v", err)
	}
}

func TestConfigCommand_HasValidateSubcommand(t *testing.T) {
	cmd := newConfigCmd()
	found := false
	for _, sub := range cmd.Commands() {
		if sub.Name() == "validate" {
			found = true
			break
		}
	}
	if !found {
		t.Error("config command missing 'validate' subcommand")
	}
}
