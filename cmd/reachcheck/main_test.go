package main

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestRootCommandHasOneSubcommandPerDemo(t *testing.T) {
	root := newRootCommand()
	runCmd, _, err := root.Find([]string{"run"})
	if err != nil {
		t.Fatalf("Find(run) error = %v", err)
	}

	want := []string{"linear", "branching", "covered-sibling", "diamond", "large"}
	for _, name := range want {
		if cmd, _, err := root.Find([]string{"run", name}); err != nil || cmd == runCmd {
			t.Errorf("expected a registered demo subcommand %q", name)
		}
	}
}

func TestRunLinearDemoExitsExhausted(t *testing.T) {
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"run", "linear", "--threads", "2"})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out.String(), "outcome: EXHAUSTED") {
		t.Errorf("output = %q, want outcome EXHAUSTED", out.String())
	}
}

func TestRunBranchingDemoExitsReachable(t *testing.T) {
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"run", "branching"})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out.String(), "outcome: REACHABLE") {
		t.Errorf("output = %q, want outcome REACHABLE", out.String())
	}
}

func TestRunRejectsInvalidThreads(t *testing.T) {
	root := newRootCommand()
	root.SetArgs([]string{"run", "linear", "--threads", "0"})

	if err := root.Execute(); err == nil {
		t.Fatal("expected an error for threads = 0")
	}
}

func TestRunLoadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/reachcheck.toml"
	if err := writeMinimalConfig(path); err != nil {
		t.Fatalf("writeMinimalConfig() error = %v", err)
	}

	root := newRootCommand()
	root.SetArgs([]string{"run", "diamond", "--config", path})
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
}

func writeMinimalConfig(path string) error {
	const body = "threads = 2\norder = \"DFS\"\nbucket_count = 16\n"
	return os.WriteFile(path, []byte(body), 0o644)
}
