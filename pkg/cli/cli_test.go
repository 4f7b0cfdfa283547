package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const testSchema = `
scalar DateTime
scalar OddNumber

enum Mood { HAPPY SAD }

input PersonInput {
  name: String!
  mood: Mood
}

type Person {
  id: ID!
  name: String
  born: DateTime
  age(delay: Int): Int
  friends(first: Int): [Person]
}

type Query {
  person(id: ID!): Person
  people(mood: Mood, limit: Int = 10): [Person!]!
}

type Mutation {
  createPerson(input: PersonInput!): Person
}
`

// setupProject writes schema.graphql into a fresh working directory.
func setupProject(t *testing.T, schema string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "schema.graphql"), []byte(schema), 0644); err != nil {
		t.Fatalf("write schema: %v", err)
	}
	t.Chdir(dir)
	return dir
}

// resetFlags restores every flag of cmd and its subcommands to its default.
// Flags are bound to package-level variables that survive between Execute
// calls.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// runCLI executes the root command with args and returns what it wrote to stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	done := make(chan []byte)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		done <- buf.Bytes()
	}()

	rootCmd.SetArgs(args)
	runErr := rootCmd.Execute()
	rootCmd.SetArgs(nil)

	w.Close()
	os.Stdout = oldStdout
	return string(<-done), runErr
}

func decodeJSON[T any](t *testing.T, data string) T {
	t.Helper()
	var v T
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		t.Fatalf("stdout is not valid JSON: %v\n%s", err, data)
	}
	return v
}
