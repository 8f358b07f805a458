package main

import "testing"

func TestMainRunsCLI(t *testing.T) {
	invoked := false
	orig := execute
	execute = func() { invoked = true }
	t.Cleanup(func() { execute = orig })

	main()

	if !invoked {
		t.Fatalf("main did not invoke the CLI")
	}
}
